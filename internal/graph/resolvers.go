package graph

import (
	"github.com/graphql-go/graphql"

	"tienda_back_end/internal/models"
)

// ack is the {status, message} payload delete mutations answer with.
type ack struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (r *Resolver) resolveUsers(p graphql.ResolveParams) (interface{}, error) {
	return r.Users.List(p.Context)
}

func (r *Resolver) resolveUserByID(p graphql.ResolveParams) (interface{}, error) {
	user, err := r.Users.GetByID(p.Context, p.Args["id"].(string))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return user, nil
}

func (r *Resolver) resolveCreateUser(p graphql.ResolveParams) (interface{}, error) {
	input := userInputFrom(p.Args["input"])
	return r.Users.Create(p.Context, input)
}

func (r *Resolver) resolveUpdateUser(p graphql.ResolveParams) (interface{}, error) {
	input := userInputFrom(p.Args["input"])
	user, err := r.Users.Update(p.Context, p.Args["id"].(string), input)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return user, nil
}

func (r *Resolver) resolveDeleteUser(p graphql.ResolveParams) (interface{}, error) {
	if err := r.Users.Delete(p.Context, p.Args["id"].(string)); err != nil {
		return nil, err
	}
	return ack{Status: "200", Message: "user deleted"}, nil
}

func (r *Resolver) resolveProducts(p graphql.ResolveParams) (interface{}, error) {
	return r.Products.List(p.Context)
}

func (r *Resolver) resolveProductByID(p graphql.ResolveParams) (interface{}, error) {
	product, err := r.Products.GetByID(p.Context, p.Args["id"].(string))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return product, nil
}

func (r *Resolver) resolveCreateProduct(p graphql.ResolveParams) (interface{}, error) {
	input := productInputFrom(p.Args["input"])
	return r.Products.Create(p.Context, input)
}

func (r *Resolver) resolveUpdateProduct(p graphql.ResolveParams) (interface{}, error) {
	input := productInputFrom(p.Args["input"])
	product, err := r.Products.Update(p.Context, p.Args["id"].(string), input)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return product, nil
}

func (r *Resolver) resolveDeleteProduct(p graphql.ResolveParams) (interface{}, error) {
	if err := r.Products.Delete(p.Context, p.Args["id"].(string)); err != nil {
		return nil, err
	}
	return ack{Status: "200", Message: "product deleted"}, nil
}

func (r *Resolver) resolveOrders(p graphql.ResolveParams) (interface{}, error) {
	return r.Orders.List(p.Context)
}

func (r *Resolver) resolveCreateOrder(p graphql.ResolveParams) (interface{}, error) {
	address := addressFrom(p.Args["address"])

	var items []models.RequestedItem
	for _, raw := range p.Args["items"].([]interface{}) {
		m := raw.(map[string]interface{})
		items = append(items, models.RequestedItem{
			ProductID: m["productId"].(string),
			Quantity:  m["quantity"].(int),
		})
	}

	return r.Workflow.PlaceOrder(p.Context,
		p.Args["clientId"].(string),
		p.Args["clientName"].(string),
		address,
		items,
	)
}

func (r *Resolver) resolveSetOrderStatus(p graphql.ResolveParams) (interface{}, error) {
	return r.Workflow.SetStatus(p.Context, p.Args["id"].(string), p.Args["status"].(string))
}

func userInputFrom(arg interface{}) models.UserInput {
	var input models.UserInput
	m, ok := arg.(map[string]interface{})
	if !ok {
		return input
	}
	if v, ok := m["name"].(string); ok {
		input.Name = &v
	}
	if v, ok := m["email"].(string); ok {
		input.Email = &v
	}
	if v, ok := m["pass"].(string); ok {
		input.Pass = &v
	}
	return input
}

func productInputFrom(arg interface{}) models.ProductInput {
	var input models.ProductInput
	m, ok := arg.(map[string]interface{})
	if !ok {
		return input
	}
	if v, ok := m["name"].(string); ok {
		input.Name = &v
	}
	if v, ok := m["description"].(string); ok {
		input.Description = &v
	}
	if v, ok := m["price"].(float64); ok {
		input.Price = &v
	}
	if v, ok := m["stock"].(int); ok {
		input.Stock = &v
	}
	if v, ok := m["imageUrl"].(string); ok {
		input.ImageURL = &v
	}
	return input
}

func addressFrom(arg interface{}) models.Address {
	m := arg.(map[string]interface{})
	return models.Address{
		Street: m["street"].(string),
		Number: m["number"].(string),
		Lat:    toFloat(m["lat"]),
		Lon:    toFloat(m["lon"]),
	}
}

// Float args arrive as float64, but integral literals may coerce to int.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}
