package graph

import (
	"time"

	"github.com/graphql-go/graphql"

	"tienda_back_end/internal/models"
	"tienda_back_end/internal/orders"
	"tienda_back_end/internal/store"
)

// Resolver wires the stores and the order workflow into the schema.
type Resolver struct {
	Users    store.UserStore
	Products store.ProductStore
	Orders   store.OrderStore
	Workflow *orders.Service
}

// NewSchema builds the full query/mutation schema around r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userType := newUserType()
	productType := newProductType()
	orderType := newOrderType()
	responseType := newResponseType()

	userInput := newUserInput()
	productInput := newProductInput()
	addressInput := newAddressInput()
	orderItemInput := newOrderItemInput()

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type:    graphql.NewList(userType),
				Resolve: r.resolveUsers,
			},
			"userById": &graphql.Field{
				Type:    userType,
				Args:    idArg(),
				Resolve: r.resolveUserByID,
			},
			"products": &graphql.Field{
				Type:    graphql.NewList(productType),
				Resolve: r.resolveProducts,
			},
			"productById": &graphql.Field{
				Type:    productType,
				Args:    idArg(),
				Resolve: r.resolveProductByID,
			},
			"orders": &graphql.Field{
				Type:    graphql.NewList(orderType),
				Resolve: r.resolveOrders,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInput)},
				},
				Resolve: r.resolveCreateUser,
			},
			"updateUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: userInput},
				},
				Resolve: r.resolveUpdateUser,
			},
			"deleteUser": &graphql.Field{
				Type:    responseType,
				Args:    idArg(),
				Resolve: r.resolveDeleteUser,
			},
			"createProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInput)},
				},
				Resolve: r.resolveCreateProduct,
			},
			"updateProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: productInput},
				},
				Resolve: r.resolveUpdateProduct,
			},
			"deleteProduct": &graphql.Field{
				Type:    responseType,
				Args:    idArg(),
				Resolve: r.resolveDeleteProduct,
			},
			"createOrder": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"clientId":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"clientName": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"address":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(addressInput)},
					"items": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(orderItemInput))),
					},
				},
				Resolve: r.resolveCreateOrder,
			},
			"setOrderStatus": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"id":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveSetOrderStatus,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

func idArg() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}
}

func newUserType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return userSource(p).ID.Hex(), nil
				},
			},
			"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			// The source system exposes the stored password verbatim.
			"pass": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return userSource(p).Pass, nil
				},
			},
			"isAdmin": &graphql.Field{Type: graphql.Boolean},
		},
	})
}

func newProductType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return productSource(p).ID.Hex(), nil
				},
			},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"price":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"stock":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"description": &graphql.Field{Type: graphql.String},
			"imageUrl":    &graphql.Field{Type: graphql.String},
		},
	})
}

func newOrderType() *graphql.Object {
	addressType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Address",
		Fields: graphql.Fields{
			"street": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"number": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"lat":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"lon":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	itemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderItem",
		Fields: graphql.Fields{
			"productId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return itemSource(p).ProductID.Hex(), nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return itemSource(p).ProductName, nil
				},
			},
			"quantity":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"unitPrice": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return orderSource(p).ID.Hex(), nil
				},
			},
			"clientId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return orderSource(p).ClientID.Hex(), nil
				},
			},
			"clientName": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"total":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"status":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"date": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return orderSource(p).OrderedAt.Format(time.RFC3339), nil
				},
			},
			"address": &graphql.Field{Type: graphql.NewNonNull(addressType)},
			"items": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(itemType))),
			},
		},
	})
}

func newResponseType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Response",
		Fields: graphql.Fields{
			"status":  &graphql.Field{Type: graphql.String},
			"message": &graphql.Field{Type: graphql.String},
		},
	})
}

func newUserInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"pass":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
}

func newProductInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"price":       &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"stock":       &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"imageUrl":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
}

func newAddressInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "AddressInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"street": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"number": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"lat":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"lon":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		},
	})
}

func newOrderItemInput() *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "OrderItemInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"productId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"quantity":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		},
	})
}

// Source coercion: list fields hand the element by value, single
// lookups by pointer.

func userSource(p graphql.ResolveParams) *models.User {
	switch u := p.Source.(type) {
	case *models.User:
		return u
	case models.User:
		return &u
	}
	return &models.User{}
}

func productSource(p graphql.ResolveParams) *models.Product {
	switch v := p.Source.(type) {
	case *models.Product:
		return v
	case models.Product:
		return &v
	}
	return &models.Product{}
}

func orderSource(p graphql.ResolveParams) *models.Order {
	switch o := p.Source.(type) {
	case *models.Order:
		return o
	case models.Order:
		return &o
	}
	return &models.Order{}
}

func itemSource(p graphql.ResolveParams) *models.OrderItem {
	switch i := p.Source.(type) {
	case *models.OrderItem:
		return i
	case models.OrderItem:
		return &i
	}
	return &models.OrderItem{}
}
