package graph

import (
	"context"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tienda_back_end/internal/geo"
	"tienda_back_end/internal/models"
	"tienda_back_end/internal/orders"
	"tienda_back_end/internal/store"
)

type fixture struct {
	schema   graphql.Schema
	products *store.MemoryProductStore
	orders   *store.MemoryOrderStore
	users    *store.MemoryUserStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := store.NewMemoryUserStore()
	products := store.NewMemoryProductStore()
	orderStore := store.NewMemoryOrderStore()
	workflow := orders.NewService(products, orderStore, geo.Point{Lat: 40.4168, Lon: -3.7038}, 20)

	schema, err := NewSchema(&Resolver{
		Users:    users,
		Products: products,
		Orders:   orderStore,
		Workflow: workflow,
	})
	require.NoError(t, err)

	return &fixture{schema: schema, products: products, orders: orderStore, users: users}
}

func (f *fixture) exec(t *testing.T, query string, vars map[string]interface{}) *graphql.Result {
	t.Helper()
	return graphql.Do(graphql.Params{
		Schema:         f.schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        context.Background(),
	})
}

func (f *fixture) seedProduct(t *testing.T, name string, price float64, stock int) *models.Product {
	t.Helper()
	desc := name + " description"
	p, err := f.products.Create(context.Background(), models.ProductInput{
		Name:        &name,
		Description: &desc,
		Price:       &price,
		Stock:       &stock,
	})
	require.NoError(t, err)
	return p
}

func data(t *testing.T, res *graphql.Result) map[string]interface{} {
	t.Helper()
	require.Empty(t, res.Errors, "unexpected GraphQL errors: %v", res.Errors)
	return res.Data.(map[string]interface{})
}

const createUserMutation = `
mutation ($input: UserInput!) {
	createUser(input: $input) { id name email isAdmin }
}`

func TestCreateAndQueryUsers(t *testing.T) {
	f := newFixture(t)

	res := f.exec(t, createUserMutation, map[string]interface{}{
		"input": map[string]interface{}{"name": "Ana", "email": "ana@example.com", "pass": "secret"},
	})
	created := data(t, res)["createUser"].(map[string]interface{})
	assert.Equal(t, "Ana", created["name"])
	assert.NotEmpty(t, created["id"])

	res = f.exec(t, `{ users { name email } }`, nil)
	list := data(t, res)["users"].([]interface{})
	require.Len(t, list, 1)

	res = f.exec(t, `query ($id: ID!) { userById(id: $id) { email } }`,
		map[string]interface{}{"id": created["id"]})
	user := data(t, res)["userById"].(map[string]interface{})
	assert.Equal(t, "ana@example.com", user["email"])
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	input := map[string]interface{}{
		"input": map[string]interface{}{"name": "Ana", "email": "ana@example.com", "pass": "secret"},
	}

	res := f.exec(t, createUserMutation, input)
	require.Empty(t, res.Errors)

	res = f.exec(t, createUserMutation, input)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0].Message, "already registered")

	// The first user is unaffected.
	all, err := f.users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateUserValidationAggregatesMessages(t *testing.T) {
	f := newFixture(t)

	res := f.exec(t, createUserMutation, map[string]interface{}{
		"input": map[string]interface{}{},
	})
	require.NotEmpty(t, res.Errors)
	msg := res.Errors[0].Message
	assert.Contains(t, msg, "name is required")
	assert.Contains(t, msg, "email is required")
	assert.Contains(t, msg, "pass is required")
}

func TestProductByIdAbsentIsNull(t *testing.T) {
	f := newFixture(t)

	res := f.exec(t, `query ($id: ID!) { productById(id: $id) { name } }`,
		map[string]interface{}{"id": primitive.NewObjectID().Hex()})
	assert.Nil(t, data(t, res)["productById"])
}

func TestDeleteProductAck(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "keyboard", 10, 5)

	mutation := `mutation ($id: ID!) { deleteProduct(id: $id) { status message } }`
	res := f.exec(t, mutation, map[string]interface{}{"id": p.ID.Hex()})
	ack := data(t, res)["deleteProduct"].(map[string]interface{})
	assert.Equal(t, "200", ack["status"])

	// Deleting again still reports success.
	res = f.exec(t, mutation, map[string]interface{}{"id": p.ID.Hex()})
	ack = data(t, res)["deleteProduct"].(map[string]interface{})
	assert.Equal(t, "200", ack["status"])
}

const createOrderMutation = `
mutation ($clientId: ID!, $items: [OrderItemInput!]!) {
	createOrder(
		clientId: $clientId,
		clientName: "Ana",
		address: {street: "Gran Via", number: "12", lat: 40.42, lon: -3.70},
		items: $items
	) {
		id total status date
		items { name quantity unitPrice productId }
		address { street lat }
	}
}`

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)
	a := f.seedProduct(t, "keyboard", 10, 5)
	b := f.seedProduct(t, "mouse", 5, 3)

	res := f.exec(t, createOrderMutation, map[string]interface{}{
		"clientId": primitive.NewObjectID().Hex(),
		"items": []interface{}{
			map[string]interface{}{"productId": a.ID.Hex(), "quantity": 2},
			map[string]interface{}{"productId": b.ID.Hex(), "quantity": 1},
		},
	})

	order := data(t, res)["createOrder"].(map[string]interface{})
	assert.Equal(t, 25.0, order["total"])
	assert.Equal(t, models.StatusPending, order["status"])

	_, err := time.Parse(time.RFC3339, order["date"].(string))
	assert.NoError(t, err, "date is RFC3339")

	items := order["items"].([]interface{})
	require.Len(t, items, 2)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "keyboard", first["name"])
	assert.Equal(t, a.ID.Hex(), first["productId"])

	address := order["address"].(map[string]interface{})
	assert.Equal(t, "Gran Via", address["street"])
}

func TestCreateOrderErrorsSurfaceAsMessages(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "keyboard", 10, 1)

	res := f.exec(t, createOrderMutation, map[string]interface{}{
		"clientId": primitive.NewObjectID().Hex(),
		"items": []interface{}{
			map[string]interface{}{"productId": p.ID.Hex(), "quantity": 2},
		},
	})

	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0].Message, "insufficient stock")
	assert.Contains(t, res.Errors[0].Message, "keyboard")
}

func TestOrdersSortedNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i, name := range []string{"first", "second", "third"} {
		_, err := f.orders.Create(ctx, &models.Order{
			ClientID:   primitive.NewObjectID(),
			ClientName: name,
			Status:     models.StatusPending,
			OrderedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	res := f.exec(t, `{ orders { clientName } }`, nil)
	list := data(t, res)["orders"].([]interface{})
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].(map[string]interface{})["clientName"])
	assert.Equal(t, "first", list[2].(map[string]interface{})["clientName"])
}

func TestSetOrderStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.orders.Create(ctx, &models.Order{
		ClientID:  primitive.NewObjectID(),
		Status:    models.StatusPending,
		OrderedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	mutation := `mutation ($id: ID!, $status: String!) { setOrderStatus(id: $id, status: $status) { status } }`

	res := f.exec(t, mutation, map[string]interface{}{"id": order.ID.Hex(), "status": "Shipped"})
	updated := data(t, res)["setOrderStatus"].(map[string]interface{})
	assert.Equal(t, "Shipped", updated["status"])

	res = f.exec(t, mutation, map[string]interface{}{"id": primitive.NewObjectID().Hex(), "status": "Shipped"})
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0].Message, "order not found")
}
