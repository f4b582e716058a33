package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tienda_back_end/internal/geo"
	"tienda_back_end/internal/models"
	"tienda_back_end/internal/store"
)

var storeOrigin = geo.Point{Lat: 40.4168, Lon: -3.7038}

func setup(t *testing.T) (*Service, *store.MemoryProductStore, *store.MemoryOrderStore) {
	t.Helper()
	products := store.NewMemoryProductStore()
	orders := store.NewMemoryOrderStore()
	return NewService(products, orders, storeOrigin, 20), products, orders
}

func strptr(s string) *string   { return &s }
func f64ptr(f float64) *float64 { return &f }
func intptr(i int) *int         { return &i }

func seedProduct(t *testing.T, products *store.MemoryProductStore, name string, price float64, stock int) *models.Product {
	t.Helper()
	p, err := products.Create(context.Background(), models.ProductInput{
		Name:        strptr(name),
		Description: strptr(name + " description"),
		Price:       f64ptr(price),
		Stock:       intptr(stock),
	})
	require.NoError(t, err)
	return p
}

func nearbyAddress() models.Address {
	return models.Address{Street: "Gran Via", Number: "12", Lat: 40.42, Lon: -3.70}
}

func TestPlaceOrderSuccess(t *testing.T) {
	svc, products, orderStore := setup(t)
	ctx := context.Background()

	a := seedProduct(t, products, "keyboard", 10, 5)
	b := seedProduct(t, products, "mouse", 5, 3)
	clientID := primitive.NewObjectID().Hex()

	order, err := svc.PlaceOrder(ctx, clientID, "Ana", nearbyAddress(), []models.RequestedItem{
		{ProductID: a.ID.Hex(), Quantity: 2},
		{ProductID: b.ID.Hex(), Quantity: 1},
	})

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, 25.0, order.Total)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, "Ana", order.ClientName)
	assert.False(t, order.OrderedAt.IsZero())

	require.Len(t, order.Items, 2)
	assert.Equal(t, "keyboard", order.Items[0].ProductName)
	assert.Equal(t, 10.0, order.Items[0].UnitPrice)
	assert.Equal(t, 2, order.Items[0].Quantity)

	pa, _ := products.GetByID(ctx, a.ID.Hex())
	pb, _ := products.GetByID(ctx, b.ID.Hex())
	assert.Equal(t, 3, pa.Stock)
	assert.Equal(t, 2, pb.Stock)

	saved, err := orderStore.GetByID(ctx, order.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, order.Total, saved.Total)
}

func TestPlaceOrderOutOfServiceArea(t *testing.T) {
	svc, products, _ := setup(t)
	ctx := context.Background()

	p := seedProduct(t, products, "keyboard", 10, 5)

	// Barcelona is ~505km from the Madrid origin, far past the 20km radius.
	farAway := models.Address{Street: "Diagonal", Number: "1", Lat: 41.3874, Lon: 2.1686}
	_, err := svc.PlaceOrder(ctx, primitive.NewObjectID().Hex(), "Ana", farAway, []models.RequestedItem{
		{ProductID: p.ID.Hex(), Quantity: 1},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfServiceArea)
	assert.Contains(t, err.Error(), "20km")
	assert.Contains(t, err.Error(), "km away")

	// Rejection happens before any stock is touched.
	after, _ := products.GetByID(ctx, p.ID.Hex())
	assert.Equal(t, 5, after.Stock)
}

func TestPlaceOrderProductNotFound(t *testing.T) {
	svc, _, _ := setup(t)

	_, err := svc.PlaceOrder(context.Background(), primitive.NewObjectID().Hex(), "Ana", nearbyAddress(),
		[]models.RequestedItem{{ProductID: primitive.NewObjectID().Hex(), Quantity: 1}})

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestPlaceOrderInvalidQuantity(t *testing.T) {
	svc, products, _ := setup(t)
	p := seedProduct(t, products, "keyboard", 10, 5)

	for _, qty := range []int{0, -3} {
		_, err := svc.PlaceOrder(context.Background(), primitive.NewObjectID().Hex(), "Ana", nearbyAddress(),
			[]models.RequestedItem{{ProductID: p.ID.Hex(), Quantity: qty}})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	svc, products, _ := setup(t)
	p := seedProduct(t, products, "keyboard", 10, 2)

	_, err := svc.PlaceOrder(context.Background(), primitive.NewObjectID().Hex(), "Ana", nearbyAddress(),
		[]models.RequestedItem{{ProductID: p.ID.Hex(), Quantity: 3}})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Contains(t, err.Error(), "keyboard")
	assert.Contains(t, err.Error(), "2")
}

// Stock taken by items processed before the failing one is not given
// back. This pins down the workflow's documented non-atomic behavior.
func TestPlaceOrderNoRollbackOnMidOrderFailure(t *testing.T) {
	svc, products, orderStore := setup(t)
	ctx := context.Background()

	a := seedProduct(t, products, "keyboard", 10, 5)
	b := seedProduct(t, products, "mouse", 5, 1)

	_, err := svc.PlaceOrder(ctx, primitive.NewObjectID().Hex(), "Ana", nearbyAddress(), []models.RequestedItem{
		{ProductID: a.ID.Hex(), Quantity: 2},
		{ProductID: b.ID.Hex(), Quantity: 4},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	pa, _ := products.GetByID(ctx, a.ID.Hex())
	pb, _ := products.GetByID(ctx, b.ID.Hex())
	assert.Equal(t, 3, pa.Stock, "first item keeps its decrement")
	assert.Equal(t, 1, pb.Stock, "failing item is untouched")

	all, err := orderStore.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "no order is persisted on failure")
}

func TestPlaceOrderEmptyItems(t *testing.T) {
	svc, _, _ := setup(t)
	_, err := svc.PlaceOrder(context.Background(), primitive.NewObjectID().Hex(), "Ana", nearbyAddress(), nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestPlaceOrderInvalidClientID(t *testing.T) {
	svc, _, _ := setup(t)
	_, err := svc.PlaceOrder(context.Background(), "not-a-hex-id", "Ana", nearbyAddress(),
		[]models.RequestedItem{{ProductID: primitive.NewObjectID().Hex(), Quantity: 1}})
	assert.ErrorIs(t, err, ErrInvalidClientID)
}

// Unit price is snapshotted at placement time; later edits to the
// product change neither existing orders nor their totals.
func TestPlaceOrderSnapshotsPrice(t *testing.T) {
	svc, products, _ := setup(t)
	ctx := context.Background()

	p := seedProduct(t, products, "keyboard", 10, 5)
	order, err := svc.PlaceOrder(ctx, primitive.NewObjectID().Hex(), "Ana", nearbyAddress(),
		[]models.RequestedItem{{ProductID: p.ID.Hex(), Quantity: 1}})
	require.NoError(t, err)

	_, err = products.Update(ctx, p.ID.Hex(), models.ProductInput{Price: f64ptr(99)})
	require.NoError(t, err)

	assert.Equal(t, 10.0, order.Items[0].UnitPrice)
	assert.Equal(t, 10.0, order.Total)
}

func TestSetStatus(t *testing.T) {
	svc, products, _ := setup(t)
	ctx := context.Background()

	p := seedProduct(t, products, "keyboard", 10, 5)
	order, err := svc.PlaceOrder(ctx, primitive.NewObjectID().Hex(), "Ana", nearbyAddress(),
		[]models.RequestedItem{{ProductID: p.ID.Hex(), Quantity: 1}})
	require.NoError(t, err)

	t.Run("overwrites unconditionally", func(t *testing.T) {
		updated, err := svc.SetStatus(ctx, order.ID.Hex(), models.StatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, updated.Status)

		// Even moves out of a terminal state are allowed.
		updated, err = svc.SetStatus(ctx, order.ID.Hex(), models.StatusPending)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, updated.Status)
	})

	t.Run("accepts arbitrary strings", func(t *testing.T) {
		updated, err := svc.SetStatus(ctx, order.ID.Hex(), "OnHold")
		require.NoError(t, err)
		assert.Equal(t, "OnHold", updated.Status)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, primitive.NewObjectID().Hex(), models.StatusShipped)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
