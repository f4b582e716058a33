package orders

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tienda_back_end/internal/geo"
	"tienda_back_end/internal/models"
	"tienda_back_end/internal/store"
)

var (
	ErrOutOfServiceArea  = errors.New("address is outside the service area")
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrInvalidClientID   = errors.New("invalid client id")
)

// Service runs order placement: service-radius check, per-item stock
// check and decrement, order persistence.
type Service struct {
	products store.ProductStore
	orders   store.OrderStore

	origin      geo.Point
	maxRadiusKm float64
}

func NewService(products store.ProductStore, orders store.OrderStore, origin geo.Point, maxRadiusKm float64) *Service {
	return &Service{
		products:    products,
		orders:      orders,
		origin:      origin,
		maxRadiusKm: maxRadiusKm,
	}
}

// PlaceOrder validates and persists a new order.
//
// Stock is decremented per item, in input order, before the next item
// is examined. A failure on a later item does not restore stock already
// taken by earlier items; that matches the documented behavior of this
// workflow and callers must not assume atomicity.
func (s *Service) PlaceOrder(ctx context.Context, clientID, clientName string, address models.Address, items []models.RequestedItem) (*models.Order, error) {
	clientOID, err := primitive.ObjectIDFromHex(clientID)
	if err != nil {
		return nil, ErrInvalidClientID
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	dist := geo.Distance(s.origin, geo.Point{Lat: address.Lat, Lon: address.Lon})
	if dist > s.maxRadiusKm {
		log.WithFields(log.Fields{"distanceKm": dist, "radiusKm": s.maxRadiusKm}).
			Warn("order rejected: address out of service area")
		return nil, errors.Wrapf(ErrOutOfServiceArea,
			"service radius is %.0fkm, address is %.2fkm away", s.maxRadiusKm, dist)
	}

	var (
		lineItems []models.OrderItem
		total     float64
	)
	for _, item := range items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, errors.Wrapf(ErrProductNotFound, "product %s", item.ProductID)
		}
		if item.Quantity <= 0 {
			return nil, errors.Wrapf(ErrInvalidQuantity, "product %s", product.Name)
		}
		if product.Stock < item.Quantity {
			return nil, errors.Wrapf(ErrInsufficientStock,
				"product %s has stock %d", product.Name, product.Stock)
		}

		ok, err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			// A concurrent order consumed the stock between our read
			// and the guarded write.
			return nil, errors.Wrapf(ErrInsufficientStock, "product %s", product.Name)
		}

		lineItems = append(lineItems, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
		})
		total += product.Price * float64(item.Quantity)
	}

	order := &models.Order{
		ClientID:   clientOID,
		ClientName: clientName,
		Items:      lineItems,
		Total:      total,
		Address:    address,
		Status:     models.StatusPending,
		OrderedAt:  time.Now().UTC(),
	}

	order, err = s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"orderId": order.ID.Hex(),
		"items":   len(order.Items),
		"total":   order.Total,
	}).Info("order placed")
	return order, nil
}

// SetStatus overwrites an order's status unconditionally. No transition
// table is enforced; any string is accepted, including moves out of
// terminal states.
func (s *Service) SetStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	order, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.Wrapf(ErrOrderNotFound, "order %s", orderID)
	}
	return order, nil
}
