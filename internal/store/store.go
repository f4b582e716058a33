package store

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"tienda_back_end/internal/models"
)

// Error kinds the stores report. Callers branch on these instead of
// inspecting driver error codes.
var (
	ErrDuplicateEmail = errors.New("email is already registered")
	ErrDuplicateName  = errors.New("product name is already taken")
)

// ValidationError aggregates every failed field check of a write.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, ", ")
}

// UserStore is the account store. Lookups return (nil, nil) when the
// user does not exist; only infrastructure failures are errors.
type UserStore interface {
	Create(ctx context.Context, input models.UserInput) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, input models.UserInput) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// ProductStore is the catalog store.
type ProductStore interface {
	Create(ctx context.Context, input models.ProductInput) (*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, id string, input models.ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id string) error

	// DecrementStock subtracts qty from the product's stock only if at
	// least qty is available, and reports whether it did.
	DecrementStock(ctx context.Context, id string, qty int) (bool, error)
}

// OrderStore persists orders. List returns newest first.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Order, error)
}
