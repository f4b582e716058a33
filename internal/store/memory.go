package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tienda_back_end/internal/models"
)

// In-memory store implementations with the same contract as the Mongo
// ones (uniqueness, validation, not-found as nil). Used by tests and as
// a zero-dependency backend for local experiments.

var (
	_ UserStore    = (*MemoryUserStore)(nil)
	_ ProductStore = (*MemoryProductStore)(nil)
	_ OrderStore   = (*MemoryOrderStore)(nil)

	_ UserStore    = (*MongoUserStore)(nil)
	_ ProductStore = (*MongoProductStore)(nil)
	_ OrderStore   = (*MongoOrderStore)(nil)
)

type MemoryUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *MemoryUserStore) Create(_ context.Context, input models.UserInput) (*models.User, error) {
	var msgs []string
	if input.Name == nil || *input.Name == "" {
		msgs = append(msgs, "name is required")
	}
	if input.Email == nil || *input.Email == "" {
		msgs = append(msgs, "email is required")
	}
	if input.Pass == nil || *input.Pass == "" {
		msgs = append(msgs, "pass is required")
	}
	if len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == *input.Email {
			return nil, ErrDuplicateEmail
		}
	}

	user := models.User{
		ID:    primitive.NewObjectID(),
		Name:  *input.Name,
		Email: *input.Email,
		Pass:  *input.Pass,
	}
	s.users[user.ID] = user
	return &user, nil
}

func (s *MemoryUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[oid]; ok {
		return &u, nil
	}
	return nil, nil
}

func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryUserStore) List(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID.Hex() < users[j].ID.Hex() })
	return users, nil
}

func (s *MemoryUserStore) Update(_ context.Context, id string, input models.UserInput) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[oid]
	if !ok {
		return nil, nil
	}
	if input.Email != nil {
		for _, other := range s.users {
			if other.ID != oid && other.Email == *input.Email {
				return nil, ErrDuplicateEmail
			}
		}
		u.Email = *input.Email
	}
	if input.Name != nil {
		u.Name = *input.Name
	}
	if input.Pass != nil {
		u.Pass = *input.Pass
	}
	s.users[oid] = u
	return &u, nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, oid)
	return nil
}

type MemoryProductStore struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{products: make(map[primitive.ObjectID]models.Product)}
}

func (s *MemoryProductStore) Create(_ context.Context, input models.ProductInput) (*models.Product, error) {
	var msgs []string
	if input.Name == nil || *input.Name == "" {
		msgs = append(msgs, "name is required")
	}
	if input.Description == nil || *input.Description == "" {
		msgs = append(msgs, "description is required")
	}
	if input.Price == nil {
		msgs = append(msgs, "price is required")
	} else if *input.Price < 0 {
		msgs = append(msgs, "price must not be negative")
	}
	if input.Stock != nil && *input.Stock < 0 {
		msgs = append(msgs, "stock must not be negative")
	}
	if len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Name == *input.Name {
			return nil, ErrDuplicateName
		}
	}

	product := models.Product{
		ID:          primitive.NewObjectID(),
		Name:        *input.Name,
		Description: *input.Description,
		Price:       *input.Price,
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	s.products[product.ID] = product
	return &product, nil
}

func (s *MemoryProductStore) GetByID(_ context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[oid]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *MemoryProductStore) List(_ context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID.Hex() < products[j].ID.Hex() })
	return products, nil
}

func (s *MemoryProductStore) Update(_ context.Context, id string, input models.ProductInput) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[oid]
	if !ok {
		return nil, nil
	}
	if input.Name != nil {
		for _, other := range s.products {
			if other.ID != oid && other.Name == *input.Name {
				return nil, ErrDuplicateName
			}
		}
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.ImageURL != nil {
		p.ImageURL = *input.ImageURL
	}
	s.products[oid] = p
	return &p, nil
}

func (s *MemoryProductStore) Delete(_ context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, oid)
	return nil
}

func (s *MemoryProductStore) DecrementStock(_ context.Context, id string, qty int) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[oid]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	s.products[oid] = p
	return true, nil
}

type MemoryOrderStore struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]models.Order
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: make(map[primitive.ObjectID]models.Order)}
}

func (s *MemoryOrderStore) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = primitive.NewObjectID()
	s.orders[order.ID] = *order
	return order, nil
}

func (s *MemoryOrderStore) GetByID(_ context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[oid]; ok {
		return &o, nil
	}
	return nil, nil
}

func (s *MemoryOrderStore) List(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].OrderedAt.After(orders[j].OrderedAt) })
	return orders, nil
}

func (s *MemoryOrderStore) UpdateStatus(_ context.Context, id, status string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[oid]
	if !ok {
		return nil, nil
	}
	o.Status = status
	s.orders[oid] = o
	return &o, nil
}
