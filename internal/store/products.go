package store

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tienda_back_end/internal/models"
)

type MongoProductStore struct {
	col *mongo.Collection
}

func NewMongoProductStore(db *mongo.Database) *MongoProductStore {
	return &MongoProductStore{col: db.Collection("products")}
}

func (s *MongoProductStore) Create(ctx context.Context, input models.ProductInput) (*models.Product, error) {
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

	product := models.Product{
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

	res, err := s.col.InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, errors.Wrap(err, "insert product")
	}

	product.ID = res.InsertedID.(primitive.ObjectID)
	return &product, nil
}

func (s *MongoProductStore) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var product models.Product
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find product")
	}
	return &product, nil
}

func (s *MongoProductStore) List(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

func (s *MongoProductStore) Update(ctx context.Context, id string, input models.ProductInput) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	set := bson.M{}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Price != nil {
		set["price"] = *input.Price
	}
	if input.Stock != nil {
		set["stock"] = *input.Stock
	}
	if input.ImageURL != nil {
		set["imageUrl"] = *input.ImageURL
	}
	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, after).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, errors.Wrap(err, "update product")
	}
	return &product, nil
}

func (s *MongoProductStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return errors.Wrap(err, "delete product")
	}
	return nil
}

// DecrementStock writes the decrement with a stock >= qty filter so a
// single product's check-and-decrement cannot go negative even under
// concurrent orders. It reports false when the guard did not match.
func (s *MongoProductStore) DecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": oid, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return false, errors.Wrap(err, "decrement stock")
	}
	return res.ModifiedCount == 1, nil
}
