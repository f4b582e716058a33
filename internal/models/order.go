package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. SetStatus does not validate against this set, any
// string a client sends is written as-is.
const (
	StatusPending   = "Pending"
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

type Address struct {
	Street string  `json:"street" bson:"street"`
	Number string  `json:"number" bson:"number"`
	Lat    float64 `json:"lat" bson:"lat"`
	Lon    float64 `json:"lon" bson:"lon"`
}

// OrderItem is a snapshot of a product at the moment the order was
// placed. Later product edits never touch it.
type OrderItem struct {
	ProductID   primitive.ObjectID `json:"productId" bson:"productId"`
	ProductName string             `json:"productName" bson:"productName"`
	Quantity    int                `json:"quantity" bson:"quantity"`
	UnitPrice   float64            `json:"unitPrice" bson:"unitPrice"`
}

type Order struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ClientID   primitive.ObjectID `json:"clientId" bson:"clientId"`
	ClientName string             `json:"clientName" bson:"clientName"`
	Items      []OrderItem        `json:"items" bson:"items"`
	Total      float64            `json:"total" bson:"total"`
	Address    Address            `json:"address" bson:"address"`
	Status     string             `json:"status" bson:"status"`
	OrderedAt  time.Time          `json:"orderedAt" bson:"orderedAt"`
}

// RequestedItem is one {productId, quantity} pair of an incoming order.
type RequestedItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
