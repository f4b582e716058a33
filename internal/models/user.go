package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name    string             `json:"name" bson:"name"`
	Email   string             `json:"email" bson:"email"`
	Pass    string             `json:"-" bson:"pass"`
	IsAdmin bool               `json:"isAdmin" bson:"isAdmin"`
}

// UserInput carries the writable user fields for create and partial update.
type UserInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Pass  *string `json:"pass"`
}
