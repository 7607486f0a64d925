package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Cart struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	Items     []CartItem         `json:"items" bson:"items"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

type CartItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	Quantity  int64              `json:"quantity" bson:"quantity"`
}

// CartProduct is a catalog product joined with the quantity held in the cart.
type CartProduct struct {
	Product  `json:",inline" bson:",inline"`
	Quantity int64 `json:"quantity" bson:"quantity"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type UpdateCartQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}
