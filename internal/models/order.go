package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order is append-only. StripeSessionID carries a unique index so a retried
// success callback can never materialize a second order for the same session.
type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	Products        []OrderProduct     `json:"products" bson:"products" validate:"required,dive"`
	TotalAmount     float64            `json:"total_amount" bson:"total_amount" validate:"required,min=0"`
	StripeSessionID string             `json:"stripe_session_id" bson:"stripe_session_id" validate:"required"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// OrderProduct is the line-item snapshot recorded at checkout time. Price is
// in major currency units, matching what the payment session charged.
type OrderProduct struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	Quantity  int64              `json:"quantity" bson:"quantity"`
	Price     float64            `json:"price" bson:"price"`
}
