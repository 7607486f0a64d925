package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon codes are unique per owning user. A coupon is never reactivated:
// it goes inactive when it expires or when it is spent on a paid order.
type Coupon struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code               string             `json:"code" bson:"code" validate:"required"`
	DiscountPercentage float64            `json:"discount_percentage" bson:"discount_percentage" validate:"required,min=0,max=100"`
	ExpirationDate     time.Time          `json:"expiration_date" bson:"expiration_date" validate:"required"`
	IsActive           bool               `json:"is_active" bson:"is_active"`
	UserID             primitive.ObjectID `json:"user_id" bson:"user_id" validate:"required"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}

type ValidateCouponRequest struct {
	Code string `json:"code" binding:"required"`
}
