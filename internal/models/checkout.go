package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CheckoutItem is a request-scoped line item. The client submits product ID
// and quantity; unit price, name and image are resolved from the catalog at
// session-creation time so a tampered request cannot change what is charged.
type CheckoutItem struct {
	ProductID primitive.ObjectID `json:"product_id"`
	Name      string             `json:"name"`
	Image     string             `json:"image"`
	Price     float64            `json:"price"`
	Quantity  int64              `json:"quantity"`
}

type CreateCheckoutSessionRequest struct {
	Products   []CheckoutRequestProduct `json:"products" binding:"required"`
	CouponCode string                   `json:"coupon_code"`
}

type CheckoutRequestProduct struct {
	ID       string `json:"id" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required,min=1"`
}

type CheckoutSessionResponse struct {
	SessionID   string  `json:"session_id"`
	TotalAmount float64 `json:"total_amount"`
}

type ConfirmCheckoutRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

type ConfirmCheckoutResponse struct {
	OrderID string `json:"order_id"`
}
