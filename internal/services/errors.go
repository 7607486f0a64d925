package services

import "errors"

// Pricing and checkout errors are returned synchronously to the caller.
// Nothing in this pipeline retries automatically; the payment processor
// re-delivers the success callback on its own schedule, which is why order
// creation is idempotent per session.
var (
	ErrInvalidInput        = errors.New("invalid checkout input")
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponInactive      = errors.New("coupon is not active")
	ErrCouponExpired       = errors.New("coupon has expired")
	ErrInvalidCoupon       = errors.New("invalid coupon configuration")
	ErrPaymentProvider     = errors.New("payment provider error")
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrSessionNotFound     = errors.New("checkout session not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrOrderNotFound       = errors.New("order not found")
)
