package utils

import "time"

// Application Constants
const (
	AppName    = "ecommerce"
	AppVersion = "1.0.0"

	// Default values
	DefaultCurrency = "usd"

	// Response status
	StatusSuccess = "success"
	StatusError   = "error"

	// Common error messages
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Unauthorized"
	ErrForbidden        = "Forbidden"

	// Coupons
	CouponCodeSuffixLength = 6

	// Cache
	FeaturedProductsCacheKey = "featured_products"
	FeaturedProductsCacheTTL = 1 * time.Hour
	CouponCacheTTL           = 15 * time.Minute

	// Analytics
	DailySalesWindowDays = 7
)
