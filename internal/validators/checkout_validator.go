package validators

import (
	"fmt"

	"github.com/sseleimend/e-commerce/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxCouponCodeLength = 20

func ValidateCreateCheckoutSession(req *models.CreateCheckoutSessionRequest) ValidationErrors {
	var errors ValidationErrors

	if len(req.Products) == 0 {
		errors = append(errors, ValidationError{
			Field:   "products",
			Message: "At least one product is required",
		})
	}

	for i, product := range req.Products {
		if _, err := primitive.ObjectIDFromHex(product.ID); err != nil {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("products[%d].id", i),
				Message: "Invalid product ID",
			})
		}
		if product.Quantity < 1 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("products[%d].quantity", i),
				Message: "Quantity must be at least 1",
			})
		}
	}

	if len(req.CouponCode) > maxCouponCodeLength {
		errors = append(errors, ValidationError{
			Field:   "coupon_code",
			Message: "Coupon code is too long",
		})
	}

	return errors
}
