package interfaces

import (
	"context"

	"github.com/sseleimend/e-commerce/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	GetByCodeAndUser(ctx context.Context, code string, userID primitive.ObjectID) (*models.Coupon, error)
	GetLatestActiveByUser(ctx context.Context, userID primitive.ObjectID) (*models.Coupon, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// Deactivate flips is_active to false for (code, user). It is a no-op
	// when no matching coupon exists.
	Deactivate(ctx context.Context, code string, userID primitive.ObjectID) error
}
