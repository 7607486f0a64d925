package interfaces

import (
	"context"

	"github.com/sseleimend/e-commerce/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartRepository interface {
	// GetByUser returns the user's cart, or ErrNotFound when none exists yet.
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)

	// Save upserts the cart document keyed by user.
	Save(ctx context.Context, cart *models.Cart) error
}
