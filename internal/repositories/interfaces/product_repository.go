package interfaces

import (
	"context"

	"github.com/sseleimend/e-commerce/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Product, error)
	GetAll(ctx context.Context) ([]*models.Product, error)
	GetByCategory(ctx context.Context, category string) ([]*models.Product, error)
	GetFeatured(ctx context.Context) ([]*models.Product, error)
	GetRecommendations(ctx context.Context, limit int) ([]*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}
