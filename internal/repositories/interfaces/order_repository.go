package interfaces

import (
	"context"
	"time"

	"github.com/sseleimend/e-commerce/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderRepository interface {
	// Create inserts the order. It returns ErrDuplicateSession when an order
	// for the same stripe_session_id already exists.
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.Order, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Order, error)

	// Sales analytics
	GetSalesSummary(ctx context.Context) (*models.SalesSummary, error)
	GetDailySales(ctx context.Context, startDate, endDate time.Time) ([]*models.DailySales, error)
}
