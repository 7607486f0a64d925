package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sseleimend/e-commerce/internal/models"
	"github.com/sseleimend/e-commerce/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type couponRepository struct {
	collection *mongo.Collection
}

func NewCouponRepository(db *mongo.Database) interfaces.CouponRepository {
	return &couponRepository{
		collection: db.Collection("coupons"),
	}
}

func (r *couponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	coupon.ID = primitive.NewObjectID()
	coupon.CreatedAt = time.Now()
	coupon.UpdatedAt = time.Now()

	// Coupon codes are stored uppercase
	coupon.Code = strings.ToUpper(coupon.Code)

	_, err := r.collection.InsertOne(ctx, coupon)
	if err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	return nil
}

func (r *couponRepository) GetByCodeAndUser(ctx context.Context, code string, userID primitive.ObjectID) (*models.Coupon, error) {
	code = strings.ToUpper(code)

	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"code": code, "user_id": userID}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get coupon by code: %w", err)
	}

	return &coupon, nil
}

func (r *couponRepository) GetLatestActiveByUser(ctx context.Context, userID primitive.ObjectID) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.collection.FindOne(
		ctx,
		bson.M{"user_id": userID, "is_active": true},
		options.FindOne().SetSort(bson.M{"created_at": -1}),
	).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get coupon for user: %w", err)
	}

	return &coupon, nil
}

func (r *couponRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}

	return nil
}

func (r *couponRepository) Deactivate(ctx context.Context, code string, userID primitive.ObjectID) error {
	code = strings.ToUpper(code)

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"code": code, "user_id": userID},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate coupon: %w", err)
	}

	return nil
}
