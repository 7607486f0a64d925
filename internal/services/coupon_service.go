package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sseleimend/e-commerce/internal/models"
	"github.com/sseleimend/e-commerce/internal/repositories/interfaces"
	"github.com/sseleimend/e-commerce/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponService interface {
	// GetCoupon returns the user's most recent active coupon, or nil when
	// the user has none.
	GetCoupon(ctx context.Context, userID primitive.ObjectID) (*models.Coupon, error)

	// ValidateCoupon checks existence, active flag and expiry for a coupon
	// owned by the given user. An expired-but-still-active coupon is
	// deactivated as a side effect before the error is returned.
	ValidateCoupon(ctx context.Context, code string, userID primitive.ObjectID) (*models.Coupon, error)
}

type couponService struct {
	couponRepo interfaces.CouponRepository
	logger     *logger.Logger
	now        func() time.Time
}

func NewCouponService(couponRepo interfaces.CouponRepository, log *logger.Logger) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		logger:     log,
		now:        time.Now,
	}
}

func (s *couponService) GetCoupon(ctx context.Context, userID primitive.ObjectID) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetLatestActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return coupon, nil
}

func (s *couponService) ValidateCoupon(ctx context.Context, code string, userID primitive.ObjectID) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByCodeAndUser(ctx, code, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}

	if !coupon.IsActive {
		return nil, ErrCouponInactive
	}

	if coupon.ExpirationDate.Before(s.now()) {
		// Lazy deactivation: there is no background sweep, so the first
		// validation after expiry flips the flag. The read-then-write race
		// with a concurrent validation is benign (both write false).
		if err := s.couponRepo.Update(ctx, coupon.ID, map[string]interface{}{"is_active": false}); err != nil {
			s.logger.WithError(err).WithUserID(userID).Warn("Failed to deactivate expired coupon")
		}
		return nil, ErrCouponExpired
	}

	return coupon, nil
}
