package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sseleimend/e-commerce/internal/config"
	"github.com/sseleimend/e-commerce/internal/models"
	"github.com/sseleimend/e-commerce/internal/repositories/interfaces"
	"github.com/sseleimend/e-commerce/internal/utils"
	"github.com/sseleimend/e-commerce/pkg/logger"
	"github.com/sseleimend/e-commerce/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CheckoutService interface {
	// CreateCheckoutSession prices the line items, applies the user's coupon
	// when one is given and still valid, and opens a hosted payment session.
	// A stale or unknown coupon does not block checkout; the session is
	// simply created without a discount.
	CreateCheckoutSession(ctx context.Context, userID primitive.ObjectID, items []models.CheckoutItem, couponCode string) (*models.CheckoutSessionResponse, error)

	// ConfirmCheckout materializes the order for a paid session. Confirming
	// the same session twice returns the same order.
	ConfirmCheckout(ctx context.Context, sessionID string) (*models.ConfirmCheckoutResponse, error)
}

type checkoutService struct {
	couponService CouponService
	couponRepo    interfaces.CouponRepository
	orderRepo     interfaces.OrderRepository
	provider      payment.CheckoutProvider
	checkoutCfg   *config.CheckoutConfig
	frontendURL   string
	currency      string
	logger        *logger.Logger

	// dispatch runs fire-and-forget side effects. Overridden in tests.
	dispatch func(fn func())
}

func NewCheckoutService(
	couponService CouponService,
	couponRepo interfaces.CouponRepository,
	orderRepo interfaces.OrderRepository,
	provider payment.CheckoutProvider,
	cfg *config.Config,
	log *logger.Logger,
) CheckoutService {
	return &checkoutService{
		couponService: couponService,
		couponRepo:    couponRepo,
		orderRepo:     orderRepo,
		provider:      provider,
		checkoutCfg:   cfg.Checkout,
		frontendURL:   cfg.App.FrontendURL,
		currency:      cfg.Payment.Currency,
		logger:        log,
		dispatch:      func(fn func()) { go fn() },
	}
}

// sessionProduct is the per-item snapshot serialized into the payment
// session metadata. Together with user_id and coupon_code it must be enough
// to rebuild the order later without touching cart state again.
type sessionProduct struct {
	ID       string  `json:"id"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
}

func (s *checkoutService) CreateCheckoutSession(ctx context.Context, userID primitive.ObjectID, items []models.CheckoutItem, couponCode string) (*models.CheckoutSessionResponse, error) {
	subtotalCents, err := computeSubtotalCents(items)
	if err != nil {
		return nil, err
	}

	totalCents := subtotalCents
	appliedCoupon := ""
	discountID := ""

	if couponCode != "" {
		coupon, err := s.couponService.ValidateCoupon(ctx, couponCode, userID)
		if err != nil {
			// Checkout must not block on a stale coupon; the session is
			// created at full price instead.
			s.logger.WithError(err).WithUserID(userID).
				WithField("coupon_code", couponCode).
				Warn("Coupon rejected at checkout, proceeding without discount")
		} else {
			totalCents, err = applyDiscountCents(subtotalCents, coupon.DiscountPercentage)
			if err != nil {
				return nil, err
			}

			discountID, err = s.provider.CreateDiscount(ctx, coupon.DiscountPercentage)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
			}
			appliedCoupon = coupon.Code
		}
	}

	request, err := s.buildSessionRequest(userID, items, appliedCoupon, discountID)
	if err != nil {
		return nil, err
	}

	session, err := s.provider.CreateCheckoutSession(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	if totalCents >= s.checkoutCfg.RewardThresholdCents {
		s.dispatch(func() { s.issueRewardCoupon(userID) })
	}

	s.logger.LogCheckoutEvent(userID, "session_created", map[string]interface{}{
		"session_id":  session.SessionID,
		"total_cents": totalCents,
		"coupon_code": appliedCoupon,
		"item_count":  len(items),
	})

	return &models.CheckoutSessionResponse{
		SessionID:   session.SessionID,
		TotalAmount: float64(totalCents) / 100,
	}, nil
}

func (s *checkoutService) ConfirmCheckout(ctx context.Context, sessionID string) (*models.ConfirmCheckoutResponse, error) {
	details, err := s.provider.RetrieveCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}

	if details.PaymentStatus != payment.PaymentStatusPaid {
		return nil, ErrPaymentNotCompleted
	}

	// Processor retries of the success callback land here: return the order
	// that already exists instead of creating a second one.
	if existing, err := s.orderRepo.GetBySessionID(ctx, sessionID); err == nil {
		return &models.ConfirmCheckoutResponse{OrderID: existing.ID.Hex()}, nil
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing order: %w", err)
	}

	userID, err := primitive.ObjectIDFromHex(details.Metadata["user_id"])
	if err != nil {
		return nil, fmt.Errorf("invalid user id in session metadata: %w", err)
	}

	if couponCode := details.Metadata["coupon_code"]; couponCode != "" {
		// The spent coupon goes inactive whether or not it already expired.
		if err := s.couponRepo.Deactivate(ctx, couponCode, userID); err != nil {
			s.logger.WithError(err).WithUserID(userID).Warn("Failed to deactivate spent coupon")
		}
	}

	var snapshot []sessionProduct
	if err := json.Unmarshal([]byte(details.Metadata["products"]), &snapshot); err != nil {
		return nil, fmt.Errorf("invalid product snapshot in session metadata: %w", err)
	}

	products := make([]models.OrderProduct, 0, len(snapshot))
	for _, p := range snapshot {
		productID, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid product id in session metadata: %w", err)
		}
		products = append(products, models.OrderProduct{
			ProductID: productID,
			Quantity:  p.Quantity,
			Price:     p.Price,
		})
	}

	order := &models.Order{
		UserID:   userID,
		Products: products,
		// The processor's settled amount is authoritative; the cart state
		// that produced the session may have changed since.
		TotalAmount:     float64(details.AmountTotal) / 100,
		StripeSessionID: sessionID,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		if errors.Is(err, interfaces.ErrDuplicateSession) {
			existing, err := s.orderRepo.GetBySessionID(ctx, sessionID)
			if err != nil {
				return nil, fmt.Errorf("failed to load existing order: %w", err)
			}
			return &models.ConfirmCheckoutResponse{OrderID: existing.ID.Hex()}, nil
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.LogPaymentEvent(sessionID, "order_created", order.TotalAmount, s.currency)

	return &models.ConfirmCheckoutResponse{OrderID: order.ID.Hex()}, nil
}

func (s *checkoutService) buildSessionRequest(userID primitive.ObjectID, items []models.CheckoutItem, couponCode, discountID string) (*payment.CheckoutSessionRequest, error) {
	lineItems := make([]payment.CheckoutLineItem, 0, len(items))
	snapshot := make([]sessionProduct, 0, len(items))

	for _, item := range items {
		lineItems = append(lineItems, payment.CheckoutLineItem{
			Name:       item.Name,
			Image:      item.Image,
			UnitAmount: toCents(item.Price),
			Quantity:   item.Quantity,
		})
		snapshot = append(snapshot, sessionProduct{
			ID:       item.ProductID.Hex(),
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize product snapshot: %w", err)
	}

	return &payment.CheckoutSessionRequest{
		LineItems:  lineItems,
		Currency:   s.currency,
		SuccessURL: s.frontendURL + "/purchase-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.frontendURL + "/purchase-cancel",
		DiscountID: discountID,
		Metadata: map[string]string{
			"user_id":     userID.Hex(),
			"coupon_code": couponCode,
			"products":    string(snapshotJSON),
		},
	}, nil
}

// issueRewardCoupon runs detached from the request: a failure here is logged
// and never unwinds the checkout session already returned to the client.
func (s *checkoutService) issueRewardCoupon(userID primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coupon := &models.Coupon{
		Code:               utils.GenerateCouponCode(s.checkoutCfg.RewardCodePrefix, utils.CouponCodeSuffixLength),
		DiscountPercentage: s.checkoutCfg.RewardPercentage,
		ExpirationDate:     time.Now().Add(s.checkoutCfg.RewardValidity),
		IsActive:           true,
		UserID:             userID,
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		s.logger.WithError(err).WithUserID(userID).Error("Failed to issue reward coupon")
		return
	}

	s.logger.WithUserID(userID).WithField("coupon_code", coupon.Code).Info("Reward coupon issued")
}

// computeSubtotalCents folds the line items into a subtotal in minor
// currency units. Integer math end to end, so a thousand items cannot
// accumulate floating-point drift.
func computeSubtotalCents(items []models.CheckoutItem) (int64, error) {
	if len(items) == 0 {
		return 0, ErrInvalidInput
	}

	var subtotal int64
	for _, item := range items {
		if item.Quantity < 1 || item.Price < 0 {
			return 0, ErrInvalidInput
		}
		subtotal += toCents(item.Price) * item.Quantity
	}

	return subtotal, nil
}

// applyDiscountCents subtracts the percentage discount using truncating
// integer math in cents. A percentage outside [0,100] is a configuration
// error, not client input.
func applyDiscountCents(subtotalCents int64, percentage float64) (int64, error) {
	if percentage < 0 || percentage > 100 {
		return 0, ErrInvalidCoupon
	}

	discount := int64(float64(subtotalCents) * percentage / 100)
	return subtotalCents - discount, nil
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
