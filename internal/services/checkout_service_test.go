package services

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/sseleimend/e-commerce/internal/models"
	"github.com/sseleimend/e-commerce/internal/repositories/interfaces"
	"github.com/sseleimend/e-commerce/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCheckoutFixture(couponRepo *fakeCouponRepo, orderRepo *fakeOrderRepo, provider *fakeProvider) *checkoutService {
	log := newTestLogger()
	couponSvc := NewCouponService(couponRepo, log)
	svc := NewCheckoutService(couponSvc, couponRepo, orderRepo, provider, newTestConfig(), log).(*checkoutService)
	svc.dispatch = func(fn func()) { fn() }
	return svc
}

func checkoutItems(prices []float64, quantities []int64) []models.CheckoutItem {
	items := make([]models.CheckoutItem, len(prices))
	for i := range prices {
		items[i] = models.CheckoutItem{
			ProductID: primitive.NewObjectID(),
			Name:      "item",
			Price:     prices[i],
			Quantity:  quantities[i],
		}
	}
	return items
}

func TestComputeSubtotalCents(t *testing.T) {
	t.Run("empty items rejected", func(t *testing.T) {
		if _, err := computeSubtotalCents(nil); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		items := checkoutItems([]float64{9.99}, []int64{0})
		if _, err := computeSubtotalCents(items); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative price rejected", func(t *testing.T) {
		items := checkoutItems([]float64{-1}, []int64{1})
		if _, err := computeSubtotalCents(items); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("two items at 12.50 total 2500 cents", func(t *testing.T) {
		items := checkoutItems([]float64{12.50}, []int64{2})
		subtotal, err := computeSubtotalCents(items)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if subtotal != 2500 {
			t.Fatalf("subtotal = %d, want 2500", subtotal)
		}
	})

	t.Run("no drift over a thousand items", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		items := make([]models.CheckoutItem, 1000)
		var want int64
		for i := range items {
			cents := int64(rng.Intn(100000)) // up to 999.99
			qty := int64(rng.Intn(9) + 1)
			items[i] = models.CheckoutItem{
				ProductID: primitive.NewObjectID(),
				Price:     float64(cents) / 100,
				Quantity:  qty,
			}
			want += cents * qty
		}

		got, err := computeSubtotalCents(items)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Fatalf("subtotal = %d, want %d", got, want)
		}
	})
}

func TestApplyDiscountCents(t *testing.T) {
	tests := []struct {
		name       string
		subtotal   int64
		percentage float64
		want       int64
		wantErr    error
	}{
		{name: "no discount", subtotal: 2500, percentage: 0, want: 2500},
		{name: "full discount", subtotal: 2500, percentage: 100, want: 0},
		{name: "ten percent of 25000", subtotal: 25000, percentage: 10, want: 22500},
		{name: "truncates toward the buyer's favor", subtotal: 99, percentage: 33, want: 67},
		{name: "negative percentage rejected", subtotal: 2500, percentage: -1, wantErr: ErrInvalidCoupon},
		{name: "over one hundred rejected", subtotal: 2500, percentage: 101, wantErr: ErrInvalidCoupon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyDiscountCents(tt.subtotal, tt.percentage)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("total = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCreateCheckoutSessionWithoutCoupon(t *testing.T) {
	couponRepo := &fakeCouponRepo{}
	provider := &fakeProvider{sessionID: "cs_test_1"}
	svc := newCheckoutFixture(couponRepo, newFakeOrderRepo(), provider)

	userID := primitive.NewObjectID()
	items := checkoutItems([]float64{12.50}, []int64{2})

	resp, err := svc.CreateCheckoutSession(context.Background(), userID, items, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.SessionID != "cs_test_1" {
		t.Errorf("session id = %q, want cs_test_1", resp.SessionID)
	}
	if resp.TotalAmount != 25.00 {
		t.Errorf("total = %v, want 25.00", resp.TotalAmount)
	}
	if len(provider.discounts) != 0 {
		t.Errorf("expected no discount minted, got %v", provider.discounts)
	}
	// 25.00 is below the reward threshold
	if len(couponRepo.created) != 0 {
		t.Errorf("expected no reward coupon, got %d", len(couponRepo.created))
	}
}

func TestCreateCheckoutSessionWithCouponAndReward(t *testing.T) {
	userID := primitive.NewObjectID()
	couponRepo := &fakeCouponRepo{coupons: []*models.Coupon{{
		ID:                 primitive.NewObjectID(),
		Code:               "SAVE10",
		DiscountPercentage: 10,
		ExpirationDate:     time.Now().Add(24 * time.Hour),
		IsActive:           true,
		UserID:             userID,
	}}}
	provider := &fakeProvider{sessionID: "cs_test_2"}
	svc := newCheckoutFixture(couponRepo, newFakeOrderRepo(), provider)

	items := checkoutItems([]float64{125.00, 125.00}, []int64{1, 1})

	resp, err := svc.CreateCheckoutSession(context.Background(), userID, items, "SAVE10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.TotalAmount != 225.00 {
		t.Errorf("total = %v, want 225.00", resp.TotalAmount)
	}
	if len(provider.discounts) != 1 || provider.discounts[0] != 10 {
		t.Errorf("minted discounts = %v, want [10]", provider.discounts)
	}
	if provider.lastRequest.DiscountID != "disc_test" {
		t.Errorf("discount id = %q, want disc_test", provider.lastRequest.DiscountID)
	}

	// 225.00 clears the 200.00 threshold, so a reward coupon is issued
	if len(couponRepo.created) != 1 {
		t.Fatalf("expected one reward coupon, got %d", len(couponRepo.created))
	}
	reward := couponRepo.created[0]
	if reward.UserID != userID {
		t.Errorf("reward owner = %v, want %v", reward.UserID, userID)
	}
	if reward.DiscountPercentage != 10 {
		t.Errorf("reward percentage = %v, want 10", reward.DiscountPercentage)
	}
	if !reward.IsActive {
		t.Error("reward coupon should be active")
	}
	if len(reward.Code) != len("GIFT")+6 {
		t.Errorf("reward code %q has unexpected length", reward.Code)
	}
}

func TestCreateCheckoutSessionStaleCouponProceedsWithoutDiscount(t *testing.T) {
	couponRepo := &fakeCouponRepo{}
	provider := &fakeProvider{sessionID: "cs_test_3"}
	svc := newCheckoutFixture(couponRepo, newFakeOrderRepo(), provider)

	items := checkoutItems([]float64{12.50}, []int64{2})

	resp, err := svc.CreateCheckoutSession(context.Background(), primitive.NewObjectID(), items, "GONE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.TotalAmount != 25.00 {
		t.Errorf("total = %v, want full price 25.00", resp.TotalAmount)
	}
	if len(provider.discounts) != 0 {
		t.Errorf("expected no discount minted, got %v", provider.discounts)
	}
	if provider.lastRequest.Metadata["coupon_code"] != "" {
		t.Errorf("coupon_code metadata = %q, want empty", provider.lastRequest.Metadata["coupon_code"])
	}
}

func TestCreateCheckoutSessionMetadata(t *testing.T) {
	provider := &fakeProvider{sessionID: "cs_test_4"}
	svc := newCheckoutFixture(&fakeCouponRepo{}, newFakeOrderRepo(), provider)

	userID := primitive.NewObjectID()
	items := []models.CheckoutItem{
		{ProductID: primitive.NewObjectID(), Name: "Mug", Price: 9.99, Quantity: 3},
	}

	if _, err := svc.CreateCheckoutSession(context.Background(), userID, items, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	request := provider.lastRequest
	if request.Metadata["user_id"] != userID.Hex() {
		t.Errorf("user_id metadata = %q, want %q", request.Metadata["user_id"], userID.Hex())
	}

	var snapshot []sessionProduct
	if err := json.Unmarshal([]byte(request.Metadata["products"]), &snapshot); err != nil {
		t.Fatalf("products metadata is not valid JSON: %v", err)
	}
	if len(snapshot) != 1 {
		t.Fatalf("snapshot has %d products, want 1", len(snapshot))
	}
	if snapshot[0].ID != items[0].ProductID.Hex() || snapshot[0].Quantity != 3 || snapshot[0].Price != 9.99 {
		t.Errorf("snapshot = %+v", snapshot[0])
	}

	if len(request.LineItems) != 1 || request.LineItems[0].UnitAmount != 999 {
		t.Errorf("line items = %+v, want one item at 999 cents", request.LineItems)
	}
	if request.SuccessURL != "http://localhost:5173/purchase-success?session_id={CHECKOUT_SESSION_ID}" {
		t.Errorf("success url = %q", request.SuccessURL)
	}
}

func TestCreateCheckoutSessionProviderErrors(t *testing.T) {
	t.Run("session creation failure", func(t *testing.T) {
		provider := &fakeProvider{createErr: errors.New("stripe down")}
		svc := newCheckoutFixture(&fakeCouponRepo{}, newFakeOrderRepo(), provider)

		items := checkoutItems([]float64{10}, []int64{1})
		if _, err := svc.CreateCheckoutSession(context.Background(), primitive.NewObjectID(), items, ""); !errors.Is(err, ErrPaymentProvider) {
			t.Fatalf("expected ErrPaymentProvider, got %v", err)
		}
	})

	t.Run("discount creation failure", func(t *testing.T) {
		userID := primitive.NewObjectID()
		couponRepo := &fakeCouponRepo{coupons: []*models.Coupon{{
			ID:                 primitive.NewObjectID(),
			Code:               "SAVE10",
			DiscountPercentage: 10,
			ExpirationDate:     time.Now().Add(time.Hour),
			IsActive:           true,
			UserID:             userID,
		}}}
		provider := &fakeProvider{discountErr: errors.New("stripe down")}
		svc := newCheckoutFixture(couponRepo, newFakeOrderRepo(), provider)

		items := checkoutItems([]float64{10}, []int64{1})
		if _, err := svc.CreateCheckoutSession(context.Background(), userID, items, "SAVE10"); !errors.Is(err, ErrPaymentProvider) {
			t.Fatalf("expected ErrPaymentProvider, got %v", err)
		}
	})
}

func paidSession(sessionID string, userID primitive.ObjectID, couponCode string, amountTotal int64) *payment.CheckoutSessionDetails {
	products, _ := json.Marshal([]sessionProduct{
		{ID: primitive.NewObjectID().Hex(), Quantity: 2, Price: 12.50},
	})
	return &payment.CheckoutSessionDetails{
		SessionID:     sessionID,
		PaymentStatus: payment.PaymentStatusPaid,
		AmountTotal:   amountTotal,
		Metadata: map[string]string{
			"user_id":     userID.Hex(),
			"coupon_code": couponCode,
			"products":    string(products),
		},
	}
}

func TestConfirmCheckout(t *testing.T) {
	t.Run("unpaid session rejected", func(t *testing.T) {
		userID := primitive.NewObjectID()
		session := paidSession("cs_unpaid", userID, "", 2500)
		session.PaymentStatus = "unpaid"
		provider := &fakeProvider{session: session}
		svc := newCheckoutFixture(&fakeCouponRepo{}, newFakeOrderRepo(), provider)

		if _, err := svc.ConfirmCheckout(context.Background(), "cs_unpaid"); !errors.Is(err, ErrPaymentNotCompleted) {
			t.Fatalf("expected ErrPaymentNotCompleted, got %v", err)
		}
	})

	t.Run("unknown session rejected", func(t *testing.T) {
		provider := &fakeProvider{retrieveErr: errors.New("no such session")}
		svc := newCheckoutFixture(&fakeCouponRepo{}, newFakeOrderRepo(), provider)

		if _, err := svc.ConfirmCheckout(context.Background(), "cs_missing"); !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("paid session creates order and spends coupon", func(t *testing.T) {
		userID := primitive.NewObjectID()
		couponRepo := &fakeCouponRepo{coupons: []*models.Coupon{{
			ID:       primitive.NewObjectID(),
			Code:     "SAVE10",
			IsActive: true,
			UserID:   userID,
		}}}
		orderRepo := newFakeOrderRepo()
		provider := &fakeProvider{session: paidSession("cs_paid", userID, "SAVE10", 2250)}
		svc := newCheckoutFixture(couponRepo, orderRepo, provider)

		resp, err := svc.ConfirmCheckout(context.Background(), "cs_paid")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		order, err := orderRepo.GetBySessionID(context.Background(), "cs_paid")
		if err != nil {
			t.Fatalf("order not created: %v", err)
		}
		if resp.OrderID != order.ID.Hex() {
			t.Errorf("order id = %q, want %q", resp.OrderID, order.ID.Hex())
		}
		if order.TotalAmount != 22.50 {
			t.Errorf("order total = %v, want 22.50", order.TotalAmount)
		}
		if order.UserID != userID {
			t.Errorf("order owner = %v, want %v", order.UserID, userID)
		}
		if len(order.Products) != 1 || order.Products[0].Quantity != 2 {
			t.Errorf("order products = %+v", order.Products)
		}

		if len(couponRepo.deactivated) != 1 || couponRepo.deactivated[0] != "SAVE10" {
			t.Errorf("deactivated coupons = %v, want [SAVE10]", couponRepo.deactivated)
		}
		if couponRepo.coupons[0].IsActive {
			t.Error("spent coupon should be inactive")
		}
	})

	t.Run("second confirmation returns the same order", func(t *testing.T) {
		userID := primitive.NewObjectID()
		couponRepo := &fakeCouponRepo{}
		orderRepo := newFakeOrderRepo()
		provider := &fakeProvider{session: paidSession("cs_retry", userID, "", 2500)}
		svc := newCheckoutFixture(couponRepo, orderRepo, provider)

		first, err := svc.ConfirmCheckout(context.Background(), "cs_retry")
		if err != nil {
			t.Fatalf("first confirm: %v", err)
		}
		second, err := svc.ConfirmCheckout(context.Background(), "cs_retry")
		if err != nil {
			t.Fatalf("second confirm: %v", err)
		}

		if first.OrderID != second.OrderID {
			t.Errorf("order ids differ: %q vs %q", first.OrderID, second.OrderID)
		}
		if len(orderRepo.orders) != 1 {
			t.Errorf("orders created = %d, want 1", len(orderRepo.orders))
		}
	})

	t.Run("insert race falls back to the existing order", func(t *testing.T) {
		userID := primitive.NewObjectID()
		orderRepo := newFakeOrderRepo()
		existing := &models.Order{
			ID:              primitive.NewObjectID(),
			UserID:          userID,
			StripeSessionID: "cs_race",
		}
		provider := &fakeProvider{session: paidSession("cs_race", userID, "", 2500)}
		svc := newCheckoutFixture(&fakeCouponRepo{}, orderRepo, provider)

		// The pre-check misses, then the insert collides with a concurrent
		// confirmation that landed in between.
		orderRepo.createErr = interfaces.ErrDuplicateSession
		svc.orderRepo = &racingOrderRepo{fakeOrderRepo: orderRepo, existing: existing}

		resp, err := svc.ConfirmCheckout(context.Background(), "cs_race")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.OrderID != existing.ID.Hex() {
			t.Errorf("order id = %q, want %q", resp.OrderID, existing.ID.Hex())
		}
	})
}

// racingOrderRepo simulates a concurrent confirmation: the first
// GetBySessionID misses, the insert hits the unique index, and the retry
// fetch finds the winner's order.
type racingOrderRepo struct {
	*fakeOrderRepo
	existing *models.Order
	lookups  int
}

func (r *racingOrderRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, interfaces.ErrNotFound
	}
	return r.existing, nil
}
