package services

import (
	"context"
	"errors"
	"time"

	"github.com/sseleimend/e-commerce/internal/config"
	"github.com/sseleimend/e-commerce/internal/models"
	"github.com/sseleimend/e-commerce/internal/repositories/interfaces"
	"github.com/sseleimend/e-commerce/pkg/logger"
	"github.com/sseleimend/e-commerce/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestLogger() *logger.Logger {
	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Format: "text",
		Output: "stdout",
	})
	if err != nil {
		panic(err)
	}
	return log
}

func newTestConfig() *config.Config {
	return &config.Config{
		App: &config.AppConfig{
			FrontendURL: "http://localhost:5173",
		},
		Payment: &config.PaymentConfig{
			Currency: "usd",
		},
		Checkout: &config.CheckoutConfig{
			RewardThresholdCents: 20000,
			RewardPercentage:     10,
			RewardValidity:       30 * 24 * time.Hour,
			RewardCodePrefix:     "GIFT",
		},
	}
}

type fakeCouponRepo struct {
	coupons     []*models.Coupon
	created     []*models.Coupon
	deactivated []string
	updateCalls int
	createErr   error
}

func (f *fakeCouponRepo) Create(ctx context.Context, coupon *models.Coupon) error {
	if f.createErr != nil {
		return f.createErr
	}
	coupon.ID = primitive.NewObjectID()
	f.created = append(f.created, coupon)
	f.coupons = append(f.coupons, coupon)
	return nil
}

func (f *fakeCouponRepo) GetByCodeAndUser(ctx context.Context, code string, userID primitive.ObjectID) (*models.Coupon, error) {
	for _, c := range f.coupons {
		if c.Code == code && c.UserID == userID {
			return c, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeCouponRepo) GetLatestActiveByUser(ctx context.Context, userID primitive.ObjectID) (*models.Coupon, error) {
	for i := len(f.coupons) - 1; i >= 0; i-- {
		if f.coupons[i].UserID == userID && f.coupons[i].IsActive {
			return f.coupons[i], nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeCouponRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	f.updateCalls++
	for _, c := range f.coupons {
		if c.ID == id {
			if active, ok := updates["is_active"].(bool); ok {
				c.IsActive = active
			}
			return nil
		}
	}
	return interfaces.ErrNotFound
}

func (f *fakeCouponRepo) Deactivate(ctx context.Context, code string, userID primitive.ObjectID) error {
	f.deactivated = append(f.deactivated, code)
	for _, c := range f.coupons {
		if c.Code == code && c.UserID == userID {
			c.IsActive = false
		}
	}
	return nil
}

type fakeOrderRepo struct {
	orders    map[string]*models.Order
	createErr error
	summary   *models.SalesSummary
	daily     []*models.DailySales
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.Order)}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.orders[order.StripeSessionID]; exists {
		return interfaces.ErrDuplicateSession
	}
	order.ID = primitive.NewObjectID()
	f.orders[order.StripeSessionID] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeOrderRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	if o, ok := f.orders[sessionID]; ok {
		return o, nil
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeOrderRepo) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Order, error) {
	var result []*models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) GetSalesSummary(ctx context.Context) (*models.SalesSummary, error) {
	if f.summary == nil {
		return &models.SalesSummary{}, nil
	}
	return f.summary, nil
}

func (f *fakeOrderRepo) GetDailySales(ctx context.Context, startDate, endDate time.Time) ([]*models.DailySales, error) {
	return f.daily, nil
}

type fakeProductRepo struct {
	products      map[primitive.ObjectID]*models.Product
	featuredCalls int
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[primitive.ObjectID]*models.Product)}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) Create(ctx context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeProductRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Product, error) {
	var result []*models.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeProductRepo) GetAll(ctx context.Context) ([]*models.Product, error) {
	var result []*models.Product
	for _, p := range f.products {
		result = append(result, p)
	}
	return result, nil
}

func (f *fakeProductRepo) GetByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	var result []*models.Product
	for _, p := range f.products {
		if p.Category == category {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeProductRepo) GetFeatured(ctx context.Context) ([]*models.Product, error) {
	f.featuredCalls++
	var result []*models.Product
	for _, p := range f.products {
		if p.IsFeatured {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeProductRepo) GetRecommendations(ctx context.Context, limit int) ([]*models.Product, error) {
	var result []*models.Product
	for _, p := range f.products {
		if len(result) == limit {
			break
		}
		result = append(result, p)
	}
	return result, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	p, ok := f.products[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if featured, ok := updates["is_featured"].(bool); ok {
		p.IsFeatured = featured
	}
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.products[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.products)), nil
}

type fakeCartRepo struct {
	cart      *models.Cart
	saveCalls int
}

func (f *fakeCartRepo) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	if f.cart == nil || f.cart.UserID != userID {
		return nil, interfaces.ErrNotFound
	}
	return f.cart, nil
}

func (f *fakeCartRepo) Save(ctx context.Context, cart *models.Cart) error {
	f.saveCalls++
	f.cart = cart
	return nil
}

type fakeProvider struct {
	sessionID   string
	createErr   error
	discountErr error
	retrieveErr error
	session     *payment.CheckoutSessionDetails

	lastRequest *payment.CheckoutSessionRequest
	discounts   []float64
}

func (f *fakeProvider) CreateCheckoutSession(ctx context.Context, request *payment.CheckoutSessionRequest) (*payment.CheckoutSessionResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastRequest = request
	return &payment.CheckoutSessionResponse{SessionID: f.sessionID}, nil
}

func (f *fakeProvider) RetrieveCheckoutSession(ctx context.Context, sessionID string) (*payment.CheckoutSessionDetails, error) {
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	return f.session, nil
}

func (f *fakeProvider) CreateDiscount(ctx context.Context, percentage float64) (string, error) {
	if f.discountErr != nil {
		return "", f.discountErr
	}
	f.discounts = append(f.discounts, percentage)
	return "disc_test", nil
}

var errCacheMiss = errors.New("cache miss")

type fakeCache struct {
	entries  map[string]interface{}
	getCalls int
	setCalls int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]interface{})}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	f.getCalls++
	value, ok := f.entries[key]
	if !ok {
		return errCacheMiss
	}
	if products, ok := value.([]*models.Product); ok {
		if target, ok := dest.(*[]*models.Product); ok {
			*target = products
			return nil
		}
	}
	return errCacheMiss
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.setCalls++
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.entries, key)
	}
	return nil
}
