package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sseleimend/e-commerce/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddToCart(t *testing.T) {
	t.Run("unknown product", func(t *testing.T) {
		svc := NewCartService(&fakeCartRepo{}, newFakeProductRepo())

		if _, err := svc.AddToCart(context.Background(), primitive.NewObjectID(), primitive.NewObjectID()); !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("first add creates the cart", func(t *testing.T) {
		product := &models.Product{Name: "Mug"}
		cartRepo := &fakeCartRepo{}
		svc := NewCartService(cartRepo, newFakeProductRepo(product))
		userID := primitive.NewObjectID()

		cart, err := svc.AddToCart(context.Background(), userID, product.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
			t.Fatalf("cart items = %+v, want one item at quantity 1", cart.Items)
		}
		if cartRepo.saveCalls != 1 {
			t.Errorf("saves = %d, want 1", cartRepo.saveCalls)
		}
	})

	t.Run("repeat add increments quantity", func(t *testing.T) {
		product := &models.Product{Name: "Mug"}
		cartRepo := &fakeCartRepo{}
		svc := NewCartService(cartRepo, newFakeProductRepo(product))
		userID := primitive.NewObjectID()

		if _, err := svc.AddToCart(context.Background(), userID, product.ID); err != nil {
			t.Fatalf("first add: %v", err)
		}
		cart, err := svc.AddToCart(context.Background(), userID, product.ID)
		if err != nil {
			t.Fatalf("second add: %v", err)
		}
		if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
			t.Fatalf("cart items = %+v, want one item at quantity 2", cart.Items)
		}
	})
}

func TestGetCartProducts(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		svc := NewCartService(&fakeCartRepo{}, newFakeProductRepo())

		products, err := svc.GetCartProducts(context.Background(), primitive.NewObjectID())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(products) != 0 {
			t.Fatalf("products = %+v, want empty", products)
		}
	})

	t.Run("joins catalog data with quantities", func(t *testing.T) {
		product := &models.Product{Name: "Mug", Price: 9.99}
		productRepo := newFakeProductRepo(product)
		userID := primitive.NewObjectID()
		cartRepo := &fakeCartRepo{cart: &models.Cart{
			UserID: userID,
			Items:  []models.CartItem{{ProductID: product.ID, Quantity: 3}},
		}}
		svc := NewCartService(cartRepo, productRepo)

		products, err := svc.GetCartProducts(context.Background(), userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(products) != 1 {
			t.Fatalf("products = %+v, want one entry", products)
		}
		if products[0].Name != "Mug" || products[0].Quantity != 3 {
			t.Errorf("joined product = %+v", products[0])
		}
	})
}

func TestRemoveFromCart(t *testing.T) {
	productA := &models.Product{Name: "Mug"}
	productB := &models.Product{Name: "Shirt"}
	productRepo := newFakeProductRepo(productA, productB)
	userID := primitive.NewObjectID()

	seed := func() *fakeCartRepo {
		return &fakeCartRepo{cart: &models.Cart{
			UserID: userID,
			Items: []models.CartItem{
				{ProductID: productA.ID, Quantity: 1},
				{ProductID: productB.ID, Quantity: 2},
			},
		}}
	}

	t.Run("removes a single product", func(t *testing.T) {
		svc := NewCartService(seed(), productRepo)

		cart, err := svc.RemoveFromCart(context.Background(), userID, productA.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cart.Items) != 1 || cart.Items[0].ProductID != productB.ID {
			t.Fatalf("cart items = %+v, want only the second product", cart.Items)
		}
	})

	t.Run("zero product ID clears the cart", func(t *testing.T) {
		svc := NewCartService(seed(), productRepo)

		cart, err := svc.RemoveFromCart(context.Background(), userID, primitive.NilObjectID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cart.Items) != 0 {
			t.Fatalf("cart items = %+v, want empty", cart.Items)
		}
	})
}

func TestUpdateQuantity(t *testing.T) {
	product := &models.Product{Name: "Mug"}
	productRepo := newFakeProductRepo(product)
	userID := primitive.NewObjectID()

	seed := func() *fakeCartRepo {
		return &fakeCartRepo{cart: &models.Cart{
			UserID: userID,
			Items:  []models.CartItem{{ProductID: product.ID, Quantity: 1}},
		}}
	}

	t.Run("sets the quantity", func(t *testing.T) {
		svc := NewCartService(seed(), productRepo)

		cart, err := svc.UpdateQuantity(context.Background(), userID, product.ID, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cart.Items[0].Quantity != 5 {
			t.Errorf("quantity = %d, want 5", cart.Items[0].Quantity)
		}
	})

	t.Run("zero removes the item", func(t *testing.T) {
		svc := NewCartService(seed(), productRepo)

		cart, err := svc.UpdateQuantity(context.Background(), userID, product.ID, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cart.Items) != 0 {
			t.Fatalf("cart items = %+v, want empty", cart.Items)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		svc := NewCartService(seed(), productRepo)

		if _, err := svc.UpdateQuantity(context.Background(), userID, primitive.NewObjectID(), 2); !errors.Is(err, ErrCartItemNotFound) {
			t.Fatalf("expected ErrCartItemNotFound, got %v", err)
		}
	})
}
