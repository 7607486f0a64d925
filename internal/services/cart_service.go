package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sseleimend/e-commerce/internal/models"
	"github.com/sseleimend/e-commerce/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartService interface {
	AddToCart(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error)
	GetCartProducts(ctx context.Context, userID primitive.ObjectID) ([]*models.CartProduct, error)

	// RemoveFromCart removes one product from the cart; a zero product ID
	// clears the whole cart.
	RemoveFromCart(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error)

	// UpdateQuantity sets the quantity of a cart item. A quantity of zero or
	// less removes the item.
	UpdateQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int64) (*models.Cart, error)
}

type cartService struct {
	cartRepo    interfaces.CartRepository
	productRepo interfaces.ProductRepository
}

func NewCartService(cartRepo interfaces.CartRepository, productRepo interfaces.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) AddToCart(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := s.loadOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: 1})
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *cartService) GetCartProducts(ctx context.Context, userID primitive.ObjectID) ([]*models.CartProduct, error) {
	cart, err := s.loadOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(cart.Items) == 0 {
		return []*models.CartProduct{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	quantities := make(map[primitive.ObjectID]int64, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
		quantities[item.ProductID] = item.Quantity
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart products: %w", err)
	}

	cartProducts := make([]*models.CartProduct, 0, len(products))
	for _, product := range products {
		cartProducts = append(cartProducts, &models.CartProduct{
			Product:  *product,
			Quantity: quantities[product.ID],
		})
	}

	return cartProducts, nil
}

func (s *cartService) RemoveFromCart(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.loadOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if productID.IsZero() {
		cart.Items = nil
	} else {
		items := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ProductID != productID {
				items = append(items, item)
			}
		}
		cart.Items = items
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int64) (*models.Cart, error) {
	cart, err := s.loadOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	index := -1
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, ErrCartItemNotFound
	}

	if quantity <= 0 {
		cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)
	} else {
		cart.Items[index].Quantity = quantity
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *cartService) loadOrCreateCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return &models.Cart{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	return cart, nil
}
