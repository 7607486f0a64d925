package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sseleimend/e-commerce/internal/models"
	"github.com/sseleimend/e-commerce/internal/repositories/interfaces"
	"github.com/sseleimend/e-commerce/internal/utils"
	"github.com/sseleimend/e-commerce/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const recommendationCount = 3

type ProductService interface {
	GetAllProducts(ctx context.Context) ([]*models.Product, error)
	GetFeaturedProducts(ctx context.Context) ([]*models.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]*models.Product, error)
	GetRecommendations(ctx context.Context) ([]*models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Product, error)
	CreateProduct(ctx context.Context, request *models.CreateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	ToggleFeatured(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

type productService struct {
	productRepo interfaces.ProductRepository
	cache       Cache
	logger      *logger.Logger
	dispatch    func(fn func())
}

func NewProductService(productRepo interfaces.ProductRepository, cache Cache, log *logger.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		cache:       cache,
		logger:      log,
		dispatch:    func(fn func()) { go fn() },
	}
}

func (s *productService) GetAllProducts(ctx context.Context) ([]*models.Product, error) {
	return s.productRepo.GetAll(ctx)
}

func (s *productService) GetFeaturedProducts(ctx context.Context) ([]*models.Product, error) {
	var cached []*models.Product
	if err := s.cache.Get(ctx, utils.FeaturedProductsCacheKey, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	products, err := s.productRepo.GetFeatured(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get featured products: %w", err)
	}
	if len(products) == 0 {
		return nil, ErrProductNotFound
	}

	if err := s.cache.Set(ctx, utils.FeaturedProductsCacheKey, products, utils.FeaturedProductsCacheTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to cache featured products")
	}

	return products, nil
}

func (s *productService) GetProductsByCategory(ctx context.Context, category string) ([]*models.Product, error) {
	return s.productRepo.GetByCategory(ctx, category)
}

func (s *productService) GetRecommendations(ctx context.Context) ([]*models.Product, error) {
	return s.productRepo.GetRecommendations(ctx, recommendationCount)
}

func (s *productService) GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Product, error) {
	return s.productRepo.GetByIDs(ctx, ids)
}

func (s *productService) CreateProduct(ctx context.Context, request *models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:        request.Name,
		Description: request.Description,
		Price:       request.Price,
		Image:       request.Image,
		Category:    request.Category,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	if product.IsFeatured {
		s.dispatch(func() { s.refreshFeaturedCache() })
	}

	return nil
}

func (s *productService) ToggleFeatured(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	product.IsFeatured = !product.IsFeatured
	if err := s.productRepo.Update(ctx, id, map[string]interface{}{"is_featured": product.IsFeatured}); err != nil {
		return nil, err
	}

	s.dispatch(func() { s.refreshFeaturedCache() })

	return product, nil
}

// refreshFeaturedCache rebuilds the featured-products cache after a catalog
// mutation. Detached from the request; failures leave the cache to expire
// on its own TTL.
func (s *productService) refreshFeaturedCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products, err := s.productRepo.GetFeatured(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to refresh featured products cache")
		return
	}

	if err := s.cache.Set(ctx, utils.FeaturedProductsCacheKey, products, utils.FeaturedProductsCacheTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to refresh featured products cache")
	}
}
