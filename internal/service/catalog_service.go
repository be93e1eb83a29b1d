package service

import (
	"context"
	"fmt"

	"github.com/Ronalt4cs/stg-catalog-challenge/internal/domain"
	"github.com/Ronalt4cs/stg-catalog-challenge/internal/repository"

	"github.com/google/uuid"
)

// CatalogService defines the interface for browsing the product catalog.
type CatalogService interface {
	ListProducts(ctx context.Context, category, search string) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

func (s *catalogService) ListProducts(ctx context.Context, category, search string) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx, repository.ProductFilter{
		Category: category,
		Search:   search,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *catalogService) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := s.productRepo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
