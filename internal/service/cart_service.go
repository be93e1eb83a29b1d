package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Ronalt4cs/stg-catalog-challenge/internal/domain"
	"github.com/Ronalt4cs/stg-catalog-challenge/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is a read snapshot of a user's cart: the lines joined with product
// data plus the computed total.
type Cart struct {
	Items []*domain.CartItem `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// CartService defines the interface for cart business logic. The store is
// the sole source of truth: every mutation is followed by a full re-fetch
// rather than an optimistic local patch, so each method returns the
// refreshed cart.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*Cart, error)
	AddToCart(ctx context.Context, userID, productID uuid.UUID) (*Cart, error)
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*Cart, error)
	RemoveFromCart(ctx context.Context, userID, itemID uuid.UUID) (*Cart, error)
	ClearCart(ctx context.Context, userID uuid.UUID) (*Cart, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart fetches all cart lines for the user and computes the total.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	return &Cart{
		Items: items,
		Total: domain.CartTotal(items),
	}, nil
}

// AddToCart merges by product: an existing line for this user+product gets
// its quantity incremented by one, otherwise a new line starts at quantity 1.
func (s *cartService) AddToCart(ctx context.Context, userID, productID uuid.UUID) (*Cart, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil && err != repository.ErrCartItemNotFound {
		return nil, fmt.Errorf("failed to check existing cart item: %w", err)
	}

	if existing != nil {
		return s.UpdateQuantity(ctx, userID, existing.ID, existing.Quantity+1)
	}

	now := time.Now()
	item := &domain.CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.cartRepo.Insert(ctx, item); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// UpdateQuantity sets the stored quantity for a line. A quantity of zero or
// less delegates to removal so a non-positive quantity is never stored.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, userID, itemID)
	}

	if err := s.cartRepo.UpdateQuantity(ctx, userID, itemID, quantity); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// RemoveFromCart deletes a single line.
func (s *cartService) RemoveFromCart(ctx context.Context, userID, itemID uuid.UUID) (*Cart, error) {
	if err := s.cartRepo.Delete(ctx, userID, itemID); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, userID)
}

// ClearCart deletes all of the user's lines in one operation. The resulting
// cart is empty by construction, so no reload is needed.
func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	if err := s.cartRepo.DeleteByUser(ctx, userID); err != nil {
		return nil, err
	}

	return &Cart{
		Items: []*domain.CartItem{},
		Total: decimal.Zero,
	}, nil
}
