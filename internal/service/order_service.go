package service

import (
	"context"
	"fmt"

	"github.com/Ronalt4cs/stg-catalog-challenge/internal/domain"
	"github.com/Ronalt4cs/stg-catalog-challenge/internal/repository"

	"github.com/google/uuid"
)

// OrderService defines the read-only interface over a user's order history.
type OrderService interface {
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
