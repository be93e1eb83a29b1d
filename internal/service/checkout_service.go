package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ronalt4cs/stg-catalog-challenge/internal/domain"
	"github.com/Ronalt4cs/stg-catalog-challenge/internal/notifier"
	"github.com/Ronalt4cs/stg-catalog-challenge/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
)

// CustomerInfo is the checkout form data attached to the order.
type CustomerInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Notes   string
}

// CheckoutResult is the outcome of a successful checkout: the persisted
// order with its item snapshots and the WhatsApp deep link carrying the
// formatted summary.
type CheckoutResult struct {
	Order       *domain.Order `json:"order"`
	WhatsAppURL string        `json:"whatsapp_url"`
}

// CheckoutService converts a cart snapshot into a persisted order plus an
// external message.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, info CustomerInfo) (*CheckoutResult, error)
}

type checkoutService struct {
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	notifier  *notifier.WhatsAppNotifier
	logger    *zap.Logger
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	whatsapp *notifier.WhatsAppNotifier,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutService{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		notifier:  whatsapp,
		logger:    logger,
	}
}

// PlaceOrder snapshots the current cart into an order. The order row, its
// item snapshots, and the cart clear are one transaction: a persistence
// failure leaves no partial order behind and keeps the cart intact for a
// manual retry. The WhatsApp hand-off is best-effort and never verified.
func (s *checkoutService) PlaceOrder(ctx context.Context, userID uuid.UUID, info CustomerInfo) (*CheckoutResult, error) {
	cartItems, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	now := time.Now()

	var email *string
	if info.Email != "" {
		email = &info.Email
	}
	var notes *string
	if info.Notes != "" {
		notes = &info.Notes
	}

	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          userID,
		CustomerName:    info.Name,
		CustomerEmail:   email,
		CustomerPhone:   info.Phone,
		CustomerAddress: info.Address,
		Notes:           notes,
		TotalAmount:     domain.CartTotal(cartItems),
		Status:          domain.OrderStatusPending,
		WhatsAppSentAt:  &now,
		CreatedAt:       now,
	}

	items := make([]*domain.OrderItem, 0, len(cartItems))
	for _, cartItem := range cartItems {
		items = append(items, &domain.OrderItem{
			ID:           uuid.New(),
			OrderID:      order.ID,
			ProductID:    cartItem.ProductID,
			ProductName:  cartItem.Product.Name,
			ProductPrice: cartItem.Product.Price,
			Quantity:     cartItem.Quantity,
			Subtotal:     cartItem.Subtotal(),
			CreatedAt:    now,
		})
	}

	if err := s.orderRepo.CreateFromCart(ctx, order, items); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	order.Items = items

	message := s.notifier.BuildMessage(order, items)
	deepLink := s.notifier.DeepLink(message)

	// Fire-and-forget: the request context may be gone by the time the
	// webhook call finishes.
	go s.notifier.SendWebhook(context.Background(), order.ID.String(), message)

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("total", order.TotalAmount.StringFixed(2)),
		zap.Int("items", len(items)),
	)

	return &CheckoutResult{
		Order:       order,
		WhatsAppURL: deepLink,
	}, nil
}
