package transport

import (
	"net/http"

	"github.com/Ronalt4cs/stg-catalog-challenge/internal/domain"
	"github.com/Ronalt4cs/stg-catalog-challenge/internal/middleware"
	"github.com/Ronalt4cs/stg-catalog-challenge/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderView decorates an order with the presentational status display.
type OrderView struct {
	*domain.Order
	StatusDisplay domain.StatusDisplay `json:"status_display"`
}

// OrderHandler handles HTTP requests for order history. Read-only: orders
// are created through checkout and their status changes out-of-band.
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers the order history route behind authentication.
func (h *OrderHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/api/orders", h.ListOrders)
	})
}

// ListOrders returns the user's orders newest-first with their item
// snapshots.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	orders, err := h.orderService.ListOrders(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, OrderView{
			Order:         order,
			StatusDisplay: order.Status.Display(),
		})
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"orders": views,
	})
}
