package notifier

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Ronalt4cs/stg-catalog-challenge/internal/config"
	"github.com/Ronalt4cs/stg-catalog-challenge/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// WhatsAppNotifier formats order summaries and hands them to the WhatsApp
// deep-link convention. The channel is an opaque sink: delivery is never
// confirmed, verified, or retried.
type WhatsAppNotifier struct {
	phone      string
	webhookURL string
	client     *resty.Client
	logger     *zap.Logger
}

// NewWhatsAppNotifier creates a notifier from the hand-off configuration.
func NewWhatsAppNotifier(cfg config.WhatsAppConfig, logger *zap.Logger) *WhatsAppNotifier {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &WhatsAppNotifier{
		phone:      cfg.Phone,
		webhookURL: cfg.WebhookURL,
		client:     client,
		logger:     logger,
	}
}

// BuildMessage renders the plain-text order summary sent to the customer
// channel.
func (n *WhatsAppNotifier) BuildMessage(order *domain.Order, items []*domain.OrderItem) string {
	var b strings.Builder

	b.WriteString("NOVO PEDIDO - STG CATALOG\n\n")
	fmt.Fprintf(&b, "Cliente: %s\n", order.CustomerName)
	if order.CustomerEmail != nil {
		fmt.Fprintf(&b, "Email: %s\n", *order.CustomerEmail)
	}
	b.WriteString("PRODUTOS:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s - Qtd: %d - R$ %s\n",
			item.ProductName, item.Quantity, item.ProductPrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "TOTAL: R$ %s\n", order.TotalAmount.StringFixed(2))
	b.WriteString("---\n")
	b.WriteString("Pedido realizado via STG Catalog\n")

	return b.String()
}

// DeepLink URL-encodes the message into a wa.me link. The configured phone
// number is embedded when present.
func (n *WhatsAppNotifier) DeepLink(message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", n.phone, url.QueryEscape(message))
}

// SendWebhook posts the summary to the configured webhook. Fire-and-forget:
// failures are logged and swallowed, and a missing webhook URL is a no-op.
func (n *WhatsAppNotifier) SendWebhook(ctx context.Context, orderID string, message string) {
	if n.webhookURL == "" {
		return
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"order_id": orderID,
			"text":     message,
		}).
		Post(n.webhookURL)

	if err != nil {
		n.logger.Warn("Order webhook delivery failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return
	}

	if resp.IsError() {
		n.logger.Warn("Order webhook returned error status",
			zap.String("order_id", orderID),
			zap.Int("status", resp.StatusCode()),
		)
		return
	}

	n.logger.Info("Order webhook delivered",
		zap.String("order_id", orderID),
		zap.Int("status", resp.StatusCode()),
	)
}
