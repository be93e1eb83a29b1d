package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is an order's fulfillment stage. Orders are always created as
// pending; later transitions happen out-of-band and are only ever read here.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// StatusDisplay carries the presentational label and badge color for an
// order status.
type StatusDisplay struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var statusDisplayTable = map[OrderStatus]StatusDisplay{
	OrderStatusPending:   {Label: "Pendente", Color: "yellow"},
	OrderStatusConfirmed: {Label: "Confirmado", Color: "blue"},
	OrderStatusShipped:   {Label: "Enviado", Color: "purple"},
	OrderStatusDelivered: {Label: "Entregue", Color: "green"},
	OrderStatusCancelled: {Label: "Cancelado", Color: "red"},
}

// Display returns the label/color pair for the status. Unknown statuses get
// a gray badge with the raw value as its label.
func (s OrderStatus) Display() StatusDisplay {
	if d, ok := statusDisplayTable[s]; ok {
		return d
	}
	return StatusDisplay{Label: string(s), Color: "gray"}
}

// Order is an immutable record of a completed checkout. TotalAmount is the
// sum of item subtotals frozen at creation time and is never recomputed.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"user_id" db:"user_id"`
	CustomerName    string          `json:"customer_name" db:"customer_name"`
	CustomerEmail   *string         `json:"customer_email" db:"customer_email"`
	CustomerPhone   string          `json:"customer_phone" db:"customer_phone"`
	CustomerAddress string          `json:"customer_address" db:"customer_address"`
	Notes           *string         `json:"notes" db:"notes"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status          OrderStatus     `json:"status" db:"status"`
	WhatsAppSentAt  *time.Time      `json:"whatsapp_sent_at" db:"whatsapp_sent_at"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`

	Items []*OrderItem `json:"order_items,omitempty" db:"-"`
}

// OrderItem is a denormalized snapshot of one cart line at the moment of
// checkout. Name and price are copied so historical orders stay accurate if
// the live product later changes.
type OrderItem struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	OrderID      uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID    uuid.UUID       `json:"product_id" db:"product_id"`
	ProductName  string          `json:"product_name" db:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price" db:"product_price"`
	Quantity     int             `json:"quantity" db:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal" db:"subtotal"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}
