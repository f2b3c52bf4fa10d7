package domain

import "time"

// Order status constants.
const (
	OrderStatusOngoing   = "On-going"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

// Payment status constants for an order.
const (
	PaymentStatusProcessing = "Processing"
	PaymentStatusPaid       = "Paid"
	PaymentStatusCancelled  = "Cancelled"
)

// Order line status constants.
const (
	LineStatusPending   = "Pending"
	LineStatusDelivered = "Delivered"
	LineStatusCancelled = "Cancelled"
)

// HandlingFee is the flat checkout handling fee added to the cart total.
const HandlingFee = 999

// Order is a placed order: the cart contents at checkout time merged with the
// delivery address and payment method.
type Order struct {
	ID            string      `json:"id"`
	PaymentDate   time.Time   `json:"paymentDate"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"paymentStatus"`
	Address       string      `json:"address"`
	PaymentMethod string      `json:"paymentMethod"`
	Items         []OrderLine `json:"items"`
	Total         float64     `json:"total"`
}

// OrderLine is one product entry within a placed order.
type OrderLine struct {
	Name         string     `json:"name"`
	Qty          int        `json:"qty"`
	Color        string     `json:"color,omitempty"`
	Price        float64    `json:"price"`
	DeliveryDate *time.Time `json:"deliveryDate,omitempty"`
	Status       string     `json:"status"`
	Image        string     `json:"image,omitempty"`
}

// ValidOrderStatuses returns all valid order statuses.
func ValidOrderStatuses() []string {
	return []string{OrderStatusOngoing, OrderStatusCompleted, OrderStatusCancelled}
}

// IsValidOrderStatus checks whether the given status is a valid order status.
func IsValidOrderStatus(status string) bool {
	for _, s := range ValidOrderStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// CanCancel reports whether the order may transition to Cancelled. Only
// on-going orders can be cancelled.
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusOngoing
}

// Cancel marks the order and every line as cancelled.
func (o *Order) Cancel() {
	o.Status = OrderStatusCancelled
	o.PaymentStatus = PaymentStatusCancelled
	for i := range o.Items {
		o.Items[i].Status = LineStatusCancelled
	}
}
