package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yubssss/Furniview/internal/domain"
	apperrors "github.com/yubssss/Furniview/pkg/errors"
)

// PlaceOrder converts the current cart into an order: the cart lines are
// snapshotted, the selected address and payment method are stamped onto the
// record, the handling fee is added to the total, and the cart is cleared.
// Both the new order list and the emptied cart are committed atomically
// under the store lock before their snapshots are scheduled for persistence.
func (s *Store) PlaceOrder(ctx context.Context) (domain.Order, error) {
	s.mu.Lock()

	if len(s.cart) == 0 {
		s.mu.Unlock()
		return domain.Order{}, apperrors.InvalidInput("cannot place an order with an empty cart")
	}

	address, ok := s.resolveAddressLocked()
	if !ok {
		s.mu.Unlock()
		return domain.Order{}, apperrors.InvalidInput("no delivery address selected")
	}

	method, card := s.resolvePaymentLocked()
	paymentStatus := domain.PaymentStatusProcessing
	if card != nil {
		paymentStatus = domain.PaymentStatusPaid
	}

	items := make([]domain.OrderLine, 0, len(s.cart))
	for _, line := range s.cart {
		items = append(items, domain.OrderLine{
			Name:   line.Name,
			Qty:    line.Quantity,
			Color:  line.Color,
			Price:  line.Price,
			Status: domain.LineStatusPending,
			Image:  line.Image,
		})
	}

	order := domain.Order{
		ID:            uuid.NewString(),
		PaymentDate:   time.Now().UTC(),
		Status:        domain.OrderStatusOngoing,
		PaymentStatus: paymentStatus,
		Address:       address.Address,
		PaymentMethod: method,
		Items:         items,
		Total:         s.cart.Total() + domain.HandlingFee,
	}

	// Newest first, matching how order history is displayed.
	s.orders = append([]domain.Order{order}, s.orders...)
	s.cart = domain.Cart{}
	s.persist(KeyOrders, s.orders)
	s.persist(KeyCart, s.cart)
	s.mu.Unlock()

	s.publish(ctx, "order.placed", func() error { return s.events.OrderPlaced(ctx, order) })
	s.publish(ctx, "cart.cleared", func() error { return s.events.CartCleared(ctx) })

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.Int("items", len(order.Items)),
		slog.Float64("total", order.Total),
		slog.String("payment_method", order.PaymentMethod),
	)

	return order, nil
}

// Orders returns a copy of the order history, optionally filtered by status.
// An empty filter or "All" returns everything.
func (s *Store) Orders(status string) ([]domain.Order, error) {
	if status != "" && status != "All" && !domain.IsValidOrderStatus(status) {
		return nil, apperrors.InvalidInput("unknown order status: " + status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if status == "" || status == "All" {
		return copyOrders(s.orders), nil
	}

	filtered := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if o.Status == status {
			filtered = append(filtered, copyOrder(o))
		}
	}
	return filtered, nil
}

// Order returns the order with the given ID.
func (s *Store) Order(id string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.ID == id {
			return copyOrder(o), nil
		}
	}
	return domain.Order{}, apperrors.NotFound("order", id)
}

// CancelOrder transitions an on-going order to cancelled, cascading the
// status to its payment and every line. Completed and already-cancelled
// orders are rejected with ErrConflict.
func (s *Store) CancelOrder(ctx context.Context, id string) (domain.Order, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.orders {
		if s.orders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return domain.Order{}, apperrors.NotFound("order", id)
	}
	if !s.orders[idx].CanCancel() {
		status := s.orders[idx].Status
		s.mu.Unlock()
		return domain.Order{}, apperrors.Conflict("order is " + status + " and cannot be cancelled")
	}

	s.orders[idx].Cancel()
	s.persist(KeyOrders, s.orders)
	cancelled := copyOrder(s.orders[idx])
	s.mu.Unlock()

	s.publish(ctx, "order.cancelled", func() error { return s.events.OrderCancelled(ctx, cancelled) })

	s.logger.InfoContext(ctx, "order cancelled",
		slog.String("order_id", id),
	)

	return cancelled, nil
}

// resolveAddressLocked mirrors SelectedAddress for callers already holding
// the store lock.
func (s *Store) resolveAddressLocked() (domain.Address, bool) {
	if s.selectedAddressID != "" {
		for _, a := range s.addresses {
			if a.ID == s.selectedAddressID {
				return a, true
			}
		}
		return domain.Address{}, false
	}
	for _, a := range s.addresses {
		if a.IsDefault {
			return a, true
		}
	}
	return domain.Address{}, false
}

// resolvePaymentLocked mirrors SelectedPayment for callers already holding
// the store lock.
func (s *Store) resolvePaymentLocked() (string, *domain.PaymentCard) {
	if s.selectedCardID == 0 {
		return domain.PaymentMethodCash, nil
	}
	for _, c := range s.cards {
		if c.ID == s.selectedCardID {
			card := c
			return c.Brand, &card
		}
	}
	// DeleteCard re-homes the selection, so a dangling card selection should
	// be unreachable. Fall back to cash if it ever happens.
	return domain.PaymentMethodCash, nil
}

func copyOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.OrderLine(nil), o.Items...)
	return o
}

func copyOrders(orders []domain.Order) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, copyOrder(o))
	}
	return out
}
