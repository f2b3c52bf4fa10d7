// Package event publishes storefront domain events to Kafka. Publishing is
// best-effort: the session store commits mutations regardless of broker
// availability, so consumers see events as an at-most-once feed.
package event

import (
	"context"
	"log/slog"

	"github.com/yubssss/Furniview/internal/domain"
	pkgkafka "github.com/yubssss/Furniview/pkg/kafka"
	"github.com/yubssss/Furniview/pkg/logger"
)

// Kafka topics for storefront events.
const (
	TopicCartUpdated    = "furniview.cart.updated"
	TopicCartCleared    = "furniview.cart.cleared"
	TopicOrderPlaced    = "furniview.order.placed"
	TopicOrderCancelled = "furniview.order.cancelled"
)

const source = "storefront"

// cartAggregateID is the aggregate key for cart events. The store holds a
// single session cart, so the stream partitions on one stable key.
const cartAggregateID = "cart"

// CartUpdatedData is the payload for cart.updated events.
type CartUpdatedData struct {
	Items     []domain.CartLine `json:"items"`
	ItemCount int               `json:"item_count"`
	Total     float64           `json:"total"`
}

// OrderData is the payload for order.placed and order.cancelled events.
type OrderData struct {
	Order domain.Order `json:"order"`
}

// Producer publishes storefront events over the shared Kafka producer. It
// satisfies the store's EventPublisher interface.
type Producer struct {
	producer *pkgkafka.Producer
	logger   *slog.Logger
}

// NewProducer creates the storefront event producer.
func NewProducer(producer *pkgkafka.Producer, log *slog.Logger) *Producer {
	return &Producer{
		producer: producer,
		logger:   log,
	}
}

// CartUpdated publishes the full cart snapshot after any cart mutation.
func (p *Producer) CartUpdated(ctx context.Context, cart domain.Cart) error {
	data := CartUpdatedData{
		Items:     cart,
		ItemCount: cart.ItemCount(),
		Total:     cart.Total(),
	}
	return p.publish(ctx, TopicCartUpdated, "cart.updated", cartAggregateID, "cart", data)
}

// CartCleared publishes an empty-cart marker, emitted on explicit clears and
// after checkout.
func (p *Producer) CartCleared(ctx context.Context) error {
	return p.publish(ctx, TopicCartCleared, "cart.cleared", cartAggregateID, "cart", CartUpdatedData{Items: domain.Cart{}})
}

// OrderPlaced publishes the order created at checkout.
func (p *Producer) OrderPlaced(ctx context.Context, order domain.Order) error {
	return p.publish(ctx, TopicOrderPlaced, "order.placed", order.ID, "order", OrderData{Order: order})
}

// OrderCancelled publishes the order after its cancellation cascade.
func (p *Producer) OrderCancelled(ctx context.Context, order domain.Order) error {
	return p.publish(ctx, TopicOrderCancelled, "order.cancelled", order.ID, "order", OrderData{Order: order})
}

func (p *Producer) publish(ctx context.Context, topic, eventType, aggregateID, aggregateType string, data any) error {
	evt, err := pkgkafka.NewEvent(eventType, aggregateID, aggregateType, source, data)
	if err != nil {
		return err
	}
	if correlationID := logger.CorrelationIDFromContext(ctx); correlationID != "" {
		evt.WithCorrelationID(correlationID)
	}
	return p.producer.Publish(ctx, topic, evt)
}
