// Package rabbitmq publishes order events to a RabbitMQ topic exchange with
// publisher confirms.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"campusdelivery/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

const (
	// DefaultExchange is the topic exchange order events go to.
	DefaultExchange = "orders_topic"

	orderPlacedKeyPrefix = "order.placed."
)

// ErrPublishNacked is returned when the broker refuses a message.
var ErrPublishNacked = errors.New("publish NACK from broker")

// OrderPlacedEvent is the body of an order placed message.
type OrderPlacedEvent struct {
	OrderID           int64             `json:"order_id"`
	UserID            string            `json:"user_id"`
	VendorID          int64             `json:"vendor_id"`
	DropoffLocationID int64             `json:"dropoff_loc_id"`
	Status            string            `json:"status"`
	Items             []OrderPlacedItem `json:"items"`
	Guest             bool              `json:"guest"`
	Total             decimal.Decimal   `json:"total"`
	CreatedAt         time.Time         `json:"created_at"`
}

// OrderPlacedItem is one line item of an OrderPlacedEvent.
type OrderPlacedItem struct {
	ItemID   int64           `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// confirmation is the broker's pending answer to one published message.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

type publishChannel interface {
	publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error)
}

// confirmChannel publishes on a channel in confirm mode. Every message gets its own
// deferred confirmation keyed by its delivery tag.
type confirmChannel struct {
	ch *amqp.Channel
}

func (c confirmChannel) publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error) {
	deferred, err := c.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, key, false, false, msg)
	if err != nil {
		return nil, err
	}
	if deferred == nil {
		return nil, errors.New("rabbitmq channel is not in confirm mode")
	}
	return deferred, nil
}

// Publisher implements ports.OrderEventPublisher.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	channel  publishChannel
	exchange string
}

// Dial connects to the broker at url, declares the durable topic exchange and
// switches the channel into confirm mode.
func Dial(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err = ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	p := newPublisher(confirmChannel{ch: ch}, exchange)
	p.conn = conn
	p.ch = ch
	return p, nil
}

func newPublisher(channel publishChannel, exchange string) *Publisher {
	return &Publisher{channel: channel, exchange: exchange}
}

// Close closes the channel and the connection.
func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// PublishOrderPlaced sends a persistent order placed message routed by vendor
// ("order.placed.<vendorId>") and waits for the broker to confirm it.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, placed *order.Order) error {
	if !placed.HasID() {
		return errors.New("order placed event needs a stored order")
	}

	body, err := json.Marshal(newOrderPlacedEvent(placed))
	if err != nil {
		return err
	}

	key := orderPlacedKeyPrefix + strconv.FormatInt(placed.VendorID(), 10)
	confirm, err := p.channel.publish(ctx, p.exchange, key, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    strconv.FormatInt(placed.ID(), 10),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish order %d: %w", placed.ID(), err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return ErrPublishNacked
	}
	return nil
}

func newOrderPlacedEvent(placed *order.Order) OrderPlacedEvent {
	items := make([]OrderPlacedItem, 0, len(placed.Items()))
	for _, item := range placed.Items() {
		items = append(items, OrderPlacedItem{
			ItemID:   item.ItemID(),
			ItemName: item.Name(),
			Quantity: item.Quantity(),
			Price:    item.Price(),
		})
	}

	return OrderPlacedEvent{
		OrderID:           placed.ID(),
		UserID:            placed.UserID(),
		VendorID:          placed.VendorID(),
		DropoffLocationID: placed.DropoffLocationID(),
		Status:            placed.Status().String(),
		Items:             items,
		Guest:             placed.IsGuest(),
		Total:             placed.Total(),
		CreatedAt:         placed.CreatedAt(),
	}
}
