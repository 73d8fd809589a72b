// Package notify is the one-way, best-effort broadcast of inventory changes.
// Publishing happens outside the order/refund transaction and its failure is
// logged only; it never affects the request outcome.
package notify

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// StockEvent describes one inventory quantity change.
type StockEvent struct {
	StoreID   uint      `json:"store_id"`
	ProductID uint      `json:"product_id"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	At        time.Time `json:"at"`
}

// Notifier publishes stock events. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Publish(ctx context.Context, events []StockEvent) error
	Close() error
}

// KafkaNotifier publishes stock events to a kafka topic, keyed by product so
// per-product ordering is preserved.
type KafkaNotifier struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewKafkaNotifier creates a notifier writing to the given broker and topic.
func NewKafkaNotifier(broker, topic string, log *zap.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
		log: log,
	}
}

func (n *KafkaNotifier) Publish(ctx context.Context, events []StockEvent) error {
	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		value, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(strconv.FormatUint(uint64(ev.ProductID), 10)),
			Value: value,
		})
	}
	if err := n.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}
	n.log.Debug("published stock events", zap.Int("count", len(msgs)))
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

// NopNotifier drops every event. Used when no broker is configured.
type NopNotifier struct{}

func (NopNotifier) Publish(context.Context, []StockEvent) error { return nil }
func (NopNotifier) Close() error                                { return nil }
