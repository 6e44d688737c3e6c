package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer publishes order lifecycle events; the service layer treats
// publish failures as log-only (eventual consistency).
type Producer interface {
	PublishOrderCreated(event OrderCreatedEvent) error
	PublishOrderStatusChanged(event OrderStatusChangedEvent) error
	PublishPaymentUpdated(event PaymentUpdatedEvent) error
	HealthCheck() error
	Close() error
}

type KafkaProducer struct {
	writer  *kafka.Writer
	brokers []string
	logger  *zap.Logger
}

func NewKafkaProducer(brokers string, logger *zap.Logger) (*KafkaProducer, error) {
	list := strings.Split(brokers, ",")
	writer := &kafka.Writer{
		Addr:     kafka.TCP(list...),
		Topic:    "order-events",
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducer{
		writer:  writer,
		brokers: list,
		logger:  logger,
	}, nil
}

func (p *KafkaProducer) publish(key string, event any) error {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.Error(err))
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("key", key),
			zap.Error(err))
		return err
	}
	return nil
}

func (p *KafkaProducer) PublishOrderCreated(event OrderCreatedEvent) error {
	return p.publish(fmt.Sprintf("ORDER#%s", event.OrderID), event)
}

func (p *KafkaProducer) PublishOrderStatusChanged(event OrderStatusChangedEvent) error {
	return p.publish(fmt.Sprintf("ORDER#%s", event.OrderID), event)
}

func (p *KafkaProducer) PublishPaymentUpdated(event PaymentUpdatedEvent) error {
	return p.publish(fmt.Sprintf("ORDER#%s", event.OrderID), event)
}

func (p *KafkaProducer) HealthCheck() error {
	conn, err := kafka.Dial("tcp", p.brokers[0])
	if err != nil {
		return err
	}
	return conn.Close()
}

func (p *KafkaProducer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// NoopProducer stands in when no brokers are configured (demo mode).
type NoopProducer struct{}

func (NoopProducer) PublishOrderCreated(OrderCreatedEvent) error             { return nil }
func (NoopProducer) PublishOrderStatusChanged(OrderStatusChangedEvent) error { return nil }
func (NoopProducer) PublishPaymentUpdated(PaymentUpdatedEvent) error         { return nil }
func (NoopProducer) HealthCheck() error                                      { return nil }
func (NoopProducer) Close() error                                            { return nil }
