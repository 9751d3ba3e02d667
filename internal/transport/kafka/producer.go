package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"delivery-service/internal/model"

	"github.com/segmentio/kafka-go"
)

// Producer публикует события об изменениях сущностей в Kafka
type Producer struct {
	writer *kafka.Writer
	log    *slog.Logger
}

// NewProducer создает новый экземпляр продюсера
func NewProducer(brokers []string, topic string, log *slog.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Producer{
		writer: writer,
		log:    log,
	}
}

// Publish отправляет одно событие
// ключ сообщения — идентификатор сущности, чтобы события одной сущности
// попадали в одну партицию и сохраняли порядок
func (p *Producer) Publish(ctx context.Context, event model.Event) error {
	const op = "transport.kafka.Producer.Publish"

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: failed to marshal event: %w", op, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("%s: failed to write message: %w", op, err)
	}

	p.log.Debug("event published",
		slog.String("entity", event.Entity),
		slog.String("action", event.Action),
		slog.String("id", event.ID),
	)
	return nil
}

// Close останавливает продюсер
func (p *Producer) Close() error {
	p.log.Info("closing kafka producer")
	return p.writer.Close()
}
