package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	bookings "mesaYaBooking/internal/modules/bookings/domain"
)

// KafkaPublisher escribe eventos de reservas en el tópico que corresponde a la
// acción (bookings.created, bookings.cancelled, ...). Otras instancias del
// gateway los consumen y los retransmiten a sus clientes WebSocket.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event bookings.Event) {
	value, err := json.Marshal(event)
	if err != nil {
		slog.Error("kafka publish marshal error", slog.String("topic", event.Topic), slog.Any("error", err))
		return
	}
	msg := kafka.Message{
		Topic: event.Topic,
		Key:   []byte(event.ResourceID),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		slog.Error("kafka publish failed", slog.String("topic", event.Topic), slog.String("resourceId", event.ResourceID), slog.Any("error", err))
		return
	}
	slog.Debug("kafka event published", slog.String("topic", event.Topic), slog.String("resourceId", event.ResourceID), slog.String("action", event.Action))
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
