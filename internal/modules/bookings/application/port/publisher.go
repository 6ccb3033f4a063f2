package port

import (
	"context"

	bookings "mesaYaBooking/internal/modules/bookings/domain"
)

// EventPublisher delivers booking lifecycle events to whoever listens: the
// Kafka broker, the websocket hub, or both.
type EventPublisher interface {
	Publish(ctx context.Context, event bookings.Event)
}

// EventPublishers fans a single publish out to several sinks.
type EventPublishers []EventPublisher

func (p EventPublishers) Publish(ctx context.Context, event bookings.Event) {
	for _, publisher := range p {
		publisher.Publish(ctx, event)
	}
}
