package infrastructure

import (
	"context"

	bookings "mesaYaBooking/internal/modules/bookings/domain"
	"mesaYaBooking/internal/modules/realtime/domain"
)

// HubPublisher adapta el hub de websockets al puerto de publicación de eventos
// del módulo de reservas. Se usa cuando Kafka está deshabilitado y los eventos
// deben llegar directo a los clientes conectados.
type HubPublisher struct {
	hub *Hub
}

func NewHubPublisher(hub *Hub) *HubPublisher {
	return &HubPublisher{hub: hub}
}

func (p *HubPublisher) Publish(ctx context.Context, event bookings.Event) {
	p.hub.Broadcast(ctx, &domain.Message{
		Topic:      event.Topic,
		Entity:     event.Entity,
		Action:     event.Action,
		ResourceID: event.ResourceID,
		Metadata:   event.Metadata,
		Data:       event.Data,
		Timestamp:  event.Timestamp,
	})
}
