package handler

import (
	"context"
	"strings"

	"mesaYaBooking/internal/modules/realtime/application/port"
	"mesaYaBooking/internal/modules/realtime/application/usecase"
	"mesaYaBooking/internal/modules/realtime/domain"
)

// BookingStreamHandler reenvía eventos de un tópico Kafka de reservas a los clientes WebSocket.
// Permite filtrar acciones permitidas para evitar ruido innecesario.
type BookingStreamHandler struct {
	kafkaTopic     string
	allowedActions map[string]struct{}
	broadcastUC    *usecase.BroadcastUseCase
}

func NewBookingStreamHandler(kafkaTopic string, allowedActions []string, broadcastUC *usecase.BroadcastUseCase) *BookingStreamHandler {
	actionSet := make(map[string]struct{}, len(allowedActions))
	for _, a := range allowedActions {
		if v := strings.TrimSpace(strings.ToLower(a)); v != "" {
			actionSet[v] = struct{}{}
		}
	}
	return &BookingStreamHandler{
		kafkaTopic:     kafkaTopic,
		allowedActions: actionSet,
		broadcastUC:    broadcastUC,
	}
}

func (h *BookingStreamHandler) Topic() string { return h.kafkaTopic }

func (h *BookingStreamHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if len(h.allowedActions) > 0 {
		if _, ok := h.allowedActions[strings.ToLower(msg.Action)]; !ok {
			return nil
		}
	}
	if msg.Topic == "" && msg.Entity != "" && msg.Action != "" {
		msg.Topic = msg.Entity + "." + msg.Action
	}
	h.broadcastUC.Execute(ctx, msg)
	return nil
}

var _ port.TopicHandler = (*BookingStreamHandler)(nil)
