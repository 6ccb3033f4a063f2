package transport

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	domain "mesaYaBooking/internal/modules/realtime/domain"
	"mesaYaBooking/internal/modules/realtime/infrastructure"
	"mesaYaBooking/internal/shared/auth"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewWebsocketHandler expone /ws/bookings/:restaurant/:token y valida el JWT localmente.
// Los clientes quedan suscritos a los topics de ciclo de vida de reservas y el hub
// filtra por restaurante usando la metadata de cada mensaje.
func NewWebsocketHandler(hub *infrastructure.Hub, validator *auth.JWTValidator) func(echo.Context) error {
	return func(c echo.Context) error {
		restaurantID := strings.TrimSpace(c.Param("restaurant"))
		token := strings.TrimSpace(c.Param("token"))
		if token == "" {
			token = strings.TrimSpace(c.QueryParams().Get("token"))
		}
		if token == "" {
			authz := strings.TrimSpace(c.Request().Header.Get("Authorization"))
			if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				token = strings.TrimSpace(authz[7:])
			}
		}

		if restaurantID == "" {
			slog.Warn("ws handler missing restaurant")
			return echo.NewHTTPError(http.StatusBadRequest, "missing restaurant")
		}
		if token == "" {
			slog.Warn("ws handler missing token", slog.String("restaurantId", restaurantID))
			return echo.NewHTTPError(http.StatusBadRequest, "missing token")
		}

		claims, err := validator.Validate(token)
		if err != nil {
			slog.Warn("ws handler invalid token", slog.String("restaurantId", restaurantID), slog.Any("error", err))
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		principal := auth.PrincipalFromClaims(claims)

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws handler upgrade failed", slog.String("restaurantId", restaurantID), slog.Any("error", err))
			return err
		}

		client := infrastructure.NewClient(hub, conn, principal.UserID, principal.SessionID, restaurantID, 8)
		topics := domain.BookingTopics()
		hub.AttachClient(client, topics)

		go client.WritePump()
		go client.ReadPump()

		client.SendDomainMessage(&domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: map[string]string{
				"userId":       principal.UserID,
				"sessionId":    principal.SessionID,
				"restaurantId": restaurantID,
			},
			Data: map[string]any{
				"allowedTopics": topics,
				"roles":         principal.Roles,
			},
			Timestamp: time.Now().UTC(),
		})
		slog.Info("ws connected", slog.String("restaurantId", restaurantID), slog.String("userId", principal.UserID), slog.String("sessionId", principal.SessionID))

		return nil
	}
}
