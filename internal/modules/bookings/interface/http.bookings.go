package transport

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"

	"mesaYaBooking/internal/modules/bookings/application/usecase"
	"mesaYaBooking/internal/modules/bookings/domain"
	inventory "mesaYaBooking/internal/modules/inventory/domain"
	rules "mesaYaBooking/internal/modules/rules/domain"
	"mesaYaBooking/internal/shared/auth"
	"mesaYaBooking/internal/shared/httputil"
)

// Handler agrupa los endpoints REST del ciclo de vida de reservas.
type Handler struct {
	bookings *usecase.Service
	errors   *httputil.ErrorMapper
}

func NewHandler(bookings *usecase.Service) *Handler {
	mapper := httputil.NewErrorMapper().
		WithMapping(domain.ErrBookingNotFound, http.StatusNotFound, "booking not found").
		WithMapping(inventory.ErrTableTypeNotFound, http.StatusNotFound, "table type not found").
		WithMapping(domain.ErrSlotFull, http.StatusConflict, "no table available for the requested slot").
		WithMapping(domain.ErrInvalidState, http.StatusConflict, "booking state does not permit this operation").
		WithMapping(domain.ErrCodeMismatch, http.StatusConflict, "check-in code does not match").
		WithMapping(domain.ErrInvalidPartySize, http.StatusBadRequest, "invalid party size").
		WithMapping(domain.ErrOutsideOperatingHours, http.StatusBadRequest, "requested time is outside operating hours").
		WithMapping(domain.ErrInvalidSlot, http.StatusBadRequest, "invalid date or time").
		WithMapping(rules.ErrInvalidDuration, http.StatusBadRequest, "invalid booking duration").
		WithMapping(auth.ErrForbidden, http.StatusForbidden, "forbidden")
	return &Handler{bookings: bookings, errors: mapper}
}

// Register monta las rutas del módulo sobre el grupo autenticado.
func (h *Handler) Register(g *echo.Group) {
	g.POST("/bookings", h.create)
	g.GET("/bookings/:id", h.get)
	g.GET("/bookings/:id/qr", h.qr)
	g.POST("/bookings/:id/checkin", h.checkIn)
	g.POST("/bookings/:id/cancel", h.cancel)
	g.GET("/restaurants/:restaurantId/bookings", h.list)
	g.GET("/restaurants/:restaurantId/availability", h.availability)
	g.GET("/restaurants/:restaurantId/slots", h.daySlots)
}

func (h *Handler) create(c echo.Context) error {
	var cmd domain.CreateBookingCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	principal := auth.PrincipalFrom(c)
	booking, err := h.bookings.Create(c.Request().Context(), principal, cmd)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, booking)
}

func (h *Handler) get(c echo.Context) error {
	principal := auth.PrincipalFrom(c)
	booking, err := h.bookings.Get(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

// qr renderiza el código de check-in como imagen PNG escaneable en la puerta.
func (h *Handler) qr(c echo.Context) error {
	principal := auth.PrincipalFrom(c)
	booking, err := h.bookings.Get(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	png, err := qrcode.Encode(booking.QRCode, qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr encode failed", slog.String("bookingId", booking.ID), slog.Any("error", err))
		return echo.NewHTTPError(http.StatusInternalServerError, "unable to render qr code")
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

func (h *Handler) checkIn(c echo.Context) error {
	var cmd domain.CheckInCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	principal := auth.PrincipalFrom(c)
	booking, err := h.bookings.CheckIn(c.Request().Context(), principal, c.Param("id"), cmd.Code)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) cancel(c echo.Context) error {
	principal := auth.PrincipalFrom(c)
	booking, err := h.bookings.Cancel(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) list(c echo.Context) error {
	principal := auth.PrincipalFrom(c)
	cmd := domain.ListBookingsCommand{
		Status: strings.TrimSpace(c.QueryParam("status")),
		Date:   strings.TrimSpace(c.QueryParam("date")),
	}
	bookings, err := h.bookings.List(c.Request().Context(), principal, c.Param("restaurantId"), cmd)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *Handler) availability(c echo.Context) error {
	partySize, err := parsePartySize(c.QueryParam("partySize"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid party size")
	}
	offers, err := h.bookings.Availability(
		c.Request().Context(),
		c.Param("restaurantId"),
		strings.TrimSpace(c.QueryParam("date")),
		strings.TrimSpace(c.QueryParam("time")),
		partySize,
	)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, offers)
}

func (h *Handler) daySlots(c echo.Context) error {
	partySize, err := parsePartySize(c.QueryParam("partySize"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid party size")
	}
	slots, err := h.bookings.DaySlots(
		c.Request().Context(),
		c.Param("restaurantId"),
		strings.TrimSpace(c.QueryParam("date")),
		partySize,
	)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, slots)
}

func (h *Handler) fail(c echo.Context, err error) error {
	info := h.errors.Map(err)
	if info.Status >= http.StatusInternalServerError {
		slog.Error("booking request failed", slog.String("path", c.Path()), slog.Any("error", err))
	}
	return echo.NewHTTPError(info.Status, info.Message)
}

func parsePartySize(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	return strconv.Atoi(raw)
}
