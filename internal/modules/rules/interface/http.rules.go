package transport

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaBooking/internal/modules/rules/application/usecase"
	"mesaYaBooking/internal/modules/rules/domain"
	"mesaYaBooking/internal/shared/auth"
	"mesaYaBooking/internal/shared/httputil"
)

// Handler expone la lectura y edición de reglas de reserva por restaurante.
type Handler struct {
	rules  *usecase.Service
	errors *httputil.ErrorMapper
}

func NewHandler(rules *usecase.Service) *Handler {
	mapper := httputil.NewErrorMapper().
		WithMapping(domain.ErrInvalidRules, http.StatusBadRequest, "invalid reservation rules").
		WithMapping(auth.ErrForbidden, http.StatusForbidden, "forbidden")
	return &Handler{rules: rules, errors: mapper}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/restaurants/:restaurantId/rules", h.get)
	g.PUT("/restaurants/:restaurantId/rules", h.save)
}

func (h *Handler) get(c echo.Context) error {
	policy, err := h.rules.Get(c.Request().Context(), c.Param("restaurantId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, policy)
}

func (h *Handler) save(c echo.Context) error {
	var policy domain.ReservationRules
	if err := c.Bind(&policy); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	policy.RestaurantID = c.Param("restaurantId")
	principal := auth.PrincipalFrom(c)
	saved, err := h.rules.Save(c.Request().Context(), principal, policy)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

func (h *Handler) fail(c echo.Context, err error) error {
	info := h.errors.Map(err)
	if info.Status >= http.StatusInternalServerError {
		slog.Error("rules request failed", slog.String("path", c.Path()), slog.Any("error", err))
	}
	return echo.NewHTTPError(info.Status, info.Message)
}
