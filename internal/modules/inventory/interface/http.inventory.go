package transport

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"mesaYaBooking/internal/modules/inventory/application/usecase"
	"mesaYaBooking/internal/modules/inventory/domain"
	"mesaYaBooking/internal/shared/auth"
	"mesaYaBooking/internal/shared/httputil"
)

// Handler expone la administración de tipos de mesa por restaurante.
type Handler struct {
	inventory *usecase.Service
	errors    *httputil.ErrorMapper
}

func NewHandler(inventory *usecase.Service) *Handler {
	mapper := httputil.NewErrorMapper().
		WithMapping(domain.ErrTableTypeNotFound, http.StatusNotFound, "table type not found").
		WithMapping(domain.ErrCapacityConflict, http.StatusConflict, "change conflicts with active bookings").
		WithMapping(domain.ErrInvalidSeatCount, http.StatusBadRequest, "invalid seat count").
		WithMapping(domain.ErrInvalidQuantity, http.StatusBadRequest, "invalid quantity").
		WithMapping(auth.ErrForbidden, http.StatusForbidden, "forbidden")
	return &Handler{inventory: inventory, errors: mapper}
}

func (h *Handler) Register(g *echo.Group) {
	g.POST("/restaurants/:restaurantId/table-types", h.add)
	g.GET("/restaurants/:restaurantId/table-types", h.list)
	g.PATCH("/table-types/:id", h.update)
	g.DELETE("/table-types/:id", h.remove)
}

func (h *Handler) add(c echo.Context) error {
	var cmd domain.CreateTableTypeCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	principal := auth.PrincipalFrom(c)
	tableType, err := h.inventory.Add(c.Request().Context(), principal, c.Param("restaurantId"), cmd)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, tableType)
}

func (h *Handler) list(c echo.Context) error {
	principal := auth.PrincipalFrom(c)
	tableTypes, err := h.inventory.List(c.Request().Context(), principal, c.Param("restaurantId"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, tableTypes)
}

func (h *Handler) update(c echo.Context) error {
	var cmd domain.UpdateTableTypeCommand
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	principal := auth.PrincipalFrom(c)
	tableType, err := h.inventory.Update(c.Request().Context(), principal, c.Param("id"), cmd)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, tableType)
}

func (h *Handler) remove(c echo.Context) error {
	principal := auth.PrincipalFrom(c)
	if err := h.inventory.Remove(c.Request().Context(), principal, c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) fail(c echo.Context, err error) error {
	info := h.errors.Map(err)
	if info.Status >= http.StatusInternalServerError {
		slog.Error("inventory request failed", slog.String("path", c.Path()), slog.Any("error", err))
	}
	return echo.NewHTTPError(info.Status, info.Message)
}
