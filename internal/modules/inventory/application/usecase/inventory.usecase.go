package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mesaYaBooking/internal/modules/inventory/application/port"
	domain "mesaYaBooking/internal/modules/inventory/domain"
	"mesaYaBooking/internal/shared/auth"
	"mesaYaBooking/internal/shared/ident"
)

// Service owns every inventory mutation. Edits that would strand an existing
// booking are rejected with ErrCapacityConflict rather than clamped.
type Service struct {
	tables port.TableTypeRepository
	usage  port.BookingUsage
	newID  func() string
	now    func() time.Time
}

func NewService(tables port.TableTypeRepository, usage port.BookingUsage) *Service {
	return &Service{
		tables: tables,
		usage:  usage,
		newID:  ident.NewID,
		now:    time.Now,
	}
}

// Add stocks a new table type for the restaurant.
func (s *Service) Add(ctx context.Context, principal auth.Principal, restaurantID string, cmd domain.CreateTableTypeCommand) (domain.TableType, error) {
	if !principal.CanManageRestaurant(restaurantID) {
		return domain.TableType{}, auth.ErrForbidden
	}

	now := s.now().UTC()
	tableType := domain.TableType{
		ID:           s.newID(),
		RestaurantID: restaurantID,
		SeatCount:    cmd.SeatCount,
		Quantity:     cmd.Quantity,
		Description:  cmd.Description,
		ImageURL:     cmd.ImageURL,
		WindowSide:   cmd.WindowSide,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tableType.Validate(); err != nil {
		return domain.TableType{}, err
	}
	if err := s.tables.Insert(ctx, tableType); err != nil {
		return domain.TableType{}, err
	}

	slog.Info("table type added",
		slog.String("tableTypeId", tableType.ID),
		slog.String("restaurantId", restaurantID),
		slog.Int("seatCount", tableType.SeatCount),
		slog.Int("quantity", tableType.Quantity),
	)
	return tableType, nil
}

// Update applies a partial edit. Shrinking quantity below the busiest slot's
// active bookings fails with ErrCapacityConflict.
func (s *Service) Update(ctx context.Context, principal auth.Principal, id string, cmd domain.UpdateTableTypeCommand) (domain.TableType, error) {
	tableType, err := s.tables.Get(ctx, id)
	if err != nil {
		return domain.TableType{}, err
	}
	if !principal.CanManageRestaurant(tableType.RestaurantID) {
		return domain.TableType{}, auth.ErrForbidden
	}

	if cmd.Quantity != nil && *cmd.Quantity != tableType.Quantity {
		inUse, err := s.usage.PeakSlotUsage(ctx, tableType.RestaurantID, tableType.ID)
		if err != nil {
			return domain.TableType{}, err
		}
		if *cmd.Quantity < inUse {
			return domain.TableType{}, fmt.Errorf("%w: %d tables are booked in the busiest slot, cannot shrink to %d",
				domain.ErrCapacityConflict, inUse, *cmd.Quantity)
		}
		tableType.Quantity = *cmd.Quantity
	}
	if cmd.Description != nil {
		tableType.Description = *cmd.Description
	}
	if cmd.ImageURL != nil {
		tableType.ImageURL = *cmd.ImageURL
	}
	if cmd.WindowSide != nil {
		tableType.WindowSide = *cmd.WindowSide
	}
	tableType.UpdatedAt = s.now().UTC()

	if err := tableType.Validate(); err != nil {
		return domain.TableType{}, err
	}
	if err := s.tables.Update(ctx, tableType); err != nil {
		return domain.TableType{}, err
	}
	return tableType, nil
}

// Remove deletes a table type, refusing while future upcoming bookings still
// reference it.
func (s *Service) Remove(ctx context.Context, principal auth.Principal, id string) error {
	tableType, err := s.tables.Get(ctx, id)
	if err != nil {
		return err
	}
	if !principal.CanManageRestaurant(tableType.RestaurantID) {
		return auth.ErrForbidden
	}

	referenced, err := s.usage.HasUpcoming(ctx, tableType.RestaurantID, tableType.ID, s.now().UTC())
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: upcoming bookings still reference this table type", domain.ErrCapacityConflict)
	}

	if err := s.tables.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("table type removed", slog.String("tableTypeId", id), slog.String("restaurantId", tableType.RestaurantID))
	return nil
}

// List returns the restaurant's inventory for its manager.
func (s *Service) List(ctx context.Context, principal auth.Principal, restaurantID string) ([]domain.TableType, error) {
	if !principal.CanManageRestaurant(restaurantID) {
		return nil, auth.ErrForbidden
	}
	return s.tables.ListByRestaurant(ctx, restaurantID)
}
