package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	bookings "mesaYaBooking/internal/modules/bookings/domain"
	domain "mesaYaBooking/internal/modules/inventory/domain"
	"mesaYaBooking/internal/shared/auth"
	"mesaYaBooking/internal/shared/ident"
	"mesaYaBooking/internal/store/memory"
)

var (
	manager  = auth.Principal{UserID: "m1", Roles: []string{auth.RoleManager}, RestaurantID: "r1"}
	admin    = auth.Principal{UserID: "a1", Roles: []string{auth.RoleAdmin}}
	customer = auth.Principal{UserID: "u1", Roles: []string{auth.RoleCustomer}}
)

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	service := NewService(store.Tables(), store.Bookings())
	service.now = func() time.Time { return time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC) }
	return service, store
}

func addBooking(t *testing.T, store *memory.Store, tableTypeID, date, clock string) {
	t.Helper()
	err := store.Bookings().InsertIfAvailable(context.Background(), bookings.Booking{
		ID:           ident.NewID(),
		RestaurantID: "r1",
		TableTypeID:  tableTypeID,
		Date:         date,
		Time:         clock,
		Status:       bookings.BookingStatusUpcoming,
	})
	if err != nil {
		t.Fatalf("insert booking: %v", err)
	}
}

func TestAdd(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	tableType, err := service.Add(ctx, manager, "r1", domain.CreateTableTypeCommand{SeatCount: 4, Quantity: 10})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if tableType.ID == "" || tableType.RestaurantID != "r1" {
		t.Fatalf("unexpected table type: %+v", tableType)
	}

	if _, err := service.Add(ctx, manager, "r1", domain.CreateTableTypeCommand{SeatCount: 5, Quantity: 3}); !errors.Is(err, domain.ErrInvalidSeatCount) {
		t.Fatalf("expected ErrInvalidSeatCount, got %v", err)
	}
	if _, err := service.Add(ctx, manager, "r1", domain.CreateTableTypeCommand{SeatCount: 4, Quantity: 0}); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := service.Add(ctx, customer, "r1", domain.CreateTableTypeCommand{SeatCount: 4, Quantity: 2}); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("customers must not stock tables, got %v", err)
	}
	if _, err := service.Add(ctx, manager, "r2", domain.CreateTableTypeCommand{SeatCount: 4, Quantity: 2}); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("managers must not stock other restaurants, got %v", err)
	}
	if _, err := service.Add(ctx, admin, "r2", domain.CreateTableTypeCommand{SeatCount: 4, Quantity: 2}); err != nil {
		t.Fatalf("admins may stock any restaurant: %v", err)
	}
}

func TestUpdateShrinkConflict(t *testing.T) {
	service, store := newService(t)
	ctx := context.Background()

	tableType, err := service.Add(ctx, manager, "r1", domain.CreateTableTypeCommand{SeatCount: 2, Quantity: 5})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Three active bookings on the same slot, one on another.
	addBooking(t, store, tableType.ID, "2025-12-08", "19:00")
	addBooking(t, store, tableType.ID, "2025-12-08", "19:00")
	addBooking(t, store, tableType.ID, "2025-12-08", "19:00")
	addBooking(t, store, tableType.ID, "2025-12-09", "20:00")

	two := 2
	if _, err := service.Update(ctx, manager, tableType.ID, domain.UpdateTableTypeCommand{Quantity: &two}); !errors.Is(err, domain.ErrCapacityConflict) {
		t.Fatalf("shrinking below the busiest slot must conflict, got %v", err)
	}

	three := 3
	updated, err := service.Update(ctx, manager, tableType.ID, domain.UpdateTableTypeCommand{Quantity: &three})
	if err != nil {
		t.Fatalf("shrinking to the busiest slot's usage should pass: %v", err)
	}
	if updated.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", updated.Quantity)
	}
}

func TestUpdatePartialFields(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	tableType, err := service.Add(ctx, manager, "r1", domain.CreateTableTypeCommand{SeatCount: 4, Quantity: 6, Description: "old"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	description := "Private Booth"
	windowSide := true
	updated, err := service.Update(ctx, manager, tableType.ID, domain.UpdateTableTypeCommand{Description: &description, WindowSide: &windowSide})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Description != "Private Booth" || !updated.WindowSide || updated.Quantity != 6 {
		t.Fatalf("partial update went wrong: %+v", updated)
	}

	if _, err := service.Update(ctx, manager, "missing", domain.UpdateTableTypeCommand{}); !errors.Is(err, domain.ErrTableTypeNotFound) {
		t.Fatalf("expected ErrTableTypeNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	service, store := newService(t)
	ctx := context.Background()

	tableType, err := service.Add(ctx, manager, "r1", domain.CreateTableTypeCommand{SeatCount: 2, Quantity: 5})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Future upcoming booking blocks removal.
	addBooking(t, store, tableType.ID, "2025-12-08", "19:00")
	if err := service.Remove(ctx, manager, tableType.ID); !errors.Is(err, domain.ErrCapacityConflict) {
		t.Fatalf("expected ErrCapacityConflict, got %v", err)
	}

	// Once the booking date has passed the type can be removed.
	service.now = func() time.Time { return time.Date(2025, 12, 20, 12, 0, 0, 0, time.UTC) }
	if err := service.Remove(ctx, manager, tableType.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := service.Remove(ctx, manager, tableType.ID); !errors.Is(err, domain.ErrTableTypeNotFound) {
		t.Fatalf("expected ErrTableTypeNotFound after removal, got %v", err)
	}
}

func TestListRequiresManagement(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	if _, err := service.Add(ctx, manager, "r1", domain.CreateTableTypeCommand{SeatCount: 2, Quantity: 5}); err != nil {
		t.Fatalf("add: %v", err)
	}

	listed, err := service.List(ctx, manager, "r1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected one table type, got %d", len(listed))
	}

	if _, err := service.List(ctx, customer, "r1"); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a customer, got %v", err)
	}
}
