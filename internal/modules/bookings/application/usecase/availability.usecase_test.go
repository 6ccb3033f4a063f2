package usecase

import (
	"context"
	"errors"
	"testing"

	domain "mesaYaBooking/internal/modules/bookings/domain"
	inventory "mesaYaBooking/internal/modules/inventory/domain"
)

func seedFloorPlan(t *testing.T, f *fixture) {
	t.Helper()
	extra := []inventory.TableType{
		{ID: "t-four", RestaurantID: "r1", SeatCount: 4, Quantity: 10},
		{ID: "t-four-window", RestaurantID: "r1", SeatCount: 4, Quantity: 5, WindowSide: true},
		{ID: "t-six", RestaurantID: "r1", SeatCount: 6, Quantity: 4},
	}
	for _, tableType := range extra {
		if err := f.store.Tables().Insert(context.Background(), tableType); err != nil {
			t.Fatalf("seed table type: %v", err)
		}
	}
}

func TestAvailabilityFiltersBySeatCount(t *testing.T) {
	f := newFixture(t)
	seedFloorPlan(t, f)

	offers, err := f.service.Availability(context.Background(), "r1", "2025-12-08", "19:00", 3)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}

	for _, offer := range offers {
		if offer.SeatCount < 3 {
			t.Fatalf("offer %s seats %d does not fit a party of 3", offer.TableTypeID, offer.SeatCount)
		}
	}
	if len(offers) != 3 {
		t.Fatalf("expected the two four-seaters and the six-seater, got %d offers", len(offers))
	}

	// Best fit is the smallest adequate seat count.
	for _, offer := range offers {
		wantBestFit := offer.SeatCount == 4
		if offer.BestFit != wantBestFit {
			t.Fatalf("offer %s: expected bestFit=%v", offer.TableTypeID, wantBestFit)
		}
	}
}

func TestAvailabilityIsPerSlot(t *testing.T) {
	f := newFixture(t)

	f.createBooking(t)

	if got := f.remaining(t, "2025-12-08", "19:00"); got != 7 {
		t.Fatalf("booked slot should have 7 remaining, got %d", got)
	}
	// A booking on one slot must not consume capacity on any other.
	if got := f.remaining(t, "2025-12-08", "20:00"); got != 8 {
		t.Fatalf("other time should be untouched, got %d", got)
	}
	if got := f.remaining(t, "2025-12-09", "19:00"); got != 8 {
		t.Fatalf("other date should be untouched, got %d", got)
	}
}

func TestAvailabilityValidation(t *testing.T) {
	f := newFixture(t)

	if _, err := f.service.Availability(context.Background(), "r1", "2025-12-08", "19:00", 0); !errors.Is(err, domain.ErrInvalidPartySize) {
		t.Fatalf("expected ErrInvalidPartySize, got %v", err)
	}
	if _, err := f.service.Availability(context.Background(), "r1", "not-a-date", "19:00", 2); !errors.Is(err, domain.ErrInvalidSlot) {
		t.Fatalf("expected ErrInvalidSlot, got %v", err)
	}
}

func TestDaySlots(t *testing.T) {
	f := newFixture(t)

	slots, err := f.service.DaySlots(context.Background(), "r1", "2025-12-08", 2)
	if err != nil {
		t.Fatalf("day slots: %v", err)
	}

	// Default hours 11:00-23:00 at half-hour steps.
	if len(slots) != 24 {
		t.Fatalf("expected 24 half-hour slots, got %d", len(slots))
	}
	if slots[0].Time != "11:00" {
		t.Fatalf("expected grid to start at opening, got %s", slots[0].Time)
	}
	if slots[len(slots)-1].Time != "22:30" {
		t.Fatalf("expected last slot before closing, got %s", slots[len(slots)-1].Time)
	}

	// Deterministic: two computations over the same state agree.
	again, err := f.service.DaySlots(context.Background(), "r1", "2025-12-08", 2)
	if err != nil {
		t.Fatalf("second day slots: %v", err)
	}
	if len(again) != len(slots) {
		t.Fatalf("slot grid must be deterministic")
	}
	for i := range slots {
		if slots[i].Time != again[i].Time || len(slots[i].Offers) != len(again[i].Offers) {
			t.Fatalf("slot %d differs between identical computations", i)
		}
	}
}
