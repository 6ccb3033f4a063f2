package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"mesaYaBooking/internal/modules/bookings/application/port"
	bookings "mesaYaBooking/internal/modules/bookings/domain"
	inventory "mesaYaBooking/internal/modules/inventory/domain"
)

// BookingRepository implements the booking persistence port and the inventory
// module's usage guard over the shared store.
type BookingRepository struct {
	store *Store
}

// InsertIfAvailable reads the table type's quantity, performs the capacity
// check and inserts all under one lock, so the per-slot invariant holds
// regardless of caller interleaving, including against inventory shrinks.
func (r *BookingRepository) InsertIfAvailable(_ context.Context, booking bookings.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tableType, ok := r.store.tables[booking.TableTypeID]
	if !ok {
		return fmt.Errorf("%w: %s", inventory.ErrTableTypeNotFound, booking.TableTypeID)
	}
	if r.store.countActiveLocked(booking.Slot()) >= tableType.Quantity {
		return fmt.Errorf("%w: %s %s", bookings.ErrSlotFull, booking.Date, booking.Time)
	}
	r.store.bookings[booking.ID] = booking
	return nil
}

func (r *BookingRepository) Get(_ context.Context, id string) (bookings.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	booking, ok := r.store.bookings[id]
	if !ok {
		return bookings.Booking{}, fmt.Errorf("%w: %s", bookings.ErrBookingNotFound, id)
	}
	return booking, nil
}

func (r *BookingRepository) Update(_ context.Context, booking bookings.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.bookings[booking.ID]; !ok {
		return fmt.Errorf("%w: %s", bookings.ErrBookingNotFound, booking.ID)
	}
	r.store.bookings[booking.ID] = booking
	return nil
}

func (r *BookingRepository) List(_ context.Context, restaurantID string, filter port.BookingFilter) ([]bookings.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	result := make([]bookings.Booking, 0)
	for _, booking := range r.store.bookings {
		if booking.RestaurantID != restaurantID {
			continue
		}
		if filter.Status != bookings.BookingStatusUnknown && booking.Status != filter.Status {
			continue
		}
		if filter.Date != "" && booking.Date != filter.Date {
			continue
		}
		if filter.CustomerID != "" && booking.CustomerID != filter.CustomerID {
			continue
		}
		result = append(result, booking)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		if result[i].Time != result[j].Time {
			return result[i].Time < result[j].Time
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *BookingRepository) ListActive(_ context.Context) ([]bookings.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	result := make([]bookings.Booking, 0)
	for _, booking := range r.store.bookings {
		if booking.Active() {
			result = append(result, booking)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *BookingRepository) CountActive(_ context.Context, slot bookings.SlotKey) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.countActiveLocked(slot), nil
}

// PeakSlotUsage reports the busiest slot's active booking count for a table type.
func (r *BookingRepository) PeakSlotUsage(_ context.Context, restaurantID, tableTypeID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	perSlot := make(map[bookings.SlotKey]int)
	peak := 0
	for _, booking := range r.store.bookings {
		if !booking.Active() || booking.RestaurantID != restaurantID || booking.TableTypeID != tableTypeID {
			continue
		}
		key := booking.Slot()
		perSlot[key]++
		if perSlot[key] > peak {
			peak = perSlot[key]
		}
	}
	return peak, nil
}

// HasUpcoming reports whether future upcoming bookings still reference the table type.
func (r *BookingRepository) HasUpcoming(_ context.Context, restaurantID, tableTypeID string, after time.Time) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, booking := range r.store.bookings {
		if !booking.Active() || booking.RestaurantID != restaurantID || booking.TableTypeID != tableTypeID {
			continue
		}
		startsAt, err := booking.StartsAt()
		if err != nil {
			continue
		}
		if startsAt.After(after) {
			return true, nil
		}
	}
	return false, nil
}
