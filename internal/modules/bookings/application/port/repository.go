package port

import (
	"context"

	bookings "mesaYaBooking/internal/modules/bookings/domain"
	inventory "mesaYaBooking/internal/modules/inventory/domain"
	rules "mesaYaBooking/internal/modules/rules/domain"
)

// BookingFilter narrows List results; zero values match everything.
type BookingFilter struct {
	Status     bookings.BookingStatus
	Date       string
	CustomerID string
}

// BookingRepository is the persistence boundary for booking records. Slot
// capacity enforcement lives behind InsertIfAvailable so that the capacity
// check and the insert happen as one atomic read-modify-write.
type BookingRepository interface {
	// InsertIfAvailable inserts the booking only when the table type's current
	// quantity leaves room in its slot; otherwise it returns ErrSlotFull. The
	// quantity is re-read inside the same atomic section as the insert, so a
	// concurrent inventory shrink cannot be overtaken by an in-flight booking.
	InsertIfAvailable(ctx context.Context, booking bookings.Booking) error
	Get(ctx context.Context, id string) (bookings.Booking, error)
	Update(ctx context.Context, booking bookings.Booking) error
	List(ctx context.Context, restaurantID string, filter BookingFilter) ([]bookings.Booking, error)
	// ListActive returns every UPCOMING booking across restaurants, for the sweep.
	ListActive(ctx context.Context) ([]bookings.Booking, error)
	CountActive(ctx context.Context, slot bookings.SlotKey) (int, error)
}

// TableTypeProvider exposes the inventory the booking flow reads.
type TableTypeProvider interface {
	TableType(ctx context.Context, id string) (inventory.TableType, error)
	TableTypes(ctx context.Context, restaurantID string) ([]inventory.TableType, error)
}

// RulesProvider exposes the policy singleton the booking flow consults.
type RulesProvider interface {
	Rules(ctx context.Context, restaurantID string) (rules.ReservationRules, error)
}
