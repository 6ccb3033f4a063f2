package port

import (
	"context"
	"time"

	inventory "mesaYaBooking/internal/modules/inventory/domain"
)

// TableTypeRepository is the persistence boundary for the table inventory.
type TableTypeRepository interface {
	Insert(ctx context.Context, tableType inventory.TableType) error
	Get(ctx context.Context, id string) (inventory.TableType, error)
	Update(ctx context.Context, tableType inventory.TableType) error
	Delete(ctx context.Context, id string) error
	ListByRestaurant(ctx context.Context, restaurantID string) ([]inventory.TableType, error)
}

// BookingUsage reports how existing bookings constrain inventory edits.
type BookingUsage interface {
	// PeakSlotUsage returns the highest number of active bookings any single
	// slot currently holds for the table type. Quantity may not shrink below it.
	PeakSlotUsage(ctx context.Context, restaurantID, tableTypeID string) (int, error)
	// HasUpcoming reports whether any upcoming booking scheduled after the
	// given instant still references the table type.
	HasUpcoming(ctx context.Context, restaurantID, tableTypeID string, after time.Time) (bool, error)
}
