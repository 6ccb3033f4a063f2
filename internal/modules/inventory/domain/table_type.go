package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidSeatCount  = errors.New("invalid seat count")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrTableTypeNotFound = errors.New("table type not found")
	ErrCapacityConflict  = errors.New("capacity conflict")
)

// allowedSeatCounts lists the table sizes the floor plan actually stocks.
var allowedSeatCounts = map[int]struct{}{2: {}, 3: {}, 4: {}, 6: {}, 8: {}}

// ValidSeatCount reports whether the platform sells tables of the given size.
func ValidSeatCount(seats int) bool {
	_, ok := allowedSeatCounts[seats]
	return ok
}

// SeatCounts returns the allowed seat counts in ascending order.
func SeatCounts() []int {
	return []int{2, 3, 4, 6, 8}
}

// TableType describes a category of physical tables sharing seat count and
// attributes, not an individual table. Quantity is the stocked total; the
// remaining capacity for a given slot is derived from active bookings.
type TableType struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurantId"`
	SeatCount    int       `json:"seatCount"`
	Quantity     int       `json:"quantity"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"imageUrl"`
	WindowSide   bool      `json:"isWindowSide"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Validate rejects table types that could never be booked.
func (t TableType) Validate() error {
	if !ValidSeatCount(t.SeatCount) {
		return fmt.Errorf("%w: %d seats is not a stocked size", ErrInvalidSeatCount, t.SeatCount)
	}
	if t.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidQuantity)
	}
	return nil
}
