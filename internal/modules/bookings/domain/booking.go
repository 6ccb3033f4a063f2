package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrBookingNotFound       = errors.New("booking not found")
	ErrSlotFull              = errors.New("no table of this type is available for the slot")
	ErrInvalidState          = errors.New("booking is not in a state that permits this transition")
	ErrCodeMismatch          = errors.New("check-in code does not match")
	ErrInvalidPartySize      = errors.New("invalid party size")
	ErrOutsideOperatingHours = errors.New("requested time is outside operating hours")
	ErrInvalidSlot           = errors.New("invalid slot")
)

// CancelReason records why a booking left the UPCOMING state.
type CancelReason string

const (
	CancelReasonCustomer CancelReason = "CUSTOMER"
	CancelReasonManager  CancelReason = "MANAGER"
	CancelReasonNoShow   CancelReason = "NO_SHOW"
)

// Booking is a confirmed hold on one unit of a table type's capacity for a
// specific (date, time) slot.
type Booking struct {
	ID                  string        `json:"id"`
	RestaurantID        string        `json:"restaurantId"`
	CustomerID          string        `json:"customerId"`
	TableTypeID         string        `json:"tableTypeId"`
	SeatCount           int           `json:"seatCount"`
	Date                string        `json:"date"`
	Time                string        `json:"time"`
	DurationHours       float64       `json:"durationHours"`
	PartySize           int           `json:"partySize"`
	Status              BookingStatus `json:"status"`
	Price               float64       `json:"price"`
	PenaltyFee          float64       `json:"penaltyFee"`
	SpecialInstructions string        `json:"specialInstructions,omitempty"`
	QRCode              string        `json:"qrCode,omitempty"`
	CancelReason        CancelReason  `json:"cancelReason,omitempty"`
	CheckedInAt         *time.Time    `json:"checkedInAt,omitempty"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// SlotKey identifies the unit of capacity a booking holds. Capacity is tracked
// per distinct slot, never as a single running counter per table type.
type SlotKey struct {
	RestaurantID string
	TableTypeID  string
	Date         string
	Time         string
}

// Slot returns the capacity key this booking occupies.
func (b Booking) Slot() SlotKey {
	return SlotKey{
		RestaurantID: b.RestaurantID,
		TableTypeID:  b.TableTypeID,
		Date:         b.Date,
		Time:         b.Time,
	}
}

// Active reports whether the booking still holds its slot capacity.
func (b Booking) Active() bool {
	return b.Status == BookingStatusUpcoming
}

// StartsAt resolves the booking's (date, time) pair into an absolute instant.
func (b Booking) StartsAt() (time.Time, error) {
	return ParseSlotTime(b.Date, b.Time)
}

// ParseSlotTime combines an ISO date and an HH:MM clock into a UTC instant.
func ParseSlotTime(date, clock string) (time.Time, error) {
	at, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %s", ErrInvalidSlot, date, clock)
	}
	return at.UTC(), nil
}
