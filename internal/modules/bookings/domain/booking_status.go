package domain

import "strings"

// BookingStatus represents the lifecycle of a booking. UPCOMING is the only
// non-terminal state; COMPLETED and CANCELLED admit no further transitions.
type BookingStatus string

const (
	BookingStatusUnknown   BookingStatus = ""
	BookingStatusUpcoming  BookingStatus = "UPCOMING"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

var allowedBookingStatuses = map[string]BookingStatus{
	string(BookingStatusUpcoming):  BookingStatusUpcoming,
	string(BookingStatusCompleted): BookingStatusCompleted,
	string(BookingStatusCancelled): BookingStatusCancelled,
}

// NormalizeBookingStatus returns the canonical BookingStatus for the given input.
func NormalizeBookingStatus(value any) BookingStatus {
	s, ok := value.(string)
	if !ok {
		return BookingStatusUnknown
	}
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if status, ok := allowedBookingStatuses[trimmed]; ok {
		return status
	}
	return BookingStatusUnknown
}

// Terminal reports whether the status admits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanTransition reports whether the state machine permits moving to next.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	if s != BookingStatusUpcoming {
		return false
	}
	return next == BookingStatusCompleted || next == BookingStatusCancelled
}
