package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidRules    = errors.New("invalid reservation rules")
	ErrInvalidDuration = errors.New("invalid booking duration")
	ErrRulesNotFound   = errors.New("reservation rules not found")
)

// ReservationRules is the per-restaurant policy singleton consulted by every
// booking-lifecycle and availability decision.
type ReservationRules struct {
	RestaurantID      string  `json:"restaurantId"`
	OpeningTime       string  `json:"openingTime"`
	ClosingTime       string  `json:"closingTime"`
	GracePeriod       int     `json:"gracePeriod"`
	PenaltyFee        float64 `json:"penaltyFee"`
	MaxDuration       float64 `json:"maxDuration"`
	CancellationHours float64 `json:"cancellationHours"`
	AutoCancelMinutes int     `json:"autoCancelMinutes"`
}

// Default returns the rules applied to a restaurant that has never saved its own.
func Default(restaurantID string) ReservationRules {
	return ReservationRules{
		RestaurantID:      restaurantID,
		OpeningTime:       "11:00",
		ClosingTime:       "23:00",
		GracePeriod:       20,
		PenaltyFee:        10,
		MaxDuration:       2,
		CancellationHours: 2,
		AutoCancelMinutes: 30,
	}
}

// Validate rejects rule sets that would make every booking decision undefined.
func (r ReservationRules) Validate() error {
	opening, err := ParseClock(r.OpeningTime)
	if err != nil {
		return fmt.Errorf("%w: opening time %q", ErrInvalidRules, r.OpeningTime)
	}
	closing, err := ParseClock(r.ClosingTime)
	if err != nil {
		return fmt.Errorf("%w: closing time %q", ErrInvalidRules, r.ClosingTime)
	}
	if opening >= closing {
		return fmt.Errorf("%w: opening time must precede closing time", ErrInvalidRules)
	}
	if r.GracePeriod < 0 || r.PenaltyFee < 0 || r.MaxDuration < 0 || r.CancellationHours < 0 || r.AutoCancelMinutes < 0 {
		return fmt.Errorf("%w: numeric fields must not be negative", ErrInvalidRules)
	}
	return nil
}

// ParseClock converts an "HH:MM" wall-clock string into minutes since midnight.
func ParseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("clock %q is not HH:MM", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("clock %q has invalid hour", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock %q has invalid minute", value)
	}
	return hours*60 + minutes, nil
}

// WithinOperatingHours reports whether a booking starting at the given clock
// time and running for durationHours fits inside the opening window.
func (r ReservationRules) WithinOperatingHours(clock string, durationHours float64) bool {
	start, err := ParseClock(clock)
	if err != nil {
		return false
	}
	opening, err := ParseClock(r.OpeningTime)
	if err != nil {
		return false
	}
	closing, err := ParseClock(r.ClosingTime)
	if err != nil {
		return false
	}
	end := start + int(durationHours*60)
	return start >= opening && end <= closing
}

// LateArrival reports whether a check-in happened after the grace period expired.
func (r ReservationRules) LateArrival(scheduled, checkIn time.Time) bool {
	return checkIn.After(scheduled.Add(time.Duration(r.GracePeriod) * time.Minute))
}

// CancellationPenalty returns the fee owed for cancelling at the given moment.
// Cancelling inside the free-cancellation window (less than CancellationHours
// before the scheduled start) incurs the penalty fee; earlier cancellations are free.
func (r ReservationRules) CancellationPenalty(scheduled, now time.Time) float64 {
	deadline := scheduled.Add(-time.Duration(r.CancellationHours * float64(time.Hour)))
	if now.After(deadline) {
		return r.PenaltyFee
	}
	return 0
}

// LateArrivalPenalty returns the fee owed for arriving after the grace period.
func (r ReservationRules) LateArrivalPenalty() float64 {
	return r.PenaltyFee
}

// NoShowPenalty returns the fee owed when a booking is auto-cancelled without check-in.
func (r ReservationRules) NoShowPenalty() float64 {
	return r.PenaltyFee
}

// AutoCancelDue reports whether a still-unclaimed booking has passed its
// no-show deadline and must be swept.
func (r ReservationRules) AutoCancelDue(scheduled, now time.Time) bool {
	return now.After(scheduled.Add(time.Duration(r.AutoCancelMinutes) * time.Minute))
}

// ValidateDuration rejects bookings that are non-positive or exceed MaxDuration.
func (r ReservationRules) ValidateDuration(hours float64) error {
	if hours <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidDuration)
	}
	if hours > r.MaxDuration {
		return fmt.Errorf("%w: duration %.1fh exceeds the %.1fh maximum", ErrInvalidDuration, hours, r.MaxDuration)
	}
	return nil
}
