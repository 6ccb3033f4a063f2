package domain

import (
	"errors"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*ReservationRules)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(r *ReservationRules) {}},
		{name: "opening after closing", mutate: func(r *ReservationRules) { r.OpeningTime = "23:30" }, wantErr: true},
		{name: "opening equals closing", mutate: func(r *ReservationRules) { r.OpeningTime = r.ClosingTime }, wantErr: true},
		{name: "malformed opening", mutate: func(r *ReservationRules) { r.OpeningTime = "noon" }, wantErr: true},
		{name: "negative grace period", mutate: func(r *ReservationRules) { r.GracePeriod = -1 }, wantErr: true},
		{name: "negative penalty", mutate: func(r *ReservationRules) { r.PenaltyFee = -5 }, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rules := Default("r1")
			tc.mutate(&rules)
			err := rules.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidRules) {
				t.Fatalf("expected ErrInvalidRules, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		input   string
		minutes int
		wantErr bool
	}{
		{input: "11:00", minutes: 660},
		{input: "00:00", minutes: 0},
		{input: " 23:59 ", minutes: 1439},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "1200", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			minutes, err := ParseClock(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if minutes != tc.minutes {
				t.Fatalf("expected %d minutes, got %d", tc.minutes, minutes)
			}
		})
	}
}

func TestWithinOperatingHours(t *testing.T) {
	rules := Default("r1")

	cases := []struct {
		name     string
		clock    string
		duration float64
		expected bool
	}{
		{name: "mid evening", clock: "19:00", duration: 1.5, expected: true},
		{name: "at opening", clock: "11:00", duration: 2, expected: true},
		{name: "ends exactly at closing", clock: "21:00", duration: 2, expected: true},
		{name: "before opening", clock: "10:30", duration: 1, expected: false},
		{name: "runs past closing", clock: "22:30", duration: 1, expected: false},
		{name: "malformed clock", clock: "late", duration: 1, expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rules.WithinOperatingHours(tc.clock, tc.duration); got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestLateArrival(t *testing.T) {
	rules := Default("r1")
	rules.GracePeriod = 20
	scheduled := time.Date(2025, 12, 8, 19, 0, 0, 0, time.UTC)

	if rules.LateArrival(scheduled, scheduled.Add(25*time.Minute)) != true {
		t.Fatalf("check-in at 19:25 with a 20 minute grace period should be late")
	}
	if rules.LateArrival(scheduled, scheduled.Add(20*time.Minute)) != false {
		t.Fatalf("check-in exactly at the grace boundary should not be late")
	}
	if rules.LateArrival(scheduled, scheduled.Add(-5*time.Minute)) != false {
		t.Fatalf("early check-in should not be late")
	}
}

func TestCancellationPenalty(t *testing.T) {
	rules := Default("r1")
	rules.CancellationHours = 2
	rules.PenaltyFee = 10
	scheduled := time.Date(2025, 12, 8, 19, 0, 0, 0, time.UTC)

	// Three hours ahead is outside the penalty window: free cancellation.
	if fee := rules.CancellationPenalty(scheduled, scheduled.Add(-3*time.Hour)); fee != 0 {
		t.Fatalf("expected free cancellation, got fee %.2f", fee)
	}
	if fee := rules.CancellationPenalty(scheduled, scheduled.Add(-90*time.Minute)); fee != 10 {
		t.Fatalf("expected penalty inside the window, got fee %.2f", fee)
	}
	if fee := rules.CancellationPenalty(scheduled, scheduled.Add(10*time.Minute)); fee != 10 {
		t.Fatalf("expected penalty after the scheduled start, got fee %.2f", fee)
	}
}

func TestAutoCancelDue(t *testing.T) {
	rules := Default("r1")
	rules.AutoCancelMinutes = 30
	scheduled := time.Date(2025, 12, 8, 19, 0, 0, 0, time.UTC)

	if rules.AutoCancelDue(scheduled, scheduled.Add(29*time.Minute)) {
		t.Fatalf("booking should not be swept before the no-show deadline")
	}
	if !rules.AutoCancelDue(scheduled, scheduled.Add(31*time.Minute)) {
		t.Fatalf("booking past the no-show deadline should be swept")
	}
}

func TestValidateDuration(t *testing.T) {
	rules := Default("r1")
	rules.MaxDuration = 2

	if err := rules.ValidateDuration(1.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := rules.ValidateDuration(0); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration for zero duration, got %v", err)
	}
	if err := rules.ValidateDuration(2.5); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration above the maximum, got %v", err)
	}
}
