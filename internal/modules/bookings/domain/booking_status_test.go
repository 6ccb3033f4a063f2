package domain

import "testing"

func TestNormalizeBookingStatus(t *testing.T) {
	cases := []struct {
		name     string
		input    any
		expected BookingStatus
	}{
		{name: "upcoming", input: "upcoming", expected: BookingStatusUpcoming},
		{name: "padded completed", input: " COMPLETED ", expected: BookingStatusCompleted},
		{name: "mixed case cancelled", input: "Cancelled", expected: BookingStatusCancelled},
		{name: "unknown string", input: "seated", expected: BookingStatusUnknown},
		{name: "non string", input: 7, expected: BookingStatusUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeBookingStatus(tc.input); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		name     string
		from     BookingStatus
		to       BookingStatus
		expected bool
	}{
		{name: "upcoming to completed", from: BookingStatusUpcoming, to: BookingStatusCompleted, expected: true},
		{name: "upcoming to cancelled", from: BookingStatusUpcoming, to: BookingStatusCancelled, expected: true},
		{name: "completed is terminal", from: BookingStatusCompleted, to: BookingStatusCancelled, expected: false},
		{name: "cancelled is terminal", from: BookingStatusCancelled, to: BookingStatusCompleted, expected: false},
		{name: "upcoming cannot loop", from: BookingStatusUpcoming, to: BookingStatusUpcoming, expected: false},
		{name: "unknown cannot move", from: BookingStatusUnknown, to: BookingStatusCompleted, expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransition(tc.to); got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestTerminal(t *testing.T) {
	if BookingStatusUpcoming.Terminal() {
		t.Fatalf("upcoming must not be terminal")
	}
	if !BookingStatusCompleted.Terminal() || !BookingStatusCancelled.Terminal() {
		t.Fatalf("completed and cancelled must be terminal")
	}
}

func TestParseSlotTime(t *testing.T) {
	at, err := ParseSlotTime("2025-12-08", "19:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if at.Hour() != 19 || at.Day() != 8 {
		t.Fatalf("unexpected instant: %v", at)
	}

	if _, err := ParseSlotTime("08/12/2025", "19:00"); err == nil {
		t.Fatalf("expected error for non ISO date")
	}
}
