package domain

import (
	"errors"
	"testing"
)

func TestValidSeatCount(t *testing.T) {
	cases := []struct {
		seats    int
		expected bool
	}{
		{seats: 2, expected: true},
		{seats: 3, expected: true},
		{seats: 4, expected: true},
		{seats: 6, expected: true},
		{seats: 8, expected: true},
		{seats: 5, expected: false},
		{seats: 0, expected: false},
		{seats: -2, expected: false},
	}

	for _, tc := range cases {
		if got := ValidSeatCount(tc.seats); got != tc.expected {
			t.Fatalf("ValidSeatCount(%d): expected %v, got %v", tc.seats, tc.expected, got)
		}
	}
}

func TestTableTypeValidate(t *testing.T) {
	cases := []struct {
		name      string
		tableType TableType
		wantErr   error
	}{
		{name: "valid", tableType: TableType{SeatCount: 4, Quantity: 10}},
		{name: "odd seat count", tableType: TableType{SeatCount: 5, Quantity: 3}, wantErr: ErrInvalidSeatCount},
		{name: "zero quantity", tableType: TableType{SeatCount: 2, Quantity: 0}, wantErr: ErrInvalidQuantity},
		{name: "negative quantity", tableType: TableType{SeatCount: 2, Quantity: -1}, wantErr: ErrInvalidQuantity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.tableType.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
