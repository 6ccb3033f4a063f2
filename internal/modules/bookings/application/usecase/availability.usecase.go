package usecase

import (
	"context"
	"fmt"
	"sort"

	domain "mesaYaBooking/internal/modules/bookings/domain"
	rules "mesaYaBooking/internal/modules/rules/domain"
)

// Offer is one bookable table type for a specific slot, with the capacity
// remaining after active bookings are subtracted.
type Offer struct {
	TableTypeID string `json:"tableTypeId"`
	SeatCount   int    `json:"seatCount"`
	WindowSide  bool   `json:"isWindowSide"`
	Remaining   int    `json:"remaining"`
	BestFit     bool   `json:"bestFit"`
}

// SlotAvailability is the offer set for one time slot of a day grid.
type SlotAvailability struct {
	Time   string  `json:"time"`
	Offers []Offer `json:"offers"`
}

// Availability returns the table types that can seat the party at the given
// slot. Remaining capacity is computed per (tableType, date, time), so a full
// evening on one day never hides capacity on another.
func (s *Service) Availability(ctx context.Context, restaurantID, date, clock string, partySize int) ([]Offer, error) {
	if partySize < 1 {
		return nil, fmt.Errorf("%w: party size must be at least 1", domain.ErrInvalidPartySize)
	}
	if _, err := domain.ParseSlotTime(date, clock); err != nil {
		return nil, err
	}

	tableTypes, err := s.tables.TableTypes(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	offers := make([]Offer, 0, len(tableTypes))
	bestFit := 0
	for _, tableType := range tableTypes {
		if tableType.SeatCount < partySize {
			continue
		}
		if bestFit == 0 || tableType.SeatCount < bestFit {
			bestFit = tableType.SeatCount
		}

		held, err := s.bookings.CountActive(ctx, domain.SlotKey{
			RestaurantID: restaurantID,
			TableTypeID:  tableType.ID,
			Date:         date,
			Time:         clock,
		})
		if err != nil {
			return nil, err
		}
		remaining := tableType.Quantity - held
		if remaining < 0 {
			remaining = 0
		}
		offers = append(offers, Offer{
			TableTypeID: tableType.ID,
			SeatCount:   tableType.SeatCount,
			WindowSide:  tableType.WindowSide,
			Remaining:   remaining,
		})
	}

	for i := range offers {
		offers[i].BestFit = offers[i].SeatCount == bestFit
	}
	sort.Slice(offers, func(i, j int) bool {
		if offers[i].SeatCount != offers[j].SeatCount {
			return offers[i].SeatCount < offers[j].SeatCount
		}
		return offers[i].TableTypeID < offers[j].TableTypeID
	})

	return offers, nil
}

// DaySlots builds the deterministic half-hour slot grid between opening and
// closing for a date, each slot carrying its own offer set.
func (s *Service) DaySlots(ctx context.Context, restaurantID, date string, partySize int) ([]SlotAvailability, error) {
	policy, err := s.rules.Rules(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	grid := slotGrid(policy.OpeningTime, policy.ClosingTime)
	slots := make([]SlotAvailability, 0, len(grid))
	for _, clock := range grid {
		offers, err := s.Availability(ctx, restaurantID, date, clock, partySize)
		if err != nil {
			return nil, err
		}
		slots = append(slots, SlotAvailability{Time: clock, Offers: offers})
	}
	return slots, nil
}

// slotGrid yields the bookable half-hour start times between opening and closing.
func slotGrid(opening, closing string) []string {
	start, err := rules.ParseClock(opening)
	if err != nil {
		return nil
	}
	end, err := rules.ParseClock(closing)
	if err != nil {
		return nil
	}
	grid := make([]string, 0, (end-start)/30)
	for at := start; at < end; at += 30 {
		grid = append(grid, fmt.Sprintf("%02d:%02d", at/60, at%60))
	}
	return grid
}
