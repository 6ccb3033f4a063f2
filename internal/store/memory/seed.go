package memory

import (
	"context"
	"time"

	inventory "mesaYaBooking/internal/modules/inventory/domain"
	rules "mesaYaBooking/internal/modules/rules/domain"
	"mesaYaBooking/internal/shared/ident"
)

// Seed stocks a restaurant with the demo floor plan and rules so a fresh
// deployment has something to book against.
func (s *Store) Seed(ctx context.Context, restaurantID string) error {
	now := time.Now().UTC()
	demo := []inventory.TableType{
		{SeatCount: 2, Quantity: 8, WindowSide: true, Description: "Window Seat - Perfect for intimate dining with city views"},
		{SeatCount: 3, Quantity: 6, Description: "Corner Table - Cozy seating in quiet corners"},
		{SeatCount: 4, Quantity: 10, Description: "Main Hall - Standard dining tables in the main area"},
		{SeatCount: 6, Quantity: 4, Description: "Private Booth - Semi-private seating with dividers"},
		{SeatCount: 4, Quantity: 5, WindowSide: true, Description: "Window View Tables - Enjoy beautiful outdoor views while dining"},
	}

	tables := s.Tables()
	for _, tableType := range demo {
		tableType.ID = ident.NewID()
		tableType.RestaurantID = restaurantID
		tableType.CreatedAt = now
		tableType.UpdatedAt = now
		if err := tables.Insert(ctx, tableType); err != nil {
			return err
		}
	}

	return s.Rules().Save(ctx, rules.Default(restaurantID))
}
