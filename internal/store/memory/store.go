package memory

import (
	"sync"

	bookings "mesaYaBooking/internal/modules/bookings/domain"
	inventory "mesaYaBooking/internal/modules/inventory/domain"
	rules "mesaYaBooking/internal/modules/rules/domain"
)

// Store keeps every collection in process memory behind one mutex, giving the
// single-writer semantics the booking flow relies on: each operation is an
// atomic read-modify-write, so two concurrent creates can never oversell a slot.
type Store struct {
	mu       sync.RWMutex
	tables   map[string]inventory.TableType
	bookings map[string]bookings.Booking
	ruleSets map[string]rules.ReservationRules
}

func NewStore() *Store {
	return &Store{
		tables:   make(map[string]inventory.TableType),
		bookings: make(map[string]bookings.Booking),
		ruleSets: make(map[string]rules.ReservationRules),
	}
}

// Tables returns the inventory repository view of the store.
func (s *Store) Tables() *TableRepository {
	return &TableRepository{store: s}
}

// Bookings returns the booking repository view of the store.
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// Rules returns the rules repository view of the store.
func (s *Store) Rules() *RulesRepository {
	return &RulesRepository{store: s}
}

func (s *Store) countActiveLocked(slot bookings.SlotKey) int {
	count := 0
	for _, booking := range s.bookings {
		if booking.Active() && booking.Slot() == slot {
			count++
		}
	}
	return count
}
