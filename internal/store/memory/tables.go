package memory

import (
	"context"
	"fmt"
	"sort"

	inventory "mesaYaBooking/internal/modules/inventory/domain"
)

// TableRepository implements the inventory persistence port and the booking
// flow's read-only inventory port over the shared store.
type TableRepository struct {
	store *Store
}

func (r *TableRepository) Insert(_ context.Context, tableType inventory.TableType) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.tables[tableType.ID] = tableType
	return nil
}

func (r *TableRepository) Get(_ context.Context, id string) (inventory.TableType, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	tableType, ok := r.store.tables[id]
	if !ok {
		return inventory.TableType{}, fmt.Errorf("%w: %s", inventory.ErrTableTypeNotFound, id)
	}
	return tableType, nil
}

func (r *TableRepository) Update(_ context.Context, tableType inventory.TableType) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.tables[tableType.ID]; !ok {
		return fmt.Errorf("%w: %s", inventory.ErrTableTypeNotFound, tableType.ID)
	}
	r.store.tables[tableType.ID] = tableType
	return nil
}

func (r *TableRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.tables[id]; !ok {
		return fmt.Errorf("%w: %s", inventory.ErrTableTypeNotFound, id)
	}
	delete(r.store.tables, id)
	return nil
}

func (r *TableRepository) ListByRestaurant(_ context.Context, restaurantID string) ([]inventory.TableType, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	result := make([]inventory.TableType, 0)
	for _, tableType := range r.store.tables {
		if tableType.RestaurantID == restaurantID {
			result = append(result, tableType)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SeatCount != result[j].SeatCount {
			return result[i].SeatCount < result[j].SeatCount
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// TableType satisfies the booking flow's read-only inventory port.
func (r *TableRepository) TableType(ctx context.Context, id string) (inventory.TableType, error) {
	return r.Get(ctx, id)
}

// TableTypes satisfies the booking flow's read-only inventory port.
func (r *TableRepository) TableTypes(ctx context.Context, restaurantID string) ([]inventory.TableType, error) {
	return r.ListByRestaurant(ctx, restaurantID)
}
