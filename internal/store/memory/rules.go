package memory

import (
	"context"
	"fmt"

	rules "mesaYaBooking/internal/modules/rules/domain"
)

// RulesRepository implements the rules persistence port and the booking flow's
// policy port over the shared store.
type RulesRepository struct {
	store *Store
}

func (r *RulesRepository) Get(_ context.Context, restaurantID string) (rules.ReservationRules, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	policy, ok := r.store.ruleSets[restaurantID]
	if !ok {
		return rules.ReservationRules{}, fmt.Errorf("%w: restaurant %s", rules.ErrRulesNotFound, restaurantID)
	}
	return policy, nil
}

func (r *RulesRepository) Save(_ context.Context, policy rules.ReservationRules) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.ruleSets[policy.RestaurantID] = policy
	return nil
}

// Rules satisfies the booking flow's policy port, falling back to the platform
// defaults for restaurants that never saved their own.
func (r *RulesRepository) Rules(ctx context.Context, restaurantID string) (rules.ReservationRules, error) {
	policy, err := r.Get(ctx, restaurantID)
	if err != nil {
		return rules.Default(restaurantID), nil
	}
	return policy, nil
}
