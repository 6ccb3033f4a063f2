package port

import (
	"context"

	rules "mesaYaBooking/internal/modules/rules/domain"
)

// RulesRepository persists the per-restaurant policy singleton.
type RulesRepository interface {
	Get(ctx context.Context, restaurantID string) (rules.ReservationRules, error)
	Save(ctx context.Context, policy rules.ReservationRules) error
}
