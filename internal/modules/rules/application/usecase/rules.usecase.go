package usecase

import (
	"context"
	"errors"
	"log/slog"

	"mesaYaBooking/internal/modules/rules/application/port"
	domain "mesaYaBooking/internal/modules/rules/domain"
	"mesaYaBooking/internal/shared/auth"
)

// Service reads and saves a restaurant's reservation rules. Restaurants that
// never saved rules run on the platform defaults.
type Service struct {
	rules port.RulesRepository
}

func NewService(rules port.RulesRepository) *Service {
	return &Service{rules: rules}
}

// Get returns the restaurant's rules, falling back to the defaults.
func (s *Service) Get(ctx context.Context, restaurantID string) (domain.ReservationRules, error) {
	policy, err := s.rules.Get(ctx, restaurantID)
	if errors.Is(err, domain.ErrRulesNotFound) {
		return domain.Default(restaurantID), nil
	}
	if err != nil {
		return domain.ReservationRules{}, err
	}
	return policy, nil
}

// Save validates and stores the manager's rule set.
func (s *Service) Save(ctx context.Context, principal auth.Principal, policy domain.ReservationRules) (domain.ReservationRules, error) {
	if !principal.CanManageRestaurant(policy.RestaurantID) {
		return domain.ReservationRules{}, auth.ErrForbidden
	}
	if err := policy.Validate(); err != nil {
		return domain.ReservationRules{}, err
	}
	if err := s.rules.Save(ctx, policy); err != nil {
		return domain.ReservationRules{}, err
	}
	slog.Info("reservation rules saved",
		slog.String("restaurantId", policy.RestaurantID),
		slog.String("opening", policy.OpeningTime),
		slog.String("closing", policy.ClosingTime),
	)
	return policy, nil
}
