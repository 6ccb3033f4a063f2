package usecase

import (
	"context"
	"log/slog"

	domain "mesaYaBooking/internal/modules/bookings/domain"
	rules "mesaYaBooking/internal/modules/rules/domain"
)

// SweepNoShows auto-cancels every upcoming booking whose no-show deadline has
// passed, charging the no-show penalty. The sweep only ever touches UPCOMING
// bookings, so running it twice over the same state is a no-op the second time.
func (s *Service) SweepNoShows(ctx context.Context) (int, error) {
	active, err := s.bookings.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now().UTC()
	policies := make(map[string]rules.ReservationRules)
	swept := 0

	for _, booking := range active {
		policy, ok := policies[booking.RestaurantID]
		if !ok {
			policy, err = s.rules.Rules(ctx, booking.RestaurantID)
			if err != nil {
				return swept, err
			}
			policies[booking.RestaurantID] = policy
		}

		startsAt, err := booking.StartsAt()
		if err != nil {
			slog.Warn("sweep skipping malformed booking", slog.String("bookingId", booking.ID), slog.Any("error", err))
			continue
		}
		if !policy.AutoCancelDue(startsAt, now) {
			continue
		}

		booking.Status = domain.BookingStatusCancelled
		booking.CancelReason = domain.CancelReasonNoShow
		booking.PenaltyFee = policy.NoShowPenalty()
		booking.UpdatedAt = now

		if err := s.bookings.Update(ctx, booking); err != nil {
			return swept, err
		}
		swept++
		slog.Info("booking auto-cancelled",
			slog.String("bookingId", booking.ID),
			slog.String("restaurantId", booking.RestaurantID),
			slog.Float64("penalty", booking.PenaltyFee),
		)
		s.events.Publish(ctx, domain.NewEvent(domain.EventActionAutoCancel, booking, now))
	}

	return swept, nil
}
