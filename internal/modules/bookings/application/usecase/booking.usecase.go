package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mesaYaBooking/internal/modules/bookings/application/port"
	domain "mesaYaBooking/internal/modules/bookings/domain"
	"mesaYaBooking/internal/shared/auth"
	"mesaYaBooking/internal/shared/ident"
)

// Service funnels every booking mutation through validated entry points, so
// the capacity and state-machine invariants cannot be bypassed.
type Service struct {
	bookings  port.BookingRepository
	tables    port.TableTypeProvider
	rules     port.RulesProvider
	events    port.EventPublisher
	basePrice float64
	newID     func() string
	newCode   func() string
	now       func() time.Time
}

func NewService(
	bookings port.BookingRepository,
	tables port.TableTypeProvider,
	rules port.RulesProvider,
	events port.EventPublisher,
	basePrice float64,
) *Service {
	return &Service{
		bookings:  bookings,
		tables:    tables,
		rules:     rules,
		events:    events,
		basePrice: basePrice,
		newID:     ident.NewID,
		newCode:   ident.NewCheckInCode,
		now:       time.Now,
	}
}

// Create validates the requested slot against the restaurant's rules and
// inventory, then atomically claims one unit of the slot's capacity.
func (s *Service) Create(ctx context.Context, principal auth.Principal, cmd domain.CreateBookingCommand) (domain.Booking, error) {
	if principal.UserID == "" {
		return domain.Booking{}, auth.ErrForbidden
	}
	if cmd.PartySize < 1 {
		return domain.Booking{}, fmt.Errorf("%w: party size must be at least 1", domain.ErrInvalidPartySize)
	}

	startsAt, err := domain.ParseSlotTime(cmd.Date, cmd.Time)
	if err != nil {
		return domain.Booking{}, err
	}
	now := s.now().UTC()
	if !startsAt.After(now) {
		return domain.Booking{}, fmt.Errorf("%w: %s %s has already passed", domain.ErrInvalidSlot, cmd.Date, cmd.Time)
	}

	policy, err := s.rules.Rules(ctx, cmd.RestaurantID)
	if err != nil {
		return domain.Booking{}, err
	}
	if err := policy.ValidateDuration(cmd.DurationHours); err != nil {
		return domain.Booking{}, err
	}
	if !policy.WithinOperatingHours(cmd.Time, cmd.DurationHours) {
		return domain.Booking{}, fmt.Errorf("%w: %s for %.1fh", domain.ErrOutsideOperatingHours, cmd.Time, cmd.DurationHours)
	}

	tableType, err := s.tables.TableType(ctx, cmd.TableTypeID)
	if err != nil {
		return domain.Booking{}, err
	}
	if tableType.RestaurantID != cmd.RestaurantID {
		return domain.Booking{}, fmt.Errorf("%w: table type belongs to another restaurant", domain.ErrInvalidSlot)
	}
	if cmd.PartySize > tableType.SeatCount {
		return domain.Booking{}, fmt.Errorf("%w: party of %d does not fit a %d seat table", domain.ErrInvalidPartySize, cmd.PartySize, tableType.SeatCount)
	}

	booking := domain.Booking{
		ID:                  s.newID(),
		RestaurantID:        cmd.RestaurantID,
		CustomerID:          principal.UserID,
		TableTypeID:         tableType.ID,
		SeatCount:           tableType.SeatCount,
		Date:                cmd.Date,
		Time:                cmd.Time,
		DurationHours:       cmd.DurationHours,
		PartySize:           cmd.PartySize,
		Status:              domain.BookingStatusUpcoming,
		Price:               s.basePrice,
		SpecialInstructions: cmd.SpecialInstructions,
		QRCode:              s.newCode(),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.bookings.InsertIfAvailable(ctx, booking); err != nil {
		return domain.Booking{}, err
	}

	slog.Info("booking created",
		slog.String("bookingId", booking.ID),
		slog.String("restaurantId", booking.RestaurantID),
		slog.String("tableTypeId", booking.TableTypeID),
		slog.String("date", booking.Date),
		slog.String("time", booking.Time),
	)
	s.events.Publish(ctx, domain.NewEvent(domain.EventActionCreated, booking, now))

	return booking, nil
}

// CheckIn completes an upcoming booking once the presented code matches its QR
// token, recording the late-arrival penalty when the grace period has lapsed.
func (s *Service) CheckIn(ctx context.Context, principal auth.Principal, bookingID, code string) (domain.Booking, error) {
	booking, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}
	if !principal.CanManageRestaurant(booking.RestaurantID) {
		return domain.Booking{}, auth.ErrForbidden
	}
	if !booking.Status.CanTransition(domain.BookingStatusCompleted) {
		return domain.Booking{}, fmt.Errorf("%w: status is %s", domain.ErrInvalidState, booking.Status)
	}
	if code == "" || code != booking.QRCode {
		return domain.Booking{}, domain.ErrCodeMismatch
	}

	startsAt, err := booking.StartsAt()
	if err != nil {
		return domain.Booking{}, err
	}
	policy, err := s.rules.Rules(ctx, booking.RestaurantID)
	if err != nil {
		return domain.Booking{}, err
	}

	now := s.now().UTC()
	if policy.LateArrival(startsAt, now) {
		booking.PenaltyFee = policy.LateArrivalPenalty()
		slog.Info("late arrival", slog.String("bookingId", booking.ID), slog.Float64("penalty", booking.PenaltyFee))
	}
	booking.Status = domain.BookingStatusCompleted
	booking.CheckedInAt = &now
	booking.UpdatedAt = now

	if err := s.bookings.Update(ctx, booking); err != nil {
		return domain.Booking{}, err
	}
	s.events.Publish(ctx, domain.NewEvent(domain.EventActionCheckedIn, booking, now))

	return booking, nil
}

// Cancel releases the slot held by an upcoming booking. Cancelling inside the
// free-cancellation window incurs the penalty fee.
func (s *Service) Cancel(ctx context.Context, principal auth.Principal, bookingID string) (domain.Booking, error) {
	booking, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}

	reason := domain.CancelReasonCustomer
	switch {
	case principal.Owns(booking.CustomerID):
	case principal.CanManageRestaurant(booking.RestaurantID):
		reason = domain.CancelReasonManager
	default:
		return domain.Booking{}, auth.ErrForbidden
	}

	if !booking.Status.CanTransition(domain.BookingStatusCancelled) {
		return domain.Booking{}, fmt.Errorf("%w: status is %s", domain.ErrInvalidState, booking.Status)
	}

	startsAt, err := booking.StartsAt()
	if err != nil {
		return domain.Booking{}, err
	}
	policy, err := s.rules.Rules(ctx, booking.RestaurantID)
	if err != nil {
		return domain.Booking{}, err
	}

	now := s.now().UTC()
	booking.PenaltyFee = policy.CancellationPenalty(startsAt, now)
	booking.Status = domain.BookingStatusCancelled
	booking.CancelReason = reason
	booking.UpdatedAt = now

	if err := s.bookings.Update(ctx, booking); err != nil {
		return domain.Booking{}, err
	}

	slog.Info("booking cancelled",
		slog.String("bookingId", booking.ID),
		slog.String("reason", string(reason)),
		slog.Float64("penalty", booking.PenaltyFee),
	)
	s.events.Publish(ctx, domain.NewEvent(domain.EventActionCancelled, booking, now))

	return booking, nil
}

// Get returns a booking to its owner or to the restaurant's manager.
func (s *Service) Get(ctx context.Context, principal auth.Principal, bookingID string) (domain.Booking, error) {
	booking, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}
	if !principal.Owns(booking.CustomerID) && !principal.CanManageRestaurant(booking.RestaurantID) {
		return domain.Booking{}, auth.ErrForbidden
	}
	return booking, nil
}

// List returns the restaurant's bookings. Customers only ever see their own.
func (s *Service) List(ctx context.Context, principal auth.Principal, restaurantID string, cmd domain.ListBookingsCommand) ([]domain.Booking, error) {
	filter := port.BookingFilter{
		Status: domain.NormalizeBookingStatus(cmd.Status),
		Date:   cmd.Date,
	}
	if !principal.CanManageRestaurant(restaurantID) {
		if principal.UserID == "" {
			return nil, auth.ErrForbidden
		}
		filter.CustomerID = principal.UserID
	}
	return s.bookings.List(ctx, restaurantID, filter)
}
