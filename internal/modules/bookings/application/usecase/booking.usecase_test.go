package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "mesaYaBooking/internal/modules/bookings/domain"
	inventory "mesaYaBooking/internal/modules/inventory/domain"
	rules "mesaYaBooking/internal/modules/rules/domain"
	"mesaYaBooking/internal/shared/auth"
	"mesaYaBooking/internal/store/memory"
)

type capturedEvents struct {
	events []domain.Event
}

func (c *capturedEvents) Publish(_ context.Context, event domain.Event) {
	c.events = append(c.events, event)
}

type fixture struct {
	service  *Service
	store    *memory.Store
	events   *capturedEvents
	table    inventory.TableType
	customer auth.Principal
	manager  auth.Principal
}

// The fixed clock sits well before the demo booking date so freshly created
// bookings are always in the future.
var testNow = time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	events := &capturedEvents{}
	service := NewService(store.Bookings(), store.Tables(), store.Rules(), events, 10)
	service.now = func() time.Time { return testNow }

	table := inventory.TableType{
		ID:           "t-two",
		RestaurantID: "r1",
		SeatCount:    2,
		Quantity:     8,
		WindowSide:   true,
	}
	if err := store.Tables().Insert(context.Background(), table); err != nil {
		t.Fatalf("seed table type: %v", err)
	}

	return &fixture{
		service:  service,
		store:    store,
		events:   events,
		table:    table,
		customer: auth.Principal{UserID: "u1", Roles: []string{auth.RoleCustomer}},
		manager:  auth.Principal{UserID: "m1", Roles: []string{auth.RoleManager}, RestaurantID: "r1"},
	}
}

func (f *fixture) createBooking(t *testing.T) domain.Booking {
	t.Helper()
	booking, err := f.service.Create(context.Background(), f.customer, domain.CreateBookingCommand{
		RestaurantID:  "r1",
		TableTypeID:   f.table.ID,
		Date:          "2025-12-08",
		Time:          "19:00",
		DurationHours: 1.5,
		PartySize:     2,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return booking
}

func (f *fixture) remaining(t *testing.T, date, clock string) int {
	t.Helper()
	offers, err := f.service.Availability(context.Background(), "r1", date, clock, 2)
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	for _, offer := range offers {
		if offer.TableTypeID == f.table.ID {
			return offer.Remaining
		}
	}
	t.Fatalf("table type %s not offered", f.table.ID)
	return 0
}

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)

	booking := f.createBooking(t)
	if booking.Status != domain.BookingStatusUpcoming {
		t.Fatalf("expected UPCOMING, got %s", booking.Status)
	}
	if booking.QRCode == "" {
		t.Fatalf("expected a check-in code")
	}
	if booking.Price != 10 {
		t.Fatalf("expected base price 10, got %.2f", booking.Price)
	}
	if got := f.remaining(t, "2025-12-08", "19:00"); got != 7 {
		t.Fatalf("expected 7 remaining after one booking, got %d", got)
	}
	if len(f.events.events) != 1 || f.events.events[0].Action != domain.EventActionCreated {
		t.Fatalf("expected one created event, got %+v", f.events.events)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*domain.CreateBookingCommand)
		wantErr error
	}{
		{name: "zero party", mutate: func(cmd *domain.CreateBookingCommand) { cmd.PartySize = 0 }, wantErr: domain.ErrInvalidPartySize},
		{name: "party exceeds seats", mutate: func(cmd *domain.CreateBookingCommand) { cmd.PartySize = 3 }, wantErr: domain.ErrInvalidPartySize},
		{name: "duration above maximum", mutate: func(cmd *domain.CreateBookingCommand) { cmd.DurationHours = 3 }, wantErr: rules.ErrInvalidDuration},
		{name: "zero duration", mutate: func(cmd *domain.CreateBookingCommand) { cmd.DurationHours = 0 }, wantErr: rules.ErrInvalidDuration},
		{name: "before opening", mutate: func(cmd *domain.CreateBookingCommand) { cmd.Time = "09:00" }, wantErr: domain.ErrOutsideOperatingHours},
		{name: "runs past closing", mutate: func(cmd *domain.CreateBookingCommand) { cmd.Time = "22:30" }, wantErr: domain.ErrOutsideOperatingHours},
		{name: "unknown table type", mutate: func(cmd *domain.CreateBookingCommand) { cmd.TableTypeID = "nope" }, wantErr: inventory.ErrTableTypeNotFound},
		{name: "malformed date", mutate: func(cmd *domain.CreateBookingCommand) { cmd.Date = "08/12/2025" }, wantErr: domain.ErrInvalidSlot},
		{name: "date in the past", mutate: func(cmd *domain.CreateBookingCommand) { cmd.Date = "2025-11-24" }, wantErr: domain.ErrInvalidSlot},
		{name: "slot earlier today", mutate: func(cmd *domain.CreateBookingCommand) { cmd.Date = "2025-12-01"; cmd.Time = "11:00" }, wantErr: domain.ErrInvalidSlot},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := domain.CreateBookingCommand{
				RestaurantID:  "r1",
				TableTypeID:   f.table.ID,
				Date:          "2025-12-08",
				Time:          "19:00",
				DurationHours: 1.5,
				PartySize:     2,
			}
			tc.mutate(&cmd)
			if _, err := f.service.Create(ctx, f.customer, cmd); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateBookingSlotFull(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	quantity := 1
	if _, err := f.store.Tables().Get(ctx, f.table.ID); err != nil {
		t.Fatalf("get table: %v", err)
	}
	f.table.Quantity = quantity
	if err := f.store.Tables().Update(ctx, f.table); err != nil {
		t.Fatalf("shrink table: %v", err)
	}

	f.createBooking(t)

	_, err := f.service.Create(ctx, auth.Principal{UserID: "u2"}, domain.CreateBookingCommand{
		RestaurantID:  "r1",
		TableTypeID:   f.table.ID,
		Date:          "2025-12-08",
		Time:          "19:00",
		DurationHours: 1,
		PartySize:     2,
	})
	if !errors.Is(err, domain.ErrSlotFull) {
		t.Fatalf("expected ErrSlotFull, got %v", err)
	}

	// The same table type on a different slot is unaffected.
	if _, err := f.service.Create(ctx, auth.Principal{UserID: "u2"}, domain.CreateBookingCommand{
		RestaurantID:  "r1",
		TableTypeID:   f.table.ID,
		Date:          "2025-12-09",
		Time:          "19:00",
		DurationHours: 1,
		PartySize:     2,
	}); err != nil {
		t.Fatalf("other slot should be bookable: %v", err)
	}
}

func TestCancelRestoresCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before := f.remaining(t, "2025-12-08", "19:00")
	booking := f.createBooking(t)

	cancelled, err := f.service.Cancel(ctx, f.customer, booking.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != domain.BookingStatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", cancelled.Status)
	}
	if got := f.remaining(t, "2025-12-08", "19:00"); got != before {
		t.Fatalf("expected capacity restored to %d, got %d", before, got)
	}
	// Booking is a week out, well outside the two hour penalty window.
	if cancelled.PenaltyFee != 0 {
		t.Fatalf("expected free cancellation, got fee %.2f", cancelled.PenaltyFee)
	}
}

func TestCancelInsideWindowCharges(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t)

	// 90 minutes before the 19:00 start on booking day.
	f.service.now = func() time.Time { return time.Date(2025, 12, 8, 17, 30, 0, 0, time.UTC) }

	cancelled, err := f.service.Cancel(context.Background(), f.customer, booking.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.PenaltyFee != 10 {
		t.Fatalf("expected penalty 10 inside the window, got %.2f", cancelled.PenaltyFee)
	}
}

func TestCheckIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.createBooking(t)

	// On time: five minutes past the scheduled start.
	f.service.now = func() time.Time { return time.Date(2025, 12, 8, 19, 5, 0, 0, time.UTC) }

	completed, err := f.service.CheckIn(ctx, f.manager, booking.ID, booking.QRCode)
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if completed.Status != domain.BookingStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", completed.Status)
	}
	if completed.PenaltyFee != 0 {
		t.Fatalf("on-time check-in must not be charged, got %.2f", completed.PenaltyFee)
	}
	if completed.CheckedInAt == nil {
		t.Fatalf("expected check-in timestamp")
	}
}

func TestCheckInLateArrival(t *testing.T) {
	f := newFixture(t)
	booking := f.createBooking(t)

	// 19:25 with a 20 minute grace period: late.
	f.service.now = func() time.Time { return time.Date(2025, 12, 8, 19, 25, 0, 0, time.UTC) }

	completed, err := f.service.CheckIn(context.Background(), f.manager, booking.ID, booking.QRCode)
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if completed.PenaltyFee != 10 {
		t.Fatalf("expected the penalty fee for a late arrival, got %.2f", completed.PenaltyFee)
	}
}

func TestCheckInRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.createBooking(t)

	if _, err := f.service.CheckIn(ctx, f.manager, booking.ID, "QR-WRONG"); !errors.Is(err, domain.ErrCodeMismatch) {
		t.Fatalf("expected ErrCodeMismatch, got %v", err)
	}
	if _, err := f.service.CheckIn(ctx, f.customer, booking.ID, booking.QRCode); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for a customer, got %v", err)
	}
	if _, err := f.service.CheckIn(ctx, f.manager, "missing", booking.QRCode); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestTerminalStatesAreFinal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cancelled := f.createBooking(t)
	if _, err := f.service.Cancel(ctx, f.customer, cancelled.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.service.CheckIn(ctx, f.manager, cancelled.ID, cancelled.QRCode); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("check-in after cancel: expected ErrInvalidState, got %v", err)
	}
	if _, err := f.service.Cancel(ctx, f.customer, cancelled.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("double cancel: expected ErrInvalidState, got %v", err)
	}

	completed := f.createBooking(t)
	if _, err := f.service.CheckIn(ctx, f.manager, completed.ID, completed.QRCode); err != nil {
		t.Fatalf("check in: %v", err)
	}
	if _, err := f.service.Cancel(ctx, f.customer, completed.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("cancel after check-in: expected ErrInvalidState, got %v", err)
	}
}

func TestCancelOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.createBooking(t)

	stranger := auth.Principal{UserID: "u9", Roles: []string{auth.RoleCustomer}}
	if _, err := f.service.Cancel(ctx, stranger, booking.ID); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another customer, got %v", err)
	}

	cancelled, err := f.service.Cancel(ctx, f.manager, booking.ID)
	if err != nil {
		t.Fatalf("manager cancel: %v", err)
	}
	if cancelled.CancelReason != domain.CancelReasonManager {
		t.Fatalf("expected manager cancel reason, got %s", cancelled.CancelReason)
	}
}

func TestSweepNoShows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.createBooking(t)

	// 31 minutes past the start with a 30 minute auto-cancel deadline.
	f.service.now = func() time.Time { return time.Date(2025, 12, 8, 19, 31, 0, 0, time.UTC) }

	swept, err := f.service.SweepNoShows(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if swept != 1 {
		t.Fatalf("expected one booking swept, got %d", swept)
	}

	got, err := f.store.Bookings().Get(ctx, booking.ID)
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	if got.Status != domain.BookingStatusCancelled || got.CancelReason != domain.CancelReasonNoShow {
		t.Fatalf("expected a no-show cancellation, got %s/%s", got.Status, got.CancelReason)
	}
	if got.PenaltyFee != 10 {
		t.Fatalf("expected the no-show penalty, got %.2f", got.PenaltyFee)
	}

	// Running the sweep again must not touch the already-cancelled booking.
	swept, err = f.service.SweepNoShows(ctx)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if swept != 0 {
		t.Fatalf("second sweep must be a no-op, swept %d", swept)
	}
	again, _ := f.store.Bookings().Get(ctx, booking.ID)
	if again.PenaltyFee != got.PenaltyFee || again.UpdatedAt != got.UpdatedAt {
		t.Fatalf("second sweep mutated an already swept booking")
	}
}

func TestSweepLeavesFutureBookings(t *testing.T) {
	f := newFixture(t)
	f.createBooking(t)

	// Well before the booking starts.
	swept, err := f.service.SweepNoShows(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if swept != 0 {
		t.Fatalf("future bookings must not be swept, got %d", swept)
	}
}

func TestListScopesCustomersToTheirOwn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mine := f.createBooking(t)

	other := auth.Principal{UserID: "u2", Roles: []string{auth.RoleCustomer}}
	if _, err := f.service.Create(ctx, other, domain.CreateBookingCommand{
		RestaurantID:  "r1",
		TableTypeID:   f.table.ID,
		Date:          "2025-12-08",
		Time:          "20:00",
		DurationHours: 1,
		PartySize:     2,
	}); err != nil {
		t.Fatalf("create second booking: %v", err)
	}

	managerView, err := f.service.List(ctx, f.manager, "r1", domain.ListBookingsCommand{})
	if err != nil {
		t.Fatalf("manager list: %v", err)
	}
	if len(managerView) != 2 {
		t.Fatalf("manager should see both bookings, got %d", len(managerView))
	}

	customerView, err := f.service.List(ctx, f.customer, "r1", domain.ListBookingsCommand{})
	if err != nil {
		t.Fatalf("customer list: %v", err)
	}
	if len(customerView) != 1 || customerView[0].ID != mine.ID {
		t.Fatalf("customer should only see their own booking, got %+v", customerView)
	}

	upcoming, err := f.service.List(ctx, f.manager, "r1", domain.ListBookingsCommand{Status: "upcoming"})
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("status filter should match both, got %d", len(upcoming))
	}
}
