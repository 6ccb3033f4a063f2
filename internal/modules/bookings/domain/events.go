package domain

import "time"

const EventEntity = "bookings"

const (
	EventActionCreated    = "created"
	EventActionCancelled  = "cancelled"
	EventActionCheckedIn  = "checked_in"
	EventActionAutoCancel = "auto_cancelled"
)

// Event is the envelope published to the broker and broadcast to websocket
// subscribers whenever a booking changes state.
type Event struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewEvent builds a booking lifecycle event for the given action. The payload
// is a redacted copy of the booking: the check-in code and the customer's
// special instructions never travel over the broadcast channels, only over the
// booking API where ownership is enforced.
func NewEvent(action string, b Booking, at time.Time) Event {
	b.QRCode = ""
	b.SpecialInstructions = ""
	return Event{
		Entity:     EventEntity,
		Action:     action,
		ResourceID: b.ID,
		Topic:      EventEntity + "." + action,
		Metadata: map[string]string{
			"restaurantId": b.RestaurantID,
			"tableTypeId":  b.TableTypeID,
			"date":         b.Date,
			"time":         b.Time,
		},
		Data:      b,
		Timestamp: at.UTC(),
	}
}
