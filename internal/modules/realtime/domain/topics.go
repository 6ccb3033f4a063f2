package domain

const (
	SystemEntity = "system"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"
	TopicSystemError     = SystemEntity + ".error"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"

	BookingsEntity = "bookings"

	TopicBookingCreated       = BookingsEntity + ".created"
	TopicBookingCancelled     = BookingsEntity + ".cancelled"
	TopicBookingCheckedIn     = BookingsEntity + ".checked_in"
	TopicBookingAutoCancelled = BookingsEntity + ".auto_cancelled"
)

// BookingTopics lists every booking lifecycle topic a subscriber may follow.
func BookingTopics() []string {
	return []string{
		TopicBookingCreated,
		TopicBookingCancelled,
		TopicBookingCheckedIn,
		TopicBookingAutoCancelled,
	}
}
