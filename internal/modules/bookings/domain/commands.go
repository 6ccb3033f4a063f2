package domain

// CreateBookingCommand carries the customer payload for reserving a slot.
type CreateBookingCommand struct {
	RestaurantID        string  `json:"restaurantId"`
	TableTypeID         string  `json:"tableTypeId"`
	Date                string  `json:"date"`
	Time                string  `json:"time"`
	DurationHours       float64 `json:"durationHours"`
	PartySize           int     `json:"partySize"`
	SpecialInstructions string  `json:"specialInstructions"`
}

// CheckInCommand carries the code presented at the door.
type CheckInCommand struct {
	Code string `json:"code"`
}

// ListBookingsCommand filters the manager's booking list.
type ListBookingsCommand struct {
	Status string `json:"status"`
	Date   string `json:"date"`
}
