package domain

// CreateTableTypeCommand carries the manager payload for stocking a new table type.
type CreateTableTypeCommand struct {
	SeatCount   int    `json:"seatCount"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	WindowSide  bool   `json:"isWindowSide"`
}

// UpdateTableTypeCommand carries a partial edit; nil fields are left untouched.
type UpdateTableTypeCommand struct {
	Quantity    *int    `json:"quantity"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	WindowSide  *bool   `json:"isWindowSide"`
}
