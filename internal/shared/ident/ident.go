package ident

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a fresh identifier for stored records.
func NewID() string {
	return uuid.NewString()
}

// NewCheckInCode returns an opaque token embedded in a booking's QR code.
// The token is never derived from booking data so it cannot be guessed.
func NewCheckInCode() string {
	return "QR-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
