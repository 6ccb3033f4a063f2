package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNewEventRedactsPrivateFields(t *testing.T) {
	booking := Booking{
		ID:                  "b1",
		RestaurantID:        "r1",
		CustomerID:          "alice",
		TableTypeID:         "t1",
		Date:                "2025-12-08",
		Time:                "19:00",
		Status:              BookingStatusUpcoming,
		QRCode:              "QR-SECRETALICE",
		SpecialInstructions: "wheelchair access",
	}

	event := NewEvent(EventActionCreated, booking, time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC))

	payload, ok := event.Data.(Booking)
	if !ok {
		t.Fatalf("expected a Booking payload, got %T", event.Data)
	}
	if payload.QRCode != "" {
		t.Fatalf("check-in code must not be published, got %q", payload.QRCode)
	}
	if payload.SpecialInstructions != "" {
		t.Fatalf("special instructions must not be published, got %q", payload.SpecialInstructions)
	}
	if payload.ID != "b1" || payload.CustomerID != "alice" {
		t.Fatalf("redaction must not touch the rest of the booking: %+v", payload)
	}

	// The wire form subscribers receive must not even carry the keys.
	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "qrCode") || strings.Contains(string(data), "QR-SECRETALICE") {
		t.Fatalf("check-in code leaked into the event wire form: %s", data)
	}
	if strings.Contains(string(data), "specialInstructions") {
		t.Fatalf("special instructions leaked into the event wire form: %s", data)
	}
}

func TestNewEventEnvelope(t *testing.T) {
	booking := Booking{ID: "b1", RestaurantID: "r1", TableTypeID: "t1", Date: "2025-12-08", Time: "19:00"}
	at := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)

	event := NewEvent(EventActionCancelled, booking, at)
	if event.Topic != "bookings.cancelled" || event.Entity != EventEntity {
		t.Fatalf("unexpected envelope: %+v", event)
	}
	if event.ResourceID != "b1" || !event.Timestamp.Equal(at) {
		t.Fatalf("unexpected envelope: %+v", event)
	}
	if event.Metadata["restaurantId"] != "r1" || event.Metadata["time"] != "19:00" {
		t.Fatalf("unexpected metadata: %+v", event.Metadata)
	}
}
