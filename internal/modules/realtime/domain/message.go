package domain

import "time"

// Message is the envelope delivered to websocket subscribers. The booking core
// publishes the same shape to Kafka, so gateway instances can rebroadcast
// events they did not originate.
type Message struct {
	Topic      string            `json:"topic"`
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}
