package messages

import (
	"encoding/json"
	"time"
)

// CarrierUpdate is what the worker publishes after polling a carrier for one
// shipped order.
type CarrierUpdate struct {
	OrderID        string    `json:"order_id"`
	TrackingNumber string    `json:"tracking_number"`
	Carrier        string    `json:"carrier"`
	CheckedAt      time.Time `json:"checked_at"`

	Status    string     `json:"status,omitempty"`
	StatusRaw string     `json:"status_raw,omitempty"`
	StatusAt  *time.Time `json:"status_at,omitempty"`

	NextCheckAt time.Time `json:"next_check_at"`

	Events []CarrierEvent `json:"events,omitempty"`

	Error *string `json:"error,omitempty"`
}

type CarrierEvent struct {
	Status    string          `json:"status"`
	StatusRaw string          `json:"status_raw"`
	EventTime time.Time       `json:"event_time"`
	Location  *string         `json:"location,omitempty"`
	Message   *string         `json:"message,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}
