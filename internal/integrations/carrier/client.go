package carrier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BearBump/SalesTrack/internal/models"
)

// Статусы, которые возвращают клиенты перевозчиков.
const (
	StatusUnknown        = "UNKNOWN"
	StatusInTransit      = "IN_TRANSIT"
	StatusOutForDelivery = "OUT_FOR_DELIVERY"
	StatusDelivered      = "DELIVERED"
	StatusException      = "EXCEPTION"
)

type Event struct {
	Status    string
	StatusRaw string
	EventTime time.Time
	Location  *string
	Message   *string
	Payload   json.RawMessage
}

type TrackingResult struct {
	Status    string
	StatusRaw string
	StatusAt  *time.Time
	Events    []Event
}

type Client interface {
	GetTracking(ctx context.Context, carrierCode, trackingNumber string) (TrackingResult, error)
}

// EventType maps a carrier status onto the order event vocabulary.
func EventType(status string) string {
	switch status {
	case StatusInTransit:
		return models.EventInTransit
	case StatusOutForDelivery:
		return models.EventOutForDelivery
	case StatusDelivered:
		return models.EventDelivered
	case StatusException:
		return models.EventException
	default:
		return models.EventCarrierUpdate
	}
}
