package messages

import (
	"time"

	"github.com/BearBump/SalesTrack/internal/models"
)

const (
	LeadCreated      = "lead.created"
	LeadUpdated      = "lead.updated"
	LeadStageChanged = "lead.stage_changed"
	LeadConverted    = "lead.converted"
	LeadArchived     = "lead.archived"

	OrderShipped   = "order.shipped"
	OrderEvent     = "order.event"
	OrderDelivered = "order.delivered"
)

type LeadEvent struct {
	Type      string               `json:"type"`
	LeadID    string               `json:"lead_id"`
	At        time.Time            `json:"at"`
	From      models.PipelineStage `json:"from,omitempty"`
	To        models.PipelineStage `json:"to,omitempty"`
	PartnerID string               `json:"partner_id,omitempty"`
	Lead      *models.Lead         `json:"lead,omitempty"`
}

type OrderEventMessage struct {
	Type           string             `json:"type"`
	OrderID        string             `json:"order_id"`
	At             time.Time          `json:"at"`
	Status         models.OrderStatus `json:"status,omitempty"`
	TrackingNumber string             `json:"tracking_number,omitempty"`
	Carrier        string             `json:"carrier,omitempty"`
	EventType      string             `json:"event_type,omitempty"`
}

// LeadIntake is a lead captured by an external form or partner feed.
type LeadIntake struct {
	ExternalID string                 `json:"external_id,omitempty"`
	ReceivedAt time.Time              `json:"received_at"`
	Lead       models.LeadCreateInput `json:"lead"`
}
