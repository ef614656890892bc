package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
	OrderRefunded  OrderStatus = "refunded"
)

type OrderType string

const (
	OrderTypeD2C OrderType = "d2c"
	OrderTypeB2B OrderType = "b2b"
)

type Order struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	OrderType     OrderType       `json:"order_type"`
	Status        OrderStatus     `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Currency      string          `json:"currency"`
	ShippingCity  string          `json:"shipping_city"`
	ShippingState string          `json:"shipping_state"`

	TrackingNumber    string     `json:"tracking_number"`
	Carrier           string     `json:"carrier"`
	CarrierService    string     `json:"carrier_service"`
	TrackingURL       string     `json:"tracking_url"`
	ShippedAt         *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`

	NextCheckAt    *time.Time `json:"-"`
	LastCheckedAt  *time.Time `json:"-"`
	CheckFailCount int32      `json:"-"`
	LastError      *string    `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsB2B treats an empty order type as d2c.
func (o *Order) IsB2B() bool { return o.OrderType == OrderTypeB2B }

// Нормализованные типы событий.
const (
	EventShipped        = "shipped"
	EventInTransit      = "in_transit"
	EventOutForDelivery = "out_for_delivery"
	EventDelivered      = "delivered"
	EventException      = "exception"
	EventCarrierUpdate  = "carrier_update"
)

type TrackingEvent struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	EventType   string    `json:"event_type"`
	Status      string    `json:"status"`
	Location    string    `json:"location"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	OccurredAt  time.Time `json:"timestamp"`
	CreatedAt   time.Time `json:"created_at"`
}

type EventInput struct {
	EventType   string     `json:"event_type" validate:"required,max=50"`
	Status      string     `json:"status" validate:"max=50"`
	Location    string     `json:"location" validate:"max=255"`
	Latitude    *float64   `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64   `json:"longitude" validate:"omitempty,longitude"`
	Description string     `json:"description"`
	Timestamp   *time.Time `json:"timestamp"`
}

type ProofType string

const (
	ProofSignature         ProofType = "signature"
	ProofPhoto             ProofType = "photo"
	ProofSignatureAndPhoto ProofType = "signature_and_photo"
	ProofPIN               ProofType = "pin"
	ProofNone              ProofType = "none"
)

type DeliveryProof struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"order_id"`
	ProofType     ProofType `json:"proof_type"`
	SignatureURL  string    `json:"signature_url"`
	PhotoURL      string    `json:"photo_url"`
	RecipientName string    `json:"recipient_name"`
	Notes         string    `json:"notes"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	DeliveredAt   time.Time `json:"delivered_at"`
	DriverName    string    `json:"driver_name"`
	CreatedAt     time.Time `json:"created_at"`
}

type DeliveryProofInput struct {
	ProofType     ProofType `json:"proof_type" validate:"omitempty,oneof=signature photo signature_and_photo pin none"`
	SignatureURL  string    `json:"signature_url" validate:"omitempty,url"`
	PhotoURL      string    `json:"photo_url" validate:"omitempty,url"`
	Signature     []byte    `json:"signature"`
	Photo         []byte    `json:"photo"`
	RecipientName string    `json:"recipient_name" validate:"max=255"`
	Notes         string    `json:"notes"`
	Latitude      *float64  `json:"latitude" validate:"omitempty,latitude"`
	Longitude     *float64  `json:"longitude" validate:"omitempty,longitude"`
	DriverName    string    `json:"driver_name" validate:"max=255"`
}

type TrackingUpdateInput struct {
	TrackingNumber    string     `json:"tracking_number" validate:"required,max=64"`
	Carrier           string     `json:"carrier" validate:"max=32"`
	Service           string     `json:"service" validate:"max=64"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

// ShipmentUpdate is what the store writes when an order ships.
type ShipmentUpdate struct {
	OrderID           string
	TrackingNumber    string
	Carrier           string
	CarrierService    string
	TrackingURL       string
	EstimatedDelivery *time.Time
	ShippedAt         time.Time
	Event             *TrackingEvent
}

// OrderTracking is the joined read view of one order.
type OrderTracking struct {
	Order         *Order           `json:"order"`
	Events        []*TrackingEvent `json:"events"`
	DeliveryProof *DeliveryProof   `json:"delivery_proof"`
	Degraded      bool             `json:"degraded"`
	Message       string           `json:"message,omitempty"`
}

type OrderFilter struct {
	From      *time.Time
	To        *time.Time
	OrderType *OrderType
	Status    *OrderStatus
	Limit     int
	Offset    int
}
