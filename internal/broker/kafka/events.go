package kafka

import (
	"context"

	"github.com/BearBump/SalesTrack/internal/broker/messages"
)

type jsonPublisher interface {
	PublishJSON(ctx context.Context, topic, key string, v any) error
}

// EventPublisher routes domain events to their topics.
type EventPublisher struct {
	p          jsonPublisher
	leadTopic  string
	orderTopic string
}

func NewEventPublisher(p jsonPublisher, leadTopic, orderTopic string) *EventPublisher {
	if leadTopic == "" {
		leadTopic = "lead.events"
	}
	if orderTopic == "" {
		orderTopic = "order.events"
	}
	return &EventPublisher{p: p, leadTopic: leadTopic, orderTopic: orderTopic}
}

func (e *EventPublisher) PublishLeadEvent(ctx context.Context, ev messages.LeadEvent) error {
	return e.p.PublishJSON(ctx, e.leadTopic, ev.LeadID, ev)
}

func (e *EventPublisher) PublishOrderEvent(ctx context.Context, ev messages.OrderEventMessage) error {
	return e.p.PublishJSON(ctx, e.orderTopic, ev.OrderID, ev)
}
