package calendar

import (
	"context"
	"time"
)

type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Timezone    string
	Attendees   []string
}

type Event struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Timezone    string    `json:"timezone"`
	Attendees   []string  `json:"attendees"`
	JoinLink    string    `json:"join_link"`
}

// Client is the external calendar. Scheduling rules (free/busy, invites)
// belong to the calendar itself.
type Client interface {
	CreateEvent(ctx context.Context, in EventInput) (Event, error)
	UpdateEvent(ctx context.Context, id string, in EventInput) error
	DeleteEvent(ctx context.Context, id string) error
	ListEvents(ctx context.Context, from, to time.Time) ([]Event, error)
	IsConnected(ctx context.Context) bool
}
