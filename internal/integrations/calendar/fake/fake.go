package fake

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/BearBump/SalesTrack/internal/integrations/calendar"
	"github.com/pkg/errors"
)

// Client is an in-memory calendar with deterministic ids (evt-1, evt-2, ...).
type Client struct {
	mu        sync.Mutex
	seq       int
	events    map[string]calendar.Event
	connected bool
}

func New() *Client {
	return &Client{events: map[string]calendar.Event{}, connected: true}
}

func (c *Client) SetConnected(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = v
}

func (c *Client) CreateEvent(_ context.Context, in calendar.EventInput) (calendar.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return calendar.Event{}, errors.New("calendar is not connected")
	}
	c.seq++
	id := fmt.Sprintf("evt-%d", c.seq)
	ev := calendar.Event{
		ID:          id,
		Summary:     in.Summary,
		Description: in.Description,
		Start:       in.Start,
		End:         in.End,
		Timezone:    in.Timezone,
		Attendees:   append([]string{}, in.Attendees...),
		JoinLink:    "https://meet.example/" + id,
	}
	c.events[id] = ev
	return ev, nil
}

func (c *Client) UpdateEvent(_ context.Context, id string, in calendar.EventInput) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ev, ok := c.events[id]
	if !ok {
		return errors.Errorf("event %s not found", id)
	}
	ev.Summary, ev.Description = in.Summary, in.Description
	ev.Start, ev.End, ev.Timezone = in.Start, in.End, in.Timezone
	ev.Attendees = append([]string{}, in.Attendees...)
	c.events[id] = ev
	return nil
}

func (c *Client) DeleteEvent(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.events[id]; !ok {
		return errors.Errorf("event %s not found", id)
	}
	delete(c.events, id)
	return nil
}

func (c *Client) ListEvents(_ context.Context, from, to time.Time) ([]calendar.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []calendar.Event{}
	for _, ev := range c.events {
		if !ev.Start.Before(from) && ev.Start.Before(to) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (c *Client) IsConnected(context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}
