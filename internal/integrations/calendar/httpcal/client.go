package httpcal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/BearBump/SalesTrack/internal/integrations/calendar"
	"github.com/pkg/errors"
)

// Client talks to a Google-Calendar-like REST API with a bearer token.
type Client struct {
	baseURL    string
	token      string
	calendarID string
	httpc      *http.Client
}

func New(baseURL, token, calendarID string) *Client {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		calendarID: calendarID,
		httpc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type eventTime struct {
	DateTime time.Time `json:"dateTime"`
	TimeZone string    `json:"timeZone,omitempty"`
}

type attendee struct {
	Email string `json:"email"`
}

type eventBody struct {
	ID          string     `json:"id,omitempty"`
	Summary     string     `json:"summary"`
	Description string     `json:"description,omitempty"`
	Start       eventTime  `json:"start"`
	End         eventTime  `json:"end"`
	Attendees   []attendee `json:"attendees,omitempty"`
	HangoutLink string     `json:"hangoutLink,omitempty"`
}

type listBody struct {
	Items []eventBody `json:"items"`
}

func toBody(in calendar.EventInput) eventBody {
	b := eventBody{
		Summary:     in.Summary,
		Description: in.Description,
		Start:       eventTime{DateTime: in.Start, TimeZone: in.Timezone},
		End:         eventTime{DateTime: in.End, TimeZone: in.Timezone},
	}
	for _, a := range in.Attendees {
		b.Attendees = append(b.Attendees, attendee{Email: a})
	}
	return b
}

func fromBody(b eventBody) calendar.Event {
	ev := calendar.Event{
		ID:          b.ID,
		Summary:     b.Summary,
		Description: b.Description,
		Start:       b.Start.DateTime,
		End:         b.End.DateTime,
		Timezone:    b.Start.TimeZone,
		Attendees:   []string{},
		JoinLink:    b.HangoutLink,
	}
	for _, a := range b.Attendees {
		ev.Attendees = append(ev.Attendees, a.Email)
	}
	return ev
}

func (c *Client) CreateEvent(ctx context.Context, in calendar.EventInput) (calendar.Event, error) {
	var out eventBody
	if err := c.do(ctx, http.MethodPost, c.eventsPath(""), nil, toBody(in), &out); err != nil {
		return calendar.Event{}, errors.Wrap(err, "create calendar event")
	}
	return fromBody(out), nil
}

func (c *Client) UpdateEvent(ctx context.Context, id string, in calendar.EventInput) error {
	return errors.Wrap(c.do(ctx, http.MethodPatch, c.eventsPath(id), nil, toBody(in), nil), "update calendar event")
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return errors.Wrap(c.do(ctx, http.MethodDelete, c.eventsPath(id), nil, nil, nil), "delete calendar event")
}

func (c *Client) ListEvents(ctx context.Context, from, to time.Time) ([]calendar.Event, error) {
	q := url.Values{}
	q.Set("timeMin", from.UTC().Format(time.RFC3339))
	q.Set("timeMax", to.UTC().Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")

	var out listBody
	if err := c.do(ctx, http.MethodGet, c.eventsPath(""), q, nil, &out); err != nil {
		return nil, errors.Wrap(err, "list calendar events")
	}
	evs := make([]calendar.Event, 0, len(out.Items))
	for _, b := range out.Items {
		evs = append(evs, fromBody(b))
	}
	return evs, nil
}

// IsConnected reports whether the calendar accepts our token.
func (c *Client) IsConnected(ctx context.Context) bool {
	if c.baseURL == "" || c.token == "" {
		return false
	}
	return c.do(ctx, http.MethodGet, "/calendars/"+url.PathEscape(c.calendarID), nil, nil, nil) == nil
}

func (c *Client) eventsPath(id string) string {
	p := "/calendars/" + url.PathEscape(c.calendarID) + "/events"
	if id != "" {
		p += "/" + url.PathEscape(id)
	}
	return p
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return errors.Wrap(err, "parse base url")
	}
	u.Path = u.Path + path
	if q != nil {
		u.RawQuery = q.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "marshal")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return errors.Wrap(err, "new request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("calendar http %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode")
	}
	return nil
}
