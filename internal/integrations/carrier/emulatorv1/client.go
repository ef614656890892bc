package emulatorv1

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BearBump/SalesTrack/internal/integrations/carrier"
	"github.com/pkg/errors"
)

// ErrRateLimited is returned on HTTP 429 so the worker can back off.
var ErrRateLimited = errors.New("carrier emulator rate limit (429)")

type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:9000"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type respEvent struct {
	Status    string          `json:"status"`
	StatusRaw string          `json:"status_raw"`
	EventTime time.Time       `json:"event_time"`
	Location  *string         `json:"location,omitempty"`
	Message   *string         `json:"message,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type respBody struct {
	Carrier        string      `json:"carrier"`
	TrackingNumber string      `json:"tracking_number"`
	Status         string      `json:"status"`
	StatusRaw      string      `json:"status_raw"`
	StatusAt       *time.Time  `json:"status_at"`
	Events         []respEvent `json:"events"`
}

func (c *Client) GetTracking(ctx context.Context, carrierCode, trackingNumber string) (carrier.TrackingResult, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return carrier.TrackingResult{}, errors.Wrap(err, "parse base url")
	}
	u.Path = fmt.Sprintf("/v1/tracking/%s/%s", url.PathEscape(carrierCode), url.PathEscape(trackingNumber))
	q := u.Query()
	if c.apiKey != "" {
		q.Set("apiKey", c.apiKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return carrier.TrackingResult{}, errors.Wrap(err, "new request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return carrier.TrackingResult{}, errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return carrier.TrackingResult{}, ErrRateLimited
	}
	if resp.StatusCode/100 != 2 {
		return carrier.TrackingResult{}, errors.Errorf("carrier emulator http %d", resp.StatusCode)
	}

	var rb respBody
	if err := json.NewDecoder(resp.Body).Decode(&rb); err != nil {
		return carrier.TrackingResult{}, errors.Wrap(err, "decode")
	}

	evs := make([]carrier.Event, 0, len(rb.Events))
	for _, e := range rb.Events {
		evs = append(evs, carrier.Event{
			Status:    normalizeStatus(e.Status),
			StatusRaw: e.StatusRaw,
			EventTime: e.EventTime.UTC(),
			Location:  e.Location,
			Message:   e.Message,
			Payload:   e.Payload,
		})
	}

	return carrier.TrackingResult{
		Status:    normalizeStatus(rb.Status),
		StatusRaw: rb.StatusRaw,
		StatusAt:  rb.StatusAt,
		Events:    evs,
	}, nil
}

func normalizeStatus(s string) string {
	switch st := strings.ToUpper(strings.TrimSpace(s)); st {
	case carrier.StatusInTransit, carrier.StatusOutForDelivery, carrier.StatusDelivered, carrier.StatusException:
		return st
	default:
		return carrier.StatusUnknown
	}
}
