package track24http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BearBump/SalesTrack/internal/integrations/carrier"
	"github.com/pkg/errors"
)

type Client struct {
	baseURL string
	apiKey  string
	domain  string
	httpc   *http.Client
}

func New(baseURL, apiKey, domain string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:9000"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		domain:  domain,
		httpc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type track24Resp struct {
	Status string `json:"status"`
	Data   struct {
		Events []struct {
			OperationDateTime        string `json:"operationDateTime"`
			OperationAttribute       string `json:"operationAttribute"`
			OperationType            string `json:"operationType"`
			OperationPlaceName       string `json:"operationPlaceName"`
			OperationPlacePostalCode string `json:"operationPlacePostalCode"`
			Source                   string `json:"source"`
		} `json:"events"`
	} `json:"data"`
}

func (c *Client) GetTracking(ctx context.Context, carrierCode, trackingNumber string) (carrier.TrackingResult, error) {
	_ = carrierCode // Track24 определяет перевозчика по номеру сам

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return carrier.TrackingResult{}, errors.Wrap(err, "parse base url")
	}
	u.Path = "/tracking.json.php"

	q := u.Query()
	q.Set("apiKey", c.apiKey)
	q.Set("domain", c.domain)
	q.Set("code", trackingNumber)
	q.Set("pretty", "true")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return carrier.TrackingResult{}, errors.Wrap(err, "new request")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return carrier.TrackingResult{}, errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return carrier.TrackingResult{}, errors.Errorf("track24 http %d", resp.StatusCode)
	}

	var r track24Resp
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return carrier.TrackingResult{}, errors.Wrap(err, "decode")
	}
	if r.Status != "ok" {
		return carrier.TrackingResult{}, errors.Errorf("track24 status=%s", r.Status)
	}

	now := time.Now().UTC()
	status := carrier.StatusUnknown
	statusRaw := ""
	events := make([]carrier.Event, 0, len(r.Data.Events))

	for _, e := range r.Data.Events {
		msg := e.OperationAttribute
		evStatus := classify(msg)
		status, statusRaw = evStatus, msg

		evTime := now
		// Track24: "02.07.2014 19:16:00"
		if e.OperationDateTime != "" {
			if t, err := time.ParseInLocation("02.01.2006 15:04:05", e.OperationDateTime, time.UTC); err == nil {
				evTime = t.UTC()
			}
		}

		events = append(events, carrier.Event{
			Status:    evStatus,
			StatusRaw: msg,
			EventTime: evTime,
			Location:  strPtr(e.OperationPlaceName),
			Message:   strPtr(msg),
		})
	}

	return carrier.TrackingResult{
		Status:    status,
		StatusRaw: statusRaw,
		StatusAt:  &now,
		Events:    events,
	}, nil
}

// classify is a keyword heuristic over the operation text.
func classify(s string) string {
	low := strings.ToLower(s)
	switch {
	case containsDeliveredHint(low):
		return carrier.StatusDelivered
	case strings.Contains(low, "out for delivery"):
		return carrier.StatusOutForDelivery
	case strings.Contains(low, "exception") || strings.Contains(low, "возврат"):
		return carrier.StatusException
	case low == "":
		return carrier.StatusUnknown
	default:
		return carrier.StatusInTransit
	}
}

func containsDeliveredHint(s string) bool {
	low := strings.ToLower(s)
	return strings.Contains(low, "вруч") || strings.Contains(low, "delivered")
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
