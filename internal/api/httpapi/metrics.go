package httpapi

import (
	"net/http"
	"time"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/BearBump/SalesTrack/internal/services/intelligence"
)

func (a *API) orderMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := a.metrics.OrderMetrics(r.Context(), r.URL.Query().Get("range"))
	if err != nil {
		a.fail(w, r, "order metrics", err)
		return
	}
	ok(w, m)
}

func (a *API) orderStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f intelligence.StatsFilter
	var err error
	if f.From, err = parseTime(q.Get("from"), "from"); err != nil {
		a.fail(w, r, "order stats", err)
		return
	}
	if f.To, err = parseTime(q.Get("to"), "to"); err != nil {
		a.fail(w, r, "order stats", err)
		return
	}
	if t := q.Get("order_type"); t != "" {
		ot := models.OrderType(t)
		f.OrderType = &ot
	}

	rep, err := a.metrics.OrderStats(r.Context(), f)
	if err != nil {
		a.fail(w, r, "order stats", err)
		return
	}
	ok(w, rep)
}

// parseTime accepts RFC 3339 timestamps and plain dates (UTC midnight).
func parseTime(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, apperr.Validation("%s must be an RFC 3339 timestamp or a YYYY-MM-DD date", name)
}
