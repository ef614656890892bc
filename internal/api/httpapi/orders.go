package httpapi

import (
	"net/http"
	"strings"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/go-chi/chi/v5"
)

type detectResponse struct {
	TrackingNumber string `json:"tracking_number"`
	Carrier        string `json:"carrier,omitempty"`
	Detected       bool   `json:"detected"`
}

func (a *API) listCarriers(w http.ResponseWriter, r *http.Request) {
	ok(w, a.shipments.Carriers())
}

func (a *API) detectCarrier(w http.ResponseWriter, r *http.Request) {
	tn := strings.TrimSpace(r.URL.Query().Get("tracking_number"))
	if tn == "" {
		a.fail(w, r, "detect carrier", apperr.Validation("tracking_number is required"))
		return
	}
	code, found := a.shipments.DetectCarrier(tn)
	ok(w, detectResponse{TrackingNumber: tn, Carrier: code, Detected: found})
}

func (a *API) updateTracking(w http.ResponseWriter, r *http.Request) {
	var in models.TrackingUpdateInput
	if err := decode(r, &in); err != nil {
		a.fail(w, r, "update tracking", err)
		return
	}
	o, err := a.shipments.UpdateTracking(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		a.fail(w, r, "update tracking", err)
		return
	}
	ok(w, o)
}

func (a *API) getTracking(w http.ResponseWriter, r *http.Request) {
	t, err := a.shipments.GetOrderTracking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, "get tracking", err)
		return
	}
	ok(w, t)
}

func (a *API) refreshTracking(w http.ResponseWriter, r *http.Request) {
	if err := a.shipments.RefreshTracking(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, "refresh tracking", err)
		return
	}
	ok(w, map[string]bool{"scheduled": true})
}

func (a *API) addEvent(w http.ResponseWriter, r *http.Request) {
	var in models.EventInput
	if err := decode(r, &in); err != nil {
		a.fail(w, r, "add event", err)
		return
	}
	ev, err := a.shipments.AddEvent(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		a.fail(w, r, "add event", err)
		return
	}
	created(w, ev)
}

func (a *API) recordDeliveryProof(w http.ResponseWriter, r *http.Request) {
	var in models.DeliveryProofInput
	if err := decode(r, &in); err != nil {
		a.fail(w, r, "record delivery proof", err)
		return
	}
	p, err := a.shipments.RecordDeliveryProof(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		a.fail(w, r, "record delivery proof", err)
		return
	}
	created(w, p)
}
