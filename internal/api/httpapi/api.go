// Package httpapi is the JSON-over-HTTP surface of salestrack-api.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/BearBump/SalesTrack/internal/carriers"
	"github.com/BearBump/SalesTrack/internal/logging"
	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/BearBump/SalesTrack/internal/services/intelligence"
	"github.com/BearBump/SalesTrack/internal/services/leads"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type LeadService interface {
	CreateLead(ctx context.Context, in models.LeadCreateInput) (*models.Lead, error)
	GetLead(ctx context.Context, id string) (*models.Lead, error)
	UpdateLead(ctx context.Context, id string, upd models.LeadUpdate) (*models.Lead, error)
	ArchiveLead(ctx context.Context, id string) (*models.Lead, error)
	ListLeads(ctx context.Context, f models.LeadFilter) (*models.LeadPage, error)
	TransitionStage(ctx context.Context, id string, target models.PipelineStage, performedBy string) (*models.Lead, error)
	ConvertLeadToPartner(ctx context.Context, leadID, performedBy string) (*leads.ConversionResult, error)

	AddActivity(ctx context.Context, leadID string, in models.ActivityInput) (*models.LeadActivity, error)
	ListActivities(ctx context.Context, leadID string, limit int) ([]*models.LeadActivity, error)
	ScheduleMeeting(ctx context.Context, leadID string, in models.MeetingInput) (*models.LeadMeeting, error)
	ListMeetings(ctx context.Context, leadID string) ([]*models.LeadMeeting, error)
	ListUpcomingMeetings(ctx context.Context, limit int) ([]*models.LeadMeeting, error)
	CancelMeeting(ctx context.Context, meetingID, reason, performedBy string) (*models.LeadMeeting, error)
	CompleteMeeting(ctx context.Context, meetingID, outcome, performedBy string) (*models.LeadMeeting, error)
}

type ShipmentService interface {
	Carriers() []carriers.Carrier
	DetectCarrier(trackingNumber string) (string, bool)
	UpdateTracking(ctx context.Context, orderID string, in models.TrackingUpdateInput) (*models.Order, error)
	AddEvent(ctx context.Context, orderID string, in models.EventInput) (*models.TrackingEvent, error)
	RecordDeliveryProof(ctx context.Context, orderID string, in models.DeliveryProofInput) (*models.DeliveryProof, error)
	GetOrderTracking(ctx context.Context, orderID string) (*models.OrderTracking, error)
	RefreshTracking(ctx context.Context, orderID string) error
}

type MetricsService interface {
	OrderMetrics(ctx context.Context, timeRange string) (*intelligence.OrderMetrics, error)
	OrderStats(ctx context.Context, f intelligence.StatsFilter) (*intelligence.OrderStatsReport, error)
}

type API struct {
	leads     LeadService
	shipments ShipmentService
	metrics   MetricsService
	log       *zap.Logger

	swaggerPath string
}

func New(l LeadService, s ShipmentService, m MetricsService, log *zap.Logger) *API {
	return &API{leads: l, shipments: s, metrics: m, log: logging.OrNop(log)}
}

// WithSwagger serves the OpenAPI document at /swagger.json and the UI at /docs/.
func (a *API) WithSwagger(path string) *API {
	a.swaggerPath = path
	return a
}

func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(a.recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if a.swaggerPath != "" {
		r.Get("/swagger.json", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")
			http.ServeFile(w, r, a.swaggerPath)
		})
		swaggerURL := "/swagger.json"
		if fi, err := os.Stat(a.swaggerPath); err == nil {
			swaggerURL = fmt.Sprintf("/swagger.json?v=%d", fi.ModTime().Unix())
		}
		r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL(swaggerURL)))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/leads", func(r chi.Router) {
			r.Post("/", a.createLead)
			r.Get("/", a.listLeads)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", a.getLead)
				r.Patch("/", a.updateLead)
				r.Post("/archive", a.archiveLead)
				r.Post("/stage", a.transitionStage)
				r.Post("/convert", a.convertLead)
				r.Post("/activities", a.addActivity)
				r.Get("/activities", a.listActivities)
				r.Post("/meetings", a.scheduleMeeting)
				r.Get("/meetings", a.listMeetings)
			})
		})
		r.Get("/meetings/upcoming", a.upcomingMeetings)
		r.Post("/meetings/{id}/cancel", a.cancelMeeting)
		r.Post("/meetings/{id}/complete", a.completeMeeting)

		r.Get("/carriers", a.listCarriers)
		r.Get("/carriers/detect", a.detectCarrier)

		r.Route("/orders/{id}", func(r chi.Router) {
			r.Put("/tracking", a.updateTracking)
			r.Get("/tracking", a.getTracking)
			r.Post("/tracking/refresh", a.refreshTracking)
			r.Post("/events", a.addEvent)
			r.Post("/delivery-proof", a.recordDeliveryProof)
		})

		r.Get("/metrics/orders", a.orderMetrics)
		r.Get("/metrics/orders/stats", a.orderStats)
	})

	return r
}

// recoverer answers panics with the usual error envelope instead of an empty 500.
func (a *API) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				a.log.Error("panic in handler",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.Any("panic", rec),
					zap.Stack("stack"),
				)
				writeJSON(w, http.StatusInternalServerError, envelope{
					Error: &errorBody{Code: "internal_error", Message: "internal error"},
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
