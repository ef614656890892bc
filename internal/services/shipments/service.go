package shipments

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/BearBump/SalesTrack/internal/broker/messages"
	"github.com/BearBump/SalesTrack/internal/cache"
	"github.com/BearBump/SalesTrack/internal/carriers"
	"github.com/BearBump/SalesTrack/internal/integrations/carrier"
	"github.com/BearBump/SalesTrack/internal/logging"
	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/BearBump/SalesTrack/internal/storage/pgstore"
	"github.com/BearBump/SalesTrack/internal/validation"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	sourceSystem = "system"
	sourceManual = "manual"
)

type Repository interface {
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ShipOrder(ctx context.Context, u models.ShipmentUpdate) (*models.Order, error)
	AppendEvent(ctx context.Context, e *models.TrackingEvent) error
	ListEvents(ctx context.Context, orderID string, limit int) ([]*models.TrackingEvent, error)
	RecordDelivery(ctx context.Context, p *models.DeliveryProof, ev *models.TrackingEvent) (*models.Order, error)
	GetDeliveryProof(ctx context.Context, orderID string) (*models.DeliveryProof, error)
	RefreshShipment(ctx context.Context, orderID string, now time.Time) error
	ApplyCarrierSync(ctx context.Context, u pgstore.CarrierSync) (int, error)
}

type Publisher interface {
	PublishOrderEvent(ctx context.Context, ev messages.OrderEventMessage) error
}

// BlobStore keeps delivery proof images and returns their URL.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
}

type Service struct {
	repo     Repository
	registry *carriers.Registry
	pub      Publisher
	blobs    BlobStore
	log      *zap.Logger

	cache    cache.BytesCache
	cacheTTL time.Duration

	now   func() time.Time
	newID func() string
}

func New(repo Repository, registry *carriers.Registry, log *zap.Logger) *Service {
	if registry == nil {
		registry = carriers.NewDefault()
	}
	return &Service{
		repo:     repo,
		registry: registry,
		log:      logging.OrNop(log),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// WithCache enables the tracking view cache; a nil cache or ttl <= 0 keeps it off.
func (s *Service) WithCache(c cache.BytesCache, ttl time.Duration) *Service {
	s.cache = c
	s.cacheTTL = ttl
	return s
}

func (s *Service) WithPublisher(p Publisher) *Service {
	s.pub = p
	return s
}

func (s *Service) WithBlobStore(b BlobStore) *Service {
	s.blobs = b
	return s
}

func (s *Service) Carriers() []carriers.Carrier {
	return s.registry.List()
}

func (s *Service) DetectCarrier(trackingNumber string) (string, bool) {
	return s.registry.Detect(trackingNumber)
}

// UpdateTracking attaches tracking data to the order and marks it shipped.
// An explicit carrier must be registered; otherwise the carrier is detected
// from the number and may stay empty.
func (s *Service) UpdateTracking(ctx context.Context, orderID string, in models.TrackingUpdateInput) (*models.Order, error) {
	if orderID == "" {
		return nil, apperr.Validation("order id is required")
	}
	in.TrackingNumber = strings.TrimSpace(in.TrackingNumber)
	in.Carrier = strings.ToLower(strings.TrimSpace(in.Carrier))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if carriers.Normalize(in.TrackingNumber) == "" {
		return nil, apperr.Validation("tracking number is required")
	}

	var c *carriers.Carrier
	if in.Carrier != "" {
		var ok bool
		if c, ok = s.registry.Get(in.Carrier); !ok {
			return nil, apperr.NotFound("carrier %q is not registered", in.Carrier)
		}
	} else if code, ok := s.registry.Detect(in.TrackingNumber); ok {
		c, _ = s.registry.Get(code)
	} else {
		s.log.Info("carrier not detected", zap.String("order_id", orderID), zap.String("tracking_number", in.TrackingNumber))
	}

	now := s.now()
	u := models.ShipmentUpdate{
		OrderID:           orderID,
		TrackingNumber:    in.TrackingNumber,
		CarrierService:    in.Service,
		EstimatedDelivery: in.EstimatedDelivery,
		ShippedAt:         now,
	}
	desc := "Shipment created"
	if c != nil {
		u.Carrier = c.Code
		u.TrackingURL = c.TrackingURL(in.TrackingNumber)
		desc = "Shipped via " + c.Name
	}
	u.Event = &models.TrackingEvent{
		ID:          s.newID(),
		OrderID:     orderID,
		EventType:   models.EventShipped,
		Status:      string(models.OrderShipped),
		Description: desc,
		Source:      sourceSystem,
		OccurredAt:  now,
		CreatedAt:   now,
	}

	o, err := s.repo.ShipOrder(ctx, u)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, orderID)
	s.publish(ctx, messages.OrderEventMessage{
		Type: messages.OrderShipped, OrderID: orderID, At: now, Status: o.Status,
		TrackingNumber: o.TrackingNumber, Carrier: o.Carrier, EventType: models.EventShipped,
	})
	return o, nil
}

// AddEvent appends a manual tracking event; the order status is untouched.
func (s *Service) AddEvent(ctx context.Context, orderID string, in models.EventInput) (*models.TrackingEvent, error) {
	if orderID == "" {
		return nil, apperr.Validation("order id is required")
	}
	in.EventType = strings.TrimSpace(in.EventType)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	now := s.now()
	occurred := now
	if in.Timestamp != nil {
		occurred = in.Timestamp.UTC()
	}
	e := &models.TrackingEvent{
		ID:          s.newID(),
		OrderID:     orderID,
		EventType:   in.EventType,
		Status:      in.Status,
		Location:    in.Location,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Description: in.Description,
		Source:      sourceManual,
		OccurredAt:  occurred,
		CreatedAt:   now,
	}
	if err := s.repo.AppendEvent(ctx, e); err != nil {
		return nil, err
	}
	s.invalidate(ctx, orderID)
	s.publish(ctx, messages.OrderEventMessage{Type: messages.OrderEvent, OrderID: orderID, At: now, EventType: e.EventType})
	return e, nil
}

// RecordDeliveryProof stores the proof, uploads signature/photo bytes when
// given and marks the order delivered. An order has at most one proof.
func (s *Service) RecordDeliveryProof(ctx context.Context, orderID string, in models.DeliveryProofInput) (*models.DeliveryProof, error) {
	if orderID == "" {
		return nil, apperr.Validation("order id is required")
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	// Заказ и отсутствие пруфа проверяем до загрузки в blob storage,
	// иначе останутся объекты без записи.
	if _, err := s.repo.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetDeliveryProof(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("order %s already has a delivery proof", orderID)
	}

	now := s.now()
	p := &models.DeliveryProof{
		ID:            s.newID(),
		OrderID:       orderID,
		ProofType:     in.ProofType,
		SignatureURL:  in.SignatureURL,
		PhotoURL:      in.PhotoURL,
		RecipientName: strings.TrimSpace(in.RecipientName),
		Notes:         in.Notes,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		DeliveredAt:   now,
		DriverName:    in.DriverName,
		CreatedAt:     now,
	}
	if len(in.Signature) > 0 {
		if p.SignatureURL, err = s.upload(ctx, orderID, p.ID, "signature", in.Signature); err != nil {
			return nil, err
		}
	}
	if len(in.Photo) > 0 {
		if p.PhotoURL, err = s.upload(ctx, orderID, p.ID, "photo", in.Photo); err != nil {
			return nil, err
		}
	}
	if p.ProofType == "" {
		p.ProofType = proofTypeOf(p)
	}

	desc := "Package delivered"
	if p.RecipientName != "" {
		desc = "Delivered to " + p.RecipientName
	}
	ev := &models.TrackingEvent{
		ID:          s.newID(),
		OrderID:     orderID,
		EventType:   models.EventDelivered,
		Status:      string(models.OrderDelivered),
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Description: desc,
		Source:      sourceSystem,
		OccurredAt:  now,
		CreatedAt:   now,
	}

	o, err := s.repo.RecordDelivery(ctx, p, ev)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, orderID)
	s.publish(ctx, messages.OrderEventMessage{
		Type: messages.OrderDelivered, OrderID: orderID, At: now, Status: o.Status,
		TrackingNumber: o.TrackingNumber, Carrier: o.Carrier, EventType: models.EventDelivered,
	})
	return p, nil
}

func (s *Service) upload(ctx context.Context, orderID, proofID, kind string, data []byte) (string, error) {
	if s.blobs == nil {
		return "", apperr.Unavailable(errors.New("blob storage is not configured"), "upload "+kind)
	}
	url, err := s.blobs.Put(ctx, "proofs/"+orderID+"/"+proofID+"-"+kind, data)
	if err != nil {
		return "", apperr.Unavailable(err, "upload "+kind)
	}
	return url, nil
}

func proofTypeOf(p *models.DeliveryProof) models.ProofType {
	switch {
	case p.SignatureURL != "" && p.PhotoURL != "":
		return models.ProofSignatureAndPhoto
	case p.SignatureURL != "":
		return models.ProofSignature
	case p.PhotoURL != "":
		return models.ProofPhoto
	default:
		return models.ProofNone
	}
}

// GetOrderTracking returns the order with its events (newest first) and the
// delivery proof. An unavailable store yields a degraded view, not an error.
func (s *Service) GetOrderTracking(ctx context.Context, orderID string) (*models.OrderTracking, error) {
	if orderID == "" {
		return nil, apperr.Validation("order id is required")
	}

	// Ошибки Redis не мешают чтению из БД.
	if s.cacheEnabled() {
		if b, ok, err := s.cache.Get(ctx, trackingKey(orderID)); err == nil && ok {
			var v models.OrderTracking
			if json.Unmarshal(b, &v) == nil {
				return &v, nil
			}
		}
	}

	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return s.degrade(orderID, err)
	}
	events, err := s.repo.ListEvents(ctx, orderID, 0)
	if err != nil {
		return s.degrade(orderID, err)
	}
	proof, err := s.repo.GetDeliveryProof(ctx, orderID)
	if err != nil {
		return s.degrade(orderID, err)
	}
	if events == nil {
		events = []*models.TrackingEvent{}
	}

	v := &models.OrderTracking{Order: o, Events: events, DeliveryProof: proof}
	if s.cacheEnabled() {
		if b, err := json.Marshal(v); err == nil {
			_ = s.cache.Set(ctx, trackingKey(orderID), b, s.cacheTTL)
		}
	}
	return v, nil
}

func (s *Service) degrade(orderID string, err error) (*models.OrderTracking, error) {
	if !errors.Is(err, apperr.ErrBackendUnavailable) {
		return nil, err
	}
	s.log.Warn("tracking store unavailable", zap.String("order_id", orderID), zap.Error(err))
	return &models.OrderTracking{
		Events:   []*models.TrackingEvent{},
		Degraded: true,
		Message:  "tracking data is temporarily unavailable",
	}, nil
}

// RefreshTracking makes a shipped order due for the next carrier poll.
func (s *Service) RefreshTracking(ctx context.Context, orderID string) error {
	if orderID == "" {
		return apperr.Validation("order id is required")
	}
	return s.repo.RefreshShipment(ctx, orderID, s.now())
}

// ApplyCarrierUpdate stores the result of one carrier poll. Duplicate carrier
// events are skipped by the store and the order status never changes here.
func (s *Service) ApplyCarrierUpdate(ctx context.Context, msg messages.CarrierUpdate) error {
	if msg.OrderID == "" {
		return apperr.Validation("order_id is required")
	}
	if msg.CheckedAt.IsZero() {
		msg.CheckedAt = s.now()
	}
	if msg.NextCheckAt.IsZero() {
		// воркер не прислал next_check_at: проверим через час
		msg.NextCheckAt = msg.CheckedAt.Add(60 * time.Minute)
	}

	events := make([]*models.TrackingEvent, 0, len(msg.Events))
	for _, e := range msg.Events {
		events = append(events, &models.TrackingEvent{
			ID:          s.newID(),
			OrderID:     msg.OrderID,
			EventType:   carrier.EventType(e.Status),
			Status:      e.StatusRaw,
			Location:    deref(e.Location),
			Description: deref(e.Message),
			Source:      "carrier",
			OccurredAt:  e.EventTime.UTC(),
			CreatedAt:   msg.CheckedAt,
		})
	}

	inserted, err := s.repo.ApplyCarrierSync(ctx, pgstore.CarrierSync{
		OrderID:     msg.OrderID,
		CheckedAt:   msg.CheckedAt,
		NextCheckAt: msg.NextCheckAt,
		Events:      events,
		Error:       msg.Error,
	})
	if err != nil {
		return err
	}
	if inserted == 0 {
		return nil
	}

	s.invalidate(ctx, msg.OrderID)
	s.publish(ctx, messages.OrderEventMessage{
		Type: messages.OrderEvent, OrderID: msg.OrderID, At: msg.CheckedAt,
		TrackingNumber: msg.TrackingNumber, Carrier: msg.Carrier,
		EventType: events[len(events)-1].EventType,
	})
	return nil
}

func (s *Service) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

func (s *Service) invalidate(ctx context.Context, orderID string) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.Delete(ctx, trackingKey(orderID)); err != nil {
		s.log.Warn("invalidate tracking cache", zap.String("order_id", orderID), zap.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, ev messages.OrderEventMessage) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishOrderEvent(ctx, ev); err != nil {
		s.log.Warn("publish order event", zap.String("type", ev.Type), zap.String("order_id", ev.OrderID), zap.Error(err))
	}
}

func trackingKey(orderID string) string {
	return "order:" + orderID + ":tracking"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
