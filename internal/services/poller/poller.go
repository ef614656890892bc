package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BearBump/SalesTrack/internal/broker/messages"
	"github.com/BearBump/SalesTrack/internal/integrations/carrier"
	"github.com/BearBump/SalesTrack/internal/logging"
	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Repository interface {
	ClaimDueShipments(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]*models.Order, error)
}

type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error)
}

// Poller claims shipped orders that are due for a carrier check, asks the
// carrier and publishes a CarrierUpdate per order. It never writes orders.
type Poller struct {
	repo     Repository
	carrier  carrier.Client
	producer Producer
	rl       RateLimiter
	log      *zap.Logger

	topic string

	planner *Planner

	pollInterval        time.Duration
	batchSize           int
	concurrency         int
	lease               time.Duration
	rateLimitPerMinute  int64
	carrierRateLimits   map[string]int64
	rateLimitedPause    time.Duration
	publishAttempts     int
	publishRetryBackoff time.Duration

	triggerCh chan struct{}

	startedAtUnixNano   int64
	lastCycleUnixNano   atomic.Int64
	lastTriggerUnixNano atomic.Int64
	totalClaimed        atomic.Int64
	totalProcessed      atomic.Int64
	totalErrors         atomic.Int64
	inFlight            atomic.Int64
	lastErrorMu         sync.Mutex
	lastError           string
}

func New(repo Repository, c carrier.Client, producer Producer, rl RateLimiter, topic string) *Poller {
	return &Poller{
		repo: repo, carrier: c, producer: producer, rl: rl, topic: topic,
		log:                 zap.NewNop(),
		planner:             DefaultPlanner(),
		pollInterval:        2 * time.Second,
		batchSize:           100,
		concurrency:         10,
		lease:               120 * time.Second,
		rateLimitPerMinute:  120,
		carrierRateLimits:   map[string]int64{},
		rateLimitedPause:    500 * time.Millisecond,
		publishAttempts:     10,
		publishRetryBackoff: 150 * time.Millisecond,
		triggerCh:           make(chan struct{}, 1),
		startedAtUnixNano:   time.Now().UTC().UnixNano(),
	}
}

func DefaultPlanner() *Planner {
	return NewPlanner(DefaultPlannerConfig(), nil)
}

func (p *Poller) WithLogger(l *zap.Logger) *Poller {
	p.log = logging.OrNop(l)
	return p
}

func (p *Poller) WithSettings(pollInterval time.Duration, batchSize, concurrency int, lease time.Duration, rlPerMin int64) *Poller {
	if pollInterval > 0 {
		p.pollInterval = pollInterval
	}
	if batchSize > 0 {
		p.batchSize = batchSize
	}
	if concurrency > 0 {
		p.concurrency = concurrency
	}
	if lease > 0 {
		p.lease = lease
	}
	if rlPerMin > 0 {
		p.rateLimitPerMinute = rlPerMin
	}
	return p
}

func (p *Poller) WithPlanner(cfg PlannerConfig) *Poller {
	p.planner = NewPlanner(cfg, nil)
	return p
}

// WithCarrierRateLimits overrides the per-minute limit for single carriers.
func (p *Poller) WithCarrierRateLimits(perMinute map[string]int) *Poller {
	for code, n := range perMinute {
		if n > 0 {
			p.carrierRateLimits[strings.ToLower(code)] = int64(n)
		}
	}
	return p
}

// Trigger forces an immediate poll cycle (best-effort, non-blocking).
func (p *Poller) Trigger() {
	p.lastTriggerUnixNano.Store(time.Now().UTC().UnixNano())
	select {
	case p.triggerCh <- struct{}{}:
	default:
	}
}

type Stats struct {
	StartedAt      time.Time  `json:"started_at"`
	LastCycleAt    *time.Time `json:"last_cycle_at,omitempty"`
	LastTriggerAt  *time.Time `json:"last_trigger_at,omitempty"`
	TotalClaimed   int64      `json:"total_claimed"`
	TotalProcessed int64      `json:"total_processed"`
	TotalErrors    int64      `json:"total_errors"`
	InFlight       int64      `json:"in_flight"`
	LastError      string     `json:"last_error,omitempty"`
}

func (p *Poller) Stats() Stats {
	st := Stats{
		StartedAt:      time.Unix(0, p.startedAtUnixNano).UTC(),
		TotalClaimed:   p.totalClaimed.Load(),
		TotalProcessed: p.totalProcessed.Load(),
		TotalErrors:    p.totalErrors.Load(),
		InFlight:       p.inFlight.Load(),
	}
	if n := p.lastCycleUnixNano.Load(); n > 0 {
		t := time.Unix(0, n).UTC()
		st.LastCycleAt = &t
	}
	if n := p.lastTriggerUnixNano.Load(); n > 0 {
		t := time.Unix(0, n).UTC()
		st.LastTriggerAt = &t
	}
	p.lastErrorMu.Lock()
	st.LastError = p.lastError
	p.lastErrorMu.Unlock()
	return st
}

func (p *Poller) Run(ctx context.Context) error {
	t := time.NewTicker(p.pollInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			p.runOnce(ctx)
		case <-p.triggerCh:
			p.runOnce(ctx)
		}
	}
}

func (p *Poller) setLastError(err error) {
	p.lastErrorMu.Lock()
	p.lastError = err.Error()
	p.lastErrorMu.Unlock()
}

func (p *Poller) runOnce(ctx context.Context) {
	now := time.Now().UTC()
	p.lastCycleUnixNano.Store(now.UnixNano())

	items, err := p.repo.ClaimDueShipments(ctx, now, p.batchSize, p.lease)
	if err != nil {
		p.log.Error("claim due shipments", zap.Error(err))
		p.setLastError(err)
		return
	}
	p.totalClaimed.Add(int64(len(items)))

	sem := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup
	for _, o := range items {
		sem <- struct{}{}
		wg.Add(1)
		p.inFlight.Add(1)
		go func() {
			defer func() {
				p.inFlight.Add(-1)
				<-sem
				wg.Done()
			}()
			if err := p.processOne(ctx, o); err != nil {
				p.totalErrors.Add(1)
				p.setLastError(err)
				p.log.Error("process shipment", zap.String("order_id", o.ID), zap.Error(err))
			}
			p.totalProcessed.Add(1)
		}()
	}
	wg.Wait()
}

func (p *Poller) limitFor(code string) int64 {
	if n, ok := p.carrierRateLimits[strings.ToLower(code)]; ok {
		return n
	}
	return p.rateLimitPerMinute
}

func (p *Poller) processOne(ctx context.Context, o *models.Order) error {
	now := time.Now().UTC()

	if p.rl != nil && p.rateLimitPerMinute > 0 {
		minuteKey := fmt.Sprintf("rl:carrier:%s:%s", o.Carrier, now.Format("200601021504"))
		allowed, n, err := p.rl.Allow(ctx, minuteKey, p.limitFor(o.Carrier), 70*time.Second)
		if err != nil {
			return errors.Wrap(err, "rate limiter")
		}
		if !allowed {
			// Слишком много запросов в минуту: подождём немного, чтобы разгрузить источник.
			p.log.Warn("rate limit exceeded", zap.String("carrier", o.Carrier), zap.Int64("count", n))
			if err := sleepCtx(ctx, p.rateLimitedPause); err != nil {
				return err
			}
		}
	}

	res, err := p.carrier.GetTracking(ctx, o.Carrier, o.TrackingNumber)
	msg := messages.CarrierUpdate{
		OrderID:        o.ID,
		TrackingNumber: o.TrackingNumber,
		Carrier:        o.Carrier,
		CheckedAt:      now,
	}

	if err != nil {
		e := err.Error()
		msg.Error = &e
		msg.NextCheckAt = now.Add(p.planner.BackoffDelay(o.CheckFailCount + 1))
	} else {
		msg.Status = res.Status
		msg.StatusRaw = res.StatusRaw
		msg.StatusAt = res.StatusAt
		msg.NextCheckAt = now.Add(p.planner.NextCheckDelay(res.Status))
		for _, e := range res.Events {
			msg.Events = append(msg.Events, messages.CarrierEvent{
				Status:    e.Status,
				StatusRaw: e.StatusRaw,
				EventTime: e.EventTime,
				Location:  e.Location,
				Message:   e.Message,
				Payload:   e.Payload,
			})
		}
	}

	b, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal carrier update")
	}

	// Kafka может быть не готова сразу после старта docker compose,
	// поэтому публикуем с небольшим retry.
	var pubErr error
	for i := 0; i < p.publishAttempts; i++ {
		if pubErr = p.producer.Publish(ctx, p.topic, []byte(o.ID), b); pubErr == nil {
			return nil
		}
		if err := sleepCtx(ctx, time.Duration(i+1)*p.publishRetryBackoff); err != nil {
			return err
		}
	}
	return errors.Wrap(pubErr, "publish carrier update")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
