package poller

import (
	"math/rand"
	"time"

	"github.com/BearBump/SalesTrack/internal/integrations/carrier"
)

// Rand is the jitter source; *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// PlannerConfig decides when a shipped order is asked about again. Zero
// fields take the value from DefaultPlannerConfig.
type PlannerConfig struct {
	// Parcels the carrier reports as delivered stay shipped until a delivery
	// proof arrives; they are parked this long.
	DeliveredDelay time.Duration

	InTransitMinDelay time.Duration
	InTransitMaxDelay time.Duration

	UnknownDelay time.Duration

	// Consecutive carrier failures 1, 2, 3 and 4+.
	Backoff1 time.Duration
	Backoff2 time.Duration
	Backoff3 time.Duration
	Backoff4 time.Duration
}

func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		DeliveredDelay:    365 * 24 * time.Hour,
		InTransitMinDelay: 30 * time.Minute,
		InTransitMaxDelay: 120 * time.Minute,
		UnknownDelay:      90 * time.Minute,
		Backoff1:          5 * time.Minute,
		Backoff2:          15 * time.Minute,
		Backoff3:          30 * time.Minute,
		Backoff4:          60 * time.Minute,
	}
}

func (c PlannerConfig) withDefaults() PlannerConfig {
	def := DefaultPlannerConfig()
	pick := func(v, d time.Duration) time.Duration {
		if v > 0 {
			return v
		}
		return d
	}
	c.DeliveredDelay = pick(c.DeliveredDelay, def.DeliveredDelay)
	c.InTransitMinDelay = pick(c.InTransitMinDelay, def.InTransitMinDelay)
	c.InTransitMaxDelay = pick(c.InTransitMaxDelay, def.InTransitMaxDelay)
	if c.InTransitMaxDelay < c.InTransitMinDelay {
		c.InTransitMaxDelay = c.InTransitMinDelay
	}
	c.UnknownDelay = pick(c.UnknownDelay, def.UnknownDelay)
	c.Backoff1 = pick(c.Backoff1, def.Backoff1)
	c.Backoff2 = pick(c.Backoff2, def.Backoff2)
	c.Backoff3 = pick(c.Backoff3, def.Backoff3)
	c.Backoff4 = pick(c.Backoff4, def.Backoff4)
	return c
}

type Planner struct {
	cfg     PlannerConfig
	backoff []time.Duration
	r       Rand
}

func NewPlanner(cfg PlannerConfig, r Rand) *Planner {
	cfg = cfg.withDefaults()
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Planner{
		cfg:     cfg,
		backoff: []time.Duration{cfg.Backoff1, cfg.Backoff2, cfg.Backoff3, cfg.Backoff4},
		r:       r,
	}
}

// NextCheckDelay is the pause after a successful poll that reported status.
// In-transit parcels are spread over the configured window with one-second
// granularity so a batch shipped together does not come due together.
func (p *Planner) NextCheckDelay(status string) time.Duration {
	switch status {
	case carrier.StatusDelivered:
		return p.cfg.DeliveredDelay
	case carrier.StatusInTransit, carrier.StatusOutForDelivery:
		return p.jitter(p.cfg.InTransitMinDelay, p.cfg.InTransitMaxDelay)
	default:
		return p.cfg.UnknownDelay
	}
}

func (p *Planner) jitter(lo, hi time.Duration) time.Duration {
	span := int((hi - lo) / time.Second)
	if span <= 0 {
		return lo
	}
	return lo + time.Duration(p.r.Intn(span+1))*time.Second
}

// BackoffDelay is the pause after the failures-th consecutive carrier error.
func (p *Planner) BackoffDelay(failures int32) time.Duration {
	i := int(failures) - 1
	if i < 0 {
		i = 0
	}
	if i >= len(p.backoff) {
		i = len(p.backoff) - 1
	}
	return p.backoff[i]
}

// Config reports the effective settings after defaults were applied.
func (p *Planner) Config() PlannerConfig { return p.cfg }
