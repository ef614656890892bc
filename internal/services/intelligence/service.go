package intelligence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/BearBump/SalesTrack/internal/cache"
	"github.com/BearBump/SalesTrack/internal/logging"
	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Repository interface {
	ListOrders(ctx context.Context, f models.OrderFilter) ([]*models.Order, error)
}

// defaultPageSize stays below the store's per-call row cap.
const defaultPageSize = 5000

type Service struct {
	repo Repository
	log  *zap.Logger

	cache    cache.BytesCache
	cacheTTL time.Duration

	pageSize int

	now func() time.Time
}

func New(repo Repository, log *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		log:      logging.OrNop(log),
		pageSize: defaultPageSize,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithCache caches computed (non-demo) reports for ttl.
func (s *Service) WithCache(c cache.BytesCache, ttl time.Duration) *Service {
	s.cache = c
	s.cacheTTL = ttl
	return s
}

// OrderMetrics never fails: an empty or failing store yields the synthetic
// report with DemoMode set and an explanatory message.
func (s *Service) OrderMetrics(ctx context.Context, timeRange string) (*OrderMetrics, error) {
	timeRange = NormalizeRange(timeRange)
	key := "metrics:orders:" + timeRange

	if s.cache != nil && s.cacheTTL > 0 {
		if b, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			var m OrderMetrics
			if json.Unmarshal(b, &m) == nil {
				return &m, nil
			}
		}
	}

	now := s.now()
	from := now.Add(-rangeWindow(timeRange))
	orders, err := s.loadOrders(ctx, models.OrderFilter{From: &from, To: &now})
	if err != nil {
		s.log.Warn("load orders for metrics", zap.String("range", timeRange), zap.Error(err))
		m := SyntheticOrderMetrics(timeRange, now)
		m.Message = "order data is unavailable; showing demo data"
		return m, nil
	}

	m := ComputeOrderMetrics(orders, timeRange, now)
	if !m.DemoMode && s.cache != nil && s.cacheTTL > 0 {
		if b, err := json.Marshal(m); err == nil {
			_ = s.cache.Set(ctx, key, b, s.cacheTTL)
		}
	}
	return m, nil
}

// OrderStats degrades to an empty report when the store is unavailable.
func (s *Service) OrderStats(ctx context.Context, f StatsFilter) (*OrderStatsReport, error) {
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, apperr.Validation("'to' must not be before 'from'")
	}
	if f.OrderType != nil && *f.OrderType != models.OrderTypeD2C && *f.OrderType != models.OrderTypeB2B {
		return nil, apperr.Validation("unknown order type %q", *f.OrderType)
	}

	orders, err := s.loadOrders(ctx, models.OrderFilter{From: f.From, To: f.To, OrderType: f.OrderType})
	if err != nil {
		if !errors.Is(err, apperr.ErrBackendUnavailable) {
			return nil, err
		}
		s.log.Warn("load orders for stats", zap.Error(err))
		r := OrderStats(nil, f)
		r.Degraded = true
		r.Message = "order data is temporarily unavailable"
		return r, nil
	}
	return OrderStats(orders, f), nil
}

// loadOrders reads the whole window page by page, so aggregates are never
// computed on a truncated set.
func (s *Service) loadOrders(ctx context.Context, f models.OrderFilter) ([]*models.Order, error) {
	f.Limit = s.pageSize
	var out []*models.Order
	for {
		f.Offset = len(out)
		page, err := s.repo.ListOrders(ctx, f)
		if err != nil {
			return nil, err
		}
		out = append(out, page...)
		if len(page) < f.Limit {
			return out, nil
		}
	}
}
