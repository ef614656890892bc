package main

import (
	"context"
	"time"

	"github.com/BearBump/SalesTrack/config"
	"github.com/BearBump/SalesTrack/internal/broker/kafka"
	"github.com/BearBump/SalesTrack/internal/cache/rediscache"
	"github.com/BearBump/SalesTrack/internal/integrations/carrier"
	"github.com/BearBump/SalesTrack/internal/integrations/carrier/emulatorv1"
	"github.com/BearBump/SalesTrack/internal/integrations/carrier/fake"
	"github.com/BearBump/SalesTrack/internal/integrations/carrier/track24http"
	"github.com/BearBump/SalesTrack/internal/services/poller"
	"github.com/BearBump/SalesTrack/internal/storage/pgstore"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type workerFactories struct {
	newStorage       func(cfg *config.Config) (repo poller.Repository, closeFn func(), err error)
	newProducer      func(cfg *config.Config) (poller.Producer, func())
	newRateLimiter   func(cfg *config.Config) (poller.RateLimiter, func())
	newCarrierClient func(cfg *config.Config) carrier.Client
}

func defaultWorkerFactories() workerFactories {
	return workerFactories{
		newStorage: func(cfg *config.Config) (poller.Repository, func(), error) {
			st, err := pgstore.New(cfg.Database.ConnString())
			if err != nil {
				return nil, nil, err
			}
			return st, st.Close, nil
		},
		newProducer: func(cfg *config.Config) (poller.Producer, func()) {
			p := kafka.NewProducer(cfg.Kafka.Brokers())
			return p, func() { _ = p.Close() }
		},
		newRateLimiter: func(cfg *config.Config) (poller.RateLimiter, func()) {
			rc := rediscache.New(cfg.Redis.Addr())
			return rediscache.NewRateLimiter(rc.Client()), func() { _ = rc.Close() }
		},
		newCarrierClient: func(cfg *config.Config) carrier.Client {
			st := cfg.SalesTrack
			// Без base_url работаем на локальном fake, удобно для демо.
			if st.CarrierEmulatorBaseURL != "" && st.CarrierEmulatorMode != "" {
				switch st.CarrierEmulatorMode {
				case "v1":
					return emulatorv1.New(st.CarrierEmulatorBaseURL, st.CarrierEmulatorAPIKey)
				case "track24":
					return track24http.New(st.CarrierEmulatorBaseURL, st.CarrierEmulatorAPIKey, st.CarrierEmulatorDomain)
				default:
					return fake.New()
				}
			}
			return fake.New()
		},
	}
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

func plannerConfig(st config.SalesTrackConfig) poller.PlannerConfig {
	return poller.PlannerConfig{
		InTransitMinDelay: seconds(st.WorkerNextCheckInTransitMinSeconds),
		InTransitMaxDelay: seconds(st.WorkerNextCheckInTransitMaxSeconds),
		UnknownDelay:      seconds(st.WorkerNextCheckUnknownSeconds),
		Backoff1:          seconds(st.WorkerBackoff1Seconds),
		Backoff2:          seconds(st.WorkerBackoff2Seconds),
		Backoff3:          seconds(st.WorkerBackoff3Seconds),
		Backoff4:          seconds(st.WorkerBackoff4Seconds),
	}
}

// RunWorker polls carriers until ctx is done. The ops HTTP server runs
// alongside when worker_http_addr is set.
func RunWorker(ctx context.Context, cfg *config.Config, f workerFactories, log *zap.Logger, httpOpts *workerHTTPOpts) error {
	topic := cfg.Kafka.CarrierUpdatesTopic
	if topic == "" {
		topic = "carrier.updates"
	}
	st := cfg.SalesTrack

	repo, closeFn, err := f.newStorage(cfg)
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}

	producer, closeProducer := f.newProducer(cfg)
	if closeProducer != nil {
		defer closeProducer()
	}

	rl, closeRL := f.newRateLimiter(cfg)
	if closeRL != nil {
		defer closeRL()
	}

	// Нулевые значения: poller оставит свои дефолты.
	p := poller.New(repo, f.newCarrierClient(cfg), producer, rl, topic).
		WithLogger(log).
		WithSettings(seconds(st.WorkerPollIntervalSeconds), st.WorkerBatchSize, st.WorkerConcurrency,
			seconds(st.WorkerLeaseSeconds), int64(st.WorkerRateLimitPerMinute)).
		WithCarrierRateLimits(st.WorkerCarrierRateLimits).
		WithPlanner(plannerConfig(st))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("poller started", zap.String("topic", topic))
		return p.Run(gctx)
	})
	if httpOpts != nil {
		httpOpts.poller = p
		httpOpts.cfg = cfg
		g.Go(func() error { return runWorkerHTTPServer(gctx, *httpOpts) })
	}
	return g.Wait()
}
