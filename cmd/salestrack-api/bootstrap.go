package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BearBump/SalesTrack/config"
	"github.com/BearBump/SalesTrack/internal/api/httpapi"
	"github.com/BearBump/SalesTrack/internal/blobstore/miniostore"
	"github.com/BearBump/SalesTrack/internal/broker/kafka"
	"github.com/BearBump/SalesTrack/internal/cache/rediscache"
	"github.com/BearBump/SalesTrack/internal/carriers"
	"github.com/BearBump/SalesTrack/internal/integrations/calendar"
	calfake "github.com/BearBump/SalesTrack/internal/integrations/calendar/fake"
	"github.com/BearBump/SalesTrack/internal/integrations/calendar/httpcal"
	"github.com/BearBump/SalesTrack/internal/logging"
	"github.com/BearBump/SalesTrack/internal/services/intelligence"
	"github.com/BearBump/SalesTrack/internal/services/leads"
	"github.com/BearBump/SalesTrack/internal/services/shipments"
	"github.com/BearBump/SalesTrack/internal/storage/pgstore"
	"go.uber.org/zap"
)

type apiApp struct {
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.Logger

	opts      apiOpts
	handler   http.Handler
	consumers []consumerSpec

	closers []func()
}

func mustBootstrapAPI() *apiApp {
	cfgPath := os.Getenv("configPath")
	if cfgPath == "" {
		panic("configPath env var is required")
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}

	log, err := logging.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}

	st := cfg.SalesTrack
	httpAddr := st.HTTPAddr
	if httpAddr == "" {
		httpAddr = ":8080"
	}
	consumerGroup := st.KafkaConsumerGroup
	if consumerGroup == "" {
		consumerGroup = "salestrack-api"
	}
	trackingTTL := time.Duration(st.TrackingCacheTTLSeconds) * time.Second
	if trackingTTL <= 0 {
		trackingTTL = 5 * time.Minute
	}
	metricsTTL := time.Duration(st.MetricsCacheTTLSeconds) * time.Second
	if metricsTTL <= 0 {
		metricsTTL = 10 * time.Minute
	}
	intakeTopic := cfg.Kafka.LeadIntakeTopic
	if intakeTopic == "" {
		intakeTopic = "lead.intake"
	}
	updatesTopic := cfg.Kafka.CarrierUpdatesTopic
	if updatesTopic == "" {
		updatesTopic = "carrier.updates"
	}

	app := &apiApp{log: log, opts: apiOpts{httpAddr: httpAddr}}

	store := mustOpenPostgresWithRetry(cfg.Database.ConnString(), 60*time.Second, log)
	app.closers = append(app.closers, store.Close)

	rc := rediscache.New(cfg.Redis.Addr())
	app.closers = append(app.closers, func() { _ = rc.Close() })

	brokers := cfg.Kafka.Brokers()
	producer := kafka.NewProducer(brokers)
	app.closers = append(app.closers, func() { _ = producer.Close() })
	events := kafka.NewEventPublisher(producer, cfg.Kafka.LeadEventsTopic, cfg.Kafka.OrderEventsTopic)

	registry := carriers.NewDefault()
	if st.CarriersPath != "" {
		if registry, err = carriers.LoadFile(st.CarriersPath); err != nil {
			panic(err)
		}
	}

	leadSvc := leads.New(store, log.Named("leads")).
		WithPublisher(events).
		WithLocker(rediscache.NewLocker(rc.Client())).
		WithSettings(st.StrictStageTransitions, st.DefaultPhoneRegion, time.Duration(st.ConversionLockSeconds)*time.Second)
	if cal := newCalendar(cfg.Calendar); cal != nil {
		leadSvc = leadSvc.WithCalendar(cal)
	}

	shipSvc := shipments.New(store, registry, log.Named("shipments")).
		WithCache(rc, trackingTTL).
		WithPublisher(events)
	if cfg.MinIO.Endpoint != "" {
		blobs, err := miniostore.New(miniostore.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			UseSSL:    cfg.MinIO.UseSSL,
			PublicURL: cfg.MinIO.PublicURL,
		})
		if err != nil {
			panic(err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := blobs.EnsureBucket(ctx); err != nil {
			// Загрузка подтверждений будет отвечать 503, пока MinIO не поднимется.
			log.Warn("minio bucket is not ready", zap.Error(err))
		}
		cancel()
		shipSvc = shipSvc.WithBlobStore(blobs)
	}

	metricsSvc := intelligence.New(store, log.Named("intelligence")).WithCache(rc, metricsTTL)

	app.handler = httpapi.New(leadSvc, shipSvc, metricsSvc, log.Named("http")).
		WithSwagger(os.Getenv("swaggerPath")).
		Router()

	intake := kafka.NewConsumer(brokers, intakeTopic, consumerGroup).WithLogger(log)
	updates := kafka.NewConsumer(brokers, updatesTopic, consumerGroup).WithLogger(log)
	app.closers = append(app.closers, func() { _ = intake.Close() }, func() { _ = updates.Close() })
	app.consumers = []consumerSpec{
		{name: intakeTopic, consumer: intake, handle: leadIntakeHandler(leadSvc, log)},
		{name: updatesTopic, consumer: updates, handle: carrierUpdateHandler(shipSvc, log)},
	}

	app.ctx, app.cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return app
}

func newCalendar(c config.CalendarConfig) calendar.Client {
	switch c.Mode {
	case "http":
		return httpcal.New(c.BaseURL, c.Token, c.CalendarID)
	case "fake":
		return calfake.New()
	default:
		return nil
	}
}

func mustOpenPostgresWithRetry(connString string, wait time.Duration, log *zap.Logger) *pgstore.Storage {
	deadline := time.Now().Add(wait)
	var lastErr error
	for time.Now().Before(deadline) {
		st, err := pgstore.New(connString)
		if err == nil {
			return st
		}
		lastErr = err
		log.Warn("postgres is not ready yet", zap.Error(err))
		time.Sleep(1 * time.Second)
	}
	panic(fmt.Sprintf("postgres is not ready after %s: %v", wait, lastErr))
}

func (a *apiApp) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.log.Sync()
}

func (a *apiApp) Run() error {
	return runAPI(a.ctx, a.opts, a.handler, a.consumers, a.log)
}
