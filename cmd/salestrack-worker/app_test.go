package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BearBump/SalesTrack/config"
	"github.com/BearBump/SalesTrack/internal/integrations/carrier"
	"github.com/BearBump/SalesTrack/internal/integrations/carrier/emulatorv1"
	"github.com/BearBump/SalesTrack/internal/integrations/carrier/fake"
	"github.com/BearBump/SalesTrack/internal/integrations/carrier/track24http"
	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/BearBump/SalesTrack/internal/services/poller"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type fakeRepo struct{}

func (r *fakeRepo) ClaimDueShipments(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]*models.Order, error) {
	return []*models.Order{}, nil
}

type noopProducer struct{}

func (p noopProducer) Publish(ctx context.Context, topic string, key, value []byte) error { return nil }

func TestDefaultWorkerFactories_SelectCarrierClient(t *testing.T) {
	f := defaultWorkerFactories()

	c1 := f.newCarrierClient(&config.Config{SalesTrack: config.SalesTrackConfig{
		CarrierEmulatorBaseURL: "http://localhost:9000",
		CarrierEmulatorMode:    "v1",
		CarrierEmulatorAPIKey:  "k",
	}})
	_, ok := c1.(*emulatorv1.Client)
	require.True(t, ok)

	c2 := f.newCarrierClient(&config.Config{SalesTrack: config.SalesTrackConfig{
		CarrierEmulatorBaseURL: "http://localhost:9000",
		CarrierEmulatorMode:    "track24",
		CarrierEmulatorAPIKey:  "k",
		CarrierEmulatorDomain:  "d",
	}})
	_, ok = c2.(*track24http.Client)
	require.True(t, ok)

	c3 := f.newCarrierClient(&config.Config{SalesTrack: config.SalesTrackConfig{
		CarrierEmulatorBaseURL: "http://localhost:9000",
		CarrierEmulatorMode:    "unknown",
	}})
	_, ok = c3.(*fake.FakeClient)
	require.True(t, ok)

	_, ok = f.newCarrierClient(&config.Config{}).(*fake.FakeClient)
	require.True(t, ok)
}

func TestDefaultWorkerFactories_ProducerAndRateLimiter_NonNil(t *testing.T) {
	f := defaultWorkerFactories()
	cfg := &config.Config{
		Kafka: config.KafkaConfig{Host: "localhost", Port: 9092},
		Redis: config.RedisConfig{Host: "localhost", Port: 6379},
	}
	p, closeFn := f.newProducer(cfg)
	require.NotNil(t, p)
	closeFn()

	rl, closeRL := f.newRateLimiter(cfg)
	require.NotNil(t, rl)
	require.NotNil(t, closeRL)
	closeRL()
}

func TestRunWorker_ClosesRateLimiter(t *testing.T) {
	defer goleak.VerifyNone(t)

	calledClose, rlClosed := false, false
	f := testFactories(&calledClose)
	f.newRateLimiter = func(cfg *config.Config) (poller.RateLimiter, func()) {
		return nil, func() { rlClosed = true }
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunWorker(ctx, &config.Config{}, f, zap.NewNop(), nil)
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, rlClosed)
}

func TestPlannerConfig_FromSettings(t *testing.T) {
	pc := plannerConfig(config.SalesTrackConfig{
		WorkerNextCheckInTransitMinSeconds: 1800,
		WorkerNextCheckInTransitMaxSeconds: 7200,
		WorkerBackoff2Seconds:              60,
	})
	require.Equal(t, 30*time.Minute, pc.InTransitMinDelay)
	require.Equal(t, 2*time.Hour, pc.InTransitMaxDelay)
	require.Equal(t, time.Minute, pc.Backoff2)
	require.Zero(t, pc.Backoff1)
}

func testFactories(closed *bool) workerFactories {
	return workerFactories{
		newStorage: func(cfg *config.Config) (poller.Repository, func(), error) {
			return &fakeRepo{}, func() { *closed = true }, nil
		},
		newProducer: func(cfg *config.Config) (poller.Producer, func()) {
			return noopProducer{}, nil
		},
		newRateLimiter: func(cfg *config.Config) (poller.RateLimiter, func()) {
			return nil, nil
		},
		newCarrierClient: func(cfg *config.Config) carrier.Client {
			return fake.New() // не будет вызываться: заказов нет
		},
	}
}

func TestRunWorker_ContextCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	calledClose := false
	cfg := &config.Config{
		Kafka:      config.KafkaConfig{CarrierUpdatesTopic: "t"},
		SalesTrack: config.SalesTrackConfig{WorkerPollIntervalSeconds: 1},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RunWorker(ctx, cfg, testFactories(&calledClose), zap.NewNop(), nil)
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, calledClose)
}

func TestRunWorker_WithOpsServer(t *testing.T) {
	calledClose := false
	addrCh := make(chan string, 1)
	opts := &workerHTTPOpts{httpAddr: "127.0.0.1:0", onListen: func(addr string) { addrCh <- addr }}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- RunWorker(ctx, &config.Config{}, testFactories(&calledClose), zap.NewNop(), opts)
	}()

	addr := <-addrCh
	resp, err := http.Post("http://"+addr+"/trigger", "application/json", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	cancel()
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting worker to stop")
	}
	require.True(t, calledClose)
}

func TestWorkerRouter(t *testing.T) {
	p := poller.New(&fakeRepo{}, fake.New(), noopProducer{}, nil, "t")
	cfg := &config.Config{SalesTrack: config.SalesTrackConfig{
		WorkerBatchSize:         50,
		WorkerCarrierRateLimits: map[string]int{"ups": 30},
	}}
	h := workerRouter(workerHTTPOpts{poller: p, cfg: cfg})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var st poller.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	require.Zero(t, st.TotalClaimed)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/config", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"batchSize":50`)
	require.Contains(t, rec.Body.String(), `"ups":30`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/trigger", nil))
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.NotNil(t, p.Stats().LastTriggerAt)

	rec = httptest.NewRecorder()
	workerRouter(workerHTTPOpts{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
