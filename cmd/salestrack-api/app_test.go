package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BearBump/SalesTrack/config"
	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/BearBump/SalesTrack/internal/broker/messages"
	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeConsumer struct {
	values [][]byte
	calls  atomic.Int32
}

// Consume отдаёт подготовленные сообщения один раз, затем ждёт отмены.
func (c *fakeConsumer) Consume(ctx context.Context, handler func(key, value []byte) error) error {
	if c.calls.Add(1) == 1 {
		for _, v := range c.values {
			if err := handler(nil, v); err != nil {
				return err
			}
		}
	}
	<-ctx.Done()
	return ctx.Err()
}

type stubLeads struct {
	mu  sync.Mutex
	got []models.LeadCreateInput
	err error
}

func (s *stubLeads) CreateLead(_ context.Context, in models.LeadCreateInput) (*models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.got = append(s.got, in)
	return &models.Lead{ID: "lead-1"}, nil
}

type stubUpdates struct {
	got []messages.CarrierUpdate
	err error
}

func (s *stubUpdates) ApplyCarrierUpdate(_ context.Context, m messages.CarrierUpdate) error {
	s.got = append(s.got, m)
	return s.err
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestRunAPI_ServesAndStops(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	leadsSvc := &stubLeads{}
	intake := &fakeConsumer{values: [][]byte{mustJSON(t, messages.LeadIntake{
		ExternalID: "form-7",
		Lead:       models.LeadCreateInput{Company: "Acme"},
	})}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addrCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- runAPI(ctx, apiOpts{
			httpAddr: "127.0.0.1:0",
			onListen: func(addr string) { addrCh <- addr },
		}, h, []consumerSpec{
			{name: "lead.intake", consumer: intake, handle: leadIntakeHandler(leadsSvc, zap.NewNop())},
		}, zap.NewNop())
	}()

	addr := <-addrCh
	resp, err := http.Get("http://" + addr + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"status":"ok"}`, string(body))

	require.Eventually(t, func() bool {
		leadsSvc.mu.Lock()
		defer leadsSvc.mu.Unlock()
		return len(leadsSvc.got) == 1
	}, time.Second, 10*time.Millisecond)
	require.Equal(t, "form-7", leadsSvc.got[0].Metadata["external_id"])

	cancel()
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting api to stop")
	}
}

func TestConsumeLoop_RestartsAfterHandlerError(t *testing.T) {
	c := &fakeConsumer{values: [][]byte{[]byte(`{}`)}}
	var handled atomic.Int32
	spec := consumerSpec{name: "t", consumer: c, handle: func(context.Context, []byte) error {
		handled.Add(1)
		return errors.New("db down")
	}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		consumeLoop(ctx, spec, zap.NewNop())
		close(done)
	}()

	require.Eventually(t, func() bool { return c.calls.Load() >= 2 }, 3*time.Second, 10*time.Millisecond)
	cancel()
	<-done
	require.EqualValues(t, 1, handled.Load())
}

func TestLeadIntakeHandler(t *testing.T) {
	svc := &stubLeads{}
	h := leadIntakeHandler(svc, zap.NewNop())

	require.NoError(t, h(context.Background(), []byte("not json")))
	require.Empty(t, svc.got)

	require.NoError(t, h(context.Background(), mustJSON(t, messages.LeadIntake{
		Lead: models.LeadCreateInput{FirstName: "Ada", Metadata: map[string]any{"utm": "x"}},
	})))
	require.Len(t, svc.got, 1)
	require.NotContains(t, svc.got[0].Metadata, "external_id")

	svc.err = apperr.Validation("lead needs a name or a company")
	require.NoError(t, h(context.Background(), mustJSON(t, messages.LeadIntake{})))

	svc.err = apperr.Unavailable(errors.New("conn refused"), "create lead")
	require.ErrorIs(t, h(context.Background(), mustJSON(t, messages.LeadIntake{})), apperr.ErrBackendUnavailable)
}

func TestLeadIntakeHandler_RedeliveredExternalID(t *testing.T) {
	svc := &stubLeads{}
	h := leadIntakeHandler(svc, zap.NewNop())
	msg := mustJSON(t, messages.LeadIntake{
		ExternalID: "form-42",
		Lead:       models.LeadCreateInput{FirstName: "Ada", Email: "ada@example.com"},
	})

	require.NoError(t, h(context.Background(), msg))
	require.Len(t, svc.got, 1)
	require.Equal(t, "form-42", svc.got[0].Metadata["external_id"])

	svc.err = apperr.Conflict("duplicate uq_leads_external_id")
	require.NoError(t, h(context.Background(), msg))
}

func TestCarrierUpdateHandler(t *testing.T) {
	svc := &stubUpdates{}
	h := carrierUpdateHandler(svc, zap.NewNop())

	require.NoError(t, h(context.Background(), []byte("{")))
	require.Empty(t, svc.got)

	require.NoError(t, h(context.Background(), mustJSON(t, messages.CarrierUpdate{OrderID: "ord-1", Status: "IN_TRANSIT"})))
	require.Len(t, svc.got, 1)
	require.Equal(t, "ord-1", svc.got[0].OrderID)

	svc.err = apperr.NotFound("order %s", "ord-2")
	require.NoError(t, h(context.Background(), mustJSON(t, messages.CarrierUpdate{OrderID: "ord-2"})))

	svc.err = apperr.Backend(errors.New("deadlock"), "apply carrier sync")
	require.ErrorIs(t, h(context.Background(), mustJSON(t, messages.CarrierUpdate{OrderID: "ord-3"})), apperr.ErrBackend)
}

func TestNewCalendar(t *testing.T) {
	require.Nil(t, newCalendar(config.CalendarConfig{}))
	require.NotNil(t, newCalendar(config.CalendarConfig{Mode: "fake"}))
	require.NotNil(t, newCalendar(config.CalendarConfig{Mode: "http", BaseURL: "http://calendar.local"}))
}
