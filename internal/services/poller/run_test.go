package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BearBump/SalesTrack/internal/integrations/carrier"
	"github.com/BearBump/SalesTrack/internal/models"
	pollermocks "github.com/BearBump/SalesTrack/internal/services/poller/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type noopCarrier struct{}

func (c noopCarrier) GetTracking(ctx context.Context, carrierCode, trackingNumber string) (carrier.TrackingResult, error) {
	return carrier.TrackingResult{Status: carrier.StatusInTransit}, nil
}

func TestPoller_Run_StopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	repo := &pollermocks.MockRepository{}
	repo.On("ClaimDueShipments", mock.Anything, mock.Anything, 1, time.Second).
		Return([]*models.Order{}, nil)

	p := New(repo, noopCarrier{}, &pollermocks.MockProducer{}, nil, "t").
		WithSettings(5*time.Millisecond, 1, 1, time.Second, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.GreaterOrEqual(t, len(repo.Calls), 1)
}

func TestPoller_runOnce_publishesEveryClaimed(t *testing.T) {
	defer goleak.VerifyNone(t)

	orders := []*models.Order{
		{ID: "o1", TrackingNumber: "T1", Carrier: "ups"},
		{ID: "o2", TrackingNumber: "T2", Carrier: "usps"},
		{ID: "o3", TrackingNumber: "T3", Carrier: "fedex"},
	}
	repo := pollermocks.NewMockRepository(t)
	repo.On("ClaimDueShipments", mock.Anything, mock.Anything, 100, 120*time.Second).Return(orders, nil).Once()

	prod := pollermocks.NewMockProducer(t)
	prod.On("Publish", mock.Anything, "carrier.updates", mock.Anything, mock.Anything).Return(nil).Times(3)

	p := New(repo, noopCarrier{}, prod, nil, "carrier.updates")
	p.runOnce(context.Background())

	st := p.Stats()
	require.EqualValues(t, 3, st.TotalClaimed)
	require.EqualValues(t, 3, st.TotalProcessed)
	require.Zero(t, st.TotalErrors)
	require.Zero(t, st.InFlight)
	require.NotNil(t, st.LastCycleAt)
}

func TestPoller_runOnce_claimErrorRecorded(t *testing.T) {
	repo := pollermocks.NewMockRepository(t)
	repo.On("ClaimDueShipments", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("db gone")).Once()

	p := New(repo, noopCarrier{}, pollermocks.NewMockProducer(t), nil, "t")
	p.runOnce(context.Background())

	st := p.Stats()
	require.Equal(t, "db gone", st.LastError)
	require.Zero(t, st.TotalClaimed)
}

func TestPoller_Trigger_NonBlocking(t *testing.T) {
	p := New(nil, noopCarrier{}, nil, nil, "t")
	p.Trigger()
	p.Trigger()
	require.NotNil(t, p.Stats().LastTriggerAt)
	require.Len(t, p.triggerCh, 1)
}
