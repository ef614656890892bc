package fake

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/BearBump/SalesTrack/internal/integrations/carrier"
)

// FakeClient: детерминированный "перевозчик" для локального запуска:
// статус зависит от (carrier, tracking_number), часть посылок доставлена.
type FakeClient struct {
	now func() time.Time
}

func New() *FakeClient {
	return &FakeClient{now: func() time.Time { return time.Now().UTC() }}
}

var lifecycle = []string{
	carrier.StatusInTransit,
	carrier.StatusInTransit,
	carrier.StatusOutForDelivery,
	carrier.StatusInTransit,
	carrier.StatusDelivered,
}

func (f *FakeClient) GetTracking(_ context.Context, carrierCode, trackingNumber string) (carrier.TrackingResult, error) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(carrierCode))
	_, _ = h.Write([]byte("|"))
	_, _ = h.Write([]byte(trackingNumber))
	v := h.Sum32()

	status := lifecycle[v%uint32(len(lifecycle))]
	// Время события округляем до часа, чтобы повторные опросы давали дубликаты.
	at := f.now().Truncate(time.Hour)
	loc := "Distribution center"

	return carrier.TrackingResult{
		Status:    status,
		StatusRaw: status,
		StatusAt:  &at,
		Events: []carrier.Event{{
			Status:    status,
			StatusRaw: status,
			EventTime: at,
			Location:  &loc,
			Message:   ptr("fake carrier update"),
		}},
	}, nil
}

func ptr(s string) *string { return &s }
