package track24http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClient_GetTracking_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tracking.json.php", r.URL.Path)
		require.Equal(t, "demo", r.URL.Query().Get("apiKey"))
		require.Equal(t, "d", r.URL.Query().Get("domain"))
		require.Equal(t, "CODE", r.URL.Query().Get("code"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "status": "ok",
  "data": {
    "events": [
      {"operationDateTime":"01.01.2025 00:00:00","operationAttribute":"Accepted","operationType":"ACCEPTED","operationPlaceName":"Memphis","source":"emulator"},
      {"operationDateTime":"01.01.2025 00:05:00","operationAttribute":"Out for delivery","operationType":"OUT","operationPlaceName":"Austin","source":"emulator"},
      {"operationDateTime":"01.01.2025 00:10:00","operationAttribute":"Delivered","operationType":"DELIVERED","operationPlaceName":"Austin","source":"emulator"}
    ]
  }
}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "demo", "d")
	res, err := c.GetTracking(context.Background(), "IGNORED", "CODE")
	require.NoError(t, err)
	require.Equal(t, "DELIVERED", res.Status)
	require.Equal(t, "Delivered", res.StatusRaw)
	require.NotNil(t, res.StatusAt)
	require.Len(t, res.Events, 3)
	require.Equal(t, "IN_TRANSIT", res.Events[0].Status)
	require.Equal(t, "OUT_FOR_DELIVERY", res.Events[1].Status)
	require.Equal(t, "Memphis", *res.Events[0].Location)
	require.WithinDuration(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), res.Events[0].EventTime, time.Second)
}

func TestClient_GetTracking_NotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "demo", "d").GetTracking(context.Background(), "", "CODE")
	require.Error(t, err)
}

func TestClassify(t *testing.T) {
	require.Equal(t, "DELIVERED", classify("Delivered"))
	require.Equal(t, "DELIVERED", classify("Вручение адресату"))
	require.Equal(t, "OUT_FOR_DELIVERY", classify("Out for delivery"))
	require.Equal(t, "EXCEPTION", classify("Delivery exception"))
	require.Equal(t, "IN_TRANSIT", classify("In transit"))
	require.Equal(t, "UNKNOWN", classify(""))
}
