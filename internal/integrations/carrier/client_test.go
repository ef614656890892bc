package carrier

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventType(t *testing.T) {
	require.Equal(t, "in_transit", EventType(StatusInTransit))
	require.Equal(t, "out_for_delivery", EventType(StatusOutForDelivery))
	require.Equal(t, "delivered", EventType(StatusDelivered))
	require.Equal(t, "exception", EventType(StatusException))
	require.Equal(t, "carrier_update", EventType(StatusUnknown))
	require.Equal(t, "carrier_update", EventType(""))
}
