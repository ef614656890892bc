package intelligence

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSyntheticOrderMetrics_Scales(t *testing.T) {
	week := SyntheticOrderMetrics("7d", now)
	month := SyntheticOrderMetrics("30d", now)
	quarter := SyntheticOrderMetrics("90d", now)

	require.True(t, week.DemoMode)
	require.Equal(t, 120, week.D2C.TotalOrders)
	require.Equal(t, 480, month.D2C.TotalOrders)
	require.Equal(t, 1440, quarter.D2C.TotalOrders)
	require.True(t, week.D2C.TotalRevenue.Mul(decimal.NewFromInt(12)).Equal(quarter.D2C.TotalRevenue))

	require.Equal(t, week.D2C.RefundRate, quarter.D2C.RefundRate)
	require.Equal(t, week.D2C.Shipping.OnTimePercentage, month.D2C.Shipping.OnTimePercentage)
	require.True(t, week.D2C.AverageOrderValue.Equal(month.D2C.AverageOrderValue))

	require.Equal(t, 4*week.B2B.PurchaseOrders.Shipped, month.B2B.PurchaseOrders.Shipped)
	require.Len(t, month.D2C.TopLocations, len(baseLocations))
	require.Len(t, month.B2B.TopAccounts, len(baseAccounts))
}

func TestSyntheticOrderMetrics_Deterministic(t *testing.T) {
	a := SyntheticOrderMetrics("30d", now)
	b := SyntheticOrderMetrics("30d", now)
	require.Equal(t, a, b)

	// the baseline tables are not mutated by scaling
	require.Equal(t, 18, baseLocations[0].Orders)
	require.Equal(t, 5, baseAccounts[0].Orders)
}

func TestSyntheticOrderMetrics_Consistent(t *testing.T) {
	m := SyntheticOrderMetrics("7d", now)
	sum := m.D2C.Customers.NewCustomerRevenue.Add(m.D2C.Customers.ReturningCustomerRevenue)
	require.True(t, sum.Equal(m.D2C.TotalRevenue))

	po := m.B2B.PurchaseOrders
	require.Equal(t, m.B2B.TotalOrders, po.Pending+po.Processing+po.Shipped+po.Delivered)
}
