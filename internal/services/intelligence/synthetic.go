package intelligence

import (
	"time"

	"github.com/shopspring/decimal"
)

// 7-day baseline of the demo dashboard. Counts and money scale with the range;
// percentages and averages do not.
var (
	baseD2C = D2CMetrics{
		TotalOrders:       120,
		TotalRevenue:      decimal.RequireFromString("8460.00"),
		AverageOrderValue: decimal.RequireFromString("70.50"),
		RefundRate:        2.5,
		Shipping: ShippingStats{
			OnTimePercentage: 92.0,
			AvgDeliveryDays:  3.2,
			TotalShipped:     110,
			LateShipments:    9,
		},
		Customers: CustomerStats{
			NewCustomers:             72,
			ReturningCustomers:       18,
			NewCustomerRevenue:       decimal.RequireFromString("5076.00"),
			ReturningCustomerRevenue: decimal.RequireFromString("3384.00"),
		},
	}
	baseLocations = []LocationStat{
		{State: "CA", City: "Los Angeles", Orders: 18, Revenue: decimal.RequireFromString("1269.00")},
		{State: "NY", City: "New York", Orders: 15, Revenue: decimal.RequireFromString("1057.50")},
		{State: "TX", City: "Austin", Orders: 11, Revenue: decimal.RequireFromString("775.50")},
		{State: "WA", City: "Seattle", Orders: 9, Revenue: decimal.RequireFromString("634.50")},
		{State: "IL", City: "Chicago", Orders: 7, Revenue: decimal.RequireFromString("493.50")},
	}
	baseB2B = B2BMetrics{
		TotalOrders:       12,
		TotalRevenue:      decimal.RequireFromString("18600.00"),
		AverageOrderValue: decimal.RequireFromString("1550.00"),
		PurchaseOrders:    PurchaseOrderSummary{Pending: 2, Processing: 3, Shipped: 4, Delivered: 3},
	}
	baseAccounts = []B2BAccount{
		{CustomerID: "demo-acme", Name: "Acme Retail", Orders: 5, TotalVolume: decimal.RequireFromString("8250.00")},
		{CustomerID: "demo-globex", Name: "Globex Supply", Orders: 4, TotalVolume: decimal.RequireFromString("6100.00")},
		{CustomerID: "demo-initech", Name: "Initech Stores", Orders: 3, TotalVolume: decimal.RequireFromString("4250.00")},
	}
)

// SyntheticOrderMetrics is deterministic for a given range and day.
func SyntheticOrderMetrics(timeRange string, now time.Time) *OrderMetrics {
	timeRange = NormalizeRange(timeRange)
	k := rangeMultiplier(timeRange)
	mul := decimal.NewFromInt(k)
	n := int(k)
	day := now.UTC().Truncate(24 * time.Hour)

	d := baseD2C
	d.TotalOrders *= n
	d.TotalRevenue = d.TotalRevenue.Mul(mul)
	d.Shipping.TotalShipped *= n
	d.Shipping.LateShipments *= n
	d.Customers.NewCustomers *= n
	d.Customers.ReturningCustomers *= n
	d.Customers.NewCustomerRevenue = d.Customers.NewCustomerRevenue.Mul(mul)
	d.Customers.ReturningCustomerRevenue = d.Customers.ReturningCustomerRevenue.Mul(mul)
	d.TopLocations = make([]LocationStat, 0, len(baseLocations))
	for _, l := range baseLocations {
		l.Orders *= n
		l.Revenue = l.Revenue.Mul(mul)
		d.TopLocations = append(d.TopLocations, l)
	}

	b := baseB2B
	b.TotalOrders *= n
	b.TotalRevenue = b.TotalRevenue.Mul(mul)
	b.PurchaseOrders.Pending *= n
	b.PurchaseOrders.Processing *= n
	b.PurchaseOrders.Shipped *= n
	b.PurchaseOrders.Delivered *= n
	b.TopAccounts = make([]B2BAccount, 0, len(baseAccounts))
	for i, a := range baseAccounts {
		a.Orders *= n
		a.TotalVolume = a.TotalVolume.Mul(mul)
		a.LastOrderAt = day.Add(-time.Duration(i+1) * 24 * time.Hour)
		b.TopAccounts = append(b.TopAccounts, a)
	}

	return &OrderMetrics{
		TimeRange:   timeRange,
		GeneratedAt: now.UTC(),
		DemoMode:    true,
		D2C:         d,
		B2B:         b,
	}
}
