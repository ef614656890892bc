package intelligence

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/shopspring/decimal"
)

const topN = 10

// Time ranges and their multipliers over the 7-day synthetic baseline.
var ranges = map[string]struct {
	window     time.Duration
	multiplier int64
}{
	"7d":  {7 * 24 * time.Hour, 1},
	"30d": {30 * 24 * time.Hour, 4},
	"90d": {90 * 24 * time.Hour, 12},
}

// NormalizeRange maps unknown ranges to 30d.
func NormalizeRange(r string) string {
	r = strings.ToLower(strings.TrimSpace(r))
	if _, ok := ranges[r]; ok {
		return r
	}
	return "30d"
}

func rangeWindow(r string) time.Duration { return ranges[NormalizeRange(r)].window }

func rangeMultiplier(r string) int64 { return ranges[NormalizeRange(r)].multiplier }

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// countsAsRevenue excludes money that was never kept.
func countsAsRevenue(o *models.Order) bool {
	return o.Status != models.OrderCancelled && o.Status != models.OrderRefunded
}

func revenue(orders []*models.Order) (decimal.Decimal, int) {
	sum := decimal.Zero
	n := 0
	for _, o := range orders {
		if countsAsRevenue(o) {
			sum = sum.Add(o.TotalAmount)
			n++
		}
	}
	return sum.Round(2), n
}

func average(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n))).Round(2)
}

// OrdersByLocation groups by (state, city) and returns the top 10 by order count.
func OrdersByLocation(orders []*models.Order) []LocationStat {
	type key struct{ state, city string }
	idx := map[key]int{}
	out := []LocationStat{}
	for _, o := range orders {
		k := key{strings.TrimSpace(o.ShippingState), strings.TrimSpace(o.ShippingCity)}
		if k.state == "" && k.city == "" {
			continue
		}
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, LocationStat{State: k.state, City: k.city, Revenue: decimal.Zero})
		}
		out[i].Orders++
		if countsAsRevenue(o) {
			out[i].Revenue = out[i].Revenue.Add(o.TotalAmount)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Orders != out[j].Orders {
			return out[i].Orders > out[j].Orders
		}
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// RefundRate is the share of refunded or cancelled orders in percent, one decimal.
func RefundRate(orders []*models.Order) float64 {
	if len(orders) == 0 {
		return 0
	}
	n := 0
	for _, o := range orders {
		if !countsAsRevenue(o) {
			n++
		}
	}
	return round1(float64(n) / float64(len(orders)) * 100)
}

// onTime reports whether a delivered order can be measured and met its estimate.
func onTime(o *models.Order) (measured, ok bool) {
	if o.Status != models.OrderDelivered || o.DeliveredAt == nil || o.EstimatedDelivery == nil {
		return false, false
	}
	return true, !o.DeliveredAt.After(*o.EstimatedDelivery)
}

// ShippingPerformance looks at shipped and delivered orders only.
func ShippingPerformance(orders []*models.Order) ShippingStats {
	st := ShippingStats{OnTimePercentage: 100}
	measured, punctual := 0, 0
	var days float64
	timed := 0
	for _, o := range orders {
		if o.Status != models.OrderShipped && o.Status != models.OrderDelivered {
			continue
		}
		st.TotalShipped++
		if m, ok := onTime(o); m {
			measured++
			if ok {
				punctual++
			} else {
				st.LateShipments++
			}
		}
		if o.Status == models.OrderDelivered && o.ShippedAt != nil && o.DeliveredAt != nil {
			days += o.DeliveredAt.Sub(*o.ShippedAt).Hours() / 24
			timed++
		}
	}
	if measured > 0 {
		st.OnTimePercentage = round1(float64(punctual) / float64(measured) * 100)
	}
	if timed > 0 {
		st.AvgDeliveryDays = round1(days / float64(timed))
	}
	return st
}

func customerKey(o *models.Order) string {
	switch {
	case o.CustomerID != "":
		return o.CustomerID
	case o.CustomerEmail != "":
		return strings.ToLower(o.CustomerEmail)
	default:
		// anonymous orders count as one-off customers
		return "order:" + o.ID
	}
}

// CustomerBreakdown splits customers into new (one order in the window) and
// returning, with revenue attributed per customer.
func CustomerBreakdown(orders []*models.Order) CustomerStats {
	type agg struct {
		orders  int
		revenue decimal.Decimal
	}
	per := map[string]*agg{}
	for _, o := range orders {
		k := customerKey(o)
		a, ok := per[k]
		if !ok {
			a = &agg{revenue: decimal.Zero}
			per[k] = a
		}
		a.orders++
		if countsAsRevenue(o) {
			a.revenue = a.revenue.Add(o.TotalAmount)
		}
	}

	st := CustomerStats{NewCustomerRevenue: decimal.Zero, ReturningCustomerRevenue: decimal.Zero}
	for _, a := range per {
		if a.orders == 1 {
			st.NewCustomers++
			st.NewCustomerRevenue = st.NewCustomerRevenue.Add(a.revenue)
		} else {
			st.ReturningCustomers++
			st.ReturningCustomerRevenue = st.ReturningCustomerRevenue.Add(a.revenue)
		}
	}
	st.NewCustomerRevenue = st.NewCustomerRevenue.Round(2)
	st.ReturningCustomerRevenue = st.ReturningCustomerRevenue.Round(2)
	return st
}

// TopB2BAccounts returns the 10 largest b2b accounts by volume.
func TopB2BAccounts(orders []*models.Order) []B2BAccount {
	idx := map[string]int{}
	out := []B2BAccount{}
	for _, o := range orders {
		if !o.IsB2B() {
			continue
		}
		k := customerKey(o)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, B2BAccount{CustomerID: o.CustomerID, Name: o.CustomerName, TotalVolume: decimal.Zero})
		}
		a := &out[i]
		a.Orders++
		if countsAsRevenue(o) {
			a.TotalVolume = a.TotalVolume.Add(o.TotalAmount)
		}
		if o.CreatedAt.After(a.LastOrderAt) {
			a.LastOrderAt = o.CreatedAt
			if o.CustomerName != "" {
				a.Name = o.CustomerName
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].TotalVolume.Equal(out[j].TotalVolume) {
			return out[i].TotalVolume.GreaterThan(out[j].TotalVolume)
		}
		return out[i].Orders > out[j].Orders
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// POSummary buckets b2b orders; paid counts as processing.
func POSummary(orders []*models.Order) PurchaseOrderSummary {
	var s PurchaseOrderSummary
	for _, o := range orders {
		if !o.IsB2B() {
			continue
		}
		switch o.Status {
		case models.OrderPending:
			s.Pending++
		case models.OrderPaid:
			s.Processing++
		case models.OrderShipped:
			s.Shipped++
		case models.OrderDelivered:
			s.Delivered++
		}
	}
	return s
}

// ComputeOrderMetrics builds the d2c/b2b report. Without orders it returns
// the synthetic report for the range.
func ComputeOrderMetrics(orders []*models.Order, timeRange string, now time.Time) *OrderMetrics {
	timeRange = NormalizeRange(timeRange)
	if len(orders) == 0 {
		m := SyntheticOrderMetrics(timeRange, now)
		m.Message = "no orders in the selected range; showing demo data"
		return m
	}

	var d2c, b2b []*models.Order
	for _, o := range orders {
		if o.IsB2B() {
			b2b = append(b2b, o)
		} else {
			d2c = append(d2c, o)
		}
	}

	dRev, dN := revenue(d2c)
	bRev, bN := revenue(b2b)
	return &OrderMetrics{
		TimeRange:   timeRange,
		GeneratedAt: now.UTC(),
		D2C: D2CMetrics{
			TotalOrders:       len(d2c),
			TotalRevenue:      dRev,
			AverageOrderValue: average(dRev, dN),
			RefundRate:        RefundRate(d2c),
			Shipping:          ShippingPerformance(d2c),
			Customers:         CustomerBreakdown(d2c),
			TopLocations:      OrdersByLocation(d2c),
		},
		B2B: B2BMetrics{
			TotalOrders:       len(b2b),
			TotalRevenue:      bRev,
			AverageOrderValue: average(bRev, bN),
			TopAccounts:       TopB2BAccounts(b2b),
			PurchaseOrders:    POSummary(b2b),
		},
	}
}

// OrderStats totals the filtered orders. The on-time rate only counts
// delivered orders with both dates and is 100 when there are none.
func OrderStats(orders []*models.Order, f StatsFilter) *OrderStatsReport {
	r := &OrderStatsReport{TotalRevenue: decimal.Zero, AverageOrderValue: decimal.Zero}
	kept := make([]*models.Order, 0, len(orders))
	punctual := 0
	for _, o := range orders {
		if f.From != nil && o.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && o.CreatedAt.After(*f.To) {
			continue
		}
		if f.OrderType != nil && orderType(o) != *f.OrderType {
			continue
		}
		kept = append(kept, o)

		switch o.Status {
		case models.OrderPending:
			r.ByStatus.Pending++
		case models.OrderPaid:
			r.ByStatus.Paid++
		case models.OrderShipped:
			r.ByStatus.Shipped++
		case models.OrderDelivered:
			r.ByStatus.Delivered++
		case models.OrderCancelled:
			r.ByStatus.Cancelled++
		case models.OrderRefunded:
			r.ByStatus.Refunded++
		}
		if m, ok := onTime(o); m {
			r.MeasuredDeliveries++
			if ok {
				punctual++
			}
		}
	}

	r.TotalOrders = len(kept)
	var n int
	r.TotalRevenue, n = revenue(kept)
	r.AverageOrderValue = average(r.TotalRevenue, n)
	r.OnTimeDeliveryRate = 100
	if r.MeasuredDeliveries > 0 {
		r.OnTimeDeliveryRate = round1(float64(punctual) / float64(r.MeasuredDeliveries) * 100)
	}
	return r
}

func orderType(o *models.Order) models.OrderType {
	if o.IsB2B() {
		return models.OrderTypeB2B
	}
	return models.OrderTypeD2C
}
