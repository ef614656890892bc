package intelligence

import (
	"time"

	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/shopspring/decimal"
)

type LocationStat struct {
	State   string          `json:"state"`
	City    string          `json:"city"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

type ShippingStats struct {
	OnTimePercentage float64 `json:"on_time_percentage"`
	AvgDeliveryDays  float64 `json:"avg_delivery_days"`
	TotalShipped     int     `json:"total_shipped"`
	LateShipments    int     `json:"late_shipments"`
}

type CustomerStats struct {
	NewCustomers             int             `json:"new_customers"`
	ReturningCustomers       int             `json:"returning_customers"`
	NewCustomerRevenue       decimal.Decimal `json:"new_customer_revenue"`
	ReturningCustomerRevenue decimal.Decimal `json:"returning_customer_revenue"`
}

type B2BAccount struct {
	CustomerID  string          `json:"customer_id"`
	Name        string          `json:"name"`
	Orders      int             `json:"orders"`
	TotalVolume decimal.Decimal `json:"total_volume"`
	LastOrderAt time.Time       `json:"last_order_at"`
}

type PurchaseOrderSummary struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Shipped    int `json:"shipped"`
	Delivered  int `json:"delivered"`
}

type D2CMetrics struct {
	TotalOrders       int             `json:"total_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	RefundRate        float64         `json:"refund_rate"`
	Shipping          ShippingStats   `json:"shipping"`
	Customers         CustomerStats   `json:"customers"`
	TopLocations      []LocationStat  `json:"top_locations"`
}

type B2BMetrics struct {
	TotalOrders       int                  `json:"total_orders"`
	TotalRevenue      decimal.Decimal      `json:"total_revenue"`
	AverageOrderValue decimal.Decimal      `json:"average_order_value"`
	TopAccounts       []B2BAccount         `json:"top_accounts"`
	PurchaseOrders    PurchaseOrderSummary `json:"purchase_orders"`
}

// OrderMetrics is always fully populated; DemoMode marks synthetic numbers.
type OrderMetrics struct {
	TimeRange   string     `json:"time_range"`
	GeneratedAt time.Time  `json:"generated_at"`
	DemoMode    bool       `json:"demo_mode"`
	Message     string     `json:"message,omitempty"`
	D2C         D2CMetrics `json:"d2c"`
	B2B         B2BMetrics `json:"b2b"`
}

type StatsFilter struct {
	From      *time.Time
	To        *time.Time
	OrderType *models.OrderType
}

type StatusCounts struct {
	Pending   int `json:"pending"`
	Paid      int `json:"paid"`
	Shipped   int `json:"shipped"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
	Refunded  int `json:"refunded"`
}

type OrderStatsReport struct {
	TotalOrders        int             `json:"total_orders"`
	ByStatus           StatusCounts    `json:"by_status"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	AverageOrderValue  decimal.Decimal `json:"average_order_value"`
	OnTimeDeliveryRate float64         `json:"on_time_delivery_rate"`
	// Delivered orders with both delivered_at and estimated_delivery.
	MeasuredDeliveries int    `json:"measured_deliveries"`
	Degraded           bool   `json:"degraded"`
	Message            string `json:"message,omitempty"`
}
