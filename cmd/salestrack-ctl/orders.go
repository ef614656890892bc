package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newOrdersCmd(c *ctl) *cobra.Command {
	var (
		count int
		seed  int64
		days  int
	)

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Order fixtures",
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo orders so the dashboards have something to show",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be positive")
			}
			st, err := c.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			orders := demoOrders(count, seed, days, time.Now().UTC())
			for i, o := range orders {
				if err := st.CreateOrder(cmd.Context(), o); err != nil {
					return fmt.Errorf("order %d of %d: %w", i+1, len(orders), err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d orders\n", len(orders))
			return nil
		},
	}
	seedCmd.Flags().IntVarP(&count, "count", "n", 200, "number of orders")
	seedCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	seedCmd.Flags().IntVar(&days, "days", 90, "spread orders over the last N days")

	cmd.AddCommand(seedCmd)
	return cmd
}

var demoLocations = [][2]string{
	{"CA", "Los Angeles"}, {"NY", "New York"}, {"TX", "Austin"},
	{"WA", "Seattle"}, {"IL", "Chicago"}, {"FL", "Miami"}, {"CO", "Denver"},
}

var demoAccounts = []string{"Northwind Traders", "Globex Retail", "Initech Supply"}

// demoOrders is deterministic for a given seed and now.
func demoOrders(n int, seed int64, days int, now time.Time) []*models.Order {
	if days <= 0 {
		days = 90
	}
	r := rand.New(rand.NewSource(seed))
	out := make([]*models.Order, 0, n)
	for i := 0; i < n; i++ {
		created := now.Add(-time.Duration(r.Intn(days*24)) * time.Hour).Truncate(time.Minute)
		loc := demoLocations[r.Intn(len(demoLocations))]

		o := &models.Order{
			ID:            uuid.NewString(),
			OrderType:     models.OrderTypeD2C,
			Currency:      "USD",
			ShippingState: loc[0],
			ShippingCity:  loc[1],
			CreatedAt:     created,
		}
		if r.Intn(10) == 0 {
			acct := r.Intn(len(demoAccounts))
			o.OrderType = models.OrderTypeB2B
			o.CustomerID = fmt.Sprintf("b2b-%d", acct+1)
			o.CustomerName = demoAccounts[acct]
			o.TotalAmount = decimal.New(int64(50000+r.Intn(250000)), -2)
		} else {
			cust := r.Intn(n/2 + 1)
			o.CustomerID = fmt.Sprintf("cust-%d", cust)
			o.CustomerEmail = fmt.Sprintf("customer%d@example.com", cust)
			o.TotalAmount = decimal.New(int64(1500+r.Intn(15000)), -2)
		}

		switch p := r.Intn(100); {
		case p < 10:
			o.Status = models.OrderPending
		case p < 25:
			o.Status = models.OrderPaid
		case p < 45:
			o.Status = models.OrderShipped
		case p < 92:
			o.Status = models.OrderDelivered
		case p < 96:
			o.Status = models.OrderCancelled
		default:
			o.Status = models.OrderRefunded
		}

		if o.Status == models.OrderShipped || o.Status == models.OrderDelivered {
			shipped := created.Add(time.Duration(12+r.Intn(36)) * time.Hour)
			eta := shipped.Add(time.Duration(2+r.Intn(4)) * 24 * time.Hour)
			o.ShippedAt, o.EstimatedDelivery = &shipped, &eta
			o.Carrier = "ups"
			o.TrackingNumber = upsNumber(r)
			o.TrackingURL = "https://www.ups.com/track?tracknum=" + o.TrackingNumber
			if o.Status == models.OrderDelivered {
				// примерно каждая десятая доставка опаздывает
				delivered := eta.Add(-time.Duration(r.Intn(24)) * time.Hour)
				if r.Intn(10) == 0 {
					delivered = eta.Add(time.Duration(24+r.Intn(48)) * time.Hour)
				}
				o.DeliveredAt = &delivered
			}
		}
		out = append(out, o)
	}
	return out
}

const upsAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

func upsNumber(r *rand.Rand) string {
	b := []byte("1Z")
	for i := 0; i < 16; i++ {
		b = append(b, upsAlphabet[r.Intn(len(upsAlphabet))])
	}
	return string(b)
}
