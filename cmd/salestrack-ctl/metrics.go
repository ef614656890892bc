package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/BearBump/SalesTrack/internal/reports/xlsxreport"
	"github.com/BearBump/SalesTrack/internal/services/intelligence"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newMetricsCmd(c *ctl) *cobra.Command {
	var (
		timeRange string
		out       string
		demo      bool
		asJSON    bool
	)

	load := func(cmd *cobra.Command) (*intelligence.OrderMetrics, error) {
		if demo {
			return intelligence.SyntheticOrderMetrics(intelligence.NormalizeRange(timeRange), time.Now().UTC()), nil
		}
		st, err := c.openStore()
		if err != nil {
			return nil, err
		}
		defer st.Close()
		return intelligence.New(st, c.log).OrderMetrics(cmd.Context(), timeRange)
	}

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Order metrics",
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Write order metrics to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := load(cmd)
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return errors.Wrap(err, "create output")
			}
			if err := xlsxreport.WriteOrderMetrics(f, m); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return errors.Wrap(err, "close output")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (range %s, demo=%t)\n", out, m.TimeRange, m.DemoMode)
			return nil
		},
	}
	export.Flags().StringVarP(&out, "out", "o", "order-metrics.xlsx", "output file")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print order metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := load(cmd)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(m)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "range %s, demo=%t\n", m.TimeRange, m.DemoMode)
			fmt.Fprintf(cmd.OutOrStdout(), "d2c: %d orders, revenue %s, aov %s, refund %.1f%%\n",
				m.D2C.TotalOrders, m.D2C.TotalRevenue.StringFixed(2), m.D2C.AverageOrderValue.StringFixed(2), m.D2C.RefundRate)
			fmt.Fprintf(cmd.OutOrStdout(), "b2b: %d orders, revenue %s\n", m.B2B.TotalOrders, m.B2B.TotalRevenue.StringFixed(2))
			return nil
		},
	}
	show.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	cmd.PersistentFlags().StringVarP(&timeRange, "range", "r", "30d", "time range: 7d, 30d or 90d")
	cmd.PersistentFlags().BoolVar(&demo, "demo", false, "use synthetic data instead of the database")
	cmd.AddCommand(export, show)
	return cmd
}
