// Package xlsxreport renders order metrics as an Excel workbook.
package xlsxreport

import (
	"io"

	"github.com/BearBump/SalesTrack/internal/services/intelligence"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary   = "Summary"
	SheetLocations = "Locations"
	SheetAccounts  = "B2B Accounts"
)

// WriteOrderMetrics writes a three-sheet workbook (summary, top locations,
// top B2B accounts) to w.
func WriteOrderMetrics(w io.Writer, m *intelligence.OrderMetrics) error {
	if m == nil {
		return errors.New("metrics are required")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// NewFile создаёт "Sheet1", переименуем его в сводку.
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	if err := writeSummary(f, m); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetLocations); err != nil {
		return errors.Wrap(err, "new sheet")
	}
	rows := [][]any{{"State", "City", "Orders", "Revenue"}}
	for _, l := range m.D2C.TopLocations {
		rows = append(rows, []any{l.State, l.City, l.Orders, money(l.Revenue)})
	}
	if err := setRows(f, SheetLocations, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetAccounts); err != nil {
		return errors.Wrap(err, "new sheet")
	}
	rows = [][]any{{"Customer ID", "Name", "Orders", "Total volume", "Last order"}}
	for _, a := range m.B2B.TopAccounts {
		rows = append(rows, []any{a.CustomerID, a.Name, a.Orders, money(a.TotalVolume), a.LastOrderAt.UTC().Format("2006-01-02")})
	}
	if err := setRows(f, SheetAccounts, rows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}

func writeSummary(f *excelize.File, m *intelligence.OrderMetrics) error {
	d, b := m.D2C, m.B2B
	rows := [][]any{
		{"Metric", "Value"},
		{"Time range", m.TimeRange},
		{"Generated at", m.GeneratedAt.UTC().Format("2006-01-02 15:04:05")},
		{"Demo data", m.DemoMode},
		{"D2C orders", d.TotalOrders},
		{"D2C revenue", money(d.TotalRevenue)},
		{"D2C average order value", money(d.AverageOrderValue)},
		{"D2C refund rate, %", d.RefundRate},
		{"On-time delivery, %", d.Shipping.OnTimePercentage},
		{"Average delivery days", d.Shipping.AvgDeliveryDays},
		{"Shipped", d.Shipping.TotalShipped},
		{"Late shipments", d.Shipping.LateShipments},
		{"New customers", d.Customers.NewCustomers},
		{"Returning customers", d.Customers.ReturningCustomers},
		{"B2B orders", b.TotalOrders},
		{"B2B revenue", money(b.TotalRevenue)},
		{"B2B average order value", money(b.AverageOrderValue)},
		{"POs pending", b.PurchaseOrders.Pending},
		{"POs processing", b.PurchaseOrders.Processing},
		{"POs shipped", b.PurchaseOrders.Shipped},
		{"POs delivered", b.PurchaseOrders.Delivered},
	}
	if m.Message != "" {
		rows = append(rows, []any{"Note", m.Message})
	}
	return setRows(f, SheetSummary, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(err, "cell name")
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "set row %d on %s", i+1, sheet)
		}
	}
	return nil
}

// money keeps cents exact in the sheet.
func money(d decimal.Decimal) float64 {
	v, _ := d.Round(2).Float64()
	return v
}
