package pgstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const maxOrderRows = 10_000

const orderColumns = `
  id, customer_id, customer_name, customer_email, order_type, status,
  total_amount::text, currency, shipping_city, shipping_state,
  tracking_number, carrier, carrier_service, tracking_url,
  shipped_at, delivered_at, estimated_delivery,
  next_check_at, last_checked_at, check_fail_count, last_error,
  created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	var o models.Order
	var total string
	if err := row.Scan(
		&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerEmail, &o.OrderType, &o.Status,
		&total, &o.Currency, &o.ShippingCity, &o.ShippingState,
		&o.TrackingNumber, &o.Carrier, &o.CarrierService, &o.TrackingURL,
		&o.ShippedAt, &o.DeliveredAt, &o.EstimatedDelivery,
		&o.NextCheckAt, &o.LastCheckedAt, &o.CheckFailCount, &o.LastError,
		&o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return nil, errors.Wrapf(err, "order %s total %q", o.ID, total)
	}
	o.TotalAmount = amount
	return &o, nil
}

// CreateOrder is used by the order-placement side (ctl seeding, tests); the
// tracking fields are owned by the shipment methods below.
func (s *Storage) CreateOrder(ctx context.Context, o *models.Order) error {
	orderType := o.OrderType
	if orderType == "" {
		orderType = models.OrderTypeD2C
	}
	currency := o.Currency
	if currency == "" {
		currency = "USD"
	}
	_, err := s.db.Exec(ctx, `
INSERT INTO orders (
  id, customer_id, customer_name, customer_email, order_type, status,
  total_amount, currency, shipping_city, shipping_state,
  tracking_number, carrier, carrier_service, tracking_url,
  shipped_at, delivered_at, estimated_delivery, created_at, updated_at
)
VALUES ($1,$2,$3,$4,$5,$6,$7::numeric,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$18)
`, o.ID, o.CustomerID, o.CustomerName, o.CustomerEmail, string(orderType), string(o.Status),
		o.TotalAmount.StringFixed(2), currency, o.ShippingCity, o.ShippingState,
		o.TrackingNumber, o.Carrier, o.CarrierService, o.TrackingURL,
		o.ShippedAt, o.DeliveredAt, o.EstimatedDelivery, o.CreatedAt.UTC())
	return mapErr(err, "insert order")
}

func (s *Storage) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	o, err := scanOrder(s.db.QueryRow(ctx, `SELECT`+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err, "select order "+id)
	}
	return o, nil
}

// ListOrders returns at most maxOrderRows per call; callers that need a whole
// window page with Offset.
func (s *Storage) ListOrders(ctx context.Context, f models.OrderFilter) ([]*models.Order, error) {
	limit := f.Limit
	if limit <= 0 || limit > maxOrderRows {
		limit = maxOrderRows
	}

	conds := []string{"TRUE"}
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.From != nil {
		conds = append(conds, "created_at >= "+arg(f.From.UTC()))
	}
	if f.To != nil {
		conds = append(conds, "created_at <= "+arg(f.To.UTC()))
	}
	if f.OrderType != nil {
		conds = append(conds, "order_type = "+arg(string(*f.OrderType)))
	}
	if f.Status != nil {
		conds = append(conds, "status = "+arg(string(*f.Status)))
	}

	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.Query(ctx, `SELECT`+orderColumns+` FROM orders WHERE `+strings.Join(conds, " AND ")+
		` ORDER BY created_at DESC, id LIMIT `+arg(limit)+` OFFSET `+arg(offset), args...)
	if err != nil {
		return nil, mapErr(err, "select orders")
	}
	defer rows.Close()

	out := []*models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, mapErr(err, "scan order")
		}
		out = append(out, o)
	}
	if rows.Err() != nil {
		return nil, mapErr(rows.Err(), "rows")
	}
	return out, nil
}

// lockOrder takes the row lock and returns the current status.
func lockOrder(ctx context.Context, tx pgx.Tx, id string) (models.OrderStatus, error) {
	var st models.OrderStatus
	if err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&st); err != nil {
		return "", mapErr(err, "lock order "+id)
	}
	return st, nil
}

// ShipOrder stores tracking data, marks the order shipped, schedules the
// first carrier check and appends the shipped event.
func (s *Storage) ShipOrder(ctx context.Context, u models.ShipmentUpdate) (*models.Order, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, mapErr(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	st, err := lockOrder(ctx, tx, u.OrderID)
	if err != nil {
		return nil, err
	}
	if st == models.OrderDelivered {
		return nil, apperr.Conflict("order %s is already delivered", u.OrderID)
	}

	var nextCheck *time.Time
	if u.Carrier != "" {
		t := u.ShippedAt.UTC()
		nextCheck = &t
	}

	o, err := scanOrder(tx.QueryRow(ctx, `
UPDATE orders
SET
  status = $2,
  tracking_number = $3,
  carrier = $4,
  carrier_service = $5,
  tracking_url = $6,
  estimated_delivery = $7,
  shipped_at = $8,
  next_check_at = $9,
  check_fail_count = 0,
  last_error = NULL,
  updated_at = $8
WHERE id = $1
RETURNING`+orderColumns,
		u.OrderID, string(models.OrderShipped), u.TrackingNumber, u.Carrier, u.CarrierService,
		u.TrackingURL, u.EstimatedDelivery, u.ShippedAt.UTC(), nextCheck))
	if err != nil {
		return nil, mapErr(err, "update order tracking")
	}

	if u.Event != nil {
		if _, err := insertEvent(ctx, tx, u.Event); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapErr(err, "commit tx")
	}
	return o, nil
}

// RecordDelivery persists the proof, moves the order to delivered and appends
// the delivered event. A second proof for the same order is a conflict.
func (s *Storage) RecordDelivery(ctx context.Context, p *models.DeliveryProof, ev *models.TrackingEvent) (*models.Order, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, mapErr(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := lockOrder(ctx, tx, p.OrderID); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
INSERT INTO delivery_proofs (
  id, order_id, proof_type, signature_url, photo_url, recipient_name, notes,
  latitude, longitude, delivered_at, driver_name, created_at
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
`, p.ID, p.OrderID, string(p.ProofType), p.SignatureURL, p.PhotoURL, p.RecipientName, p.Notes,
		p.Latitude, p.Longitude, p.DeliveredAt.UTC(), p.DriverName, p.CreatedAt.UTC())
	if err != nil {
		return nil, mapErr(err, "insert delivery proof")
	}

	o, err := scanOrder(tx.QueryRow(ctx, `
UPDATE orders
SET status = $2, delivered_at = $3, next_check_at = NULL, updated_at = $3
WHERE id = $1
RETURNING`+orderColumns, p.OrderID, string(models.OrderDelivered), p.DeliveredAt.UTC()))
	if err != nil {
		return nil, mapErr(err, "update delivered order")
	}

	if ev != nil {
		if _, err := insertEvent(ctx, tx, ev); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapErr(err, "commit tx")
	}
	return o, nil
}

// GetDeliveryProof returns nil without error when the order has no proof.
func (s *Storage) GetDeliveryProof(ctx context.Context, orderID string) (*models.DeliveryProof, error) {
	var p models.DeliveryProof
	err := s.db.QueryRow(ctx, `
SELECT
  id, order_id, proof_type, signature_url, photo_url, recipient_name, notes,
  latitude, longitude, delivered_at, driver_name, created_at
FROM delivery_proofs
WHERE order_id = $1
`, orderID).Scan(
		&p.ID, &p.OrderID, &p.ProofType, &p.SignatureURL, &p.PhotoURL, &p.RecipientName, &p.Notes,
		&p.Latitude, &p.Longitude, &p.DeliveredAt, &p.DriverName, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapErr(err, "select delivery proof")
	}
	return &p, nil
}
