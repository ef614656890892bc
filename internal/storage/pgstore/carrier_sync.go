package pgstore

import (
	"context"
	"time"

	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/jackc/pgx/v5"
)

// CarrierSync is the result of one carrier poll for a shipped order.
type CarrierSync struct {
	OrderID string

	CheckedAt   time.Time
	NextCheckAt time.Time

	Events []*models.TrackingEvent

	Error *string
}

// ClaimDueShipments выбирает пачку отгруженных заказов, которые пора сверить
// с перевозчиком, и сдвигает им next_check_at на время аренды, чтобы
// параллельные воркеры их не взяли. SELECT ... FOR UPDATE SKIP LOCKED.
func (s *Storage) ClaimDueShipments(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]*models.Order, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, mapErr(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `SELECT`+orderColumns+`
FROM orders
WHERE status = $2
  AND carrier <> ''
  AND next_check_at IS NOT NULL
  AND next_check_at <= $1
ORDER BY next_check_at ASC
LIMIT $3
FOR UPDATE SKIP LOCKED
`, now.UTC(), string(models.OrderShipped), limit)
	if err != nil {
		return nil, mapErr(err, "select due shipments")
	}

	var picked []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, mapErr(err, "scan due shipment")
		}
		picked = append(picked, o)
	}
	rows.Close()
	if rows.Err() != nil {
		return nil, mapErr(rows.Err(), "rows")
	}

	leaseUntil := now.UTC().Add(lease)
	for _, o := range picked {
		if _, err := tx.Exec(ctx, `UPDATE orders SET next_check_at = $2 WHERE id = $1`, o.ID, leaseUntil); err != nil {
			return nil, mapErr(err, "lease shipment")
		}
		t := leaseUntil
		o.NextCheckAt = &t
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapErr(err, "commit tx")
	}
	return picked, nil
}

// RefreshShipment makes the order due for the next worker pass.
func (s *Storage) RefreshShipment(ctx context.Context, orderID string, now time.Time) error {
	tag, err := s.db.Exec(ctx, `
UPDATE orders SET next_check_at = $2
WHERE id = $1 AND status = 'shipped' AND carrier <> ''`, orderID, now.UTC())
	if err != nil {
		return mapErr(err, "refresh shipment")
	}
	if tag.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows, "shipped order "+orderID)
	}
	return nil
}

// ApplyCarrierSync appends new carrier events and updates the polling
// bookkeeping. Order status is never changed here. It returns the number of
// events actually inserted.
func (s *Storage) ApplyCarrierSync(ctx context.Context, u CarrierSync) (int, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, mapErr(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	st, err := lockOrder(ctx, tx, u.OrderID)
	if err != nil {
		return 0, err
	}

	// Delivered orders are no longer polled.
	var next *time.Time
	if st == models.OrderShipped {
		t := u.NextCheckAt.UTC()
		next = &t
	}

	if u.Error != nil && *u.Error != "" {
		_, err := tx.Exec(ctx, `
UPDATE orders
SET
  last_checked_at = $2,
  check_fail_count = check_fail_count + 1,
  last_error = $3,
  next_check_at = $4
WHERE id = $1
`, u.OrderID, u.CheckedAt.UTC(), *u.Error, next)
		if err != nil {
			return 0, mapErr(err, "update shipment (error)")
		}
		return 0, mapErr(tx.Commit(ctx), "commit tx")
	}

	_, err = tx.Exec(ctx, `
UPDATE orders
SET
  last_checked_at = $2,
  check_fail_count = 0,
  last_error = NULL,
  next_check_at = $3
WHERE id = $1
`, u.OrderID, u.CheckedAt.UTC(), next)
	if err != nil {
		return 0, mapErr(err, "update shipment (ok)")
	}

	inserted := 0
	for _, e := range u.Events {
		e.OrderID = u.OrderID
		e.Source = eventSourceCarrier
		ok, err := insertEvent(ctx, tx, e)
		if err != nil {
			return 0, err
		}
		if ok {
			inserted++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, mapErr(err, "commit tx")
	}
	return inserted, nil
}
