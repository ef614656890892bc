package pgstore

import (
	"context"

	"github.com/BearBump/SalesTrack/internal/models"
)

// Events reported by carrier polling are deduplicated; manual ones are not.
const eventSourceCarrier = "carrier"

// insertEvent returns false when a duplicate carrier event was skipped.
func insertEvent(ctx context.Context, q querier, e *models.TrackingEvent) (bool, error) {
	tag, err := q.Exec(ctx, `
INSERT INTO tracking_events (
  id, order_id, event_type, status, location, latitude, longitude,
  description, source, occurred_at, created_at
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
ON CONFLICT (order_id, event_type, occurred_at, location, description)
  WHERE source = 'carrier'
DO NOTHING
`, e.ID, e.OrderID, e.EventType, e.Status, e.Location, e.Latitude, e.Longitude,
		e.Description, e.Source, e.OccurredAt.UTC(), e.CreatedAt.UTC())
	if err != nil {
		return false, mapErr(err, "insert tracking event")
	}
	return tag.RowsAffected() == 1, nil
}

// AppendEvent appends e verbatim; an unknown order maps to NotFound.
func (s *Storage) AppendEvent(ctx context.Context, e *models.TrackingEvent) error {
	_, err := insertEvent(ctx, s.db, e)
	return err
}

func (s *Storage) ListEvents(ctx context.Context, orderID string, limit int) ([]*models.TrackingEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}

	rows, err := s.db.Query(ctx, `
SELECT
  id, order_id, event_type, status, location, latitude, longitude,
  description, source, occurred_at, created_at
FROM tracking_events
WHERE order_id = $1
ORDER BY occurred_at DESC, created_at DESC
LIMIT $2
`, orderID, limit)
	if err != nil {
		return nil, mapErr(err, "select events")
	}
	defer rows.Close()

	out := []*models.TrackingEvent{}
	for rows.Next() {
		var e models.TrackingEvent
		if err := rows.Scan(
			&e.ID, &e.OrderID, &e.EventType, &e.Status, &e.Location, &e.Latitude, &e.Longitude,
			&e.Description, &e.Source, &e.OccurredAt, &e.CreatedAt,
		); err != nil {
			return nil, mapErr(err, "scan event")
		}
		out = append(out, &e)
	}
	if rows.Err() != nil {
		return nil, mapErr(rows.Err(), "rows")
	}
	return out, nil
}
