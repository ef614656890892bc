package pgstore

import (
	"context"
	"time"

	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/jackc/pgx/v5"
)

const activityColumns = `
  id, lead_id, activity_type, subject, description, outcome, performed_by,
  scheduled_at, completed_at, metadata, created_at`

// insertActivity appends to the ledger and touches the lead's
// last_contacted_at. Every activity type counts as contact.
func insertActivity(ctx context.Context, q querier, a *models.LeadActivity) error {
	if a == nil {
		return nil
	}
	_, err := q.Exec(ctx, `
INSERT INTO lead_activities (
  id, lead_id, activity_type, subject, description, outcome, performed_by,
  scheduled_at, completed_at, metadata, created_at
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`, a.ID, a.LeadID, string(a.ActivityType), a.Subject, a.Description, a.Outcome, a.PerformedBy,
		a.ScheduledAt, a.CompletedAt, nonNilMap(a.Metadata), a.CreatedAt.UTC())
	if err != nil {
		return mapErr(err, "insert activity")
	}

	tag, err := q.Exec(ctx, `UPDATE leads SET last_contacted_at = $2 WHERE id = $1`, a.LeadID, a.CreatedAt.UTC())
	if err != nil {
		return mapErr(err, "touch lead")
	}
	if tag.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows, "lead "+a.LeadID)
	}
	return nil
}

func (s *Storage) AppendActivity(ctx context.Context, a *models.LeadActivity) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return mapErr(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := insertActivity(ctx, tx, a); err != nil {
		return err
	}
	return mapErr(tx.Commit(ctx), "commit tx")
}

func (s *Storage) ListActivities(ctx context.Context, leadID string, limit int) ([]*models.LeadActivity, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	rows, err := s.db.Query(ctx, `SELECT`+activityColumns+`
FROM lead_activities
WHERE lead_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`, leadID, limit)
	if err != nil {
		return nil, mapErr(err, "select activities")
	}
	defer rows.Close()

	out := []*models.LeadActivity{}
	for rows.Next() {
		var a models.LeadActivity
		if err := rows.Scan(
			&a.ID, &a.LeadID, &a.ActivityType, &a.Subject, &a.Description, &a.Outcome, &a.PerformedBy,
			&a.ScheduledAt, &a.CompletedAt, &a.Metadata, &a.CreatedAt,
		); err != nil {
			return nil, mapErr(err, "scan activity")
		}
		if a.Metadata == nil {
			a.Metadata = map[string]any{}
		}
		out = append(out, &a)
	}
	if rows.Err() != nil {
		return nil, mapErr(rows.Err(), "rows")
	}
	return out, nil
}

// CountActivities is used by ops tooling and tests.
func (s *Storage) CountActivities(ctx context.Context, leadID string, typ models.ActivityType) (int, error) {
	var n int
	err := s.db.QueryRow(ctx,
		`SELECT count(*) FROM lead_activities WHERE lead_id = $1 AND ($2 = '' OR activity_type = $2)`,
		leadID, string(typ)).Scan(&n)
	return n, mapErr(err, "count activities")
}

const meetingColumns = `
  id, lead_id, external_event_id, join_link, meeting_type, title, description,
  start_time, end_time, timezone, attendees, status, outcome, created_at, updated_at`

func scanMeeting(row pgx.Row) (*models.LeadMeeting, error) {
	var m models.LeadMeeting
	if err := row.Scan(
		&m.ID, &m.LeadID, &m.ExternalEventID, &m.JoinLink, &m.MeetingType, &m.Title, &m.Description,
		&m.StartTime, &m.EndTime, &m.Timezone, &m.Attendees, &m.Status, &m.Outcome, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if m.Attendees == nil {
		m.Attendees = []string{}
	}
	return &m, nil
}

// CreateMeeting persists the meeting together with its meeting_scheduled
// activity.
func (s *Storage) CreateMeeting(ctx context.Context, m *models.LeadMeeting, act *models.LeadActivity) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return mapErr(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	attendees := m.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	_, err = tx.Exec(ctx, `
INSERT INTO lead_meetings (
  id, lead_id, external_event_id, join_link, meeting_type, title, description,
  start_time, end_time, timezone, attendees, status, outcome, created_at, updated_at
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$14)
`, m.ID, m.LeadID, m.ExternalEventID, m.JoinLink, m.MeetingType, m.Title, m.Description,
		m.StartTime.UTC(), m.EndTime.UTC(), m.Timezone, attendees, string(m.Status), m.Outcome, m.CreatedAt.UTC())
	if err != nil {
		return mapErr(err, "insert meeting")
	}

	if err := insertActivity(ctx, tx, act); err != nil {
		return err
	}
	return mapErr(tx.Commit(ctx), "commit tx")
}

func (s *Storage) GetMeeting(ctx context.Context, id string) (*models.LeadMeeting, error) {
	m, err := scanMeeting(s.db.QueryRow(ctx, `SELECT`+meetingColumns+` FROM lead_meetings WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err, "select meeting "+id)
	}
	return m, nil
}

// SetMeetingStatus updates status/outcome and optionally appends act in the
// same transaction.
func (s *Storage) SetMeetingStatus(ctx context.Context, id string, status models.MeetingStatus, outcome string, at time.Time, act *models.LeadActivity) (*models.LeadMeeting, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, mapErr(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	m, err := scanMeeting(tx.QueryRow(ctx, `
UPDATE lead_meetings
SET status = $2, outcome = CASE WHEN $3 = '' THEN outcome ELSE $3 END, updated_at = $4
WHERE id = $1
RETURNING`+meetingColumns, id, string(status), outcome, at.UTC()))
	if err != nil {
		return nil, mapErr(err, "update meeting "+id)
	}

	if err := insertActivity(ctx, tx, act); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, mapErr(err, "commit tx")
	}
	return m, nil
}

func (s *Storage) ListMeetings(ctx context.Context, leadID string) ([]*models.LeadMeeting, error) {
	return s.queryMeetings(ctx, `SELECT`+meetingColumns+`
FROM lead_meetings
WHERE lead_id = $1
ORDER BY start_time ASC, id`, leadID)
}

func (s *Storage) ListUpcomingMeetings(ctx context.Context, now time.Time, limit int) ([]*models.LeadMeeting, error) {
	if limit <= 0 || limit > 500 {
		limit = 20
	}
	return s.queryMeetings(ctx, `SELECT`+meetingColumns+`
FROM lead_meetings
WHERE status = 'scheduled' AND start_time >= $1
ORDER BY start_time ASC, id
LIMIT $2`, now.UTC(), limit)
}

func (s *Storage) queryMeetings(ctx context.Context, q string, args ...any) ([]*models.LeadMeeting, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, mapErr(err, "select meetings")
	}
	defer rows.Close()

	out := []*models.LeadMeeting{}
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, mapErr(err, "scan meeting")
		}
		out = append(out, m)
	}
	if rows.Err() != nil {
		return nil, mapErr(rows.Err(), "rows")
	}
	return out, nil
}
