package pgstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	defaultLeadLimit = 50
	maxLeadLimit     = 500
)

const leadColumns = `
  id, first_name, last_name, email, phone, company, job_title, source,
  status, pipeline_stage, score, tags, metadata, assigned_to,
  converted_to_partner_id, converted_at, last_contacted_at,
  created_at, updated_at`

func scanLead(row pgx.Row) (*models.Lead, error) {
	var l models.Lead
	if err := row.Scan(
		&l.ID, &l.FirstName, &l.LastName, &l.Email, &l.Phone, &l.Company, &l.JobTitle, &l.Source,
		&l.Status, &l.PipelineStage, &l.Score, &l.Tags, &l.Metadata, &l.AssignedTo,
		&l.ConvertedToPartnerID, &l.ConvertedAt, &l.LastContactedAt,
		&l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if l.Tags == nil {
		l.Tags = []string{}
	}
	if l.Metadata == nil {
		l.Metadata = map[string]any{}
	}
	return &l, nil
}

func (s *Storage) CreateLead(ctx context.Context, l *models.Lead) error {
	_, err := s.db.Exec(ctx, `
INSERT INTO leads (
  id, first_name, last_name, email, phone, company, job_title, source,
  status, pipeline_stage, score, tags, metadata, assigned_to, created_at, updated_at
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$15)
`, l.ID, l.FirstName, l.LastName, l.Email, l.Phone, l.Company, l.JobTitle, l.Source,
		string(l.Status), string(l.PipelineStage), l.Score, nonNilTags(l.Tags), nonNilMap(l.Metadata),
		l.AssignedTo, l.CreatedAt.UTC())
	return mapErr(err, "insert lead")
}

func (s *Storage) GetLead(ctx context.Context, id string) (*models.Lead, error) {
	l, err := scanLead(s.db.QueryRow(ctx, `SELECT`+leadColumns+` FROM leads WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err, "select lead "+id)
	}
	return l, nil
}

// UpdateLead writes only the fields present in upd.
func (s *Storage) UpdateLead(ctx context.Context, id string, upd models.LeadUpdate, at time.Time) (*models.Lead, error) {
	if upd.Empty() {
		return s.GetLead(ctx, id)
	}

	sets := make([]string, 0, 12)
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.FirstName != nil {
		add("first_name", *upd.FirstName)
	}
	if upd.LastName != nil {
		add("last_name", *upd.LastName)
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.Phone != nil {
		add("phone", *upd.Phone)
	}
	if upd.Company != nil {
		add("company", *upd.Company)
	}
	if upd.JobTitle != nil {
		add("job_title", *upd.JobTitle)
	}
	if upd.Source != nil {
		add("source", *upd.Source)
	}
	if upd.Score != nil {
		add("score", *upd.Score)
	}
	if upd.Tags != nil {
		add("tags", nonNilTags(*upd.Tags))
	}
	if upd.Metadata != nil {
		add("metadata", nonNilMap(*upd.Metadata))
	}
	if upd.AssignedTo != nil {
		add("assigned_to", *upd.AssignedTo)
	}
	if upd.Status != nil {
		add("status", string(*upd.Status))
	}
	add("updated_at", at.UTC())

	l, err := scanLead(s.db.QueryRow(ctx,
		`UPDATE leads SET `+strings.Join(sets, ", ")+` WHERE id = $1 RETURNING`+leadColumns, args...))
	if err != nil {
		return nil, mapErr(err, "update lead "+id)
	}
	return l, nil
}

// ApplyStageChange moves the lead and appends the stage_change activity in
// one transaction. A converted lead can only stay in closed_won, and the
// first converted_at is kept.
func (s *Storage) ApplyStageChange(ctx context.Context, ch models.StageChange, act *models.LeadActivity) (*models.Lead, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, mapErr(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status *string
	if ch.Status != nil {
		v := string(*ch.Status)
		status = &v
	}

	l, err := scanLead(tx.QueryRow(ctx, `
UPDATE leads
SET
  pipeline_stage = $2,
  status = COALESCE($3, status),
  converted_at = COALESCE(converted_at, $4),
  last_contacted_at = $5,
  updated_at = $5
WHERE id = $1
  AND (converted_to_partner_id IS NULL OR $2 = 'closed_won')
RETURNING`+leadColumns,
		ch.LeadID, string(ch.To), status, ch.ConvertedAt, ch.At.UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.stageChangeMiss(ctx, tx, ch.LeadID)
		}
		return nil, mapErr(err, "update lead stage")
	}

	if err := insertActivity(ctx, tx, act); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapErr(err, "commit tx")
	}
	return l, nil
}

func (s *Storage) stageChangeMiss(ctx context.Context, q querier, id string) error {
	var partnerID *string
	err := q.QueryRow(ctx, `SELECT converted_to_partner_id FROM leads WHERE id = $1`, id).Scan(&partnerID)
	if err != nil {
		return mapErr(err, "select lead "+id)
	}
	return apperr.Conflict("lead %s is converted to partner %s and must stay closed_won", id, deref(partnerID))
}

func (s *Storage) ListLeads(ctx context.Context, f models.LeadFilter) (*models.LeadPage, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultLeadLimit
	}
	if limit > maxLeadLimit {
		limit = maxLeadLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	conds := []string{"TRUE"}
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if !f.IncludeArchived {
		conds = append(conds, "status <> 'archived'")
	}
	if f.Stage != nil {
		conds = append(conds, "pipeline_stage = "+arg(string(*f.Stage)))
	}
	if f.AssignedTo != nil {
		conds = append(conds, "assigned_to = "+arg(*f.AssignedTo))
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		p := arg("%" + escapeLike(q) + "%")
		conds = append(conds, fmt.Sprintf(
			"(first_name ILIKE %[1]s OR last_name ILIKE %[1]s OR email ILIKE %[1]s OR company ILIKE %[1]s)", p))
	}
	where := strings.Join(conds, " AND ")

	page := &models.LeadPage{Items: []*models.Lead{}}
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM leads WHERE `+where, args...).Scan(&page.Total); err != nil {
		return nil, mapErr(err, "count leads")
	}

	rows, err := s.db.Query(ctx, `SELECT`+leadColumns+` FROM leads WHERE `+where+
		` ORDER BY created_at DESC, id LIMIT `+arg(limit)+` OFFSET `+arg(offset), args...)
	if err != nil {
		return nil, mapErr(err, "select leads")
	}
	defer rows.Close()

	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, mapErr(err, "scan lead")
		}
		page.Items = append(page.Items, l)
	}
	if rows.Err() != nil {
		return nil, mapErr(rows.Err(), "rows")
	}
	return page, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func nonNilTags(t []string) []string {
	if t == nil {
		return []string{}
	}
	return t
}

func nonNilMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
