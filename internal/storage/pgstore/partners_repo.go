package pgstore

import (
	"context"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const partnerColumns = `
  id, company_name, contact_name, email, phone, status, source_lead_id, metadata, created_at`

// ConvertLead runs the lead→partner conversion atomically: the lead row is
// locked, the back-reference re-checked, then partner, lead and activity are
// written together. created is false when the lead was already converted; in
// that case nothing is written and the existing partner id is returned.
func (s *Storage) ConvertLead(ctx context.Context, c models.Conversion) (lead *models.Lead, partnerID string, created bool, err error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, "", false, mapErr(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cur, err := scanLead(tx.QueryRow(ctx, `SELECT`+leadColumns+` FROM leads WHERE id = $1 FOR UPDATE`, c.LeadID))
	if err != nil {
		return nil, "", false, mapErr(err, "lock lead "+c.LeadID)
	}
	if cur.ConvertedToPartnerID != nil {
		return cur, *cur.ConvertedToPartnerID, false, nil
	}
	if c.Partner == nil {
		return nil, "", false, apperr.Validation("partner snapshot is required")
	}

	p := c.Partner
	_, err = tx.Exec(ctx, `
INSERT INTO partners (
  id, company_name, contact_name, email, phone, status, source_lead_id, metadata, created_at
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`, p.ID, p.CompanyName, p.ContactName, p.Email, p.Phone, p.Status, c.LeadID, nonNilMap(p.Metadata), c.At.UTC())
	if err != nil {
		return nil, "", false, mapErr(err, "insert partner")
	}

	lead, err = scanLead(tx.QueryRow(ctx, `
UPDATE leads
SET
  pipeline_stage = $2,
  status = $3,
  converted_at = $4,
  converted_to_partner_id = $5,
  updated_at = $4
WHERE id = $1 AND converted_to_partner_id IS NULL
RETURNING`+leadColumns,
		c.LeadID, string(models.StageClosedWon), string(models.LeadStatusConverted), c.At.UTC(), p.ID))
	if err != nil {
		return nil, "", false, mapErr(err, "update converted lead")
	}

	if err := insertActivity(ctx, tx, c.Activity); err != nil {
		return nil, "", false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, "", false, mapErr(err, "commit tx")
	}

	// last_contacted_at was touched after RETURNING.
	if c.Activity != nil {
		at := c.Activity.CreatedAt.UTC()
		lead.LastContactedAt = &at
	}
	return lead, p.ID, true, nil
}

func (s *Storage) GetPartner(ctx context.Context, id string) (*models.Partner, error) {
	var p models.Partner
	err := s.db.QueryRow(ctx, `SELECT`+partnerColumns+` FROM partners WHERE id = $1`, id).Scan(
		&p.ID, &p.CompanyName, &p.ContactName, &p.Email, &p.Phone, &p.Status, &p.SourceLeadID, &p.Metadata, &p.CreatedAt,
	)
	if err != nil {
		return nil, mapErr(err, "select partner "+id)
	}
	return &p, nil
}

func (s *Storage) CountPartnersForLead(ctx context.Context, leadID string) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM partners WHERE source_lead_id = $1`, leadID).Scan(&n)
	if err != nil {
		return 0, errors.Wrap(mapErr(err, "count partners"), leadID)
	}
	return n, nil
}
