package pgstore

import (
	"context"

	"github.com/pkg/errors"
)

func (s *Storage) initSchema(ctx context.Context) error {
	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS leads (
  id TEXT PRIMARY KEY,
  first_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  company TEXT NOT NULL DEFAULT '',
  job_title TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL,
  pipeline_stage TEXT NOT NULL,
  score INT NOT NULL DEFAULT 0,
  tags TEXT[] NOT NULL DEFAULT '{}',
  metadata JSONB NOT NULL DEFAULT '{}',
  assigned_to TEXT NULL,
  converted_to_partner_id TEXT NULL,
  converted_at TIMESTAMPTZ NULL,
  last_contacted_at TIMESTAMPTZ NULL,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL,
  CHECK (converted_to_partner_id IS NULL OR pipeline_stage = 'closed_won')
)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_stage ON leads(pipeline_stage)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_assigned_to ON leads(assigned_to)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at DESC)`,
		// Intake is at-least-once; one lead per external form submission.
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_leads_external_id
  ON leads((metadata->>'external_id'))
  WHERE metadata ? 'external_id'`,
		`
CREATE TABLE IF NOT EXISTS lead_activities (
  id TEXT PRIMARY KEY,
  lead_id TEXT NOT NULL REFERENCES leads(id),
  activity_type TEXT NOT NULL,
  subject TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  outcome TEXT NOT NULL DEFAULT '',
  performed_by TEXT NOT NULL DEFAULT '',
  scheduled_at TIMESTAMPTZ NULL,
  completed_at TIMESTAMPTZ NULL,
  metadata JSONB NOT NULL DEFAULT '{}',
  created_at TIMESTAMPTZ NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_lead_activities_lead_created ON lead_activities(lead_id, created_at DESC)`,
		`
CREATE TABLE IF NOT EXISTS lead_meetings (
  id TEXT PRIMARY KEY,
  lead_id TEXT NOT NULL REFERENCES leads(id),
  external_event_id TEXT NOT NULL DEFAULT '',
  join_link TEXT NOT NULL DEFAULT '',
  meeting_type TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  start_time TIMESTAMPTZ NOT NULL,
  end_time TIMESTAMPTZ NOT NULL,
  timezone TEXT NOT NULL DEFAULT '',
  attendees TEXT[] NOT NULL DEFAULT '{}',
  status TEXT NOT NULL,
  outcome TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_lead_meetings_lead_start ON lead_meetings(lead_id, start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_lead_meetings_upcoming ON lead_meetings(start_time) WHERE status = 'scheduled'`,
		`
CREATE TABLE IF NOT EXISTS partners (
  id TEXT PRIMARY KEY,
  company_name TEXT NOT NULL DEFAULT '',
  contact_name TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL,
  source_lead_id TEXT NOT NULL REFERENCES leads(id),
  metadata JSONB NOT NULL DEFAULT '{}',
  created_at TIMESTAMPTZ NOT NULL,
  CONSTRAINT uq_partners_source_lead UNIQUE (source_lead_id)
)`,
		`
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL DEFAULT '',
  customer_name TEXT NOT NULL DEFAULT '',
  customer_email TEXT NOT NULL DEFAULT '',
  order_type TEXT NOT NULL DEFAULT 'd2c',
  status TEXT NOT NULL,
  total_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
  currency TEXT NOT NULL DEFAULT 'USD',
  shipping_city TEXT NOT NULL DEFAULT '',
  shipping_state TEXT NOT NULL DEFAULT '',
  tracking_number TEXT NOT NULL DEFAULT '',
  carrier TEXT NOT NULL DEFAULT '',
  carrier_service TEXT NOT NULL DEFAULT '',
  tracking_url TEXT NOT NULL DEFAULT '',
  shipped_at TIMESTAMPTZ NULL,
  delivered_at TIMESTAMPTZ NULL,
  estimated_delivery TIMESTAMPTZ NULL,
  next_check_at TIMESTAMPTZ NULL,
  last_checked_at TIMESTAMPTZ NULL,
  check_fail_count INT NOT NULL DEFAULT 0,
  last_error TEXT NULL,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_next_check_at ON orders(next_check_at) WHERE status = 'shipped'`,
		`
CREATE TABLE IF NOT EXISTS tracking_events (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders(id),
  event_type TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  latitude DOUBLE PRECISION NULL,
  longitude DOUBLE PRECISION NULL,
  description TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT '',
  occurred_at TIMESTAMPTZ NOT NULL,
  created_at TIMESTAMPTZ NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_tracking_events_order_occurred ON tracking_events(order_id, occurred_at DESC)`,
		// Carrier polling may report the same checkpoint many times.
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_tracking_events_carrier_dedup
  ON tracking_events(order_id, event_type, occurred_at, location, description)
  WHERE source = 'carrier'`,
		`
CREATE TABLE IF NOT EXISTS delivery_proofs (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders(id),
  proof_type TEXT NOT NULL,
  signature_url TEXT NOT NULL DEFAULT '',
  photo_url TEXT NOT NULL DEFAULT '',
  recipient_name TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  latitude DOUBLE PRECISION NULL,
  longitude DOUBLE PRECISION NULL,
  delivered_at TIMESTAMPTZ NOT NULL,
  driver_name TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL,
  CONSTRAINT uq_delivery_proofs_order UNIQUE (order_id)
)`,
	}

	for _, q := range stmts {
		if _, err := s.db.Exec(ctx, q); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}
