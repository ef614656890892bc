package leads

import (
	"context"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/BearBump/SalesTrack/internal/broker/messages"
	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const partnerStatusActive = "active"

type ConversionResult struct {
	PartnerID string       `json:"partner_id"`
	Lead      *models.Lead `json:"lead"`
	// Created is false when the lead had already been converted.
	Created bool `json:"created"`
}

// ConvertLeadToPartner is idempotent: a lead that already points at a partner
// returns that partner without side effects. Otherwise the partner, the lead
// update and the converted activity are written atomically.
func (s *Service) ConvertLeadToPartner(ctx context.Context, leadID, performedBy string) (*ConversionResult, error) {
	if leadID == "" {
		return nil, apperr.Validation("lead id is required")
	}

	lead, err := s.repo.GetLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.ConvertedToPartnerID != nil && lead.PipelineStage == models.StageClosedWon {
		return &ConversionResult{PartnerID: *lead.ConvertedToPartnerID, Lead: lead}, nil
	}
	if lead.Company == "" && lead.FullName() == "" {
		return nil, apperr.Validation("lead %s has neither a company nor a contact name", leadID)
	}

	if s.locker != nil {
		release, err := s.locker.Obtain(ctx, "lock:lead-convert:"+leadID, s.lockTTL)
		switch {
		case errors.Is(err, apperr.ErrConflict):
			return nil, apperr.Conflict("conversion of lead %s is already in progress", leadID)
		case err != nil:
			// The row lock and the unique source_lead_id still hold.
			s.log.Warn("conversion lock unavailable", zap.String("lead_id", leadID), zap.Error(err))
		default:
			defer func() {
				if err := release(context.WithoutCancel(ctx)); err != nil {
					s.log.Warn("release conversion lock", zap.String("lead_id", leadID), zap.Error(err))
				}
			}()
		}
	}

	now := s.now()
	partner := &models.Partner{
		ID:           s.newID(),
		CompanyName:  lead.Company,
		ContactName:  lead.FullName(),
		Email:        lead.Email,
		Phone:        lead.Phone,
		Status:       partnerStatusActive,
		SourceLeadID: leadID,
		Metadata: map[string]any{
			"source":         "lead_conversion",
			"source_lead_id": leadID,
			"lead_source":    lead.Source,
			"lead_score":     lead.Score,
		},
		CreatedAt: now,
	}
	act := &models.LeadActivity{
		ID:           s.newID(),
		LeadID:       leadID,
		ActivityType: models.ActivityConverted,
		Subject:      "Converted to partner",
		Description:  "Partner " + partnerName(partner) + " created from lead",
		PerformedBy:  performedBy,
		Metadata:     map[string]any{"partner_id": partner.ID, "from": string(lead.PipelineStage)},
		CreatedAt:    now,
	}

	converted, partnerID, created, err := s.repo.ConvertLead(ctx, models.Conversion{
		LeadID:   leadID,
		Partner:  partner,
		Activity: act,
		At:       now,
	})
	if err != nil {
		return nil, apperr.Backend(err, "convert lead "+leadID)
	}

	if created {
		s.publish(ctx, messages.LeadEvent{
			Type: messages.LeadConverted, LeadID: leadID, At: now,
			From: lead.PipelineStage, To: models.StageClosedWon, PartnerID: partnerID,
		})
	}
	return &ConversionResult{PartnerID: partnerID, Lead: converted, Created: created}, nil
}

func partnerName(p *models.Partner) string {
	if p.CompanyName != "" {
		return p.CompanyName
	}
	return p.ContactName
}
