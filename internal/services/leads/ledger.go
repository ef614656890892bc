package leads

import (
	"context"
	"strings"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/BearBump/SalesTrack/internal/integrations/calendar"
	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/BearBump/SalesTrack/internal/validation"
	"go.uber.org/zap"
)

// AddActivity appends to the lead's ledger. The store touches the lead's
// last_contacted_at in the same transaction for every activity type.
func (s *Service) AddActivity(ctx context.Context, leadID string, in models.ActivityInput) (*models.LeadActivity, error) {
	if leadID == "" {
		return nil, apperr.Validation("lead id is required")
	}
	in.Subject = strings.TrimSpace(in.Subject)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	a := &models.LeadActivity{
		ID:           s.newID(),
		LeadID:       leadID,
		ActivityType: in.ActivityType,
		Subject:      in.Subject,
		Description:  in.Description,
		Outcome:      in.Outcome,
		PerformedBy:  in.PerformedBy,
		ScheduledAt:  in.ScheduledAt,
		CompletedAt:  in.CompletedAt,
		Metadata:     in.Metadata,
		CreatedAt:    s.now(),
	}
	if a.Metadata == nil {
		a.Metadata = map[string]any{}
	}
	if err := s.repo.AppendActivity(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) ListActivities(ctx context.Context, leadID string, limit int) ([]*models.LeadActivity, error) {
	if leadID == "" {
		return nil, apperr.Validation("lead id is required")
	}
	return s.repo.ListActivities(ctx, leadID, limit)
}

// ScheduleMeeting persists a scheduled meeting and its meeting_scheduled
// activity. When no external event id is given and a connected calendar is
// wired, the remote event is created first and linked.
func (s *Service) ScheduleMeeting(ctx context.Context, leadID string, in models.MeetingInput) (*models.LeadMeeting, error) {
	if leadID == "" {
		return nil, apperr.Validation("lead id is required")
	}
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if !in.EndTime.After(in.StartTime) {
		return nil, apperr.Validation("meeting must end after it starts")
	}

	lead, err := s.repo.GetLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	m := &models.LeadMeeting{
		ID:              s.newID(),
		LeadID:          leadID,
		ExternalEventID: in.ExternalEventID,
		JoinLink:        in.JoinLink,
		MeetingType:     in.MeetingType,
		Title:           in.Title,
		Description:     in.Description,
		StartTime:       in.StartTime.UTC(),
		EndTime:         in.EndTime.UTC(),
		Timezone:        in.Timezone,
		Attendees:       append([]string{}, in.Attendees...),
		Status:          models.MeetingScheduled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	createdRemote := false
	if m.ExternalEventID == "" && s.calendar != nil && s.calendar.IsConnected(ctx) {
		ev, err := s.calendar.CreateEvent(ctx, calendar.EventInput{
			Summary:     m.Title,
			Description: m.Description,
			Start:       m.StartTime,
			End:         m.EndTime,
			Timezone:    m.Timezone,
			Attendees:   m.Attendees,
		})
		if err != nil {
			s.log.Warn("create calendar event", zap.String("lead_id", leadID), zap.Error(err))
		} else {
			m.ExternalEventID = ev.ID
			if m.JoinLink == "" {
				m.JoinLink = ev.JoinLink
			}
			createdRemote = true
		}
	}

	start := m.StartTime
	act := &models.LeadActivity{
		ID:           s.newID(),
		LeadID:       leadID,
		ActivityType: models.ActivityMeetingScheduled,
		Subject:      "Meeting scheduled: " + m.Title,
		Description:  "Meeting with " + displayName(lead),
		PerformedBy:  in.PerformedBy,
		ScheduledAt:  &start,
		Metadata: map[string]any{
			"meeting_id":        m.ID,
			"external_event_id": m.ExternalEventID,
		},
		CreatedAt: now,
	}

	if err := s.repo.CreateMeeting(ctx, m, act); err != nil {
		if createdRemote {
			if derr := s.calendar.DeleteEvent(ctx, m.ExternalEventID); derr != nil {
				s.log.Warn("rollback calendar event", zap.String("event_id", m.ExternalEventID), zap.Error(derr))
			}
		}
		return nil, err
	}
	return m, nil
}

// CancelMeeting is idempotent for already cancelled meetings.
func (s *Service) CancelMeeting(ctx context.Context, meetingID, reason, performedBy string) (*models.LeadMeeting, error) {
	m, err := s.meeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	switch m.Status {
	case models.MeetingCancelled:
		return m, nil
	case models.MeetingCompleted:
		return nil, apperr.Conflict("meeting %s is already completed", meetingID)
	}

	now := s.now()
	act := &models.LeadActivity{
		ID:           s.newID(),
		LeadID:       m.LeadID,
		ActivityType: models.ActivityMeetingCancelled,
		Subject:      "Meeting cancelled: " + m.Title,
		Description:  reason,
		PerformedBy:  performedBy,
		Metadata:     map[string]any{"meeting_id": m.ID},
		CreatedAt:    now,
	}
	out, err := s.repo.SetMeetingStatus(ctx, m.ID, models.MeetingCancelled, reason, now, act)
	if err != nil {
		return nil, err
	}

	if m.ExternalEventID != "" && s.calendar != nil {
		if err := s.calendar.DeleteEvent(ctx, m.ExternalEventID); err != nil {
			s.log.Warn("delete calendar event", zap.String("event_id", m.ExternalEventID), zap.Error(err))
		}
	}
	return out, nil
}

func (s *Service) CompleteMeeting(ctx context.Context, meetingID, outcome, performedBy string) (*models.LeadMeeting, error) {
	m, err := s.meeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if m.Status == models.MeetingCancelled {
		return nil, apperr.Conflict("meeting %s is cancelled", meetingID)
	}

	now := s.now()
	act := &models.LeadActivity{
		ID:           s.newID(),
		LeadID:       m.LeadID,
		ActivityType: models.ActivityMeeting,
		Subject:      "Meeting completed: " + m.Title,
		Outcome:      outcome,
		PerformedBy:  performedBy,
		CompletedAt:  &now,
		Metadata:     map[string]any{"meeting_id": m.ID},
		CreatedAt:    now,
	}
	return s.repo.SetMeetingStatus(ctx, m.ID, models.MeetingCompleted, outcome, now, act)
}

func (s *Service) ListMeetings(ctx context.Context, leadID string) ([]*models.LeadMeeting, error) {
	if leadID == "" {
		return nil, apperr.Validation("lead id is required")
	}
	return s.repo.ListMeetings(ctx, leadID)
}

func (s *Service) ListUpcomingMeetings(ctx context.Context, limit int) ([]*models.LeadMeeting, error) {
	return s.repo.ListUpcomingMeetings(ctx, s.now(), limit)
}

func (s *Service) meeting(ctx context.Context, id string) (*models.LeadMeeting, error) {
	if id == "" {
		return nil, apperr.Validation("meeting id is required")
	}
	return s.repo.GetMeeting(ctx, id)
}

func displayName(l *models.Lead) string {
	if n := l.FullName(); n != "" {
		return n
	}
	if l.Company != "" {
		return l.Company
	}
	return l.Email
}
