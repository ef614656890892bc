package leads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/BearBump/SalesTrack/internal/broker/messages"
	"github.com/BearBump/SalesTrack/internal/integrations/calendar"
	"github.com/BearBump/SalesTrack/internal/logging"
	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/BearBump/SalesTrack/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	CreateLead(ctx context.Context, l *models.Lead) error
	GetLead(ctx context.Context, id string) (*models.Lead, error)
	UpdateLead(ctx context.Context, id string, upd models.LeadUpdate, at time.Time) (*models.Lead, error)
	ApplyStageChange(ctx context.Context, ch models.StageChange, act *models.LeadActivity) (*models.Lead, error)
	ListLeads(ctx context.Context, f models.LeadFilter) (*models.LeadPage, error)

	AppendActivity(ctx context.Context, a *models.LeadActivity) error
	ListActivities(ctx context.Context, leadID string, limit int) ([]*models.LeadActivity, error)

	CreateMeeting(ctx context.Context, m *models.LeadMeeting, act *models.LeadActivity) error
	GetMeeting(ctx context.Context, id string) (*models.LeadMeeting, error)
	SetMeetingStatus(ctx context.Context, id string, status models.MeetingStatus, outcome string, at time.Time, act *models.LeadActivity) (*models.LeadMeeting, error)
	ListMeetings(ctx context.Context, leadID string) ([]*models.LeadMeeting, error)
	ListUpcomingMeetings(ctx context.Context, now time.Time, limit int) ([]*models.LeadMeeting, error)

	ConvertLead(ctx context.Context, c models.Conversion) (*models.Lead, string, bool, error)
}

type Publisher interface {
	PublishLeadEvent(ctx context.Context, ev messages.LeadEvent) error
}

// Locker serialises conversions across processes. Obtain fails with an
// apperr.ErrConflict error when another caller holds the key.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error)
}

type Service struct {
	repo     Repository
	pub      Publisher
	locker   Locker
	calendar calendar.Client
	log      *zap.Logger

	policy      *TransitionPolicy
	phoneRegion string
	lockTTL     time.Duration

	now   func() time.Time
	newID func() string
}

func New(repo Repository, log *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		log:         logging.OrNop(log),
		phoneRegion: "US",
		lockTTL:     30 * time.Second,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

func (s *Service) WithPublisher(p Publisher) *Service {
	s.pub = p
	return s
}

func (s *Service) WithLocker(l Locker) *Service {
	s.locker = l
	return s
}

func (s *Service) WithCalendar(c calendar.Client) *Service {
	s.calendar = c
	return s
}

// WithSettings applies non-zero values only.
func (s *Service) WithSettings(strictTransitions bool, phoneRegion string, lockTTL time.Duration) *Service {
	if strictTransitions {
		s.policy = StrictPolicy()
	}
	if phoneRegion != "" {
		s.phoneRegion = phoneRegion
	}
	if lockTTL > 0 {
		s.lockTTL = lockTTL
	}
	return s
}

func (s *Service) CreateLead(ctx context.Context, in models.LeadCreateInput) (*models.Lead, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Company = strings.TrimSpace(in.Company)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	phone, err := validation.NormalizePhone(in.Phone, s.phoneRegion)
	if err != nil {
		return nil, err
	}
	if in.Email == "" && phone == "" && in.Company == "" {
		return nil, apperr.Validation("one of email, phone or company is required")
	}

	now := s.now()
	l := &models.Lead{
		ID:            s.newID(),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Phone:         phone,
		Company:       in.Company,
		JobTitle:      in.JobTitle,
		Source:        in.Source,
		Status:        models.LeadStatusActive,
		PipelineStage: models.StageNew,
		Score:         in.Score,
		Tags:          append([]string{}, in.Tags...),
		Metadata:      in.Metadata,
		AssignedTo:    in.AssignedTo,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if l.Metadata == nil {
		l.Metadata = map[string]any{}
	}

	if err := s.repo.CreateLead(ctx, l); err != nil {
		return nil, err
	}
	s.publish(ctx, messages.LeadEvent{Type: messages.LeadCreated, LeadID: l.ID, At: now, To: l.PipelineStage, Lead: l})
	return l, nil
}

func (s *Service) GetLead(ctx context.Context, id string) (*models.Lead, error) {
	if id == "" {
		return nil, apperr.Validation("lead id is required")
	}
	return s.repo.GetLead(ctx, id)
}

// UpdateLead merges the present fields of upd. Identity, stage and
// conversion fields cannot be changed here.
func (s *Service) UpdateLead(ctx context.Context, id string, upd models.LeadUpdate) (*models.Lead, error) {
	if id == "" {
		return nil, apperr.Validation("lead id is required")
	}
	upd.Status = nil
	if err := validation.Struct(upd); err != nil {
		return nil, err
	}
	if upd.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*upd.Email))
		upd.Email = &e
	}
	if upd.Phone != nil {
		p, err := validation.NormalizePhone(*upd.Phone, s.phoneRegion)
		if err != nil {
			return nil, err
		}
		upd.Phone = &p
	}

	cur, err := s.repo.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Empty() {
		return cur, nil
	}
	merged := *cur
	upd.Apply(&merged)
	if !merged.HasContact() {
		return nil, apperr.Validation("update would leave the lead without email, phone or company")
	}

	l, err := s.repo.UpdateLead(ctx, id, upd, s.now())
	if err != nil {
		return nil, err
	}
	s.publish(ctx, messages.LeadEvent{Type: messages.LeadUpdated, LeadID: id, At: l.UpdatedAt, Lead: l})
	return l, nil
}

// ArchiveLead hides the lead from default listings; leads are never deleted.
func (s *Service) ArchiveLead(ctx context.Context, id string) (*models.Lead, error) {
	if id == "" {
		return nil, apperr.Validation("lead id is required")
	}
	st := models.LeadStatusArchived
	l, err := s.repo.UpdateLead(ctx, id, models.LeadUpdate{Status: &st}, s.now())
	if err != nil {
		return nil, err
	}
	s.publish(ctx, messages.LeadEvent{Type: messages.LeadArchived, LeadID: id, At: l.UpdatedAt})
	return l, nil
}

func (s *Service) ListLeads(ctx context.Context, f models.LeadFilter) (*models.LeadPage, error) {
	if f.Stage != nil && !f.Stage.Valid() {
		return nil, apperr.Validation("unknown stage %q", *f.Stage)
	}
	if f.Limit < 0 || f.Offset < 0 {
		return nil, apperr.Validation("limit and offset must not be negative")
	}
	f.Search = strings.TrimSpace(f.Search)
	return s.repo.ListLeads(ctx, f)
}

// TransitionStage moves the lead to target and always records one
// stage_change activity, even when target equals the current stage.
func (s *Service) TransitionStage(ctx context.Context, id string, target models.PipelineStage, performedBy string) (*models.Lead, error) {
	if id == "" {
		return nil, apperr.Validation("lead id is required")
	}
	if target == "" {
		return nil, apperr.Validation("stage is required")
	}
	if !target.Valid() {
		return nil, apperr.Validation("unknown stage %q", target)
	}

	cur, err := s.repo.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}
	from := cur.PipelineStage
	if s.policy != nil && !s.policy.Allowed(from, target) {
		return nil, apperr.Validation("transition %s -> %s is not allowed", from, target)
	}

	now := s.now()
	ch := models.StageChange{LeadID: id, To: target, At: now}
	switch target {
	case models.StageClosedWon:
		st := models.LeadStatusConverted
		ch.Status = &st
		ch.ConvertedAt = &now
	case models.StageClosedLost:
		st := models.LeadStatusLost
		ch.Status = &st
	}

	act := &models.LeadActivity{
		ID:           s.newID(),
		LeadID:       id,
		ActivityType: models.ActivityStageChange,
		Subject:      fmt.Sprintf("Stage changed from %s to %s", from, target),
		PerformedBy:  performedBy,
		Metadata:     map[string]any{"from": string(from), "to": string(target)},
		CreatedAt:    now,
	}

	l, err := s.repo.ApplyStageChange(ctx, ch, act)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, messages.LeadEvent{Type: messages.LeadStageChanged, LeadID: id, At: now, From: from, To: target})
	return l, nil
}

// publish is best-effort: the write is already committed.
func (s *Service) publish(ctx context.Context, ev messages.LeadEvent) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishLeadEvent(ctx, ev); err != nil {
		s.log.Warn("publish lead event", zap.String("type", ev.Type), zap.String("lead_id", ev.LeadID), zap.Error(err))
	}
}
