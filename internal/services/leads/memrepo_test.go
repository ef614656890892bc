package leads

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memRepo keeps the store contract in memory: every multi-row write happens
// under one lock.
type memRepo struct {
	mu         sync.Mutex
	leads      map[string]*models.Lead
	activities []*models.LeadActivity
	meetings   map[string]*models.LeadMeeting
	partners   map[string]*models.Partner
}

func newMemRepo() *memRepo {
	return &memRepo{
		leads:    map[string]*models.Lead{},
		meetings: map[string]*models.LeadMeeting{},
		partners: map[string]*models.Partner{},
	}
}

func (r *memRepo) CreateLead(_ context.Context, l *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.leads[l.ID] = &cp
	return nil
}

func (r *memRepo) GetLead(_ context.Context, id string) (*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok {
		return nil, apperr.NotFound("lead %s not found", id)
	}
	cp := *l
	return &cp, nil
}

func (r *memRepo) UpdateLead(_ context.Context, id string, upd models.LeadUpdate, at time.Time) (*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[id]
	if !ok {
		return nil, apperr.NotFound("lead %s not found", id)
	}
	upd.Apply(l)
	l.UpdatedAt = at
	cp := *l
	return &cp, nil
}

func (r *memRepo) ApplyStageChange(_ context.Context, ch models.StageChange, act *models.LeadActivity) (*models.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[ch.LeadID]
	if !ok {
		return nil, apperr.NotFound("lead %s not found", ch.LeadID)
	}
	if l.ConvertedToPartnerID != nil && ch.To != models.StageClosedWon {
		return nil, apperr.Conflict("lead %s is converted", ch.LeadID)
	}
	l.PipelineStage = ch.To
	if ch.Status != nil {
		l.Status = *ch.Status
	}
	if ch.ConvertedAt != nil && l.ConvertedAt == nil {
		l.ConvertedAt = ch.ConvertedAt
	}
	l.UpdatedAt = ch.At
	r.appendLocked(act)
	cp := *l
	return &cp, nil
}

func (r *memRepo) ListLeads(_ context.Context, _ models.LeadFilter) (*models.LeadPage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	page := &models.LeadPage{}
	for _, l := range r.leads {
		cp := *l
		page.Items = append(page.Items, &cp)
	}
	page.Total = int64(len(page.Items))
	return page, nil
}

func (r *memRepo) AppendActivity(_ context.Context, a *models.LeadActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leads[a.LeadID]; !ok {
		return apperr.NotFound("lead %s not found", a.LeadID)
	}
	r.appendLocked(a)
	return nil
}

func (r *memRepo) appendLocked(a *models.LeadActivity) {
	cp := *a
	r.activities = append(r.activities, &cp)
	if l, ok := r.leads[a.LeadID]; ok {
		at := a.CreatedAt
		l.LastContactedAt = &at
	}
}

func (r *memRepo) ListActivities(_ context.Context, leadID string, _ int) ([]*models.LeadActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.LeadActivity{}
	for i := len(r.activities) - 1; i >= 0; i-- {
		if r.activities[i].LeadID == leadID {
			out = append(out, r.activities[i])
		}
	}
	return out, nil
}

func (r *memRepo) countActivities(leadID string, typ models.ActivityType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.activities {
		if a.LeadID == leadID && a.ActivityType == typ {
			n++
		}
	}
	return n
}

func (r *memRepo) CreateMeeting(_ context.Context, m *models.LeadMeeting, act *models.LeadActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.leads[m.LeadID]; !ok {
		return apperr.NotFound("lead %s not found", m.LeadID)
	}
	cp := *m
	r.meetings[m.ID] = &cp
	r.appendLocked(act)
	return nil
}

func (r *memRepo) GetMeeting(_ context.Context, id string) (*models.LeadMeeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return nil, apperr.NotFound("meeting %s not found", id)
	}
	cp := *m
	return &cp, nil
}

func (r *memRepo) SetMeetingStatus(_ context.Context, id string, status models.MeetingStatus, outcome string, at time.Time, act *models.LeadActivity) (*models.LeadMeeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return nil, apperr.NotFound("meeting %s not found", id)
	}
	m.Status, m.Outcome, m.UpdatedAt = status, outcome, at
	r.appendLocked(act)
	cp := *m
	return &cp, nil
}

func (r *memRepo) ListMeetings(_ context.Context, leadID string) ([]*models.LeadMeeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.LeadMeeting{}
	for _, m := range r.meetings {
		if m.LeadID == leadID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *memRepo) ListUpcomingMeetings(_ context.Context, now time.Time, _ int) ([]*models.LeadMeeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.LeadMeeting{}
	for _, m := range r.meetings {
		if m.Status == models.MeetingScheduled && m.StartTime.After(now) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memRepo) ConvertLead(_ context.Context, c models.Conversion) (*models.Lead, string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.leads[c.LeadID]
	if !ok {
		return nil, "", false, apperr.NotFound("lead %s not found", c.LeadID)
	}
	if l.ConvertedToPartnerID != nil {
		cp := *l
		return &cp, *l.ConvertedToPartnerID, false, nil
	}
	p := *c.Partner
	r.partners[p.ID] = &p
	pid := p.ID
	at := c.At
	l.ConvertedToPartnerID = &pid
	l.ConvertedAt = &at
	l.PipelineStage = models.StageClosedWon
	l.Status = models.LeadStatusConverted
	r.appendLocked(c.Activity)
	cp := *l
	return &cp, pid, true, nil
}

// chanLocker is a process-local stand-in for the redis lock.
type chanLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func (l *chanLocker) Obtain(_ context.Context, key string, _ time.Duration) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held == nil {
		l.held = map[string]bool{}
	}
	if l.held[key] {
		return nil, apperr.Conflict("lock %s is held", key)
	}
	l.held[key] = true
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
		return nil
	}, nil
}

func newMemService(t *testing.T) (*Service, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	return New(repo, zap.NewNop()).WithLocker(&chanLocker{}), repo
}

func TestTransitionStage_LedgerMatchesCalls(t *testing.T) {
	ctx := context.Background()
	svc, repo := newMemService(t)

	l, err := svc.CreateLead(ctx, models.LeadCreateInput{Company: "Acme"})
	require.NoError(t, err)

	targets := []models.PipelineStage{
		models.StageContacted, models.StageContacted, models.StageNew,
		models.StageProposal, models.StageQualified, models.StageNegotiation,
	}
	for _, to := range targets {
		_, err := svc.TransitionStage(ctx, l.ID, to, "rep")
		require.NoError(t, err)
	}

	got, err := svc.GetLead(ctx, l.ID)
	require.NoError(t, err)
	require.Equal(t, models.StageNegotiation, got.PipelineStage)
	require.Equal(t, len(targets), repo.countActivities(l.ID, models.ActivityStageChange))
	require.NotNil(t, got.LastContactedAt)

	acts, err := svc.ListActivities(ctx, l.ID, 0)
	require.NoError(t, err)
	require.Equal(t, "Stage changed from qualified to negotiation", acts[0].Subject)
}

func TestTransitionStage_ConvertedLeadStaysWon(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemService(t)

	l, err := svc.CreateLead(ctx, models.LeadCreateInput{FirstName: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	_, err = svc.ConvertLeadToPartner(ctx, l.ID, "rep")
	require.NoError(t, err)

	_, err = svc.TransitionStage(ctx, l.ID, models.StageContacted, "rep")
	require.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.TransitionStage(ctx, l.ID, models.StageClosedWon, "rep")
	require.NoError(t, err)
}

func TestConvertLeadToPartner_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, repo := newMemService(t)

	l, err := svc.CreateLead(ctx, models.LeadCreateInput{FirstName: "Ada", LastName: "Lovelace", Company: "Engines"})
	require.NoError(t, err)

	first, err := svc.ConvertLeadToPartner(ctx, l.ID, "rep")
	require.NoError(t, err)
	require.True(t, first.Created)
	require.Equal(t, models.StageClosedWon, first.Lead.PipelineStage)
	require.Equal(t, models.LeadStatusConverted, first.Lead.Status)

	second, err := svc.ConvertLeadToPartner(ctx, l.ID, "rep")
	require.NoError(t, err)
	require.False(t, second.Created)
	require.Equal(t, first.PartnerID, second.PartnerID)

	require.Len(t, repo.partners, 1)
	require.Equal(t, "Engines", repo.partners[first.PartnerID].CompanyName)
	require.Equal(t, "Ada Lovelace", repo.partners[first.PartnerID].ContactName)
	require.Equal(t, 1, repo.countActivities(l.ID, models.ActivityConverted))
}

func TestConvertLeadToPartner_Concurrent(t *testing.T) {
	ctx := context.Background()
	svc, repo := newMemService(t)

	l, err := svc.CreateLead(ctx, models.LeadCreateInput{Company: "Acme"})
	require.NoError(t, err)

	const n = 8
	var wg sync.WaitGroup
	results := make(chan *ConversionResult, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.ConvertLeadToPartner(ctx, l.ID, fmt.Sprintf("rep-%d", i))
			if err != nil {
				errs <- err
				return
			}
			results <- res
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		require.ErrorIs(t, err, apperr.ErrConflict)
	}
	partnerIDs := map[string]bool{}
	for res := range results {
		partnerIDs[res.PartnerID] = true
	}
	require.Len(t, partnerIDs, 1)
	require.Len(t, repo.partners, 1)
	require.Equal(t, 1, repo.countActivities(l.ID, models.ActivityConverted))
}

func TestMeetingsLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, repo := newMemService(t)
	start := time.Now().Add(48 * time.Hour).UTC()

	l, err := svc.CreateLead(ctx, models.LeadCreateInput{Email: "lead@example.com"})
	require.NoError(t, err)

	_, err = svc.ScheduleMeeting(ctx, "missing", models.MeetingInput{Title: "x", StartTime: start, EndTime: start.Add(time.Hour)})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	m, err := svc.ScheduleMeeting(ctx, l.ID, models.MeetingInput{
		Title: "Intro", StartTime: start, EndTime: start.Add(30 * time.Minute), ExternalEventID: "ext-1",
	})
	require.NoError(t, err)
	require.Equal(t, "ext-1", m.ExternalEventID)

	upcoming, err := svc.ListUpcomingMeetings(ctx, 10)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)

	done, err := svc.CompleteMeeting(ctx, m.ID, "went well", "rep")
	require.NoError(t, err)
	require.Equal(t, models.MeetingCompleted, done.Status)

	_, err = svc.CancelMeeting(ctx, m.ID, "", "rep")
	require.ErrorIs(t, err, apperr.ErrConflict)

	require.Equal(t, 1, repo.countActivities(l.ID, models.ActivityMeetingScheduled))
	require.Equal(t, 1, repo.countActivities(l.ID, models.ActivityMeeting))
}

func TestArchiveLead(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemService(t)

	l, err := svc.CreateLead(ctx, models.LeadCreateInput{Company: "Acme"})
	require.NoError(t, err)

	archived, err := svc.ArchiveLead(ctx, l.ID)
	require.NoError(t, err)
	require.Equal(t, models.LeadStatusArchived, archived.Status)

	_, err = svc.ArchiveLead(ctx, "missing")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
