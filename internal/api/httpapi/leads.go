package httpapi

import (
	"net/http"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/BearBump/SalesTrack/internal/models"
	"github.com/go-chi/chi/v5"
)

type stageRequest struct {
	Stage       models.PipelineStage `json:"stage"`
	PerformedBy string               `json:"performed_by"`
}

type actorRequest struct {
	PerformedBy string `json:"performed_by"`
}

type cancelMeetingRequest struct {
	Reason      string `json:"reason"`
	PerformedBy string `json:"performed_by"`
}

type completeMeetingRequest struct {
	Outcome     string `json:"outcome"`
	PerformedBy string `json:"performed_by"`
}

func (a *API) createLead(w http.ResponseWriter, r *http.Request) {
	var in models.LeadCreateInput
	if err := decode(r, &in); err != nil {
		a.fail(w, r, "create lead", err)
		return
	}
	l, err := a.leads.CreateLead(r.Context(), in)
	if err != nil {
		a.fail(w, r, "create lead", err)
		return
	}
	created(w, l)
}

func (a *API) listLeads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f models.LeadFilter
	if s := q.Get("stage"); s != "" {
		st := models.PipelineStage(s)
		if !st.Valid() {
			a.fail(w, r, "list leads", apperr.Validation("unknown pipeline stage %q", s))
			return
		}
		f.Stage = &st
	}
	if s := q.Get("assigned_to"); s != "" {
		f.AssignedTo = &s
	}
	f.Search = q.Get("search")
	f.IncludeArchived = q.Get("include_archived") == "true"

	var err error
	if f.Limit, err = queryInt(r, "limit", 50); err != nil {
		a.fail(w, r, "list leads", err)
		return
	}
	if f.Offset, err = queryInt(r, "offset", 0); err != nil {
		a.fail(w, r, "list leads", err)
		return
	}

	page, err := a.leads.ListLeads(r.Context(), f)
	if err != nil {
		a.fail(w, r, "list leads", err)
		return
	}
	ok(w, page)
}

func (a *API) getLead(w http.ResponseWriter, r *http.Request) {
	l, err := a.leads.GetLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, "get lead", err)
		return
	}
	ok(w, l)
}

func (a *API) updateLead(w http.ResponseWriter, r *http.Request) {
	var upd models.LeadUpdate
	if err := decode(r, &upd); err != nil {
		a.fail(w, r, "update lead", err)
		return
	}
	l, err := a.leads.UpdateLead(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		a.fail(w, r, "update lead", err)
		return
	}
	ok(w, l)
}

func (a *API) archiveLead(w http.ResponseWriter, r *http.Request) {
	l, err := a.leads.ArchiveLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, "archive lead", err)
		return
	}
	ok(w, l)
}

func (a *API) transitionStage(w http.ResponseWriter, r *http.Request) {
	var req stageRequest
	if err := decode(r, &req); err != nil {
		a.fail(w, r, "transition stage", err)
		return
	}
	l, err := a.leads.TransitionStage(r.Context(), chi.URLParam(r, "id"), req.Stage, req.PerformedBy)
	if err != nil {
		a.fail(w, r, "transition stage", err)
		return
	}
	ok(w, l)
}

func (a *API) convertLead(w http.ResponseWriter, r *http.Request) {
	var req actorRequest
	if err := decodeOptional(r, &req); err != nil {
		a.fail(w, r, "convert lead", err)
		return
	}
	res, err := a.leads.ConvertLeadToPartner(r.Context(), chi.URLParam(r, "id"), req.PerformedBy)
	if err != nil {
		a.fail(w, r, "convert lead", err)
		return
	}
	if res.Created {
		created(w, res)
		return
	}
	ok(w, res)
}

func (a *API) addActivity(w http.ResponseWriter, r *http.Request) {
	var in models.ActivityInput
	if err := decode(r, &in); err != nil {
		a.fail(w, r, "add activity", err)
		return
	}
	act, err := a.leads.AddActivity(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		a.fail(w, r, "add activity", err)
		return
	}
	created(w, act)
}

func (a *API) listActivities(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 50)
	if err != nil {
		a.fail(w, r, "list activities", err)
		return
	}
	acts, err := a.leads.ListActivities(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		a.fail(w, r, "list activities", err)
		return
	}
	ok(w, acts)
}

func (a *API) scheduleMeeting(w http.ResponseWriter, r *http.Request) {
	var in models.MeetingInput
	if err := decode(r, &in); err != nil {
		a.fail(w, r, "schedule meeting", err)
		return
	}
	m, err := a.leads.ScheduleMeeting(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		a.fail(w, r, "schedule meeting", err)
		return
	}
	created(w, m)
}

func (a *API) listMeetings(w http.ResponseWriter, r *http.Request) {
	ms, err := a.leads.ListMeetings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, "list meetings", err)
		return
	}
	ok(w, ms)
}

func (a *API) upcomingMeetings(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		a.fail(w, r, "upcoming meetings", err)
		return
	}
	ms, err := a.leads.ListUpcomingMeetings(r.Context(), limit)
	if err != nil {
		a.fail(w, r, "upcoming meetings", err)
		return
	}
	ok(w, ms)
}

func (a *API) cancelMeeting(w http.ResponseWriter, r *http.Request) {
	var req cancelMeetingRequest
	if err := decodeOptional(r, &req); err != nil {
		a.fail(w, r, "cancel meeting", err)
		return
	}
	m, err := a.leads.CancelMeeting(r.Context(), chi.URLParam(r, "id"), req.Reason, req.PerformedBy)
	if err != nil {
		a.fail(w, r, "cancel meeting", err)
		return
	}
	ok(w, m)
}

func (a *API) completeMeeting(w http.ResponseWriter, r *http.Request) {
	var req completeMeetingRequest
	if err := decodeOptional(r, &req); err != nil {
		a.fail(w, r, "complete meeting", err)
		return
	}
	m, err := a.leads.CompleteMeeting(r.Context(), chi.URLParam(r, "id"), req.Outcome, req.PerformedBy)
	if err != nil {
		a.fail(w, r, "complete meeting", err)
		return
	}
	ok(w, m)
}
