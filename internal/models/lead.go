package models

import "time"

type PipelineStage string

const (
	StageNew         PipelineStage = "new"
	StageContacted   PipelineStage = "contacted"
	StageQualified   PipelineStage = "qualified"
	StageProposal    PipelineStage = "proposal"
	StageNegotiation PipelineStage = "negotiation"
	StageClosedWon   PipelineStage = "closed_won"
	StageClosedLost  PipelineStage = "closed_lost"
)

// PipelineStages is the funnel in order.
var PipelineStages = []PipelineStage{
	StageNew, StageContacted, StageQualified, StageProposal,
	StageNegotiation, StageClosedWon, StageClosedLost,
}

// Index returns the funnel position or -1 for unknown stages.
func (s PipelineStage) Index() int {
	for i, st := range PipelineStages {
		if st == s {
			return i
		}
	}
	return -1
}

func (s PipelineStage) Valid() bool { return s.Index() >= 0 }

func (s PipelineStage) Terminal() bool {
	return s == StageClosedWon || s == StageClosedLost
}

type LeadStatus string

const (
	LeadStatusActive    LeadStatus = "active"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
	LeadStatusArchived  LeadStatus = "archived"
)

type Lead struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	JobTitle  string `json:"job_title"`
	Source    string `json:"source"`

	Status        LeadStatus     `json:"status"`
	PipelineStage PipelineStage  `json:"pipeline_stage"`
	Score         int            `json:"score"`
	Tags          []string       `json:"tags"`
	Metadata      map[string]any `json:"metadata"`
	AssignedTo    *string        `json:"assigned_to,omitempty"`

	ConvertedToPartnerID *string    `json:"converted_to_partner_id,omitempty"`
	ConvertedAt          *time.Time `json:"converted_at,omitempty"`
	LastContactedAt      *time.Time `json:"last_contacted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *Lead) FullName() string {
	switch {
	case l.FirstName != "" && l.LastName != "":
		return l.FirstName + " " + l.LastName
	case l.FirstName != "":
		return l.FirstName
	default:
		return l.LastName
	}
}

// HasContact reports whether the lead can be identified by at least one of
// email, phone or company.
func (l *Lead) HasContact() bool {
	return l.Email != "" || l.Phone != "" || l.Company != ""
}

type LeadCreateInput struct {
	FirstName  string         `json:"first_name" validate:"max=100"`
	LastName   string         `json:"last_name" validate:"max=100"`
	Email      string         `json:"email" validate:"omitempty,email,max=255"`
	Phone      string         `json:"phone" validate:"max=32"`
	Company    string         `json:"company" validate:"max=255"`
	JobTitle   string         `json:"job_title" validate:"max=100"`
	Source     string         `json:"source" validate:"max=50"`
	Score      int            `json:"score" validate:"gte=0,lte=100"`
	Tags       []string       `json:"tags" validate:"dive,min=1,max=50"`
	Metadata   map[string]any `json:"metadata"`
	AssignedTo *string        `json:"assigned_to"`
}

// LeadUpdate is a partial update: nil fields are left untouched.
type LeadUpdate struct {
	FirstName  *string         `json:"first_name" validate:"omitempty,max=100"`
	LastName   *string         `json:"last_name" validate:"omitempty,max=100"`
	Email      *string         `json:"email" validate:"omitempty,email,max=255"`
	Phone      *string         `json:"phone" validate:"omitempty,max=32"`
	Company    *string         `json:"company" validate:"omitempty,max=255"`
	JobTitle   *string         `json:"job_title" validate:"omitempty,max=100"`
	Source     *string         `json:"source" validate:"omitempty,max=50"`
	Score      *int            `json:"score" validate:"omitempty,gte=0,lte=100"`
	Tags       *[]string       `json:"tags"`
	Metadata   *map[string]any `json:"metadata"`
	AssignedTo *string         `json:"assigned_to"`
	Status     *LeadStatus     `json:"-"`
}

func (u LeadUpdate) Empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil && u.Phone == nil &&
		u.Company == nil && u.JobTitle == nil && u.Source == nil && u.Score == nil &&
		u.Tags == nil && u.Metadata == nil && u.AssignedTo == nil && u.Status == nil
}

// Apply merges the present fields into l.
func (u LeadUpdate) Apply(l *Lead) {
	if u.FirstName != nil {
		l.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		l.LastName = *u.LastName
	}
	if u.Email != nil {
		l.Email = *u.Email
	}
	if u.Phone != nil {
		l.Phone = *u.Phone
	}
	if u.Company != nil {
		l.Company = *u.Company
	}
	if u.JobTitle != nil {
		l.JobTitle = *u.JobTitle
	}
	if u.Source != nil {
		l.Source = *u.Source
	}
	if u.Score != nil {
		l.Score = *u.Score
	}
	if u.Tags != nil {
		l.Tags = append([]string{}, (*u.Tags)...)
	}
	if u.Metadata != nil {
		l.Metadata = *u.Metadata
	}
	if u.AssignedTo != nil {
		v := *u.AssignedTo
		l.AssignedTo = &v
	}
	if u.Status != nil {
		l.Status = *u.Status
	}
}

// StageChange is what the store writes for one pipeline transition.
type StageChange struct {
	LeadID      string
	To          PipelineStage
	Status      *LeadStatus
	ConvertedAt *time.Time
	At          time.Time
}

type LeadFilter struct {
	Stage      *PipelineStage
	AssignedTo *string
	Search     string
	Limit      int
	Offset     int

	// Archived leads are left out unless asked for.
	IncludeArchived bool
}

type LeadPage struct {
	Items []*Lead `json:"items"`
	Total int64   `json:"total"`
}

type Partner struct {
	ID           string         `json:"id"`
	CompanyName  string         `json:"company_name"`
	ContactName  string         `json:"contact_name"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	Status       string         `json:"status"`
	SourceLeadID string         `json:"source_lead_id"`
	Metadata     map[string]any `json:"metadata"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Conversion is the compound write of the lead→partner workflow.
type Conversion struct {
	LeadID   string
	Partner  *Partner
	Activity *LeadActivity
	At       time.Time
}
