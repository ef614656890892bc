package models

import "time"

type ActivityType string

const (
	ActivityNote             ActivityType = "note"
	ActivityCall             ActivityType = "call"
	ActivityEmail            ActivityType = "email"
	ActivityMeeting          ActivityType = "meeting"
	ActivityTask             ActivityType = "task"
	ActivityStageChange      ActivityType = "stage_change"
	ActivityMeetingScheduled ActivityType = "meeting_scheduled"
	ActivityMeetingCancelled ActivityType = "meeting_cancelled"
	ActivityConverted        ActivityType = "converted"
)

// LeadActivity is a ledger row. It is never updated or deleted.
type LeadActivity struct {
	ID           string         `json:"id"`
	LeadID       string         `json:"lead_id"`
	ActivityType ActivityType   `json:"activity_type"`
	Subject      string         `json:"subject"`
	Description  string         `json:"description"`
	Outcome      string         `json:"outcome"`
	PerformedBy  string         `json:"performed_by"`
	ScheduledAt  *time.Time     `json:"scheduled_at,omitempty"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
	Metadata     map[string]any `json:"metadata"`
	CreatedAt    time.Time      `json:"created_at"`
}

type ActivityInput struct {
	ActivityType ActivityType   `json:"activity_type" validate:"required,max=50"`
	Subject      string         `json:"subject" validate:"required,max=255"`
	Description  string         `json:"description"`
	Outcome      string         `json:"outcome" validate:"max=255"`
	PerformedBy  string         `json:"performed_by" validate:"max=100"`
	ScheduledAt  *time.Time     `json:"scheduled_at"`
	CompletedAt  *time.Time     `json:"completed_at"`
	Metadata     map[string]any `json:"metadata"`
}

type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingCompleted MeetingStatus = "completed"
	MeetingCancelled MeetingStatus = "cancelled"
	MeetingNoShow    MeetingStatus = "no_show"
)

type LeadMeeting struct {
	ID              string        `json:"id"`
	LeadID          string        `json:"lead_id"`
	ExternalEventID string        `json:"external_event_id"`
	JoinLink        string        `json:"join_link"`
	MeetingType     string        `json:"meeting_type"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	StartTime       time.Time     `json:"start_time"`
	EndTime         time.Time     `json:"end_time"`
	Timezone        string        `json:"timezone"`
	Attendees       []string      `json:"attendees"`
	Status          MeetingStatus `json:"status"`
	Outcome         string        `json:"outcome"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

type MeetingInput struct {
	ExternalEventID string    `json:"external_event_id" validate:"max=255"`
	JoinLink        string    `json:"join_link" validate:"omitempty,url"`
	MeetingType     string    `json:"meeting_type" validate:"max=50"`
	Title           string    `json:"title" validate:"required,max=255"`
	Description     string    `json:"description"`
	StartTime       time.Time `json:"start_time" validate:"required"`
	EndTime         time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Timezone        string    `json:"timezone" validate:"omitempty,timezone"`
	Attendees       []string  `json:"attendees" validate:"dive,email"`
	PerformedBy     string    `json:"performed_by"`
}
