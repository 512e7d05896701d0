package models

import "time"

// ParticipantInput is the body for creating a participant
type ParticipantInput struct {
	Name                  string `json:"name" binding:"required,min=1,max=100"`
	Email                 string `json:"email" binding:"required,email"`
	Chronotype            string `json:"chronotype" binding:"required,oneof=morning evening intermediate"`
	PeakHoursStart        int    `json:"peak_hours_start" binding:"min=0,max=23"`
	PeakHoursEnd          int    `json:"peak_hours_end" binding:"min=0,max=23"`
	EmotionalIntelligence int    `json:"emotional_intelligence" binding:"min=0,max=100"`
	SocialIntelligence    int    `json:"social_intelligence" binding:"min=0,max=100"`
}

// ParticipantUpdate carries optional participant fields
type ParticipantUpdate struct {
	Name                  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Email                 *string `json:"email" binding:"omitempty,email"`
	Chronotype            *string `json:"chronotype" binding:"omitempty,oneof=morning evening intermediate"`
	PeakHoursStart        *int    `json:"peak_hours_start" binding:"omitempty,min=0,max=23"`
	PeakHoursEnd          *int    `json:"peak_hours_end" binding:"omitempty,min=0,max=23"`
	EmotionalIntelligence *int    `json:"emotional_intelligence" binding:"omitempty,min=0,max=100"`
	SocialIntelligence    *int    `json:"social_intelligence" binding:"omitempty,min=0,max=100"`
}

// ParticipantEI is the questionnaire view of a participant's EI score
type ParticipantEI struct {
	ID                    uint   `json:"id"`
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	EmotionalIntelligence int    `json:"emotional_intelligence"`
}

// ParticipantSI is the questionnaire view of a participant's SI score
type ParticipantSI struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	SocialIntelligence int    `json:"social_intelligence"`
}

// MeetingInput is the body for creating a meeting
type MeetingInput struct {
	Title          string    `json:"title" binding:"required,min=1,max=200"`
	MeetingType    string    `json:"meeting_type" binding:"required,oneof=brainstorm review planning status_update"`
	ScheduledTime  time.Time `json:"scheduled_time" binding:"required"`
	ParticipantIDs []uint    `json:"participant_ids"`
}

// MeetingUpdate carries optional meeting fields
type MeetingUpdate struct {
	Title         *string    `json:"title" binding:"omitempty,min=1,max=200"`
	MeetingType   *string    `json:"meeting_type" binding:"omitempty,oneof=brainstorm review planning status_update"`
	ScheduledTime *time.Time `json:"scheduled_time"`
}

// RoleAssignmentResult is returned by an assignment run
type RoleAssignmentResult struct {
	MeetingID              uint             `json:"meeting_id"`
	Assignments            []RoleAssignment `json:"assignments"`
	TotalAssigned          int              `json:"total_assigned"`
	Status                 string           `json:"status"`
	UnassignedRoles        []string         `json:"unassigned_roles"`
	UnassignedParticipants []uint           `json:"unassigned_participants"`
}

// DailyRoleBreakdown counts roles held on one calendar day
type DailyRoleBreakdown struct {
	Date  string         `json:"date"`
	Roles map[string]int `json:"roles"`
	Total int            `json:"total"`
}

// ParticipantStatistics summarises a participant's roles over a period
type ParticipantStatistics struct {
	ParticipantID    uint                 `json:"participant_id"`
	ParticipantName  string               `json:"participant_name"`
	PeriodDays       int                  `json:"period_days"`
	StartDate        time.Time            `json:"start_date"`
	EndDate          time.Time            `json:"end_date"`
	TotalMeetings    int                  `json:"total_meetings"`
	RoleDistribution map[string]int       `json:"role_distribution"`
	RoleBalance      float64              `json:"role_balance"`
	DailyBreakdown   []DailyRoleBreakdown `json:"daily_breakdown"`
}

// ScoreUpdate sets an EI or SI score directly
type ScoreUpdate struct {
	Score     *int `json:"score" binding:"required,min=0,max=100"`
	Overwrite bool `json:"overwrite"`
}

// SurveySubmission carries questionnaire answers, each 1-7
type SurveySubmission struct {
	Answers   []int `json:"answers" binding:"required"`
	Overwrite bool  `json:"overwrite"`
}
