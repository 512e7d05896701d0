package models

import "time"

// Chronotypes accepted for a participant
const (
	ChronotypeMorning      = "morning"
	ChronotypeEvening      = "evening"
	ChronotypeIntermediate = "intermediate"
)

// Meeting types with their own multiplier tables
const (
	MeetingBrainstorm   = "brainstorm"
	MeetingReview       = "review"
	MeetingPlanning     = "planning"
	MeetingStatusUpdate = "status_update"
)

// MeetingTypes lists every supported meeting type
var MeetingTypes = []string{MeetingBrainstorm, MeetingReview, MeetingPlanning, MeetingStatusUpdate}

// Team groups users, participants and meetings
type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User is a team lead able to manage the team's meetings
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `gorm:"size:200;not null" json:"full_name"`
	TeamID       uint      `gorm:"index;not null" json:"team_id"`
	Team         Team      `json:"team"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Participant represents a team member who can take a meeting role
type Participant struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	TeamID                uint      `gorm:"uniqueIndex:idx_team_email;not null" json:"-"`
	Name                  string    `gorm:"size:100;not null" json:"name"`
	Email                 string    `gorm:"size:255;uniqueIndex:idx_team_email;not null" json:"email"`
	Chronotype            string    `gorm:"size:20;not null" json:"chronotype"`
	PeakHoursStart        int       `gorm:"not null" json:"peak_hours_start"`
	PeakHoursEnd          int       `gorm:"not null" json:"peak_hours_end"`
	EmotionalIntelligence int       `gorm:"not null" json:"emotional_intelligence"`
	SocialIntelligence    int       `gorm:"not null" json:"social_intelligence"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Meeting is a scheduled session with a roster of participants
type Meeting struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	TeamID        uint          `gorm:"index;not null" json:"-"`
	Title         string        `gorm:"size:200;not null" json:"title"`
	MeetingType   string        `gorm:"size:50;not null" json:"meeting_type"`
	ScheduledTime time.Time     `gorm:"index;not null" json:"scheduled_time"`
	CreatedAt     time.Time     `json:"created_at"`
	Participants  []Participant `gorm:"many2many:meeting_participants;constraint:OnDelete:CASCADE" json:"participants"`
}

// RoleAssignment is one persisted result of the assignment algorithm
type RoleAssignment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	MeetingID       uint      `gorm:"uniqueIndex:idx_meeting_participant;not null" json:"meeting_id"`
	ParticipantID   uint      `gorm:"uniqueIndex:idx_meeting_participant;index;not null" json:"participant_id"`
	Role            string    `gorm:"size:50;not null" json:"role"`
	FitnessScore    float64   `gorm:"not null" json:"fitness_score"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
	ParticipantName string    `gorm:"-" json:"participant_name,omitempty"`
}

// RunUsage counts assignment runs per team and day
type RunUsage struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	TeamID            uint   `gorm:"uniqueIndex:idx_team_date;not null" json:"team_id"`
	Date              string `gorm:"uniqueIndex:idx_team_date;not null" json:"date"`
	RunCount          int    `gorm:"default:0" json:"run_count"`
	TotalAssigned     int    `gorm:"default:0" json:"total_assigned"`
	TotalParticipants int    `gorm:"default:0" json:"total_participants"`
}
