package database

import (
	"context"
	"time"

	"github.com/G00gleKid/demo-code/pkg/models"
	"github.com/G00gleKid/demo-code/pkg/roles"
	"github.com/G00gleKid/demo-code/pkg/stats"
	"gorm.io/gorm"
)

// DefaultHistoryLimit bounds how many past records are read per participant.
const DefaultHistoryLimit = 10

// RecentRoles returns the participant's roles in meetings scheduled strictly
// before the given time, most recent first.
func (s *Store) RecentRoles(ctx context.Context, participantID uint, before time.Time, limit int) ([]roles.Role, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var names []string
	err := s.DB.WithContext(ctx).
		Table("role_assignments").
		Joins("JOIN meetings ON meetings.id = role_assignments.meeting_id").
		Where("role_assignments.participant_id = ? AND meetings.scheduled_time < ?", participantID, before.UTC()).
		Order("meetings.scheduled_time desc, role_assignments.id desc").
		Limit(limit).
		Pluck("role_assignments.role", &names).Error
	if err != nil {
		return nil, err
	}

	out := make([]roles.Role, len(names))
	for i, n := range names {
		out[i] = roles.Role(n)
	}
	return out, nil
}

// ReplaceAssignments swaps every record of a meeting for the given ones in a
// single transaction. On error the previous records are left untouched.
func (s *Store) ReplaceAssignments(ctx context.Context, meetingID uint, records []models.RoleAssignment) ([]models.RoleAssignment, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", meetingID).Delete(&models.RoleAssignment{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		for i := range records {
			records[i].ID = 0
			records[i].MeetingID = meetingID
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

type assignmentRow struct {
	models.RoleAssignment
	Name string
}

func withNames(rows []assignmentRow) []models.RoleAssignment {
	out := make([]models.RoleAssignment, len(rows))
	for i, r := range rows {
		out[i] = r.RoleAssignment
		out[i].ParticipantName = r.Name
	}
	return out
}

// MeetingAssignments returns the stored records of a meeting with participant names
func (s *Store) MeetingAssignments(ctx context.Context, meetingID uint) ([]models.RoleAssignment, error) {
	var rows []assignmentRow
	err := s.DB.WithContext(ctx).
		Table("role_assignments").
		Select("role_assignments.*, participants.name AS name").
		Joins("LEFT JOIN participants ON participants.id = role_assignments.participant_id").
		Where("role_assignments.meeting_id = ?", meetingID).
		Order("role_assignments.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return withNames(rows), nil
}

// ParticipantHistory returns a participant's most recent records
func (s *Store) ParticipantHistory(ctx context.Context, participantID uint, limit int) ([]models.RoleAssignment, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	var rows []assignmentRow
	err := s.DB.WithContext(ctx).
		Table("role_assignments").
		Select("role_assignments.*, participants.name AS name").
		Joins("LEFT JOIN participants ON participants.id = role_assignments.participant_id").
		Where("role_assignments.participant_id = ?", participantID).
		Order("role_assignments.created_at desc, role_assignments.id desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return withNames(rows), nil
}

// AssignmentsBetween returns a participant's roles in meetings scheduled
// within [start, end], oldest first.
func (s *Store) AssignmentsBetween(ctx context.Context, participantID uint, start, end time.Time) ([]stats.Entry, error) {
	var entries []stats.Entry
	err := s.DB.WithContext(ctx).
		Table("role_assignments").
		Select("role_assignments.role AS role, meetings.scheduled_time AS scheduled_time").
		Joins("JOIN meetings ON meetings.id = role_assignments.meeting_id").
		Where("role_assignments.participant_id = ? AND meetings.scheduled_time >= ? AND meetings.scheduled_time <= ?",
			participantID, start.UTC(), end.UTC()).
		Order("meetings.scheduled_time asc").
		Scan(&entries).Error
	return entries, err
}
