package database

import (
	"context"
	"fmt"

	"github.com/G00gleKid/demo-code/pkg/models"
	"gorm.io/gorm"
)

// ListMeetings returns a team's meetings with their rosters
func (s *Store) ListMeetings(ctx context.Context, teamID uint) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := s.DB.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB { return db.Order("participants.id") }).
		Where("team_id = ?", teamID).
		Order("scheduled_time desc, id desc").
		Find(&meetings).Error
	return meetings, err
}

// GetMeeting loads a meeting with its roster ordered by participant id
func (s *Store) GetMeeting(ctx context.Context, teamID, id uint) (*models.Meeting, error) {
	var m models.Meeting
	err := s.DB.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB { return db.Order("participants.id") }).
		Where("team_id = ?", teamID).
		First(&m, id).Error
	if err != nil {
		return nil, notFound(err, "meeting", id)
	}
	return &m, nil
}

// teamParticipants loads the given ids and fails unless all belong to the team
func teamParticipants(tx *gorm.DB, teamID uint, ids []uint) ([]models.Participant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	unique := make(map[uint]bool, len(ids))
	for _, id := range ids {
		unique[id] = true
	}

	var participants []models.Participant
	if err := tx.Where("team_id = ? AND id IN ?", teamID, ids).Find(&participants).Error; err != nil {
		return nil, err
	}
	if len(participants) != len(unique) {
		return nil, fmt.Errorf("%w: some participants do not belong to your team", ErrForeignParticipant)
	}
	return participants, nil
}

// CreateMeeting inserts a meeting and its roster
func (s *Store) CreateMeeting(ctx context.Context, teamID uint, m *models.Meeting, participantIDs []uint) error {
	m.TeamID = teamID
	m.ScheduledTime = m.ScheduledTime.UTC()
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		participants, err := teamParticipants(tx, teamID, participantIDs)
		if err != nil {
			return err
		}
		m.Participants = participants
		return tx.Create(m).Error
	})
}

// SaveMeeting writes the scalar fields of a meeting
func (s *Store) SaveMeeting(ctx context.Context, m *models.Meeting) error {
	m.ScheduledTime = m.ScheduledTime.UTC()
	return s.DB.WithContext(ctx).Omit("Participants").Save(m).Error
}

// DeleteMeeting removes a meeting, its roster and its assignments
func (s *Store) DeleteMeeting(ctx context.Context, teamID, id uint) error {
	m, err := s.GetMeeting(ctx, teamID, id)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", m.ID).Delete(&models.RoleAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(m).Association("Participants").Clear(); err != nil {
			return err
		}
		return tx.Delete(m).Error
	})
}

// AddParticipants appends team participants to a roster, skipping ones already on it
func (s *Store) AddParticipants(ctx context.Context, teamID, meetingID uint, ids []uint) (int, error) {
	m, err := s.GetMeeting(ctx, teamID, meetingID)
	if err != nil {
		return 0, err
	}

	added := 0
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		participants, err := teamParticipants(tx, teamID, ids)
		if err != nil {
			return err
		}
		onRoster := make(map[uint]bool, len(m.Participants))
		for _, p := range m.Participants {
			onRoster[p.ID] = true
		}
		var fresh []models.Participant
		for _, p := range participants {
			if !onRoster[p.ID] {
				fresh = append(fresh, p)
			}
		}
		if len(fresh) == 0 {
			return nil
		}
		added = len(fresh)
		return tx.Model(m).Association("Participants").Append(fresh)
	})
	return added, err
}

// RemoveParticipant takes a participant off a roster
func (s *Store) RemoveParticipant(ctx context.Context, teamID, meetingID, participantID uint) error {
	m, err := s.GetMeeting(ctx, teamID, meetingID)
	if err != nil {
		return err
	}
	for i := range m.Participants {
		if m.Participants[i].ID == participantID {
			return s.DB.WithContext(ctx).Model(m).Association("Participants").Delete(&m.Participants[i])
		}
	}
	return fmt.Errorf("%w: participant %d not in meeting", ErrNotFound, participantID)
}

// MeetingTeamID returns the team owning a meeting
func (s *Store) MeetingTeamID(ctx context.Context, id uint) (uint, error) {
	var m models.Meeting
	if err := s.DB.WithContext(ctx).Select("id", "team_id").First(&m, id).Error; err != nil {
		return 0, notFound(err, "meeting", id)
	}
	return m.TeamID, nil
}
