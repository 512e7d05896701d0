package database

import (
	"context"
	"fmt"

	"github.com/G00gleKid/demo-code/pkg/models"
	"gorm.io/gorm"
)

// ListParticipants returns every participant of a team ordered by name
func (s *Store) ListParticipants(ctx context.Context, teamID uint) ([]models.Participant, error) {
	var participants []models.Participant
	err := s.DB.WithContext(ctx).Where("team_id = ?", teamID).Order("name, id").Find(&participants).Error
	return participants, err
}

// CreateParticipant inserts a participant into a team. Email is unique per team.
func (s *Store) CreateParticipant(ctx context.Context, teamID uint, p *models.Participant) error {
	p.TeamID = teamID
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: participant with email %s", ErrDuplicate, p.Email)
		}
		return err
	}
	return nil
}

// GetParticipant loads one participant of a team
func (s *Store) GetParticipant(ctx context.Context, teamID, id uint) (*models.Participant, error) {
	var p models.Participant
	err := s.DB.WithContext(ctx).Where("team_id = ?", teamID).First(&p, id).Error
	if err != nil {
		return nil, notFound(err, "participant", id)
	}
	return &p, nil
}

// SaveParticipant writes every field of an existing participant
func (s *Store) SaveParticipant(ctx context.Context, p *models.Participant) error {
	if err := s.DB.WithContext(ctx).Save(p).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: participant with email %s", ErrDuplicate, p.Email)
		}
		return err
	}
	return nil
}

// DeleteParticipant removes a participant, their roster entries and history
func (s *Store) DeleteParticipant(ctx context.Context, teamID, id uint) error {
	p, err := s.GetParticipant(ctx, teamID, id)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("participant_id = ?", p.ID).Delete(&models.RoleAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM meeting_participants WHERE participant_id = ?", p.ID).Error; err != nil {
			return err
		}
		return tx.Delete(p).Error
	})
}
