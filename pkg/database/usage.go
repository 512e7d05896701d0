package database

import (
	"context"

	"github.com/G00gleKid/demo-code/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordUsage adds one assignment run to the team's daily counters
func (s *Store) RecordUsage(ctx context.Context, teamID uint, date string, assigned, participants int) error {
	// Use OnConflict for a single-query upsert (supported by both Postgres and SQLite)
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "team_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"run_count":          gorm.Expr("run_count + ?", 1),
			"total_assigned":     gorm.Expr("total_assigned + ?", assigned),
			"total_participants": gorm.Expr("total_participants + ?", participants),
		}),
	}).Create(&models.RunUsage{
		TeamID:            teamID,
		Date:              date,
		RunCount:          1,
		TotalAssigned:     assigned,
		TotalParticipants: participants,
	}).Error
}

// ListUsage returns the team's most recent daily counters
func (s *Store) ListUsage(ctx context.Context, teamID uint, limit int) ([]models.RunUsage, error) {
	var usage []models.RunUsage
	err := s.DB.WithContext(ctx).Where("team_id = ?", teamID).Order("date desc").Limit(limit).Find(&usage).Error
	return usage, err
}
