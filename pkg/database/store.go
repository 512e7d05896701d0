package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/G00gleKid/demo-code/pkg/models"
	"gorm.io/gorm"
)

// Store wraps gorm with team-scoped queries
type Store struct {
	DB *gorm.DB
}

// NewStore creates a store over an open connection
func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// CreateTeam inserts a team
func (s *Store) CreateTeam(ctx context.Context, team *models.Team) error {
	return s.DB.WithContext(ctx).Create(team).Error
}

// ListTeams returns every team ordered by name
func (s *Store) ListTeams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	err := s.DB.WithContext(ctx).Order("name, id").Find(&teams).Error
	return teams, err
}

// CreateUser inserts a team lead
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user %s", ErrDuplicate, user.Email)
		}
		return err
	}
	return nil
}

// FindUserByEmail loads a user with their team
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Preload("Team").Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser loads a user by id
func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Preload("Team").First(&user, id).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

// CountUsers returns the number of users
func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}
