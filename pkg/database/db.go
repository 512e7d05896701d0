package database

import (
	"errors"
	"fmt"

	"github.com/G00gleKid/demo-code/pkg/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Sentinel errors returned by the store
var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicate          = errors.New("record already exists")
	ErrForeignParticipant = errors.New("participant does not belong to team")
)

// Options selects the database backend
type Options struct {
	// DSN selects PostgreSQL when set
	DSN string
	// DataPath is the SQLite file used when DSN is empty
	DataPath string
	// LogLevel controls gorm's own logging
	LogLevel logger.LogLevel
}

// InitDB opens the database and migrates the schema
func InitDB(opts Options) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	level := opts.LogLevel
	if level == 0 {
		level = logger.Warn
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(level)}

	if opts.DSN != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  opts.DSN,
			PreferSimpleProtocol: true,
		}), cfg)
	} else {
		dbPath := opts.DataPath
		if dbPath == "" {
			dbPath = "roles.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Team{},
		&models.User{},
		&models.Participant{},
		&models.Meeting{},
		&models.RoleAssignment{},
		&models.RunUsage{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, what, id)
	}
	return err
}
