// Package server wires configuration, storage and handlers into a gin engine
// shared by the standalone server and the serverless entry point.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/G00gleKid/demo-code/pkg/auth"
	"github.com/G00gleKid/demo-code/pkg/config"
	"github.com/G00gleKid/demo-code/pkg/database"
	"github.com/G00gleKid/demo-code/pkg/engine"
	"github.com/G00gleKid/demo-code/pkg/handlers"
	"github.com/G00gleKid/demo-code/pkg/metrics"
	"github.com/G00gleKid/demo-code/pkg/roles"
	"github.com/G00gleKid/demo-code/pkg/scoring"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Version is reported on the index route
const Version = "1.0.0"

// App holds the wired service
type App struct {
	Config  *config.Config
	DB      *gorm.DB
	Store   *database.Store
	Engine  *engine.Engine
	Handler *handlers.Handler
	Router  *gin.Engine
}

// LoadCatalog returns the configured catalog, falling back to the built-in one
func LoadCatalog(cfg *config.Config) (*roles.Catalog, error) {
	if cfg.CatalogPath == "" {
		return roles.Default(), nil
	}
	return roles.Load(cfg.CatalogPath)
}

// NewScorer builds a scorer from the configuration
func NewScorer(cfg *config.Config, catalog *roles.Catalog) *scoring.Scorer {
	return scoring.NewScorer(catalog,
		scoring.WithDecayPerHour(cfg.DecayPerHour),
		scoring.WithSoftMargin(cfg.SoftMargin),
		scoring.WithLocation(cfg.Location()),
	)
}

// NewEngine builds an assignment engine over the store
func NewEngine(cfg *config.Config, store *database.Store, scorer *scoring.Scorer, logger *zap.Logger, m *metrics.Manager) *engine.Engine {
	return engine.New(store, scorer,
		engine.WithLogger(logger.Named("engine")),
		engine.WithMetrics(m),
		engine.WithStoreTimeout(cfg.StoreTimeout),
		engine.WithRetryBackoff(cfg.RetryBackoff),
		engine.WithHistoryLimit(cfg.HistoryLimit),
	)
}

// New opens the database, seeds the default team lead and builds the router
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	catalog, err := LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	db, err := database.InitDB(database.Options{DSN: cfg.DatabaseURL, DataPath: cfg.DataPath})
	if err != nil {
		return nil, err
	}
	return NewWithDB(ctx, cfg, logger, db, catalog)
}

// NewWithDB builds the app over an already migrated connection
func NewWithDB(ctx context.Context, cfg *config.Config, logger *zap.Logger, db *gorm.DB, catalog *roles.Catalog) (*App, error) {
	store := database.NewStore(db)
	authn := auth.New(cfg.JWTSecret, cfg.TokenTTL)

	created, err := auth.EnsureDefaultUser(ctx, store, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminTeam)
	if err != nil {
		return nil, fmt.Errorf("seed default user: %w", err)
	}
	if created {
		logger.Info("default team lead created", zap.String("email", cfg.AdminEmail))
	}

	m := metrics.NewManager()
	eng := NewEngine(cfg, store, NewScorer(cfg, catalog), logger, m)

	h := &handlers.Handler{
		Store:    store,
		Engine:   eng,
		Auth:     authn,
		Catalog:  catalog,
		Logger:   logger.Named("http"),
		Metrics:  m,
		Location: cfg.Location(),
	}

	return &App{
		Config:  cfg,
		DB:      db,
		Store:   store,
		Engine:  eng,
		Handler: h,
		Router:  NewRouter(h, cfg.GinMode),
	}, nil
}

// NewRouter registers every route on a fresh gin engine
func NewRouter(h *handlers.Handler, mode string) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), h.RequestLogger(), h.MetricsMiddleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Role Assignment API",
			"version": Version,
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))

	api := r.Group("/api")
	api.POST("/auth/login", h.Login)

	settings := api.Group("/settings")
	{
		settings.GET("/role-requirements", h.RoleRequirements)
		settings.GET("/meeting-multipliers", h.MeetingMultipliers)
	}

	private := api.Group("")
	private.Use(h.AuthMiddleware())
	{
		private.GET("/auth/me", h.Me)

		private.GET("/participants", h.ListParticipants)
		private.POST("/participants", h.CreateParticipant)
		private.POST("/participants/import", h.ImportParticipantsCSV)
		private.GET("/participants/:id", h.GetParticipant)
		private.PUT("/participants/:id", h.UpdateParticipant)
		private.DELETE("/participants/:id", h.DeleteParticipant)
		private.GET("/participants/:id/history", h.ParticipantHistory)
		private.GET("/participants/:id/statistics", h.ParticipantStatistics)

		private.GET("/meetings", h.ListMeetings)
		private.POST("/meetings", h.CreateMeeting)
		private.GET("/meetings/:id", h.GetMeeting)
		private.PUT("/meetings/:id", h.UpdateMeeting)
		private.DELETE("/meetings/:id", h.DeleteMeeting)
		private.POST("/meetings/:id/participants", h.AddMeetingParticipants)
		private.DELETE("/meetings/:id/participants/:pid", h.RemoveMeetingParticipant)
		private.POST("/meetings/:id/assign-roles", h.AssignRoles)
		private.POST("/meetings/:id/preview", h.PreviewAssignment)
		private.GET("/meetings/:id/assignments", h.GetAssignments)
		private.GET("/meetings/:id/assignments/csv", h.ExportAssignmentsCSV)

		private.GET("/testing/teams", h.ListTestingTeams)
		private.GET("/testing/teams/:id/participants", h.ListTeamEIParticipants)
		private.GET("/testing/teams/:id/participants/si", h.ListTeamSIParticipants)
		private.GET("/testing/participants/:id", h.GetEIParticipant)
		private.GET("/testing/participants/:id/si", h.GetSIParticipant)
		private.PUT("/testing/participants/:id/ei-score", h.UpdateEIScore)
		private.PUT("/testing/participants/:id/si-score", h.UpdateSIScore)
		private.POST("/testing/participants/:id/ei-survey", h.SubmitEISurvey)
		private.POST("/testing/participants/:id/si-survey", h.SubmitSISurvey)

		private.GET("/usage", h.GetMyUsage)
	}

	return r
}
