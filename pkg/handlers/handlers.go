package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/G00gleKid/demo-code/pkg/auth"
	"github.com/G00gleKid/demo-code/pkg/database"
	"github.com/G00gleKid/demo-code/pkg/engine"
	"github.com/G00gleKid/demo-code/pkg/metrics"
	"github.com/G00gleKid/demo-code/pkg/roles"
	"github.com/G00gleKid/demo-code/pkg/scoring"
	"github.com/G00gleKid/demo-code/pkg/survey"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ctxUserID = "userID"
	ctxTeamID = "teamID"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	Store    *database.Store
	Engine   *engine.Engine
	Auth     *auth.Authenticator
	Catalog  *roles.Catalog
	Logger   *zap.Logger
	Metrics  *metrics.Manager
	Location *time.Location
	Now      func() time.Time
}

func (h *Handler) now() time.Time {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

func (h *Handler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

// AuthMiddleware verifies the bearer token and scopes the request to its team
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && strings.EqualFold(token[:7], "Bearer ") {
			token = token[7:]
		}

		claims, err := h.Auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxTeamID, claims.TeamID)
		c.Next()
	}
}

func ctxUint(c *gin.Context, key string) uint {
	v, _ := c.Get(key)
	id, _ := v.(uint)
	return id
}

func teamID(c *gin.Context) uint {
	return ctxUint(c, ctxTeamID)
}

func userID(c *gin.Context) uint {
	return ctxUint(c, ctxUserID)
}

// paramID parses a positive numeric path parameter and answers 400 otherwise
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// queryInt reads an integer query parameter bounded to [min, max]
func queryInt(c *gin.Context, name string, def, min, max int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max)})
		return 0, false
	}
	return n, true
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, database.ErrNotFound), errors.Is(err, engine.ErrMeetingNotFound):
		return http.StatusNotFound
	case errors.Is(err, database.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, database.ErrForeignParticipant),
		errors.Is(err, survey.ErrInvalidAnswers),
		errors.Is(err, scoring.ErrInvalidParticipant):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, engine.ErrStore), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON error body. Server side failures are logged and
// their details kept out of the response.
func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	switch status {
	case http.StatusInternalServerError:
		h.logger().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		msg = "internal server error"
	case http.StatusServiceUnavailable:
		h.logger().Warn("store unavailable", zap.String("path", c.FullPath()), zap.Error(err))
		msg = "store unavailable, try again"
	}
	c.JSON(status, gin.H{"error": msg})
}
