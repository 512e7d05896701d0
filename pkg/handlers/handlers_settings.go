package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RoleRequirements serves the requirement ranges of every role
func (h *Handler) RoleRequirements(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Requirements())
}

// MeetingMultipliers serves the per meeting type role multipliers
func (h *Handler) MeetingMultipliers(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Multipliers())
}
