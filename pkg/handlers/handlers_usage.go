package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetMyUsage returns the assignment run counters of the caller's team
func (h *Handler) GetMyUsage(c *gin.Context) {
	usage, err := h.Store.ListUsage(c.Request.Context(), teamID(c), 30)
	if err != nil {
		h.fail(c, err)
		return
	}

	// Calculate totals
	var totalRuns, totalAssigned, totalParticipants int64
	for _, u := range usage {
		totalRuns += int64(u.RunCount)
		totalAssigned += int64(u.TotalAssigned)
		totalParticipants += int64(u.TotalParticipants)
	}

	c.JSON(http.StatusOK, gin.H{
		"team_id":       teamID(c),
		"usage_history": usage,
		"totals": gin.H{
			"runs":         totalRuns,
			"assigned":     totalAssigned,
			"participants": totalParticipants,
		},
	})
}
