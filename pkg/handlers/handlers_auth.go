package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Login exchanges email and password for a bearer token
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.Auth.Login(c.Request.Context(), h.Store, req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer", "user": user})
}

// Me returns the authenticated team lead
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Store.GetUser(c.Request.Context(), userID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
