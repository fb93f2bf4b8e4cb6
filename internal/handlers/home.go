package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questlog/questlog/internal/session"
)

// HomeHandler serves the landing page and liveness endpoint.
type HomeHandler struct {
	sessionManager session.Manager
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(sm session.Manager) *HomeHandler {
	return &HomeHandler{
		sessionManager: sm,
	}
}

// Index sends signed-in users to their own backlog and everyone else to the
// landing page.
func (h *HomeHandler) Index(c *gin.Context) {
	if identity, ok := h.sessionManager.Resolve(c); ok {
		c.Redirect(http.StatusFound, backlogPath(identity.UserID))
		return
	}

	c.HTML(http.StatusOK, "index.tmpl", gin.H{})
}

// Health reports liveness.
func (h *HomeHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Game backlog is running",
	})
}

func backlogPath(userID uint64) string {
	return fmt.Sprintf("/users/%d/games", userID)
}

func gamePath(userID uint64, gameID string) string {
	return fmt.Sprintf("/users/%d/games/%s", userID, gameID)
}
