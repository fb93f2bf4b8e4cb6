package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questlog/questlog/internal/dto"
	"github.com/questlog/questlog/internal/services"
)

// CommunityHandler serves the read-only cross-user activity page.
type CommunityHandler struct {
	communityService *services.CommunityService
}

// NewCommunityHandler creates a new CommunityHandler.
func NewCommunityHandler(communityService *services.CommunityService) *CommunityHandler {
	return &CommunityHandler{
		communityService: communityService,
	}
}

// Index lists every user with their most recently added game.
func (h *CommunityHandler) Index(c *gin.Context) {
	entries, err := h.communityService.LatestActivity()
	if err != nil {
		log.Printf("failed to load community activity: %v", err)
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "community.tmpl", gin.H{
		"Entries": dto.ToCommunityEntries(entries),
	})
}
