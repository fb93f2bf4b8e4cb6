package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questlog/questlog/internal/constants"
	"github.com/questlog/questlog/internal/session"
)

// RequireAuth redirects anonymous visitors to the sign-in page and exposes
// the caller's identity to downstream handlers.
func RequireAuth(sm session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := sm.Resolve(c)
		if !ok {
			c.Redirect(redirectStatus(c), "/auth/sign-in")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, identity.UserID)
		c.Set(constants.ContextKeyUsername, identity.Username)
		c.Next()
	}
}

// GetIdentity retrieves the caller's identity stored by RequireAuth or
// RequireOwner.
func GetIdentity(c *gin.Context) (session.Identity, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return session.Identity{}, false
	}
	id, ok := userID.(uint64)
	if !ok {
		return session.Identity{}, false
	}

	username := c.GetString(constants.ContextKeyUsername)
	return session.Identity{UserID: id, Username: username}, true
}

// redirectStatus picks 303 for form submissions so the client follows up
// with a GET, and a plain 302 for navigation.
func redirectStatus(c *gin.Context) int {
	if c.Request.Method == http.MethodGet {
		return http.StatusFound
	}
	return http.StatusSeeOther
}
