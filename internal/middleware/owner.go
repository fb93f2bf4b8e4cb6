package middleware

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/questlog/questlog/internal/constants"
	"github.com/questlog/questlog/internal/models"
	"github.com/questlog/questlog/internal/repository"
	"github.com/questlog/questlog/internal/session"
)

// ResolveOwner loads the backlog owner named by the :userId path segment for
// publicly viewable routes. An unresolvable owner redirects home.
func ResolveOwner(repo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := lookupOwner(c, repo)
		if !ok {
			c.Redirect(redirectStatus(c), "/")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyOwner, owner)
		c.Next()
	}
}

// RequireOwner gates every mutating backlog route: the caller must be signed
// in and must be the owner named in the path. A mismatched caller is sent to
// their own backlog; a stale session pointing at a vanished user is
// destroyed.
func RequireOwner(sm session.Manager, repo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := sm.Resolve(c)
		if !ok {
			c.Redirect(redirectStatus(c), "/auth/sign-in")
			c.Abort()
			return
		}

		owner, ok := lookupOwner(c, repo)
		if !ok {
			_ = sm.Destroy(c)
			c.Redirect(redirectStatus(c), "/")
			c.Abort()
			return
		}

		if owner.ID != identity.UserID {
			c.Redirect(redirectStatus(c), fmt.Sprintf("/users/%d/games", identity.UserID))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, identity.UserID)
		c.Set(constants.ContextKeyUsername, identity.Username)
		c.Set(constants.ContextKeyOwner, owner)
		c.Next()
	}
}

// GetOwner retrieves the owner resolved by ResolveOwner or RequireOwner.
func GetOwner(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyOwner)
	if !exists {
		return nil, false
	}
	owner, ok := value.(*models.User)
	return owner, ok
}

func lookupOwner(c *gin.Context, repo repository.UserRepository) (*models.User, bool) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return nil, false
	}

	owner, err := repo.FindByID(userID)
	if err != nil {
		return nil, false
	}
	return owner, true
}
