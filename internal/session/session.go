package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/questlog/questlog/internal/constants"
	"github.com/questlog/questlog/internal/models"
)

// Identity is the authenticated caller bound to a session token.
type Identity struct {
	UserID   uint64
	Username string
}

// Manager issues, resolves, and destroys the session identity for a request.
// It is injected into middleware and handlers; nothing reads session state
// ambiently.
type Manager interface {
	// Create binds a new session to the user, replacing any existing one.
	Create(c *gin.Context, user *models.User) error

	// Resolve returns the caller's identity, or false when the session is
	// missing or expired.
	Resolve(c *gin.Context) (Identity, bool)

	// Destroy removes the session. Destroying a nonexistent session succeeds.
	Destroy(c *gin.Context) error
}

// NewManager creates a Manager backed by the gin-contrib session store
// configured on the router.
func NewManager() Manager {
	return storeManager{}
}

type storeManager struct{}

func (storeManager) Create(c *gin.Context, user *models.User) error {
	sess := sessions.Default(c)
	sess.Set(constants.ContextKeyUserID, user.ID)
	sess.Set(constants.ContextKeyUsername, user.Username)
	return sess.Save()
}

func (storeManager) Resolve(c *gin.Context) (Identity, bool) {
	sess := sessions.Default(c)

	userID, ok := sess.Get(constants.ContextKeyUserID).(uint64)
	if !ok {
		return Identity{}, false
	}
	username, _ := sess.Get(constants.ContextKeyUsername).(string)

	return Identity{UserID: userID, Username: username}, true
}

func (storeManager) Destroy(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	return sess.Save()
}
