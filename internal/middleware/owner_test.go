package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/questlog/questlog/internal/constants"
	"github.com/questlog/questlog/internal/models"
	"github.com/questlog/questlog/internal/repository"
	"github.com/questlog/questlog/internal/session"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type ownerTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	sm     session.Manager
}

func setupOwnerTestEnv(t *testing.T) ownerTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Game{}))

	userRepo := repository.NewUserRepository(db)
	sm := session.NewManager()

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Session fixture endpoint so tests can sign callers in
	r.POST("/test/session/:userId", func(c *gin.Context) {
		var user models.User
		require.NoError(t, db.First(&user, c.Param("userId")).Error)
		require.NoError(t, sm.Create(c, &user))
		c.Status(http.StatusNoContent)
	})
	r.GET("/test/whoami", func(c *gin.Context) {
		if _, ok := sm.Resolve(c); ok {
			c.Status(http.StatusOK)
			return
		}
		c.Status(http.StatusUnauthorized)
	})

	r.GET("/users/:userId/games", ResolveOwner(userRepo), func(c *gin.Context) {
		owner, ok := GetOwner(c)
		require.True(t, ok)
		c.String(http.StatusOK, owner.Username)
	})
	r.POST("/users/:userId/games", RequireOwner(sm, userRepo), func(c *gin.Context) {
		owner, ok := GetOwner(c)
		require.True(t, ok)
		identity, ok := GetIdentity(c)
		require.True(t, ok)
		c.String(http.StatusOK, owner.Username+":"+identity.Username)
	})

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return ownerTestEnv{db: db, router: r, sm: sm}
}

func (env ownerTestEnv) do(t *testing.T, method, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env ownerTestEnv) signIn(t *testing.T, userID uint64) []*http.Cookie {
	t.Helper()
	w := env.do(t, http.MethodPost, "/test/session/"+strconv.FormatUint(userID, 10), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	return w.Result().Cookies()
}

func TestRequireOwner_AnonymousRedirectsToSignIn(t *testing.T) {
	env := setupOwnerTestEnv(t)

	w := env.do(t, http.MethodPost, "/users/1/games", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/auth/sign-in", w.Header().Get("Location"))
}

func TestRequireOwner_MismatchRedirectsToCallersList(t *testing.T) {
	env := setupOwnerTestEnv(t)

	userA := &models.User{Username: "usera", PasswordHash: "x"}
	userB := &models.User{Username: "userb", PasswordHash: "x"}
	require.NoError(t, env.db.Create(userA).Error)
	require.NoError(t, env.db.Create(userB).Error)

	cookies := env.signIn(t, userA.ID)
	w := env.do(t, http.MethodPost, "/users/"+strconv.FormatUint(userB.ID, 10)+"/games", cookies)

	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/users/"+strconv.FormatUint(userA.ID, 10)+"/games", w.Header().Get("Location"))
}

func TestRequireOwner_StaleTargetDestroysSession(t *testing.T) {
	env := setupOwnerTestEnv(t)

	user := &models.User{Username: "usera", PasswordHash: "x"}
	require.NoError(t, env.db.Create(user).Error)

	cookies := env.signIn(t, user.ID)
	w := env.do(t, http.MethodPost, "/users/424242/games", cookies)

	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	// The session was torn down along the way
	after := env.do(t, http.MethodGet, "/test/whoami", w.Result().Cookies())
	require.Equal(t, http.StatusUnauthorized, after.Code)
}

func TestRequireOwner_MatchExposesOwner(t *testing.T) {
	env := setupOwnerTestEnv(t)

	user := &models.User{Username: "usera", PasswordHash: "x"}
	require.NoError(t, env.db.Create(user).Error)

	cookies := env.signIn(t, user.ID)
	w := env.do(t, http.MethodPost, "/users/"+strconv.FormatUint(user.ID, 10)+"/games", cookies)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "usera:usera", w.Body.String())
}

func TestResolveOwner_PublicReadWithoutSession(t *testing.T) {
	env := setupOwnerTestEnv(t)

	user := &models.User{Username: "usera", PasswordHash: "x"}
	require.NoError(t, env.db.Create(user).Error)

	w := env.do(t, http.MethodGet, "/users/"+strconv.FormatUint(user.ID, 10)+"/games", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "usera", w.Body.String())
}

func TestResolveOwner_MalformedIDRedirectsHome(t *testing.T) {
	env := setupOwnerTestEnv(t)

	w := env.do(t, http.MethodGet, "/users/garbage/games", nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
}
