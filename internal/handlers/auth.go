package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/questlog/questlog/internal/errors"
	"github.com/questlog/questlog/internal/flash"
	"github.com/questlog/questlog/internal/services"
	"github.com/questlog/questlog/internal/session"
)

// AuthHandler coordinates the sign-up, sign-in, and sign-out flows.
type AuthHandler struct {
	authService    *services.AuthService
	sessionManager session.Manager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, sm session.Manager) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionManager: sm,
	}
}

// SignUpForm renders the sign-up page, replaying any flashed error and the
// previously entered username.
func (h *AuthHandler) SignUpForm(c *gin.Context) {
	fl, _ := flash.Take(c)
	c.HTML(http.StatusOK, "sign-up.tmpl", gin.H{
		"Error":    fl.Error,
		"Username": fl.Username,
	})
}

// SignUp registers a new user and signs them in.
func (h *AuthHandler) SignUp(c *gin.Context) {
	type SignUpRequest struct {
		Username        string `form:"username"`
		Password        string `form:"password"`
		ConfirmPassword string `form:"confirmPassword"`
	}

	var req SignUpRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Set(c, flash.Data{Error: "Invalid form submission."})
		c.Redirect(http.StatusSeeOther, "/auth/sign-up")
		return
	}

	user, err := h.authService.Signup(services.SignupInput{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindValidation) {
			flash.Set(c, flash.Data{Error: err.Error(), Username: req.Username})
			c.Redirect(http.StatusSeeOther, "/auth/sign-up")
			return
		}
		log.Printf("sign-up failed: %v", err)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if err := h.sessionManager.Create(c, user); err != nil {
		log.Printf("failed to create session: %v", err)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.Redirect(http.StatusSeeOther, backlogPath(user.ID))
}

// SignInForm renders the sign-in page with any flashed error.
func (h *AuthHandler) SignInForm(c *gin.Context) {
	fl, _ := flash.Take(c)
	c.HTML(http.StatusOK, "sign-in.tmpl", gin.H{
		"Error":    fl.Error,
		"Username": fl.Username,
	})
}

// SignIn authenticates a user and starts their session. On failure the
// caller bounces back to where they came from with a generic error.
func (h *AuthHandler) SignIn(c *gin.Context) {
	type SignInRequest struct {
		Username string `form:"username"`
		Password string `form:"password"`
	}

	var req SignInRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Set(c, flash.Data{Error: services.ErrInvalidCredentials.Error()})
		c.Redirect(http.StatusSeeOther, "/auth/sign-in")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindValidation) {
			flash.Set(c, flash.Data{Error: err.Error(), Username: req.Username})
			c.Redirect(http.StatusSeeOther, refererOrHome(c))
			return
		}
		log.Printf("sign-in failed: %v", err)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if err := h.sessionManager.Create(c, user); err != nil {
		log.Printf("failed to create session: %v", err)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.Redirect(http.StatusSeeOther, backlogPath(user.ID))
}

// SignOut destroys the session. Signing out twice is fine.
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.sessionManager.Destroy(c); err != nil {
		log.Printf("failed to destroy session: %v", err)
	}
	c.Redirect(http.StatusFound, "/")
}

func refererOrHome(c *gin.Context) string {
	if ref := c.Request.Referer(); ref != "" {
		return ref
	}
	return "/"
}
