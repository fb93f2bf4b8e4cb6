package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questlog/questlog/internal/dto"
	apperrors "github.com/questlog/questlog/internal/errors"
	"github.com/questlog/questlog/internal/flash"
	"github.com/questlog/questlog/internal/middleware"
	"github.com/questlog/questlog/internal/services"
	"github.com/questlog/questlog/internal/session"
	"github.com/questlog/questlog/internal/utils"
)

// GameHandler serves a user's backlog pages.
type GameHandler struct {
	backlogService *services.BacklogService
	sessionManager session.Manager
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(backlogService *services.BacklogService, sm session.Manager) *GameHandler {
	return &GameHandler{
		backlogService: backlogService,
		sessionManager: sm,
	}
}

// Index renders the owner's backlog partitioned by status. The listing is
// public; editing controls only show for the owner.
func (h *GameHandler) Index(c *gin.Context) {
	owner, ok := middleware.GetOwner(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	identity, signedIn := h.sessionManager.Resolve(c)

	c.HTML(http.StatusOK, "games-index.tmpl", gin.H{
		"Owner":    dto.ToUserDTO(*owner),
		"Sections": h.backlogService.List(owner),
		"IsOwner":  signedIn && identity.UserID == owner.ID,
	})
}

// New renders the add-game form, replaying any flashed validation error and
// the echoed form values.
func (h *GameHandler) New(c *gin.Context) {
	owner, ok := middleware.GetOwner(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	fl, _ := flash.Take(c)
	c.HTML(http.StatusOK, "games-new.tmpl", gin.H{
		"Owner": dto.ToUserDTO(*owner),
		"Error": fl.Error,
		"Game":  fl.Game,
	})
}

// gameForm is the shape of both the add and edit game forms.
type gameForm struct {
	Title     string `form:"title"`
	Platform  string `form:"platform"`
	Status    string `form:"status"`
	Rating    string `form:"rating"`
	DateAdded string `form:"dateAdded"`
	BoxArt    string `form:"boxArt"`
	Notes     string `form:"notes"`
}

func (f gameForm) echo() flash.GameEcho {
	return flash.GameEcho(f)
}

// Create adds a game to the owner's backlog.
func (h *GameHandler) Create(c *gin.Context) {
	owner, ok := middleware.GetOwner(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	var form gameForm
	if err := c.ShouldBind(&form); err != nil {
		flash.Set(c, flash.Data{Error: "Invalid form submission."})
		c.Redirect(http.StatusSeeOther, backlogPath(owner.ID)+"/new")
		return
	}

	rating, err := utils.ParseRating(form.Rating)
	if err != nil {
		h.rejectGameForm(c, form, err, backlogPath(owner.ID)+"/new")
		return
	}
	dateAdded, err := utils.ParseDate(form.DateAdded)
	if err != nil {
		h.rejectGameForm(c, form, err, backlogPath(owner.ID)+"/new")
		return
	}

	_, err = h.backlogService.Create(c.Request.Context(), owner, services.CreateGameInput{
		Title:     form.Title,
		Platform:  form.Platform,
		Status:    form.Status,
		Rating:    rating,
		DateAdded: dateAdded,
		BoxArt:    form.BoxArt,
		Notes:     form.Notes,
	})
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindValidation) {
			h.rejectGameForm(c, form, err, backlogPath(owner.ID)+"/new")
			return
		}
		log.Printf("failed to create game: %v", err)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.Redirect(http.StatusSeeOther, backlogPath(owner.ID))
}

// Show renders a single game. Missing games bounce to the owner's list.
func (h *GameHandler) Show(c *gin.Context) {
	owner, ok := middleware.GetOwner(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	game, found := h.backlogService.Get(owner, c.Param("gameId"))
	if !found {
		c.Redirect(http.StatusFound, backlogPath(owner.ID))
		return
	}

	identity, signedIn := h.sessionManager.Resolve(c)

	c.HTML(http.StatusOK, "games-show.tmpl", gin.H{
		"Owner":   dto.ToUserDTO(*owner),
		"Game":    game,
		"IsOwner": signedIn && identity.UserID == owner.ID,
	})
}

// Edit renders the edit form for one of the caller's games.
func (h *GameHandler) Edit(c *gin.Context) {
	owner, ok := middleware.GetOwner(c)
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	game, found := h.backlogService.Get(owner, c.Param("gameId"))
	if !found {
		c.Redirect(http.StatusFound, backlogPath(owner.ID))
		return
	}

	fl, _ := flash.Take(c)
	c.HTML(http.StatusOK, "games-edit.tmpl", gin.H{
		"Owner": dto.ToUserDTO(*owner),
		"Game":  game,
		"Error": fl.Error,
	})
}

// Update applies submitted fields to a game. Fields absent from the form are
// left untouched; an empty rating field unsets the rating.
func (h *GameHandler) Update(c *gin.Context) {
	owner, ok := middleware.GetOwner(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	gameID := c.Param("gameId")

	var input services.UpdateGameInput
	if v, ok := c.GetPostForm("title"); ok {
		input.Title = &v
	}
	if v, ok := c.GetPostForm("platform"); ok {
		input.Platform = &v
	}
	if v, ok := c.GetPostForm("status"); ok {
		input.Status = &v
	}
	if v, ok := c.GetPostForm("rating"); ok {
		if v == "" {
			input.ClearRating = true
		} else {
			rating, err := utils.ParseRating(v)
			if err != nil {
				flash.Set(c, flash.Data{Error: err.Error()})
				c.Redirect(http.StatusSeeOther, gamePath(owner.ID, gameID)+"/edit")
				return
			}
			input.Rating = rating
		}
	}
	if v, ok := c.GetPostForm("dateAdded"); ok && v != "" {
		date, err := utils.ParseDate(v)
		if err != nil {
			flash.Set(c, flash.Data{Error: err.Error()})
			c.Redirect(http.StatusSeeOther, gamePath(owner.ID, gameID)+"/edit")
			return
		}
		input.DateAdded = date
	}
	if v, ok := c.GetPostForm("boxArt"); ok {
		input.BoxArt = &v
	}
	if v, ok := c.GetPostForm("notes"); ok {
		input.Notes = &v
	}

	_, err := h.backlogService.Update(owner, gameID, input)
	if err != nil {
		switch {
		case apperrors.IsKind(err, apperrors.KindNotFound):
			c.Redirect(http.StatusSeeOther, backlogPath(owner.ID))
		case apperrors.IsKind(err, apperrors.KindValidation):
			flash.Set(c, flash.Data{Error: err.Error()})
			c.Redirect(http.StatusSeeOther, gamePath(owner.ID, gameID)+"/edit")
		default:
			log.Printf("failed to update game: %v", err)
			c.Redirect(http.StatusSeeOther, "/")
		}
		return
	}

	c.Redirect(http.StatusSeeOther, gamePath(owner.ID, gameID))
}

// Delete removes a game from the caller's backlog. Deleting an id that no
// longer exists still lands back on the list.
func (h *GameHandler) Delete(c *gin.Context) {
	owner, ok := middleware.GetOwner(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if err := h.backlogService.Delete(owner, c.Param("gameId")); err != nil {
		log.Printf("failed to delete game: %v", err)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.Redirect(http.StatusSeeOther, backlogPath(owner.ID))
}

func (h *GameHandler) rejectGameForm(c *gin.Context, form gameForm, err error, target string) {
	flash.Set(c, flash.Data{Error: err.Error(), Game: form.echo()})
	c.Redirect(http.StatusSeeOther, target)
}
