package flash

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// GameEcho carries a submitted game form back to a re-rendered form after a
// validation failure. Values stay as the raw strings the user typed.
type GameEcho struct {
	Title     string
	Platform  string
	Status    string
	Rating    string
	DateAdded string
	BoxArt    string
	Notes     string
}

// Data is a one-shot value carried across a single redirect.
type Data struct {
	Error    string
	Username string
	Game     GameEcho
}

func init() {
	gob.Register(Data{})
}

// Set stores the flash for the next render.
func Set(c *gin.Context, data Data) {
	sess := sessions.Default(c)
	sess.AddFlash(data)
	_ = sess.Save()
}

// Take consumes the pending flash, clearing it from the session.
func Take(c *gin.Context) (Data, bool) {
	sess := sessions.Default(c)

	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return Data{}, false
	}
	// Reading flashes removes them; the save makes the removal stick.
	_ = sess.Save()

	data, ok := flashes[len(flashes)-1].(Data)
	return data, ok
}
