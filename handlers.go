package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"primludo/internal/game"
)

// stateView shapes a game state for the presentation collaborator. The
// countdown fields only carry meaning while a game is on screen, so they
// are zeroed elsewhere.
func stateView(s game.State) gin.H {
	view := gin.H{
		"screen":       s.Screen.String(),
		"rounds":       s.Rounds,
		"keyboardHint": s.KeyboardHint,
	}
	switch s.Screen {
	case game.ScreenGame:
		view["currentInteger"] = s.CurrentInteger
		view["percentElapsed"] = game.PercentElapsed(s)
		view["timeLimitMs"] = game.TimeLimit(s.Rounds).Milliseconds()
	case game.ScreenGameOver:
		if !s.GameEnd.IsZero() && !s.GameStart.IsZero() {
			view["gameDurationMs"] = s.GameEnd.Sub(s.GameStart).Milliseconds()
		}
	}
	return view
}

// stateHandler returns the current session's state for rendering.
func (app *App) stateHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	s := app.getSession(sessionID)
	c.JSON(http.StatusOK, stateView(s.Snapshot()))
}

// newGameHandler starts a game, from the home screen or straight from
// game over.
func (app *App) newGameHandler(c *gin.Context) {
	sessionID := app.getOrCreateSession(c)
	logInfo("Session %s entering game", sessionID)
	s := app.getSession(sessionID)
	state := app.Dispatch(s, game.EnterGame{})
	c.JSON(http.StatusOK, stateView(state))
}

// answerHandler folds the player's prime/not-prime judgment. Answers
// outside a running game are absorbed without effect, mirroring how the
// core treats inputs that are not meaningful on the current screen.
func (app *App) answerHandler(c *gin.Context) {
	var body struct {
		Prime *bool `json:"prime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorBadAnswerBody})
		return
	}

	sessionID := app.getOrCreateSession(c)
	s := app.getSession(sessionID)
	state := s.Snapshot()
	if state.Screen != game.ScreenGame {
		logWarn("Session %s answered outside a game", sessionID)
		c.JSON(http.StatusOK, stateView(state))
		return
	}

	logInfo("Session %s answered prime=%v on %d (round %d)", sessionID, *body.Prime, state.CurrentInteger, state.Rounds)
	state = app.Dispatch(s, game.Answer{IsPrime: *body.Prime})
	c.JSON(http.StatusOK, stateView(state))
}

// keyHandler forwards a raw keyboard shortcut. Keys are only captured
// while a game is on screen; outside one they are dropped.
func (app *App) keyHandler(c *gin.Context) {
	var body struct {
		Key string `json:"key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorBadKeyBody})
		return
	}

	sessionID := app.getOrCreateSession(c)
	s := app.getSession(sessionID)
	if s.Snapshot().Screen != game.ScreenGame {
		c.JSON(http.StatusOK, stateView(s.Snapshot()))
		return
	}

	state := app.Dispatch(s, game.KeyPressed{Key: body.Key})
	c.JSON(http.StatusOK, stateView(state))
}

// navigateHandler switches between the home and about screens.
func (app *App) navigateHandler(c *gin.Context) {
	var body struct {
		To string `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorBadNavTarget})
		return
	}

	targets := map[string]game.Event{
		NavTargetHome:  game.NavigateHome{},
		NavTargetAbout: game.NavigateAbout{},
	}
	ev, ok := targets[body.To]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   ErrorBadNavTarget,
			"allowed": lo.Keys(targets),
		})
		return
	}

	sessionID := app.getOrCreateSession(c)
	s := app.getSession(sessionID)
	state := app.Dispatch(s, ev)
	c.JSON(http.StatusOK, stateView(state))
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	uptime := app.Clock.Now().Sub(app.StartTime)

	app.SessionMutex.RLock()
	sessions := len(app.Sessions)
	app.SessionMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"env":       lo.Ternary(app.IsProduction, "production", "development"),
		"sessions":  sessions,
		"uptime":    formatUptime(uptime),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
