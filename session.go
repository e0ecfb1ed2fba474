package main

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"primludo/internal/game"
)

// sessionSweepInterval is how often idle sessions are evicted.
const sessionSweepInterval = 10 * time.Minute

// Session owns one player's game state. Every event for a session is
// folded under mu, which gives the core the strict sequential,
// one-event-in-flight ordering it assumes.
type Session struct {
	mu         sync.Mutex
	state      game.State
	lastAccess time.Time
	stopTicks  context.CancelFunc
}

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || len(sessionID) < 10 {
		sessionID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		secure := app.IsProduction
		c.SetCookie(SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", secure, true)
		logInfo("Created new session: %s", sessionID)
	}
	return sessionID
}

// getSession returns the Session for an ID, creating a fresh one on first
// contact.
func (app *App) getSession(sessionID string) *Session {
	app.SessionMutex.RLock()
	s, exists := app.Sessions[sessionID]
	app.SessionMutex.RUnlock()
	if exists {
		return s
	}

	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	if s, exists = app.Sessions[sessionID]; exists {
		return s
	}
	logInfo("Creating game state for session: %s", sessionID)
	s = &Session{
		state:      game.NewState(),
		lastAccess: app.Clock.Now(),
	}
	app.Sessions[sessionID] = s
	return s
}

// Dispatch folds one intent into the session's state, resolves every
// request the transition emits, and reconciles the tick loop with the
// resulting screen. Returns the state after all follow-up events settle.
func (app *App) Dispatch(s *Session, ev game.Event) game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	app.foldLocked(s, ev)
	app.reconcileTicksLocked(s)
	s.lastAccess = app.Clock.Now()
	return s.state
}

// Snapshot returns the session's current state without folding anything.
func (s *Session) Snapshot() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// foldLocked runs the event through the core, then answers each emitted
// request in order by synthesizing the tagged response event and folding
// it too, until the transition chain settles. Deferred resumption, but
// strictly sequential: no other event can interleave while mu is held.
func (app *App) foldLocked(s *Session, ev game.Event) {
	queue := []game.Event{ev}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		var reqs []game.Request
		s.state, reqs = game.Transition(s.state, next)
		for _, req := range reqs {
			queue = append(queue, app.resolveRequest(req))
		}
	}
}

// resolveRequest satisfies a core request using the clock and random
// collaborators and returns the tagged response event.
func (app *App) resolveRequest(req game.Request) game.Event {
	switch r := req.(type) {
	case game.RequestCurrentTime:
		now := app.Clock.Now()
		switch r.Tag {
		case game.TagGameStarted:
			return game.GameStarted{Now: now}
		case game.TagTimerStarted:
			return game.TimerStarted{Now: now}
		case game.TagGameEnded:
			return game.GameEnded{Now: now}
		}
		logWarn("Unroutable time request tag: %v", r.Tag)
		return game.TimerTick{Now: now}
	case game.RequestRandomInt:
		return game.RoundStarted{N: app.RandInt(r.Min, r.Max)}
	default:
		logWarn("Unknown request type: %T", req)
		return game.NavigateHome{}
	}
}

// reconcileTicksLocked subscribes the session to the periodic tick source
// while a game is on screen and unsubscribes the moment it is not.
func (app *App) reconcileTicksLocked(s *Session) {
	inGame := s.state.Screen == game.ScreenGame
	switch {
	case inGame && s.stopTicks == nil:
		ctx, cancel := context.WithCancel(context.Background())
		s.stopTicks = cancel
		go app.tickLoop(ctx, s)
	case !inGame && s.stopTicks != nil:
		s.stopTicks()
		s.stopTicks = nil
	}
}

// tickLoop delivers TimerTick events at TickInterval until cancelled.
func (app *App) tickLoop(ctx context.Context, s *Session) {
	ticker := app.Clock.NewTicker(game.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			app.deliverTick(s)
		}
	}
}

// deliverTick folds a timer tick, dropping ticks that were already in
// flight when the session left the game screen.
func (app *App) deliverTick(s *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Screen != game.ScreenGame {
		return
	}
	app.foldLocked(s, game.TimerTick{Now: app.Clock.Now()})
	app.reconcileTicksLocked(s)
}

// runSessionJanitor periodically evicts sessions idle longer than the
// session timeout, stopping their tick loops on the way out.
func (app *App) runSessionJanitor(ctx context.Context) {
	ticker := app.Clock.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			app.sweepSessions()
		}
	}
}

// sweepSessions removes every session whose last activity is older than
// SessionTimeout.
func (app *App) sweepSessions() {
	cutoff := app.Clock.Now().Add(-app.SessionTimeout)
	removed := 0

	app.SessionMutex.Lock()
	for id, s := range app.Sessions {
		s.mu.Lock()
		idle := s.lastAccess.Before(cutoff)
		if idle && s.stopTicks != nil {
			s.stopTicks()
			s.stopTicks = nil
		}
		s.mu.Unlock()
		if idle {
			delete(app.Sessions, id)
			removed++
		}
	}
	app.SessionMutex.Unlock()

	if removed > 0 {
		logInfo("Session sweep removed %d idle sessions", removed)
	}
}
