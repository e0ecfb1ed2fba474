package main

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

// contextKey is the type for values stored in request contexts.
type contextKey string

// RandIntFunc produces a uniform random integer in [min, max] inclusive.
// Injected so tests can drive the game deterministically.
type RandIntFunc func(min, max int) int

// App holds the server's shared state and configuration.
type App struct {
	Clock   clockwork.Clock
	RandInt RandIntFunc

	Sessions     map[string]*Session
	SessionMutex sync.RWMutex

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex

	IsProduction   bool
	SessionTimeout time.Duration
	CookieMaxAge   time.Duration
	RateLimitRPS   int
	RateLimitBurst int

	StartTime time.Time
}
