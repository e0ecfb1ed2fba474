package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	ginGzip "github.com/gin-contrib/gzip"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	_ = godotenv.Load()

	app := newAppFromEnv()
	logInfo("Starting Primludo in %s mode", map[bool]string{true: "production", false: "development"}[app.IsProduction])

	router := app.setupRouter()

	janitorCtx, cancelJanitor := context.WithCancel(context.Background())
	defer cancelJanitor()
	go app.runSessionJanitor(janitorCtx)

	startServer(router)
}

// newAppFromEnv builds the App with env-driven configuration and the real
// clock and random collaborators.
func newAppFromEnv() *App {
	clock := clockwork.NewRealClock()
	return &App{
		Clock:          clock,
		RandInt:        cryptoRandInt,
		Sessions:       make(map[string]*Session),
		LimiterMap:     make(map[string]*rate.Limiter),
		IsProduction:   os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production",
		SessionTimeout: getEnvDuration("SESSION_TIMEOUT", 2*time.Hour),
		CookieMaxAge:   getEnvDuration("COOKIE_MAX_AGE", 2*time.Hour),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		StartTime:      clock.Now(),
	}
}

// setupRouter wires middleware and routes. Shared with the HTTP tests.
func (app *App) setupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))
	router.Use(noStoreMiddleware())
	router.Use(requestIDMiddleware())

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.GET(RouteState, app.stateHandler)
	router.POST(RouteGame, app.rateLimitMiddleware(), app.newGameHandler)
	router.POST(RouteAnswer, app.rateLimitMiddleware(), app.answerHandler)
	router.POST(RouteKey, app.rateLimitMiddleware(), app.keyHandler)
	router.POST(RouteNavigate, app.rateLimitMiddleware(), app.navigateHandler)
	router.GET(RouteHealthz, app.healthzHandler)

	return router
}

func startServer(router *gin.Engine) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
