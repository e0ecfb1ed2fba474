package main

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteState    = "/state"
	RouteGame     = "/game"
	RouteAnswer   = "/answer"
	RouteKey      = "/key"
	RouteNavigate = "/navigate"
	RouteHealthz  = "/healthz"
)

// Navigation targets accepted by the navigate endpoint
const (
	NavTargetHome  = "home"
	NavTargetAbout = "about"
)

// Error message constants
const (
	ErrorBadAnswerBody   = "Body must be JSON with a boolean 'prime' field."
	ErrorBadKeyBody      = "Body must be JSON with a non-empty 'key' field."
	ErrorBadNavTarget    = "Unknown navigation target."
	ErrorTooManyRequests = "Too many requests. Please slow down."
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)
