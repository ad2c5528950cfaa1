package constants

import "time"

const (
	// SessionCookieName is the name of the cookie carrying the session reference
	SessionCookieName = "project_session"

	// ContextKeyUserID is used both as the session key and the gin context key
	ContextKeyUserID = "user_id"

	// ContextKeyRequestID is the gin context key for the request id
	ContextKeyRequestID = "request_id"

	// HeaderRequestID is echoed back on every response
	HeaderRequestID = "X-Request-ID"
)

const (
	// SessionMaxAge is how long a session stays valid after login
	SessionMaxAge = 7 * 24 * time.Hour

	// BcryptCost matches the salt rounds used by the seed fixture
	BcryptCost = 10

	// MaxSuggestedTasks caps the number of drafts returned from a single suggestion request
	MaxSuggestedTasks = 20

	// DateLayout is the date-only format accepted for due dates
	DateLayout = "2006-01-02"
)
