package constants

import "time"

// Session
const (
	SessionCookieName = "backlog_session"
	SessionMaxAge     = 24 * 60 * 60 // seconds
)

// Context keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyOwner    = "owner"
)

// Validation limits
const (
	MinRating = 1
	MaxRating = 5
)

// Metadata lookup
const (
	MetadataLookupTimeout = 3 * time.Second
	BoxArtCacheTTL        = 24 * time.Hour
)
