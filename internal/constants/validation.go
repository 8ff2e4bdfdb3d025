package constants

import "time"

// Field Length Limits
const (
	MinPasswordLength = 6
	MaxPasswordLength = 100
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MaxEmailLength    = 255
	MaxTitleLength    = 100
	MaxDescLength     = 500
	MaxTagNameLength  = 50
)

// Token Lifetimes
const (
	AccessTokenTTL       = 15 * time.Minute
	RefreshTokenTTL      = 7 * 24 * time.Hour
	EmailVerificationTTL = 24 * time.Hour
)

// Session cache lifetime; a stale snapshot may be served for at most
// this long after the user record changes.
const SessionCacheTTL = 5 * time.Minute
