package domain

import "time"

// User is the persisted account record. A user starts inactive with a
// pending confirmation token; once the token is consumed the account is
// active and the token columns are cleared.
type User struct {
	ID           string
	Username     string
	Email        string // may be empty; unique when set
	PasswordHash string // bcrypt encoded
	IsActive     bool

	// ConfirmationToken is the opaque one-time token mailed at signup.
	// Present only while the account awaits confirmation.
	ConfirmationToken        *string
	ConfirmationTokenExpires *time.Time

	// ConfirmedTokenHash records the fingerprint of the consumed token so a
	// repeated confirmation of the same token resolves as an idempotent
	// success after the live token is cleared.
	ConfirmedTokenHash *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
