// Package model defines domain entities used by services and repositories.
package model

import "time"

// Tokens collects issued access tokens.
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time // access token expiry (for diagnostics)
}

// User represents an account. The contact layer treats it as an opaque
// identity; only the auth service looks at the credential fields.
type User struct {
	ID        int64  // PK
	Email     string // unique
	PwdHash   []byte // Argon2id(password, Salt)
	Salt      []byte // per-user auth salt
	CreatedAt time.Time
}

// Contact is a single address-book record owned by exactly one user.
type Contact struct {
	ID        int64  // PK
	UserID    int64  // FK -> users.id
	FirstName string
	LastName  string
	Email     string // unique per owner
	Phone     string
	Birthday  time.Time // calendar date, time part ignored
	CreatedAt time.Time
}

// ContactInput is the caller-supplied payload for create and update.
// All fields are required; update replaces every one of them.
type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Birthday  time.Time
}
