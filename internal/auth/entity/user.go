// Package entity holds the domain types for the auth module.
package entity

import "time"

// User is a stored account row.
type User struct {
	ID          int64
	Email       string
	Password    string
	TOTPSecret  []byte
	TOTPEnabled bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewUser is the data needed to insert an account. Password carries the
// bcrypt hash, never the plaintext.
type NewUser struct {
	ID       int64
	Email    string
	Password string
}
