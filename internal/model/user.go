// Package model defines the data structures used throughout the application.
package model

import "github.com/google/uuid"

// User represents a registered account.
//
// The password is never stored or returned in plain form: HashedPassword
// holds the bcrypt hash and is excluded from JSON with the `json:"-"` tag,
// so a User can be written straight into a response body without leaking it.
//
// Users are immutable once registered — no exposed operation updates or
// deletes them. IsActive exists so an account can be disabled out-of-band;
// every authenticated route rejects inactive accounts.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	IsActive       bool      `json:"is_active"`
}
