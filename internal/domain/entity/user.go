// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a person who signed in through Google at least once.
// A user is only ever mutated by appending to its History.
type User struct {
	ID        uuid.UUID      // Internal identifier, embedded in session tokens.
	GoogleID  string         // Google's 'sub' claim; unique across users.
	Username  string         // Display name reported by Google on first sign-in.
	History   []HistoryEntry // Past classifications, oldest first.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser builds a user with a time-ordered ID and an empty history.
func NewUser(googleID, username string) *User {
	now := time.Now().UTC()

	return &User{
		ID:        newID(),
		GoogleID:  googleID,
		Username:  username,
		History:   []HistoryEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return id
}
