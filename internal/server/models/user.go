// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is the identity that owns a list of notes.
type User struct {
	ID        string
	Name      string
	DOB       time.Time
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
