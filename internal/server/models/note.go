package models

import "time"

// Note is a single text entry. Notes are always addressed through their
// owner's id; a note id alone never selects a row.
type Note struct {
	ID        string
	UserID    string
	Text      string
	CreatedAt time.Time
}
