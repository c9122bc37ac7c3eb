package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// NotesView is a user's display fields together with their notes.
type NotesView struct {
	Name  string
	Email string
	Notes []*models.Note
}

// NoteService manages the notes of the user named by an authenticated id.
// It never accepts a user id from anywhere but its callers' verified identity.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	newID       func() string
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *NoteService {
	return &NoteService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "note_service"),
		newID:       func() string { return uuid.NewString() },
	}
}

func (s *NoteService) ListNotes(ctx context.Context, userID string) (*NotesView, error) {
	userID, ok := canonicalID(userID)
	if !ok {
		return nil, common.ErrorNotFound
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, wrapLookup(err)
	}

	notes, err := s.repomanager.Notes(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}

	return &NotesView{Name: user.Name, Email: user.Email, Notes: notes}, nil
}

// AddNote appends a trimmed, non-empty note and returns the full list.
func (s *NoteService) AddNote(ctx context.Context, userID, text string) ([]*models.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: note text is required", common.ErrInvalidInput)
	}
	userID, ok := canonicalID(userID)
	if !ok {
		return nil, common.ErrorNotFound
	}

	var notes []*models.Note
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).Touch(ctx, userID); err != nil {
			return wrapLookup(err)
		}

		repo := s.repomanager.Notes(tx)
		note := &models.Note{ID: s.newID(), UserID: userID, Text: text}
		if err := repo.Add(ctx, note); err != nil {
			return fmt.Errorf("error adding note: %w", err)
		}

		var err error
		notes, err = repo.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("error listing notes: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return notes, nil
}

// RemoveNote deletes noteID from the user's own notes and returns what is
// left. A note id the user does not have is not an error: the list comes
// back unchanged.
func (s *NoteService) RemoveNote(ctx context.Context, userID, noteID string) ([]*models.Note, error) {
	userID, ok := canonicalID(userID)
	if !ok {
		return nil, common.ErrorNotFound
	}

	var notes []*models.Note
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).Touch(ctx, userID); err != nil {
			return wrapLookup(err)
		}

		repo := s.repomanager.Notes(tx)
		if id, ok := canonicalID(noteID); ok {
			removed, err := repo.Delete(ctx, userID, id)
			if err != nil {
				return fmt.Errorf("error deleting note: %w", err)
			}
			if !removed {
				s.logger.Debug(ctx, "note to delete not found", "user_id", userID, "note_id", noteID)
			}
		}

		var err error
		notes, err = repo.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("error listing notes: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return notes, nil
}

// canonicalID returns s in the hyphenated lower-case form postgres accepts.
// uuid.Parse also takes urn:uuid: and braced forms, which postgres rejects.
func canonicalID(s string) (string, bool) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func wrapLookup(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return fmt.Errorf("error searching user: %w", err)
}
