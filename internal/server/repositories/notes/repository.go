package notes

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

// Repository stores notes. Every method is scoped by owner id.
type Repository interface {
	Add(ctx context.Context, note *models.Note) error
	ListByUser(ctx context.Context, userID string) ([]*models.Note, error)
	Delete(ctx context.Context, userID, noteID string) (bool, error)
}
