package genre

import (
	"context"

	"github.com/google/uuid"
)

// Service is the genre business-logic contract.
//
// Create and Update return (record, resolved): resolved is true when a
// case/locale-insensitive match already existed and that canonical record
// is returned instead of a write. The caller redirects to the record's
// canonical URL either way.
type Service interface {
	// List returns all genres sorted by name ascending.
	List(ctx context.Context) ([]Genre, error)

	// GetDetail composes the genre with all books referencing it.
	// Errors: ErrGenreNotFound.
	GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error)

	// Create persists a new genre unless a name-equal record exists.
	// Errors: validation.Errors.
	Create(ctx context.Context, form *Form) (*Genre, bool, error)

	// Update renames the identified genre. A match against a different
	// record resolves to that record; a self-match is not a conflict and
	// the rename proceeds.
	// Errors: validation.Errors, ErrGenreNotFound.
	Update(ctx context.Context, id uuid.UUID, form *Form) (*Genre, bool, error)

	// Delete removes the genre unless books still reference it.
	// Errors: ErrGenreNotFound, *DeleteBlockedError.
	Delete(ctx context.Context, id uuid.UUID) error
}
