package author

import (
	"context"

	"github.com/google/uuid"
)

// Service is the author business-logic contract consumed by the handler.
type Service interface {
	// List returns all authors sorted by last name ascending.
	List(ctx context.Context) ([]Author, error)

	// GetDetail composes the author with all books referencing it.
	// The two lookups run concurrently.
	// Errors: ErrAuthorNotFound.
	GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error)

	// Create validates and normalizes the form, then persists the author.
	// Errors: validation.Errors with one message per failing field.
	Create(ctx context.Context, form *Form) (*Author, error)

	// Update replaces all editable fields of the identified author.
	// Errors: validation.Errors, ErrAuthorNotFound.
	Update(ctx context.Context, id uuid.UUID, form *Form) (*Author, error)

	// Delete removes the author unless books still reference it.
	// Errors: ErrAuthorNotFound, *DeleteBlockedError.
	Delete(ctx context.Context, id uuid.UUID) error
}
