package book

import (
	"context"

	"github.com/google/uuid"
)

// Service is the book business-logic contract.
type Service interface {
	// List returns all books sorted by title ascending, author resolved.
	List(ctx context.Context) ([]ListItem, error)

	// GetDetail composes the resolved book with its copies; the two
	// lookups run concurrently.
	// Errors: ErrBookNotFound.
	GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error)

	// GetFormData returns the author and genre lists for the book form.
	// With a non-nil bookID it also returns that book, with each genre in
	// the list flagged Checked when the book's genre set contains it.
	// Errors: ErrBookNotFound.
	GetFormData(ctx context.Context, bookID *uuid.UUID) (*FormData, error)

	// Create validates the form and verifies every reference resolves
	// before persisting.
	// Errors: validation.Errors.
	Create(ctx context.Context, form *Form) (*Book, error)

	// Update replaces all editable fields of the identified book.
	// Errors: validation.Errors, ErrBookNotFound.
	Update(ctx context.Context, id uuid.UUID, form *Form) (*Book, error)

	// Delete removes the book unless copies still reference it.
	// Errors: ErrBookNotFound, *DeleteBlockedError.
	Delete(ctx context.Context, id uuid.UUID) error

	// Stats returns the catalog home page counts, gathered concurrently.
	Stats(ctx context.Context) (*Stats, error)
}
