package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the author store contract.
type Repository interface {
	// Create inserts a new author; the id is assigned by the store.
	Create(ctx context.Context, a *Author) (*Author, error)

	// GetByID returns ErrAuthorNotFound when no record exists.
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// GetAll returns every author sorted by last name ascending,
	// ties broken by id for a deterministic order.
	GetAll(ctx context.Context) ([]Author, error)

	// Update replaces all editable fields of the identified record.
	// Returns ErrAuthorNotFound when no record exists.
	Update(ctx context.Context, a *Author) (*Author, error)

	// Delete removes the record. Dependent checks happen in the service;
	// this is the plain store mutation.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetBooksByAuthor returns the books referencing the author. Used by
	// both the detail view and the integrity guard.
	GetBooksByAuthor(ctx context.Context, authorID uuid.UUID) ([]BookSummary, error)
}
