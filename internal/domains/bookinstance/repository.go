package bookinstance

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the copy store contract. The book-existence check and the
// form's book list query the books collection directly.
type Repository interface {
	// Create inserts a new copy; the id is assigned by the store.
	Create(ctx context.Context, i *BookInstance) (*BookInstance, error)

	// GetByID returns the raw record, the book reference unresolved.
	// Errors: ErrInstanceNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*BookInstance, error)

	// GetWithBook returns the record with its book reference resolved.
	// Errors: ErrInstanceNotFound.
	GetWithBook(ctx context.Context, id uuid.UUID) (*BookInstance, *BookRef, error)

	// GetAll returns every copy with the book resolved, sorted by the
	// book title then imprint, ties broken by id.
	GetAll(ctx context.Context) ([]ListItem, error)

	// Update replaces all editable fields of the identified record.
	Update(ctx context.Context, i *BookInstance) (*BookInstance, error)

	// Delete removes the record. Copies are leaves: nothing references
	// them, so no guard applies.
	Delete(ctx context.Context, id uuid.UUID) error

	// BookExists reports whether the book reference resolves.
	BookExists(ctx context.Context, id uuid.UUID) (bool, error)

	// ListBooks returns all books sorted by title, for the form.
	ListBooks(ctx context.Context) ([]BookRef, error)
}
