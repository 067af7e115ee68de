package book

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the book store contract. Reference existence checks and
// the form-data projections query the author and genre collections
// directly; books are the joining entity of the catalog.
type Repository interface {
	// Create inserts a new book; the id is assigned by the store.
	Create(ctx context.Context, b *Book) (*Book, error)

	// GetByID returns the raw record, references unresolved.
	// Errors: ErrBookNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// GetResolvedByID returns the record with its author and genre
	// references resolved to full records.
	// Errors: ErrBookNotFound.
	GetResolvedByID(ctx context.Context, id uuid.UUID) (*Book, *AuthorRef, []GenreRef, error)

	// GetAll returns every book sorted by title ascending with the
	// author resolved, ties broken by id.
	GetAll(ctx context.Context) ([]ListItem, error)

	// Update replaces all editable fields of the identified record.
	Update(ctx context.Context, b *Book) (*Book, error)

	// Delete removes the record; the integrity guard runs in the service.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetCopies returns the book instances referencing the book.
	GetCopies(ctx context.Context, bookID uuid.UUID) ([]CopySummary, error)

	// AuthorExists reports whether the author reference resolves.
	AuthorExists(ctx context.Context, id uuid.UUID) (bool, error)

	// MissingGenres returns the subset of ids with no genre record.
	MissingGenres(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

	// ListAuthors returns all authors sorted by last name, for the form.
	ListAuthors(ctx context.Context) ([]AuthorRef, error)

	// ListGenres returns all genres sorted by name, for the form.
	ListGenres(ctx context.Context) ([]GenreRef, error)

	// Counts for the catalog home page.
	CountBooks(ctx context.Context) (int64, error)
	CountCopies(ctx context.Context) (int64, error)
	CountAvailableCopies(ctx context.Context) (int64, error)
	CountAuthors(ctx context.Context) (int64, error)
	CountGenres(ctx context.Context) (int64, error)
}
