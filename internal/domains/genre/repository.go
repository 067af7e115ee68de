package genre

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the genre store contract.
type Repository interface {
	// Create inserts a new genre; the id is assigned by the store.
	Create(ctx context.Context, g *Genre) (*Genre, error)

	// GetByID returns ErrGenreNotFound when no record exists.
	GetByID(ctx context.Context, id uuid.UUID) (*Genre, error)

	// GetAll returns every genre sorted by name ascending, ties by id.
	// The dedup resolver scans this list with a locale-aware collator.
	GetAll(ctx context.Context) ([]Genre, error)

	// Update replaces the name of the identified record.
	Update(ctx context.Context, g *Genre) (*Genre, error)

	// Delete removes the record; the integrity guard runs in the service.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetBooksInGenre returns the books whose genre set contains the id.
	GetBooksInGenre(ctx context.Context, genreID uuid.UUID) ([]BookSummary, error)
}
