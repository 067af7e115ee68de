package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"library-catalog/internal/domains/genre"
)

type genreService struct {
	repo genre.Repository
}

func NewGenreService(repo genre.Repository) genre.Service {
	return &genreService{repo: repo}
}

// findCanonical returns the existing genre whose name equals candidate
// under an English collation at secondary strength (case and diacritics
// ignored). Genre collections are small, so a linear scan is fine.
func findCanonical(genres []genre.Genre, candidate string) *genre.Genre {
	col := collate.New(language.English, collate.Loose)
	for i := range genres {
		if col.CompareString(genres[i].Name, candidate) == 0 {
			return &genres[i]
		}
	}
	return nil
}

func (s *genreService) List(ctx context.Context) ([]genre.Genre, error) {
	return s.repo.GetAll(ctx)
}

func (s *genreService) GetDetail(ctx context.Context, id uuid.UUID) (*genre.Detail, error) {
	if id == uuid.Nil {
		return nil, genre.ErrGenreNotFound
	}

	var (
		g     *genre.Genre
		books []genre.BookSummary
	)

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		g, err = s.repo.GetByID(gctx, id)
		return err
	})
	eg.Go(func() error {
		var err error
		books, err = s.repo.GetBooksInGenre(gctx, id)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &genre.Detail{Genre: *g, Books: books}, nil
}

func (s *genreService) Create(ctx context.Context, form *genre.Form) (*genre.Genre, bool, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, false, err
	}

	if match := findCanonical(existing, form.Name); match != nil {
		// converge onto the canonical record instead of creating a near
		// duplicate; the caller redirects to it
		return match, true, nil
	}

	created, err := s.repo.Create(ctx, &genre.Genre{Name: form.Name})
	if err != nil {
		return nil, false, err
	}
	return created, false, nil
}

func (s *genreService) Update(ctx context.Context, id uuid.UUID, form *genre.Form) (*genre.Genre, bool, error) {
	if id == uuid.Nil {
		return nil, false, genre.ErrGenreNotFound
	}

	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, false, err
	}

	// A self-match is not a conflict: renaming a genre to a
	// case-variant of its own name proceeds as a plain rename.
	if match := findCanonical(existing, form.Name); match != nil && match.ID != id {
		return match, true, nil
	}

	updated, err := s.repo.Update(ctx, &genre.Genre{ID: id, Name: form.Name})
	if err != nil {
		return nil, false, err
	}
	return updated, false, nil
}

func (s *genreService) Delete(ctx context.Context, id uuid.UUID) error {
	detail, err := s.GetDetail(ctx, id)
	if err != nil {
		return err
	}

	if len(detail.Books) > 0 {
		return &genre.DeleteBlockedError{Books: detail.Books}
	}

	return s.repo.Delete(ctx, id)
}
