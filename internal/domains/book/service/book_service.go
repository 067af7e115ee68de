package service

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"library-catalog/internal/domains/book"
)

type bookService struct {
	repo book.Repository
}

func NewBookService(repo book.Repository) book.Service {
	return &bookService{repo: repo}
}

func (s *bookService) List(ctx context.Context) ([]book.ListItem, error) {
	return s.repo.GetAll(ctx)
}

// GetDetail fetches the resolved book and its copies concurrently.
func (s *bookService) GetDetail(ctx context.Context, id uuid.UUID) (*book.Detail, error) {
	if id == uuid.Nil {
		return nil, book.ErrBookNotFound
	}

	var (
		b      *book.Book
		a      *book.AuthorRef
		genres []book.GenreRef
		copies []book.CopySummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		b, a, genres, err = s.repo.GetResolvedByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		copies, err = s.repo.GetCopies(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &book.Detail{
		Book:   *b,
		Author: *a,
		Genres: genres,
		Copies: copies,
	}, nil
}

// GetFormData gathers the author and genre lists, plus the book itself
// for the update form. The Checked flag is recomputed on every call by
// intersecting the book's genre-id set with the genre list.
func (s *bookService) GetFormData(ctx context.Context, bookID *uuid.UUID) (*book.FormData, error) {
	var (
		authors []book.AuthorRef
		genres  []book.GenreRef
		b       *book.Book
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authors, err = s.repo.ListAuthors(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		genres, err = s.repo.ListGenres(gctx)
		return err
	})
	if bookID != nil {
		g.Go(func() error {
			var err error
			b, err = s.repo.GetByID(gctx, *bookID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if b != nil {
		for i := range genres {
			genres[i].Checked = b.HasGenre(genres[i].ID)
		}
	}

	return &book.FormData{
		Book:    b,
		Authors: authors,
		Genres:  genres,
	}, nil
}

// checkReferences verifies that the author and every genre id resolve to
// existing records; both checks run concurrently. Failures surface as
// field-level validation errors, not as store faults.
func (s *bookService) checkReferences(ctx context.Context, b *book.Book) error {
	var (
		authorOK bool
		missing  []uuid.UUID
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authorOK, err = s.repo.AuthorExists(gctx, b.AuthorID)
		return err
	})
	g.Go(func() error {
		var err error
		missing, err = s.repo.MissingGenres(gctx, b.GenreIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	errs := validation.Errors{}
	if !authorOK {
		errs["author"] = fmt.Errorf("author %s does not exist", b.AuthorID)
	}
	if len(missing) > 0 {
		errs["genre"] = fmt.Errorf("%d genre reference(s) do not exist", len(missing))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (s *bookService) Create(ctx context.Context, form *book.Form) (*book.Book, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	entity, err := form.ToEntity()
	if err != nil {
		return nil, fmt.Errorf("failed to build book: %w", err)
	}

	if err := s.checkReferences(ctx, entity); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, entity)
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, form *book.Form) (*book.Book, error) {
	if id == uuid.Nil {
		return nil, book.ErrBookNotFound
	}

	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	entity, err := form.ToEntity()
	if err != nil {
		return nil, fmt.Errorf("failed to build book: %w", err)
	}
	entity.ID = id

	if err := s.checkReferences(ctx, entity); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, entity)
}

// Delete runs the integrity guard: a book with surviving copies cannot be
// removed, and the blocking copies are reported back.
func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return book.ErrBookNotFound
	}

	var copies []book.CopySummary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.repo.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		copies, err = s.repo.GetCopies(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if len(copies) > 0 {
		return &book.DeleteBlockedError{Copies: copies}
	}

	return s.repo.Delete(ctx, id)
}

// Stats gathers the five home page counts in parallel.
func (s *bookService) Stats(ctx context.Context) (*book.Stats, error) {
	var stats book.Stats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.BookCount, err = s.repo.CountBooks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.CopyCount, err = s.repo.CountCopies(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.AvailableCopyCount, err = s.repo.CountAvailableCopies(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.AuthorCount, err = s.repo.CountAuthors(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.GenreCount, err = s.repo.CountGenres(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &stats, nil
}
