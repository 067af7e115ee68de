package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"library-catalog/internal/domains/author"
)

type authorService struct {
	repo author.Repository
}

func NewAuthorService(repo author.Repository) author.Service {
	return &authorService{repo: repo}
}

func (s *authorService) List(ctx context.Context) ([]author.Author, error) {
	return s.repo.GetAll(ctx)
}

// GetDetail fetches the author and its books concurrently; the first
// failure cancels the other lookup and no partial view is returned.
func (s *authorService) GetDetail(ctx context.Context, id uuid.UUID) (*author.Detail, error) {
	if id == uuid.Nil {
		return nil, author.ErrAuthorNotFound
	}

	var (
		a     *author.Author
		books []author.BookSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = s.repo.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = s.repo.GetBooksByAuthor(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &author.Detail{Author: *a, Books: books}, nil
}

func (s *authorService) Create(ctx context.Context, form *author.Form) (*author.Author, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	entity, err := form.ToEntity()
	if err != nil {
		return nil, fmt.Errorf("failed to build author: %w", err)
	}

	return s.repo.Create(ctx, entity)
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, form *author.Form) (*author.Author, error) {
	if id == uuid.Nil {
		return nil, author.ErrAuthorNotFound
	}

	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	entity, err := form.ToEntity()
	if err != nil {
		return nil, fmt.Errorf("failed to build author: %w", err)
	}
	entity.ID = id

	return s.repo.Update(ctx, entity)
}

// Delete runs the integrity guard: the author and its dependent books are
// fetched together, and a non-empty dependent set blocks the delete.
func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	detail, err := s.GetDetail(ctx, id)
	if err != nil {
		return err
	}

	if len(detail.Books) > 0 {
		return &author.DeleteBlockedError{Books: detail.Books}
	}

	return s.repo.Delete(ctx, id)
}
