package service

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"library-catalog/internal/domains/bookinstance"
)

type instanceService struct {
	repo bookinstance.Repository
}

func NewBookInstanceService(repo bookinstance.Repository) bookinstance.Service {
	return &instanceService{repo: repo}
}

func (s *instanceService) List(ctx context.Context) ([]bookinstance.ListItem, error) {
	return s.repo.GetAll(ctx)
}

func (s *instanceService) GetDetail(ctx context.Context, id uuid.UUID) (*bookinstance.Detail, error) {
	if id == uuid.Nil {
		return nil, bookinstance.ErrInstanceNotFound
	}

	i, b, err := s.repo.GetWithBook(ctx, id)
	if err != nil {
		return nil, err
	}

	return &bookinstance.Detail{
		Instance: *i,
		Book:     *b,
	}, nil
}

// GetFormData gathers the book choice list and, for the update form, the
// copy itself; both lookups run concurrently.
func (s *instanceService) GetFormData(ctx context.Context, instanceID *uuid.UUID) (*bookinstance.FormData, error) {
	var (
		books []bookinstance.BookRef
		inst  *bookinstance.BookInstance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		books, err = s.repo.ListBooks(gctx)
		return err
	})
	if instanceID != nil {
		g.Go(func() error {
			var err error
			inst, err = s.repo.GetByID(gctx, *instanceID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &bookinstance.FormData{
		Instance: inst,
		Books:    books,
		Statuses: bookinstance.Statuses(),
	}, nil
}

// checkReference verifies the book id resolves to an existing record,
// surfacing a failure as a field-level validation error.
func (s *instanceService) checkReference(ctx context.Context, i *bookinstance.BookInstance) error {
	ok, err := s.repo.BookExists(ctx, i.BookID)
	if err != nil {
		return err
	}
	if !ok {
		return validation.Errors{
			"book": fmt.Errorf("book %s does not exist", i.BookID),
		}
	}
	return nil
}

func (s *instanceService) Create(ctx context.Context, form *bookinstance.Form) (*bookinstance.BookInstance, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	entity, err := form.ToEntity()
	if err != nil {
		return nil, fmt.Errorf("failed to build book instance: %w", err)
	}

	if err := s.checkReference(ctx, entity); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, entity)
}

func (s *instanceService) Update(ctx context.Context, id uuid.UUID, form *bookinstance.Form) (*bookinstance.BookInstance, error) {
	if id == uuid.Nil {
		return nil, bookinstance.ErrInstanceNotFound
	}

	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	entity, err := form.ToEntity()
	if err != nil {
		return nil, fmt.Errorf("failed to build book instance: %w", err)
	}
	entity.ID = id

	if err := s.checkReference(ctx, entity); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, entity)
}

// Delete removes the copy unconditionally; copies are leaves of the
// reference graph.
func (s *instanceService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return bookinstance.ErrInstanceNotFound
	}
	return s.repo.Delete(ctx, id)
}
