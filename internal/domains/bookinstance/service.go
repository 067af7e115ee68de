package bookinstance

import (
	"context"

	"github.com/google/uuid"
)

// Service is the copy business-logic contract.
type Service interface {
	// List returns all copies with their books resolved.
	List(ctx context.Context) ([]ListItem, error)

	// GetDetail returns the copy with its book reference resolved.
	// Errors: ErrInstanceNotFound.
	GetDetail(ctx context.Context, id uuid.UUID) (*Detail, error)

	// GetFormData returns the book choice list and the status values for
	// the copy form; with a non-nil instanceID the copy is included.
	// Errors: ErrInstanceNotFound.
	GetFormData(ctx context.Context, instanceID *uuid.UUID) (*FormData, error)

	// Create validates the form and verifies the book reference resolves
	// before persisting. An omitted status defaults to Maintenance.
	// Errors: validation.Errors.
	Create(ctx context.Context, form *Form) (*BookInstance, error)

	// Update replaces all editable fields of the identified copy.
	// Errors: validation.Errors, ErrInstanceNotFound.
	Update(ctx context.Context, id uuid.UUID, form *Form) (*BookInstance, error)

	// Delete removes the copy. Always permitted: nothing depends on a copy.
	// Errors: ErrInstanceNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}
