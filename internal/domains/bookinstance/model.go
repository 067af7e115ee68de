package bookinstance

import (
	"time"

	"github.com/google/uuid"
)

// Status is the loan state of a physical copy.
type Status string

const (
	StatusMaintenance Status = "Maintenance"
	StatusAvailable   Status = "Available"
	StatusLoaned      Status = "Loaned"
	StatusReserved    Status = "Reserved"
)

// Statuses lists every valid status, in display order.
func Statuses() []Status {
	return []Status{StatusMaintenance, StatusAvailable, StatusLoaned, StatusReserved}
}

func (s Status) IsValid() bool {
	switch s {
	case StatusMaintenance, StatusAvailable, StatusLoaned, StatusReserved:
		return true
	}
	return false
}

// BookInstance is a physical copy of a book. Status and due date are
// independent fields: a due date may be set or omitted in any status.
type BookInstance struct {
	ID      uuid.UUID  `json:"id" db:"id"`
	BookID  uuid.UUID  `json:"book_id" db:"book_id"`
	Imprint string     `json:"imprint" db:"imprint"`
	Status  Status     `json:"status" db:"status"`
	DueBack *time.Time `json:"due_back,omitempty" db:"due_back"`
}

// URL is the canonical path for this copy, derived from the id alone.
func (i *BookInstance) URL() string {
	return "/catalog/bookinstance/" + i.ID.String()
}

// BookRef is the book reference resolved to a displayable record.
type BookRef struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Title string    `json:"title" db:"title"`
}

func (b *BookRef) URL() string {
	return "/catalog/book/" + b.ID.String()
}

// ListItem is the copy list projection with the book resolved.
type ListItem struct {
	ID      uuid.UUID  `json:"id"`
	Imprint string     `json:"imprint"`
	Status  Status     `json:"status"`
	DueBack *time.Time `json:"due_back,omitempty"`
	Book    BookRef    `json:"book"`
}

func (i *ListItem) URL() string {
	return "/catalog/bookinstance/" + i.ID.String()
}

// Detail is the copy with its book reference resolved.
type Detail struct {
	Instance BookInstance `json:"instance"`
	Book     BookRef      `json:"book"`
}

// FormData backs the copy create/update form: the book choice list
// sorted by title, plus the copy itself on update.
type FormData struct {
	Instance *BookInstance `json:"instance,omitempty"`
	Books    []BookRef     `json:"books"`
	Statuses []Status      `json:"statuses"`
}
