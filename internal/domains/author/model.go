package author

import (
	"time"

	"github.com/google/uuid"
)

const MaxNameLength = 100

// Author is the domain entity. Dates are optional; a living author has no
// date of death and an unknown birth date is simply absent.
type Author struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	FirstName   string     `json:"first_name" db:"first_name"`
	LastName    string     `json:"last_name" db:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty" db:"date_of_death"`
}

// FullName is derived, never stored. Empty unless both parts are present.
func (a *Author) FullName() string {
	if a.FirstName == "" || a.LastName == "" {
		return ""
	}
	return a.FirstName + " " + a.LastName
}

// URL is the canonical path for this author, derived from the id alone.
func (a *Author) URL() string {
	return "/catalog/author/" + a.ID.String()
}

// BookSummary is the projection of a dependent book used in the author
// detail view and in delete-blocked reports.
type BookSummary struct {
	ID      uuid.UUID `json:"id" db:"id"`
	Title   string    `json:"title" db:"title"`
	Summary string    `json:"summary" db:"summary"`
}

func (b *BookSummary) URL() string {
	return "/catalog/book/" + b.ID.String()
}

// Detail is the author aggregate: the record plus every book that
// references it.
type Detail struct {
	Author Author        `json:"author"`
	Books  []BookSummary `json:"books"`
}
