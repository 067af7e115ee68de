package genre

import "github.com/google/uuid"

const (
	MinNameLength = 3
	MaxNameLength = 100
)

// Genre is a free-text category. The collection-wide invariant is that no
// two records carry names equal under a case/locale-insensitive comparison;
// the service's dedup resolver enforces it on create and update.
type Genre struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

// URL is the canonical path for this genre. Duplicate submissions resolve
// to the canonical record's URL instead of creating a new one.
func (g *Genre) URL() string {
	return "/catalog/genre/" + g.ID.String()
}

// BookSummary is the projection of a book referencing this genre.
type BookSummary struct {
	ID      uuid.UUID `json:"id" db:"id"`
	Title   string    `json:"title" db:"title"`
	Summary string    `json:"summary" db:"summary"`
}

func (b *BookSummary) URL() string {
	return "/catalog/book/" + b.ID.String()
}

// Detail is the genre aggregate: the record plus every book whose genre
// set contains it.
type Detail struct {
	Genre Genre         `json:"genre"`
	Books []BookSummary `json:"books"`
}
