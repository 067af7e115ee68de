package book

import (
	"time"

	"github.com/google/uuid"
)

// Book stores its relations as identifiers, not embedded copies: one
// required author reference and a set of zero or more genre references.
// They are resolved to full records on read.
type Book struct {
	ID       uuid.UUID   `json:"id" db:"id"`
	Title    string      `json:"title" db:"title"`
	AuthorID uuid.UUID   `json:"author_id" db:"author_id"`
	Summary  string      `json:"summary" db:"summary"`
	ISBN     string      `json:"isbn" db:"isbn"`
	GenreIDs []uuid.UUID `json:"genre_ids" db:"genre_ids"`
}

// URL is the canonical path for this book, derived from the id alone.
func (b *Book) URL() string {
	return "/catalog/book/" + b.ID.String()
}

// HasGenre reports whether the genre id is in the book's genre set.
// Membership is id-based everywhere.
func (b *Book) HasGenre(id uuid.UUID) bool {
	for _, g := range b.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// AuthorRef is the author reference resolved to a displayable record.
type AuthorRef struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
}

func (a *AuthorRef) FullName() string {
	if a.FirstName == "" || a.LastName == "" {
		return ""
	}
	return a.FirstName + " " + a.LastName
}

func (a *AuthorRef) URL() string {
	return "/catalog/author/" + a.ID.String()
}

// GenreRef is a genre reference resolved to its record. Checked is a
// request-scoped annotation for the book form, never persisted: it marks
// genres present in the book's genre-id set.
type GenreRef struct {
	ID      uuid.UUID `json:"id" db:"id"`
	Name    string    `json:"name" db:"name"`
	Checked bool      `json:"checked,omitempty"`
}

func (g *GenreRef) URL() string {
	return "/catalog/genre/" + g.ID.String()
}

// CopySummary is the projection of a dependent book instance used in the
// detail view and in delete-blocked reports.
type CopySummary struct {
	ID      uuid.UUID  `json:"id" db:"id"`
	Imprint string     `json:"imprint" db:"imprint"`
	Status  string     `json:"status" db:"status"`
	DueBack *time.Time `json:"due_back,omitempty" db:"due_back"`
}

func (c *CopySummary) URL() string {
	return "/catalog/bookinstance/" + c.ID.String()
}

// ListItem is the book list projection, sorted by title with the author
// resolved.
type ListItem struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Author AuthorRef `json:"author"`
}

func (i *ListItem) URL() string {
	return "/catalog/book/" + i.ID.String()
}

// Detail is the book aggregate: the record with author and genres
// resolved, plus every physical copy.
type Detail struct {
	Book   Book          `json:"book"`
	Author AuthorRef     `json:"author"`
	Genres []GenreRef    `json:"genres"`
	Copies []CopySummary `json:"copies"`
}

// FormData backs the book create/update form: the full author and genre
// lists, both sorted, and for update the book with its genres flagged.
type FormData struct {
	Book    *Book       `json:"book,omitempty"`
	Authors []AuthorRef `json:"authors"`
	Genres  []GenreRef  `json:"genres"`
}

// Stats is the catalog home page summary. The five counts are gathered
// concurrently.
type Stats struct {
	BookCount          int64 `json:"book_count"`
	CopyCount          int64 `json:"copy_count"`
	AvailableCopyCount int64 `json:"available_copy_count"`
	AuthorCount        int64 `json:"author_count"`
	GenreCount         int64 `json:"genre_count"`
}
