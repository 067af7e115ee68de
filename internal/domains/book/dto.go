package book

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"library-catalog/internal/shared/forms"
)

// Form carries the raw book fields as submitted. Genre arrives as either
// a single value or an array depending on how many boxes were ticked;
// forms.StringList folds both into a list.
type Form struct {
	Title   string           `json:"title"`
	Author  string           `json:"author"`
	Summary string           `json:"summary"`
	ISBN    string           `json:"isbn"`
	Genre   forms.StringList `json:"genre"`
}

func (f *Form) Normalize() {
	f.Title = forms.Clean(f.Title)
	f.Author = forms.Clean(f.Author)
	f.Summary = forms.Clean(f.Summary)
	f.ISBN = forms.Clean(f.ISBN)
	f.Genre = forms.CleanAll(f.Genre)
}

func (f Form) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title,
			validation.Required.Error("title must not be empty"),
		),
		validation.Field(&f.Author,
			validation.Required.Error("author must not be empty"),
			is.UUID.Error("author must be a valid id"),
		),
		validation.Field(&f.Summary,
			validation.Required.Error("summary must not be empty"),
		),
		validation.Field(&f.ISBN,
			validation.Required.Error("isbn must not be empty"),
		),
		validation.Field(&f.Genre,
			validation.Each(is.UUID.Error("genre entries must be valid ids")),
		),
	)
}

// ToEntity builds the entity from a normalized, validated form.
// Duplicate genre ids are collapsed; order is not meaningful but kept
// stable for deterministic output.
func (f *Form) ToEntity() (*Book, error) {
	authorID, err := uuid.Parse(f.Author)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(f.Genre))
	genreIDs := make([]uuid.UUID, 0, len(f.Genre))
	for _, raw := range f.Genre {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		genreIDs = append(genreIDs, id)
	}

	return &Book{
		Title:    f.Title,
		AuthorID: authorID,
		Summary:  f.Summary,
		ISBN:     f.ISBN,
		GenreIDs: genreIDs,
	}, nil
}

type Response struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	AuthorID string      `json:"author_id"`
	Summary  string      `json:"summary"`
	ISBN     string      `json:"isbn"`
	GenreIDs []uuid.UUID `json:"genre_ids"`
	URL      string      `json:"url"`
}

func (b *Book) ToResponse() *Response {
	return &Response{
		ID:       b.ID.String(),
		Title:    b.Title,
		AuthorID: b.AuthorID.String(),
		Summary:  b.Summary,
		ISBN:     b.ISBN,
		GenreIDs: b.GenreIDs,
		URL:      b.URL(),
	}
}
