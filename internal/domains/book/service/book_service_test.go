package service

import (
	"context"
	"sort"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/shared/forms"
)

// fakeRepo is an in-memory book.Repository for service tests.
type fakeRepo struct {
	books   map[uuid.UUID]book.Book
	authors map[uuid.UUID]book.AuthorRef
	genres  map[uuid.UUID]book.GenreRef
	copies  map[uuid.UUID][]book.CopySummary
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		books:   make(map[uuid.UUID]book.Book),
		authors: make(map[uuid.UUID]book.AuthorRef),
		genres:  make(map[uuid.UUID]book.GenreRef),
		copies:  make(map[uuid.UUID][]book.CopySummary),
	}
}

func (f *fakeRepo) addAuthor(first, last string) uuid.UUID {
	id := uuid.New()
	f.authors[id] = book.AuthorRef{ID: id, FirstName: first, LastName: last}
	return id
}

func (f *fakeRepo) addGenre(name string) uuid.UUID {
	id := uuid.New()
	f.genres[id] = book.GenreRef{ID: id, Name: name}
	return id
}

func (f *fakeRepo) Create(_ context.Context, b *book.Book) (*book.Book, error) {
	created := *b
	created.ID = uuid.New()
	f.books[created.ID] = created
	return &created, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return &b, nil
}

func (f *fakeRepo) GetResolvedByID(ctx context.Context, id uuid.UUID) (*book.Book, *book.AuthorRef, []book.GenreRef, error) {
	b, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	a := f.authors[b.AuthorID]
	genres := make([]book.GenreRef, 0, len(b.GenreIDs))
	for _, gid := range b.GenreIDs {
		if g, ok := f.genres[gid]; ok {
			genres = append(genres, g)
		}
	}
	return b, &a, genres, nil
}

func (f *fakeRepo) GetAll(_ context.Context) ([]book.ListItem, error) {
	out := make([]book.ListItem, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, book.ListItem{ID: b.ID, Title: b.Title, Author: f.authors[b.AuthorID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, b *book.Book) (*book.Book, error) {
	if _, ok := f.books[b.ID]; !ok {
		return nil, book.ErrBookNotFound
	}
	f.books[b.ID] = *b
	return b, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(f.books, id)
	return nil
}

func (f *fakeRepo) GetCopies(_ context.Context, bookID uuid.UUID) ([]book.CopySummary, error) {
	return f.copies[bookID], nil
}

func (f *fakeRepo) AuthorExists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.authors[id]
	return ok, nil
}

func (f *fakeRepo) MissingGenres(_ context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := f.genres[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (f *fakeRepo) ListAuthors(_ context.Context) ([]book.AuthorRef, error) {
	out := make([]book.AuthorRef, 0, len(f.authors))
	for _, a := range f.authors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

func (f *fakeRepo) ListGenres(_ context.Context) ([]book.GenreRef, error) {
	out := make([]book.GenreRef, 0, len(f.genres))
	for _, g := range f.genres {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRepo) CountBooks(_ context.Context) (int64, error) { return int64(len(f.books)), nil }

func (f *fakeRepo) CountCopies(_ context.Context) (int64, error) {
	var n int64
	for _, cs := range f.copies {
		n += int64(len(cs))
	}
	return n, nil
}

func (f *fakeRepo) CountAvailableCopies(_ context.Context) (int64, error) {
	var n int64
	for _, cs := range f.copies {
		for _, c := range cs {
			if c.Status == "Available" {
				n++
			}
		}
	}
	return n, nil
}

func (f *fakeRepo) CountAuthors(_ context.Context) (int64, error) { return int64(len(f.authors)), nil }

func (f *fakeRepo) CountGenres(_ context.Context) (int64, error) { return int64(len(f.genres)), nil }

func TestCreate_ValidInput(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookService(repo)

	authorID := repo.addAuthor("Frank", "Herbert")
	g1 := repo.addGenre("Science Fiction")

	created, err := svc.Create(context.Background(), &book.Form{
		Title:   "  Dune ",
		Author:  authorID.String(),
		Summary: "Desert planet",
		ISBN:    "9780441013593",
		Genre:   forms.StringList{g1.String()},
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Dune", created.Title)
	assert.Equal(t, authorID, created.AuthorID)
	require.Len(t, created.GenreIDs, 1)
	assert.Equal(t, g1, created.GenreIDs[0])
	assert.Equal(t, "/catalog/book/"+created.ID.String(), created.URL())
}

func TestCreate_MissingGenreFieldMeansEmptySet(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookService(repo)

	authorID := repo.addAuthor("Mary", "Shelley")

	created, err := svc.Create(context.Background(), &book.Form{
		Title:   "Frankenstein",
		Author:  authorID.String(),
		Summary: "A creature and its maker",
		ISBN:    "9780486282114",
	})

	require.NoError(t, err)
	assert.Empty(t, created.GenreIDs)
}

func TestCreate_AccumulatesFieldErrors(t *testing.T) {
	svc := NewBookService(newFakeRepo())

	_, err := svc.Create(context.Background(), &book.Form{
		Title:   "   ",
		Author:  "not-a-uuid",
		Summary: "",
		ISBN:    "",
	})

	require.Error(t, err)
	var vErrs validation.Errors
	require.ErrorAs(t, err, &vErrs)
	assert.Contains(t, vErrs, "title")
	assert.Contains(t, vErrs, "author")
	assert.Contains(t, vErrs, "summary")
	assert.Contains(t, vErrs, "isbn")
}

func TestCreate_UnresolvableReferencesAreFieldErrors(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookService(repo)

	_, err := svc.Create(context.Background(), &book.Form{
		Title:   "Ghost Book",
		Author:  uuid.NewString(),
		Summary: "References nothing real",
		ISBN:    "0000000000",
		Genre:   forms.StringList{uuid.NewString()},
	})

	require.Error(t, err)
	var vErrs validation.Errors
	require.ErrorAs(t, err, &vErrs)
	assert.Contains(t, vErrs, "author")
	assert.Contains(t, vErrs, "genre")
	assert.Empty(t, repo.books)
}

func TestCreate_CollapsesDuplicateGenreIDs(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookService(repo)

	authorID := repo.addAuthor("Ursula", "Le Guin")
	g1 := repo.addGenre("Fantasy")

	created, err := svc.Create(context.Background(), &book.Form{
		Title:   "A Wizard of Earthsea",
		Author:  authorID.String(),
		Summary: "Ged learns his true name",
		ISBN:    "9780547773742",
		Genre:   forms.StringList{g1.String(), g1.String()},
	})

	require.NoError(t, err)
	assert.Len(t, created.GenreIDs, 1)
}

func TestGetDetail_ComposesBookAuthorGenresCopies(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookService(repo)

	authorID := repo.addAuthor("Frank", "Herbert")
	g1 := repo.addGenre("Science Fiction")

	created, err := svc.Create(context.Background(), &book.Form{
		Title:   "Dune",
		Author:  authorID.String(),
		Summary: "Desert planet",
		ISBN:    "9780441013593",
		Genre:   forms.StringList{g1.String()},
	})
	require.NoError(t, err)

	repo.copies[created.ID] = []book.CopySummary{
		{ID: uuid.New(), Imprint: "Ace, 1990", Status: "Available"},
	}

	detail, err := svc.GetDetail(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, detail.Book.ID)
	assert.Equal(t, "Frank Herbert", detail.Author.FullName())
	require.Len(t, detail.Genres, 1)
	assert.Equal(t, "Science Fiction", detail.Genres[0].Name)
	require.Len(t, detail.Copies, 1)
	assert.Equal(t, "Ace, 1990", detail.Copies[0].Imprint)
}

func TestGetDetail_NotFound(t *testing.T) {
	svc := NewBookService(newFakeRepo())

	_, err := svc.GetDetail(context.Background(), uuid.New())
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestGetFormData_ChecksGenresOfTheBook(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookService(repo)

	authorID := repo.addAuthor("Ursula", "Le Guin")
	g1 := repo.addGenre("Fantasy")
	repo.addGenre("Horror")

	created, err := svc.Create(context.Background(), &book.Form{
		Title:   "A Wizard of Earthsea",
		Author:  authorID.String(),
		Summary: "Ged learns his true name",
		ISBN:    "9780547773742",
		Genre:   forms.StringList{g1.String()},
	})
	require.NoError(t, err)

	data, err := svc.GetFormData(context.Background(), &created.ID)
	require.NoError(t, err)
	require.NotNil(t, data.Book)
	require.Len(t, data.Genres, 2)
	for _, g := range data.Genres {
		assert.Equal(t, g.ID == g1, g.Checked)
	}
	require.Len(t, data.Authors, 1)
}

func TestGetFormData_NoBookLeavesGenresUnchecked(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookService(repo)

	repo.addAuthor("Some", "Author")
	repo.addGenre("Fantasy")

	data, err := svc.GetFormData(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, data.Book)
	require.Len(t, data.Genres, 1)
	assert.False(t, data.Genres[0].Checked)
}

func TestUpdate_ReplacesAllEditableFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookService(repo)

	authorID := repo.addAuthor("Frank", "Herbert")
	g1 := repo.addGenre("Science Fiction")
	g2 := repo.addGenre("Adventure")

	created, err := svc.Create(context.Background(), &book.Form{
		Title:   "Dune",
		Author:  authorID.String(),
		Summary: "Desert planet",
		ISBN:    "9780441013593",
		Genre:   forms.StringList{g1.String()},
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &book.Form{
		Title:   "Dune Messiah",
		Author:  authorID.String(),
		Summary: "The sequel",
		ISBN:    "9780441172696",
		Genre:   forms.StringList{g2.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Dune Messiah", updated.Title)
	require.Len(t, updated.GenreIDs, 1)
	assert.Equal(t, g2, updated.GenreIDs[0])
}

func TestDelete_NoDependents(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookService(repo)

	authorID := repo.addAuthor("Lone", "Writer")
	created, err := svc.Create(context.Background(), &book.Form{
		Title: "Unread", Author: authorID.String(), Summary: "s", ISBN: "1",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.GetDetail(context.Background(), created.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestDelete_BlockedByCopies(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookService(repo)

	authorID := repo.addAuthor("Popular", "Writer")
	created, err := svc.Create(context.Background(), &book.Form{
		Title: "Bestseller", Author: authorID.String(), Summary: "s", ISBN: "1",
	})
	require.NoError(t, err)

	c1 := book.CopySummary{ID: uuid.New(), Imprint: "First edition", Status: "Loaned"}
	repo.copies[created.ID] = []book.CopySummary{c1}

	err = svc.Delete(context.Background(), created.ID)
	var blocked *book.DeleteBlockedError
	require.ErrorAs(t, err, &blocked)
	require.Len(t, blocked.Copies, 1)
	assert.Equal(t, c1.ID, blocked.Copies[0].ID)

	// store unchanged
	_, err = svc.GetDetail(context.Background(), created.ID)
	assert.NoError(t, err)

	// once the copies are gone the delete succeeds
	delete(repo.copies, created.ID)
	assert.NoError(t, svc.Delete(context.Background(), created.ID))
}

func TestStats_CountsEveryCollection(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookService(repo)

	authorID := repo.addAuthor("Frank", "Herbert")
	repo.addGenre("Science Fiction")

	created, err := svc.Create(context.Background(), &book.Form{
		Title: "Dune", Author: authorID.String(), Summary: "s", ISBN: "1",
	})
	require.NoError(t, err)

	repo.copies[created.ID] = []book.CopySummary{
		{ID: uuid.New(), Status: "Available"},
		{ID: uuid.New(), Status: "Loaned"},
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.BookCount)
	assert.Equal(t, int64(2), stats.CopyCount)
	assert.Equal(t, int64(1), stats.AvailableCopyCount)
	assert.Equal(t, int64(1), stats.AuthorCount)
	assert.Equal(t, int64(1), stats.GenreCount)
}
