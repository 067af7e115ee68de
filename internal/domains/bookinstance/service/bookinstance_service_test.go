package service

import (
	"context"
	"sort"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/bookinstance"
)

// fakeRepo is an in-memory bookinstance.Repository for service tests.
type fakeRepo struct {
	instances map[uuid.UUID]bookinstance.BookInstance
	books     map[uuid.UUID]bookinstance.BookRef
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		instances: make(map[uuid.UUID]bookinstance.BookInstance),
		books:     make(map[uuid.UUID]bookinstance.BookRef),
	}
}

func (f *fakeRepo) addBook(title string) uuid.UUID {
	id := uuid.New()
	f.books[id] = bookinstance.BookRef{ID: id, Title: title}
	return id
}

func (f *fakeRepo) Create(_ context.Context, i *bookinstance.BookInstance) (*bookinstance.BookInstance, error) {
	created := *i
	created.ID = uuid.New()
	f.instances[created.ID] = created
	return &created, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*bookinstance.BookInstance, error) {
	i, ok := f.instances[id]
	if !ok {
		return nil, bookinstance.ErrInstanceNotFound
	}
	return &i, nil
}

func (f *fakeRepo) GetWithBook(ctx context.Context, id uuid.UUID) (*bookinstance.BookInstance, *bookinstance.BookRef, error) {
	i, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	b := f.books[i.BookID]
	return i, &b, nil
}

func (f *fakeRepo) GetAll(_ context.Context) ([]bookinstance.ListItem, error) {
	out := make([]bookinstance.ListItem, 0, len(f.instances))
	for _, i := range f.instances {
		out = append(out, bookinstance.ListItem{
			ID:      i.ID,
			Imprint: i.Imprint,
			Status:  i.Status,
			DueBack: i.DueBack,
			Book:    f.books[i.BookID],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Book.Title < out[j].Book.Title })
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, i *bookinstance.BookInstance) (*bookinstance.BookInstance, error) {
	if _, ok := f.instances[i.ID]; !ok {
		return nil, bookinstance.ErrInstanceNotFound
	}
	f.instances[i.ID] = *i
	return i, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.instances[id]; !ok {
		return bookinstance.ErrInstanceNotFound
	}
	delete(f.instances, id)
	return nil
}

func (f *fakeRepo) BookExists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.books[id]
	return ok, nil
}

func (f *fakeRepo) ListBooks(_ context.Context) ([]bookinstance.BookRef, error) {
	out := make([]bookinstance.BookRef, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func TestCreate_DefaultsStatusToMaintenance(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookInstanceService(repo)

	bookID := repo.addBook("Dune")

	created, err := svc.Create(context.Background(), &bookinstance.Form{
		Book:    bookID.String(),
		Imprint: " Ace, 1990 ",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Ace, 1990", created.Imprint)
	assert.Equal(t, bookinstance.StatusMaintenance, created.Status)
	assert.Nil(t, created.DueBack)
	assert.Equal(t, "/catalog/bookinstance/"+created.ID.String(), created.URL())
}

func TestCreate_ExplicitStatusAndDueBack(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookInstanceService(repo)

	bookID := repo.addBook("Dune")

	created, err := svc.Create(context.Background(), &bookinstance.Form{
		Book:    bookID.String(),
		Imprint: "Ace, 1990",
		Status:  "Loaned",
		DueBack: "2026-10-01",
	})

	require.NoError(t, err)
	assert.Equal(t, bookinstance.StatusLoaned, created.Status)
	require.NotNil(t, created.DueBack)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), created.DueBack.UTC())
}

func TestCreate_DueBackAllowedInAnyStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookInstanceService(repo)

	bookID := repo.addBook("Dune")

	created, err := svc.Create(context.Background(), &bookinstance.Form{
		Book:    bookID.String(),
		Imprint: "Ace, 1990",
		Status:  "Available",
		DueBack: "2026-10-01",
	})

	require.NoError(t, err)
	assert.Equal(t, bookinstance.StatusAvailable, created.Status)
	assert.NotNil(t, created.DueBack)
}

func TestCreate_RejectsUnknownStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookInstanceService(repo)

	bookID := repo.addBook("Dune")

	_, err := svc.Create(context.Background(), &bookinstance.Form{
		Book:    bookID.String(),
		Imprint: "Ace, 1990",
		Status:  "Lost",
	})

	require.Error(t, err)
	var vErrs validation.Errors
	require.ErrorAs(t, err, &vErrs)
	assert.Contains(t, vErrs, "status")
}

func TestCreate_AccumulatesFieldErrors(t *testing.T) {
	svc := NewBookInstanceService(newFakeRepo())

	_, err := svc.Create(context.Background(), &bookinstance.Form{
		Book:    "not-a-uuid",
		Imprint: "   ",
		DueBack: "next tuesday",
	})

	require.Error(t, err)
	var vErrs validation.Errors
	require.ErrorAs(t, err, &vErrs)
	assert.Contains(t, vErrs, "book")
	assert.Contains(t, vErrs, "imprint")
	assert.Contains(t, vErrs, "due_back")
}

func TestCreate_UnresolvableBookIsFieldError(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookInstanceService(repo)

	_, err := svc.Create(context.Background(), &bookinstance.Form{
		Book:    uuid.NewString(),
		Imprint: "Phantom Press",
	})

	require.Error(t, err)
	var vErrs validation.Errors
	require.ErrorAs(t, err, &vErrs)
	assert.Contains(t, vErrs, "book")
	assert.Empty(t, repo.instances)
}

func TestGetDetail_ResolvesBook(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookInstanceService(repo)

	bookID := repo.addBook("Dune")
	created, err := svc.Create(context.Background(), &bookinstance.Form{
		Book: bookID.String(), Imprint: "Ace, 1990",
	})
	require.NoError(t, err)

	detail, err := svc.GetDetail(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, detail.Instance.ID)
	assert.Equal(t, "Dune", detail.Book.Title)
	assert.Equal(t, "/catalog/book/"+bookID.String(), detail.Book.URL())
}

func TestGetDetail_NotFound(t *testing.T) {
	svc := NewBookInstanceService(newFakeRepo())

	_, err := svc.GetDetail(context.Background(), uuid.New())
	assert.ErrorIs(t, err, bookinstance.ErrInstanceNotFound)
}

func TestGetFormData_IncludesBooksAndStatuses(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookInstanceService(repo)

	repo.addBook("Dune")
	repo.addBook("Frankenstein")

	data, err := svc.GetFormData(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, data.Instance)
	require.Len(t, data.Books, 2)
	assert.Equal(t, "Dune", data.Books[0].Title)
	assert.Equal(t, bookinstance.Statuses(), data.Statuses)
}

func TestGetFormData_WithInstance(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookInstanceService(repo)

	bookID := repo.addBook("Dune")
	created, err := svc.Create(context.Background(), &bookinstance.Form{
		Book: bookID.String(), Imprint: "Ace, 1990",
	})
	require.NoError(t, err)

	data, err := svc.GetFormData(context.Background(), &created.ID)
	require.NoError(t, err)
	require.NotNil(t, data.Instance)
	assert.Equal(t, created.ID, data.Instance.ID)
}

func TestUpdate_ReplacesAllEditableFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookInstanceService(repo)

	bookID := repo.addBook("Dune")
	created, err := svc.Create(context.Background(), &bookinstance.Form{
		Book: bookID.String(), Imprint: "Ace, 1990", Status: "Loaned", DueBack: "2026-10-01",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &bookinstance.Form{
		Book: bookID.String(), Imprint: "Ace, 1990", Status: "Available",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, bookinstance.StatusAvailable, updated.Status)
	// due date omitted in the update form replaces the stored one
	assert.Nil(t, updated.DueBack)
}

func TestDelete_AlwaysPermitted(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBookInstanceService(repo)

	bookID := repo.addBook("Dune")
	created, err := svc.Create(context.Background(), &bookinstance.Form{
		Book: bookID.String(), Imprint: "Ace, 1990", Status: "Loaned",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.GetDetail(context.Background(), created.ID)
	assert.ErrorIs(t, err, bookinstance.ErrInstanceNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewBookInstanceService(newFakeRepo())

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, bookinstance.ErrInstanceNotFound)
}
