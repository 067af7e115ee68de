package bookinstance

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"library-catalog/internal/shared/forms"
)

// Form carries the raw copy fields as submitted.
type Form struct {
	Book    string `json:"book"`
	Imprint string `json:"imprint"`
	Status  string `json:"status"`
	DueBack string `json:"due_back"`
}

func (f *Form) Normalize() {
	f.Book = forms.Clean(f.Book)
	f.Imprint = forms.Clean(f.Imprint)
	f.Status = forms.Clean(f.Status)
	f.DueBack = forms.Clean(f.DueBack)
}

func (f Form) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Book,
			validation.Required.Error("book must not be empty"),
			is.UUID.Error("book must be a valid id"),
		),
		validation.Field(&f.Imprint,
			validation.Required.Error("imprint must not be empty"),
		),
		validation.Field(&f.Status,
			validation.In(
				string(StatusMaintenance),
				string(StatusAvailable),
				string(StatusLoaned),
				string(StatusReserved),
			).Error("status must be one of Maintenance, Available, Loaned, Reserved"),
		),
		validation.Field(&f.DueBack,
			validation.Date(forms.DateLayout).Error("due_back must be a valid date (YYYY-MM-DD)"),
		),
	)
}

// ToEntity builds the entity from a normalized, validated form. An
// omitted status falls back to Maintenance, keeping new copies out of
// circulation until staff release them.
func (f *Form) ToEntity() (*BookInstance, error) {
	bookID, err := uuid.Parse(f.Book)
	if err != nil {
		return nil, err
	}

	dueBack, err := forms.ParseOptionalDate(f.DueBack)
	if err != nil {
		return nil, err
	}

	status := Status(f.Status)
	if f.Status == "" {
		status = StatusMaintenance
	}

	return &BookInstance{
		BookID:  bookID,
		Imprint: f.Imprint,
		Status:  status,
		DueBack: dueBack,
	}, nil
}

type Response struct {
	ID      string     `json:"id"`
	BookID  string     `json:"book_id"`
	Imprint string     `json:"imprint"`
	Status  Status     `json:"status"`
	DueBack *time.Time `json:"due_back,omitempty"`
	URL     string     `json:"url"`
}

func (i *BookInstance) ToResponse() *Response {
	return &Response{
		ID:      i.ID.String(),
		BookID:  i.BookID.String(),
		Imprint: i.Imprint,
		Status:  i.Status,
		DueBack: i.DueBack,
		URL:     i.URL(),
	}
}
