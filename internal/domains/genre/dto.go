package genre

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/shared/forms"
)

// Form carries the raw genre name as submitted.
type Form struct {
	Name string `json:"name"`
}

func (f *Form) Normalize() {
	f.Name = forms.Clean(f.Name)
}

func (f Form) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name,
			validation.Required.Error("genre name must be specified"),
			validation.RuneLength(MinNameLength, MaxNameLength).
				Error("genre name must contain at least 3 characters"),
		),
	)
}

type Response struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (g *Genre) ToResponse() *Response {
	return &Response{
		ID:   g.ID.String(),
		Name: g.Name,
		URL:  g.URL(),
	}
}
