package author

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/shared/forms"
)

// Form carries the raw author fields as submitted. The same shape serves
// create and update; update pins the id from the route.
type Form struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	DateOfDeath string `json:"date_of_death"`
}

// Normalize trims and escapes the text fields before validation runs.
func (f *Form) Normalize() {
	f.FirstName = forms.Clean(f.FirstName)
	f.LastName = forms.Clean(f.LastName)
	f.DateOfBirth = forms.Clean(f.DateOfBirth)
	f.DateOfDeath = forms.Clean(f.DateOfDeath)
}

// Validate accumulates every field failure; empty optional dates pass.
func (f Form) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FirstName,
			validation.Required.Error("first name must be specified"),
			validation.RuneLength(1, MaxNameLength).Error("first name must be at most 100 characters"),
		),
		validation.Field(&f.LastName,
			validation.Required.Error("last name must be specified"),
			validation.RuneLength(1, MaxNameLength).Error("last name must be at most 100 characters"),
		),
		validation.Field(&f.DateOfBirth,
			validation.Date(forms.DateLayout).Error("invalid date of birth"),
		),
		validation.Field(&f.DateOfDeath,
			validation.Date(forms.DateLayout).Error("invalid date of death"),
		),
	)
}

// ToEntity builds the entity from a normalized, validated form.
func (f *Form) ToEntity() (*Author, error) {
	birth, err := forms.ParseOptionalDate(f.DateOfBirth)
	if err != nil {
		return nil, err
	}
	death, err := forms.ParseOptionalDate(f.DateOfDeath)
	if err != nil {
		return nil, err
	}

	return &Author{
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		DateOfBirth: birth,
		DateOfDeath: death,
	}, nil
}

// Response is the author as rendered to the caller, with derived fields.
type Response struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	FullName    string     `json:"full_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	URL         string     `json:"url"`
}

func (a *Author) ToResponse() *Response {
	return &Response{
		ID:          a.ID.String(),
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		FullName:    a.FullName(),
		DateOfBirth: a.DateOfBirth,
		DateOfDeath: a.DateOfDeath,
		URL:         a.URL(),
	}
}
