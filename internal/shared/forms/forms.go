package forms

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"
)

// DateLayout is the wire format for all date fields.
const DateLayout = "2006-01-02"

// Clean trims surrounding whitespace and escapes markup-significant
// characters. The rendering layer is external and does not re-sanitize,
// so every free-text field passes through here before validation.
func Clean(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// CleanAll applies Clean to every entry and drops entries that end up empty.
func CleanAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if cleaned := Clean(v); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// ParseOptionalDate parses an optional date field. An empty value is
// omitted, not invalid; a present but unparsable value is an error.
func ParseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected %s", s, DateLayout)
	}
	return &t, nil
}

// StringList accepts a JSON string, array of strings, or null. Checkbox
// groups submit a scalar when one box is ticked and an array otherwise,
// and nothing at all when none are.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}

	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*l = nil
		} else {
			*l = []string{one}
		}
		return nil
	}

	if string(data) == "null" {
		*l = nil
		return nil
	}

	return fmt.Errorf("expected string or array of strings, got %s", data)
}
