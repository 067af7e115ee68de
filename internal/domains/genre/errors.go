package genre

import (
	"errors"
	"fmt"
)

var ErrGenreNotFound = errors.New("genre not found")

// DeleteBlockedError reports a delete refused because books still carry
// this genre in their genre set.
type DeleteBlockedError struct {
	Books []BookSummary
}

func (e *DeleteBlockedError) Error() string {
	return fmt.Sprintf("cannot delete genre: %d book(s) still reference it", len(e.Books))
}
