package author

import (
	"errors"
	"fmt"
)

var ErrAuthorNotFound = errors.New("author not found")

// DeleteBlockedError is returned when the integrity guard refuses a delete
// because books still reference the author. It carries the blocking set.
type DeleteBlockedError struct {
	Books []BookSummary
}

func (e *DeleteBlockedError) Error() string {
	return fmt.Sprintf("cannot delete author: %d book(s) still reference it", len(e.Books))
}
