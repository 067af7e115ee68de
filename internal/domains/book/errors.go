package book

import (
	"errors"
	"fmt"
)

var ErrBookNotFound = errors.New("book not found")

// DeleteBlockedError reports a delete refused because physical copies of
// the book still exist.
type DeleteBlockedError struct {
	Copies []CopySummary
}

func (e *DeleteBlockedError) Error() string {
	return fmt.Sprintf("cannot delete book: %d copy(ies) still reference it", len(e.Copies))
}
