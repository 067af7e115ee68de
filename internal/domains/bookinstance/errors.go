package bookinstance

import "errors"

var ErrInstanceNotFound = errors.New("book instance not found")
