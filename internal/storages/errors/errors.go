package errors

import "errors"

var (
	ErrNotFound = errors.New("storage not found")
)
