package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// NewError returns an error whose message is the formatted text and which
// unwraps to kind.
func NewError(kind error, format string, args ...interface{}) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func CategoryNotFound(id int) error {
	return NewError(ErrNotFound, "Category with ID %d not found", id)
}

func CategorySlugNotFound(slug string) error {
	return NewError(ErrNotFound, "Category with slug \"%s\" not found", slug)
}
