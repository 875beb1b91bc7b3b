package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	// ErrStructural means the document has no table to extract rules from.
	// It is the only fatal error of the generation core.
	ErrStructural = errors.New("structural error")

	ErrMalformedTagToken   = errors.New("malformed tag token")
	ErrEmptyCombination    = errors.New("empty combination")
	ErrEmptyRule           = errors.New("empty rule")
	ErrIdentifierCollision = errors.New("identifier collision")

	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// DropError records input that was recovered from by dropping it.
type DropError struct {
	Kind       error
	NameSource string
	Detail     string
}

func (e *DropError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v: %q", e.Kind, e.NameSource)
	}
	return fmt.Sprintf("%v: %q: %s", e.Kind, e.NameSource, e.Detail)
}

func (e *DropError) Unwrap() error { return e.Kind }

// NewDropError creates a DropError of the given kind.
func NewDropError(kind error, nameSource, detail string) *DropError {
	return &DropError{Kind: kind, NameSource: nameSource, Detail: detail}
}
