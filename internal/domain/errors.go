package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEngineNotConfigured signals that no engine client was built at
	// startup (missing endpoint or credentials).
	ErrEngineNotConfigured = errors.New("engine client not configured")
	// ErrEngineUnavailable signals a transport-level engine failure.
	ErrEngineUnavailable = errors.New("engine unavailable")
	// ErrInvalidQuery signals pagination parameters outside their bounds.
	ErrInvalidQuery = errors.New("invalid query")
)

// InvalidFieldsError reports unknown public field names in a request.
type InvalidFieldsError struct {
	Fields []string // unknown names, in request order
	Valid  []string // the full public vocabulary, in canonical order
}

func (e *InvalidFieldsError) Error() string {
	return fmt.Sprintf("Invalid fields: %v. Valid fields are: %v", e.Fields, e.Valid)
}

// NewInvalidFields creates an invalid-fields error.
func NewInvalidFields(unknown, valid []string) error {
	return &InvalidFieldsError{Fields: unknown, Valid: valid}
}
