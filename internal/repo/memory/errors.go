package memory

import (
	"errors"
	"strings"
)

var ErrEmailTaken = errors.New("email already exists")

// ValidationError carries the full rule-violation list from an entity's
// Validate result so the transport layer can surface every reason at once.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, ", ")
}
