package boards

import (
	"errors"
	"fmt"
)

// Sentinel errors for board operations
var (
	// ErrInvalidBoard is returned when the sentinel board id (0) is given.
	// Callers resolve it by redirecting to the home page, not by showing an
	// error to the user.
	ErrInvalidBoard = errors.New("no board selected")

	// ErrNotFound is returned when a post or board id has no matching row
	ErrNotFound = errors.New("post not found")

	// ErrForbidden is returned when an authorization gate fails: a non-admin
	// reading a deleted post, a non-author editing, or an admin-only action
	ErrForbidden = errors.New("not allowed")

	// ErrStaleOrMissing is returned when an update targets a post that has
	// vanished (deleted or edited away by someone else while the caller held
	// the form). Distinct from ErrNotFound so callers can word the two cases
	// differently.
	ErrStaleOrMissing = errors.New("post was removed while editing")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
