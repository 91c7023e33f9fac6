package rules

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned when a rule ID is already in use.
var ErrDuplicateID = errors.New("duplicate rule id")

// NotFoundError is returned when no rule has the requested ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("rule %s not found", e.ID)
}
