package schedule

import (
	"fmt"
	"strings"
)

// MalformedCodeError is returned when a code string cannot be decoded.
type MalformedCodeError struct {
	Code   string
	Reason string
}

func (e *MalformedCodeError) Error() string {
	return fmt.Sprintf("malformed code %q: %s", e.Code, e.Reason)
}

// UnknownCodeError is returned when a well-formed code is not an assignable
// taxonomy entry.
type UnknownCodeError struct {
	Code        string
	Suggestions []string
}

func (e *UnknownCodeError) Error() string {
	msg := fmt.Sprintf("unknown code %q", e.Code)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}
