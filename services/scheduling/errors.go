package scheduling

import (
	"errors"
	"fmt"
)

// ErrMentorNotFound is returned by a MentorSource when the id does not resolve.
var ErrMentorNotFound = errors.New("mentor not found")

// MalformedScheduleError reports a schedule time that is not a valid "HH:MM"
// value, or a window whose start is not before its end.
type MalformedScheduleError struct {
	Field  string
	Value  string
	Reason string
}

func (e *MalformedScheduleError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed schedule time %q: %s", e.Value, e.Reason)
	}
	return fmt.Sprintf("malformed schedule %s %q: %s", e.Field, e.Value, e.Reason)
}

// InvalidRequestError reports a booking request whose date or start time
// cannot be parsed. It is surfaced to callers as a validation error.
type InvalidRequestError struct {
	Field string
	Value string
}

func (e *InvalidRequestError) Error() string {
	switch e.Field {
	case "date":
		return fmt.Sprintf("Invalid date %q: expected YYYY-MM-DD", e.Value)
	case "startTime":
		return fmt.Sprintf("Invalid start time %q: expected HH:MM", e.Value)
	}
	return fmt.Sprintf("Invalid %s %q", e.Field, e.Value)
}
