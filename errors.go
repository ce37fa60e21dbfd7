package fiobank

import (
	"errors"
	"fmt"
)

// ErrThrottling is returned when the API answers 409 Conflict: the access
// token was used again before the 30 second minimum interval elapsed. The
// client never retries on its own; callers decide when to try again.
var ErrThrottling = errors.New("fiobank: token may be used only once per 30s")

// ErrDateFormat is returned when a date string does not start with a
// YYYY-MM-DD prefix. The offending value is attached via %w wrapping.
var ErrDateFormat = errors.New("fiobank: date must be in YYYY-MM-DD format")

// ErrConflictingFilters is returned by Last when both FromID and FromDate
// are set; the API accepts at most one checkpoint constraint.
var ErrConflictingFilters = errors.New("fiobank: only one of FromID and FromDate is allowed")

// ErrUnknownAction is returned when an action name has no URL template.
// The action set is fixed, so hitting this indicates a defect.
var ErrUnknownAction = errors.New("fiobank: unknown action")

// TransportError is any non-success HTTP status other than the 409 throttle
// signal.
type TransportError struct {
	StatusCode int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fiobank: api returned status %d", e.StatusCode)
}
