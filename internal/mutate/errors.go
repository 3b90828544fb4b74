package mutate

import (
	"errors"
	"fmt"

	"slate-cli/internal/model"
)

// ErrInvalidStatus is returned when a status value is not in the kind's
// closed enumeration. The picker only offers valid values, so hitting this
// from the TUI means a programming error; the CLI can hit it on bad input.
var ErrInvalidStatus = errors.New("invalid status")

// ErrCreateInFlight blocks duplicate submission while a create call is
// pending.
var ErrCreateInFlight = errors.New("create already in flight")

// ErrNoEntity is returned when a mutation targets a nil record or one with
// no backend id.
var ErrNoEntity = errors.New("no entity (missing id)")

// NotEditableError rejects an edit whose field has no backend column. These
// indicate a view configuration mistake, not a runtime condition: callers
// log them instead of notifying the user, and no network call is issued.
type NotEditableError struct {
	Kind  model.Kind
	Field string
}

func (e NotEditableError) Error() string {
	return fmt.Sprintf("field %s.%s is not editable (no backend column)", e.Kind, e.Field)
}

// IsPreconditionError reports whether err is a client-side precondition
// violation (short-circuited before any network call) rather than a remote
// failure.
func IsPreconditionError(err error) bool {
	var ne NotEditableError
	if errors.As(err, &ne) {
		return true
	}
	return errors.Is(err, ErrNoEntity) || errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrCreateInFlight)
}
