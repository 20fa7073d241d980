package domain

import (
	"errors"
	"fmt"
)

// Policy rejections. An operation returning one of these has not mutated any state.
var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrDuplicateFleetNumber = errors.New("fleet number already in use")
	ErrAlreadyAssigned      = errors.New("bus already assigned to another route")
	ErrDuplicateRoute       = errors.New("route name already in use")
	ErrInvalidTightness     = errors.New("schedule tightness out of range")
	ErrInvalidStop          = errors.New("invalid stop")
	ErrInvalidName          = errors.New("name must be non-empty")
	ErrRouteTooShort        = errors.New("route needs at least two stops")
	ErrUnknownBus           = errors.New("unknown bus")
	ErrUnknownRoute         = errors.New("unknown route")
	ErrUnknownModel         = errors.New("unknown vehicle model")
	ErrInvalidModel         = errors.New("invalid vehicle model")
	ErrUnknownLivery        = errors.New("unknown livery")
	ErrSameLivery           = errors.New("bus already carries that livery")
)

// StructuralError reports a referential-integrity violation: an assignment that
// points at a bus outside the fleet, a bus whose model is missing from the
// catalog, and similar. It indicates a corrupt save or catalog, never normal play.
type StructuralError struct {
	Op     string
	Detail string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: structural integrity violation: %s", e.Op, e.Detail)
}

func structuralf(op string, format string, args ...any) error {
	return &StructuralError{Op: op, Detail: fmt.Sprintf(format, args...)}
}

// IsStructural reports whether err (or anything it wraps) is a StructuralError.
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}
