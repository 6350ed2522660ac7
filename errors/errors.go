package errors

import "fmt"

// RecordError wraps a row-level failure with context about where it
// occurred. Malformed rows are skipped, not fatal; the parser collects
// these as diagnostics.
type RecordError struct {
	Line   int
	Record []string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Fatal allocation and load errors.
var (
	ErrInvalidTarget          = fmt.Errorf("total slot target must be positive")
	ErrInvalidDuration        = fmt.Errorf("slot duration must be positive")
	ErrNoEligibleInterviewers = fmt.Errorf("no interviewers available for the selected shift")
	ErrZeroCapacity           = fmt.Errorf("no available slots for the selected shift")
	ErrNoValidRecords         = fmt.Errorf("no valid interviewer records")
	ErrMissingColumn          = fmt.Errorf("missing required column")
)

// Recoverable row-level errors, wrapped in a RecordError.
var (
	ErrInvalidFieldCount   = fmt.Errorf("invalid field count")
	ErrInvalidAvailability = fmt.Errorf("invalid availability flag")
	ErrInvalidSlotCount    = fmt.Errorf("invalid slot count")
	ErrDuplicateID         = fmt.Errorf("duplicate interviewer ID")
	ErrInvalidRecord       = fmt.Errorf("invalid record")
)
