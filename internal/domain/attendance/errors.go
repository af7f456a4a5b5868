package attendance

import "errors"

// Attendance domain errors
var (
	// Append conflicts with an existing event of the same subject, day and kind,
	// or with another exception on the same day.
	ErrEventConflict = errors.New("attendance event conflicts with an existing event")
	ErrEventNotFound = errors.New("attendance event not found")

	// Exception management
	ErrExceptionExists      = errors.New("an exception is already recorded for this day")
	ErrSystemKindNotAllowed = errors.New("only holidays can be recorded for the whole company")

	ErrInvalidDateRange = errors.New("invalid date range")
)
