package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// BuildTable returns the gap-filled day table of one worker
	BuildTable(ctx context.Context, req TableRequest) (TableResponse, error)

	// PreviewPunch evaluates a punch without recording it
	PreviewPunch(ctx context.Context, req PunchRequest) (PunchResponse, error)

	// EvaluatePunch evaluates a punch and, when accepted, stores evidence and appends it
	EvaluatePunch(ctx context.Context, req PunchRequest) (PunchResponse, error)

	// RecordException records vacation, holiday, absence or medical leave for a day
	RecordException(ctx context.Context, req ExceptionRequest) (EventResponse, error)

	// RemoveEvent deletes the event keyed by subject, day and kind
	RemoveEvent(ctx context.Context, req RemoveEventRequest) error

	// ListEvents returns the raw log of a subject
	ListEvents(ctx context.Context, filter EventFilter) ([]EventResponse, error)
}
