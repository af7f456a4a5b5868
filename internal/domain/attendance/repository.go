package attendance

import (
	"context"
	"time"
)

// EventRepository is the append-only attendance log. Dates are civil dates
// and ranges are inclusive.
type EventRepository interface {
	// ListBySubjects returns events of the given subjects within [from, to],
	// ordered by timestamp.
	ListBySubjects(ctx context.Context, subjectIDs []string, from, to time.Time) ([]Event, error)

	// ListBySector returns events of every worker in the sector plus the
	// calendar-wide events within [from, to].
	ListBySector(ctx context.Context, sectorID string, from, to time.Time) ([]Event, error)

	// Append stores a new event. Returns ErrEventConflict on a uniqueness violation.
	Append(ctx context.Context, e Event) (Event, error)

	// Delete removes the event keyed by subject, day and kind and returns it.
	Delete(ctx context.Context, subjectID string, day time.Time, kind Kind) (Event, error)

	// WithSubjectLock runs fn in a transaction that serializes writers of subjectID.
	WithSubjectLock(ctx context.Context, subjectID string, fn func(ctx context.Context) error) error
}
