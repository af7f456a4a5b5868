package sector

import "time"

// Sector groups workers that share the same punch offsets. Offsets are
// expressed in hours and may be negative or fractional (0.033 is two minutes).
type Sector struct {
	ID               string
	Name             string
	EntryOffsetHours float64
	ExitOffsetHours  float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
