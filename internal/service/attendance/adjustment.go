package attendance

import (
	"math"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/sector"
)

// offsetDuration converts fractional hours to a whole number of minutes.
// Sector offsets are configured in hours but meant at minute resolution,
// so 0.033h is 2 minutes rather than 1m58.8s.
func offsetDuration(hours float64) time.Duration {
	return time.Duration(math.Round(hours*60)) * time.Minute
}

// AdjustEntry applies the sector entry offset. Entry is always adjusted.
func AdjustEntry(raw time.Time, s sector.Sector) time.Time {
	return raw.Add(offsetDuration(s.EntryOffsetHours))
}

// AdjustExit applies the sector exit offset unless raw falls on a Friday in loc.
func AdjustExit(raw time.Time, s sector.Sector, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	if raw.In(loc).Weekday() == time.Friday {
		return raw
	}
	return raw.Add(offsetDuration(s.ExitOffsetHours))
}
