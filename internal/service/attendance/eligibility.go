package attendance

import (
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/worker"
)

// DefaultCooldown is the minimum time between two punches of the same worker.
const DefaultCooldown = 30 * time.Minute

var exceptionResults = map[attendance.DayType]attendance.ResultCode{
	attendance.DayVacation:        attendance.ResultVacationExists,
	attendance.DayHoliday:         attendance.ResultHolidayExists,
	attendance.DayOptionalHoliday: attendance.ResultHolidayExists,
	attendance.DayAbsence:         attendance.ResultAbsenceExists,
	attendance.DayMedicalLeave:    attendance.ResultMedicalLeaveExists,
}

// Snapshot is everything the engine needs to decide a punch. Worker is nil
// when the subject is unknown. Events holds the subject's and the
// calendar-wide events; events of other days are ignored.
type Snapshot struct {
	Worker *worker.Worker
	Events []attendance.Event
}

// Engine decides whether a new punch may be recorded and which kind it is.
type Engine struct {
	Cooldown time.Duration
	Location *time.Location
}

func NewEngine(cooldown time.Duration, loc *time.Location) Engine {
	if loc == nil {
		loc = time.UTC
	}
	return Engine{Cooldown: cooldown, Location: loc}
}

// Evaluate is pure: the same snapshot and instant always yield the same decision.
func (e Engine) Evaluate(snap Snapshot, now time.Time) attendance.Decision {
	if snap.Worker == nil {
		return attendance.Decision{Result: attendance.ResultInvalidSubject}
	}

	today := attendance.DateOf(now, e.Location)
	todays := NewPartition(snap.Events, e.Location).DayEvents(snap.Worker.SubjectID, today)

	if dayType := Governing(todays); dayType != attendance.DayWorkday {
		return attendance.Decision{Result: exceptionResults[dayType]}
	}

	var (
		count int
		last  time.Time
	)
	for _, ev := range todays {
		if !ev.Kind.IsPunch() || ev.SubjectID != snap.Worker.SubjectID {
			continue
		}
		count++
		if ev.Timestamp.After(last) {
			last = ev.Timestamp
		}
	}

	if count >= len(attendance.PunchSequence) {
		return attendance.Decision{Result: attendance.ResultDayComplete}
	}
	if count > 0 && now.Sub(last) < e.Cooldown {
		return attendance.Decision{Result: attendance.ResultCooldown}
	}

	return attendance.Decision{Result: attendance.ResultOK, Kind: attendance.PunchSequence[count]}
}
