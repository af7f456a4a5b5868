package attendance

import (
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
)

type dayRule struct {
	dayType attendance.DayType
	kind    attendance.Kind
}

// precedence resolves overlapping exceptions. First match wins, a day with
// none of them is a workday.
var precedence = []dayRule{
	{attendance.DayVacation, attendance.KindVacation},
	{attendance.DayHoliday, attendance.KindHoliday},
	{attendance.DayOptionalHoliday, attendance.KindOptionalHoliday},
	{attendance.DayAbsence, attendance.KindAbsence},
	{attendance.DayMedicalLeave, attendance.KindMedicalLeave},
}

// Governing returns the day type decided by the exceptions among events.
func Governing(events []attendance.Event) attendance.DayType {
	present := make(map[attendance.Kind]bool, len(events))
	for _, e := range events {
		present[e.Kind] = true
	}
	for _, rule := range precedence {
		if present[rule.kind] {
			return rule.dayType
		}
	}
	return attendance.DayWorkday
}

// Classify builds the unadjusted record of one day from the events of that
// day. Punches stay untouched when an exception governs the day, they are
// simply not shown.
func Classify(date time.Time, events []attendance.Event) attendance.DayRecord {
	record := attendance.DayRecord{
		Date:    date,
		DayType: Governing(events),
	}
	if record.DayType != attendance.DayWorkday {
		return record
	}

	for _, e := range events {
		var slot **time.Time
		switch e.Kind {
		case attendance.KindEntry:
			slot = &record.Entry
		case attendance.KindIntervalStart:
			slot = &record.IntervalStart
		case attendance.KindIntervalEnd:
			slot = &record.IntervalEnd
		case attendance.KindExit:
			slot = &record.Exit
		default:
			continue
		}
		ts := e.Timestamp
		if *slot == nil || ts.Before(**slot) {
			*slot = &ts
		}
	}
	return record
}
