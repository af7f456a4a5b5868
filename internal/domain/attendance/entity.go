package attendance

import (
	"time"
)

// SystemSubjectID owns calendar-wide events such as company holidays.
// Its events apply to every worker.
const SystemSubjectID = "sistema"

type Kind string

const (
	KindEntry         Kind = "entry"
	KindIntervalStart Kind = "interval_start"
	KindIntervalEnd   Kind = "interval_end"
	KindExit          Kind = "exit"

	KindVacation        Kind = "vacation"
	KindHoliday         Kind = "holiday"
	KindOptionalHoliday Kind = "optional_holiday"
	KindAbsence         Kind = "absence"
	KindMedicalLeave    Kind = "medical_leave"
)

// PunchSequence is the order in which punches of a single day are recorded.
var PunchSequence = [4]Kind{KindEntry, KindIntervalStart, KindIntervalEnd, KindExit}

func (k Kind) IsPunch() bool {
	switch k {
	case KindEntry, KindIntervalStart, KindIntervalEnd, KindExit:
		return true
	}
	return false
}

func (k Kind) IsException() bool {
	switch k {
	case KindVacation, KindHoliday, KindOptionalHoliday, KindAbsence, KindMedicalLeave:
		return true
	}
	return false
}

func (k Kind) Valid() bool {
	return k.IsPunch() || k.IsException()
}

// IsCalendarWide reports whether the kind may be recorded for SystemSubjectID.
func (k Kind) IsCalendarWide() bool {
	return k == KindHoliday || k == KindOptionalHoliday
}

// Event is one immutable entry of the attendance log.
type Event struct {
	ID          string
	SubjectID   string
	Kind        Kind
	Timestamp   time.Time
	CalendarDay time.Time // civil date at 00:00 UTC
	EvidenceRef *string
	CreatedAt   time.Time
}

// Day returns the civil date of the event, derived from the timestamp when
// CalendarDay has not been set.
func (e Event) Day(loc *time.Location) time.Time {
	if !e.CalendarDay.IsZero() {
		return Date(e.CalendarDay.Year(), e.CalendarDay.Month(), e.CalendarDay.Day())
	}
	return DateOf(e.Timestamp, loc)
}

// Date builds a civil date. All civil dates are midnight UTC so that
// AddDate and equality never observe a DST transition.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf returns the civil date of instant t as observed in loc.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	return Date(lt.Year(), lt.Month(), lt.Day())
}

type DayType string

const (
	DayWorkday         DayType = "workday"
	DayVacation        DayType = "vacation"
	DayHoliday         DayType = "holiday"
	DayOptionalHoliday DayType = "optional_holiday"
	DayAbsence         DayType = "absence"
	DayMedicalLeave    DayType = "medical_leave"
)

var dayTypeLabels = map[DayType]string{
	DayVacation:        "FÉRIAS",
	DayHoliday:         "FERIADO",
	DayOptionalHoliday: "FACULTATIVO",
	DayAbsence:         "FALTA",
	DayMedicalLeave:    "ATESTADO",
}

// Label is the text shown in every slot of a non-workday row.
func (d DayType) Label() string {
	return dayTypeLabels[d]
}

// MissingSlot marks an empty punch slot on a workday.
const MissingSlot = "---"

// DayRecord is the derived view of one worker on one calendar day.
type DayRecord struct {
	Date          time.Time
	DayType       DayType
	Entry         *time.Time
	IntervalStart *time.Time
	IntervalEnd   *time.Time
	Exit          *time.Time
}

// Slots returns the four display cells in punch order.
func (r DayRecord) Slots() [4]string {
	var out [4]string
	if r.DayType != DayWorkday {
		label := r.DayType.Label()
		for i := range out {
			out[i] = label
		}
		return out
	}
	for i, t := range []*time.Time{r.Entry, r.IntervalStart, r.IntervalEnd, r.Exit} {
		if t == nil {
			out[i] = MissingSlot
		} else {
			out[i] = t.Format("15:04")
		}
	}
	return out
}

type ResultCode string

// Stable result vocabulary shared with capture terminals.
const (
	ResultOK                 ResultCode = "ok"
	ResultCooldown           ResultCode = "cooldown"
	ResultDayComplete        ResultCode = "dayComplete"
	ResultInvalidSubject     ResultCode = "invalidSubject"
	ResultVacationExists     ResultCode = "vacationExists"
	ResultHolidayExists      ResultCode = "holidayExists"
	ResultAbsenceExists      ResultCode = "absenceExists"
	ResultMedicalLeaveExists ResultCode = "medicalLeaveExists"
	ResultUnauthorized       ResultCode = "unauthorized"
)

// Decision is the outcome of a punch evaluation. Kind is set only when accepted.
type Decision struct {
	Result ResultCode
	Kind   Kind
}

func (d Decision) Accepted() bool {
	return d.Result == ResultOK
}
