package attendance

import (
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/sector"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/worker"
)

type partitionKey struct {
	subjectID string
	day       time.Time
}

// Partition groups events by subject and civil date.
type Partition map[partitionKey][]attendance.Event

func NewPartition(events []attendance.Event, loc *time.Location) Partition {
	p := make(Partition)
	for _, e := range events {
		key := partitionKey{subjectID: e.SubjectID, day: e.Day(loc)}
		p[key] = append(p[key], e)
	}
	return p
}

// DayEvents returns the events of subjectID on day merged with the
// calendar-wide events of the same day.
func (p Partition) DayEvents(subjectID string, day time.Time) []attendance.Event {
	own := p[partitionKey{subjectID: subjectID, day: day}]
	if subjectID == attendance.SystemSubjectID {
		return own
	}
	system := p[partitionKey{subjectID: attendance.SystemSubjectID, day: day}]
	if len(system) == 0 {
		return own
	}
	merged := make([]attendance.Event, 0, len(own)+len(system))
	merged = append(merged, own...)
	return append(merged, system...)
}

// TableBuilder turns the raw log into one DayRecord per calendar day.
type TableBuilder struct {
	Location *time.Location
}

func NewTableBuilder(loc *time.Location) TableBuilder {
	if loc == nil {
		loc = time.UTC
	}
	return TableBuilder{Location: loc}
}

// Build returns exactly one record per civil date in [from, to], ascending.
// events may contain other subjects, they are ignored.
func (b TableBuilder) Build(events []attendance.Event, w worker.Worker, s sector.Sector, from, to time.Time) []attendance.DayRecord {
	return b.BuildFromPartition(NewPartition(events, b.Location), w, s, from, to)
}

// BuildFromPartition lets callers building many tables partition the log once.
func (b TableBuilder) BuildFromPartition(p Partition, w worker.Worker, s sector.Sector, from, to time.Time) []attendance.DayRecord {
	from = attendance.Date(from.Year(), from.Month(), from.Day())
	to = attendance.Date(to.Year(), to.Month(), to.Day())
	if from.After(to) {
		return []attendance.DayRecord{}
	}

	records := make([]attendance.DayRecord, 0, attendance.DaysInRange(from, to))
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		record := Classify(day, p.DayEvents(w.SubjectID, day))
		if record.DayType == attendance.DayWorkday {
			b.adjust(&record, s)
		}
		records = append(records, record)
	}
	return records
}

func (b TableBuilder) adjust(r *attendance.DayRecord, s sector.Sector) {
	local := func(t *time.Time) *time.Time {
		if t == nil {
			return nil
		}
		lt := t.In(b.Location)
		return &lt
	}

	r.IntervalStart = local(r.IntervalStart)
	r.IntervalEnd = local(r.IntervalEnd)
	if r.Entry != nil {
		adjusted := AdjustEntry(*r.Entry, s)
		r.Entry = local(&adjusted)
	}
	if r.Exit != nil {
		adjusted := AdjustExit(*r.Exit, s, b.Location)
		r.Exit = local(&adjusted)
	}
}
