package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoverning_Precedence(t *testing.T) {
	day := at(2024, time.May, 15, 0, 0)
	mk := func(kinds ...attendance.Kind) []attendance.Event {
		var events []attendance.Event
		for i, k := range kinds {
			events = append(events, event(testCPF, k, day.Add(time.Duration(i+8)*time.Hour)))
		}
		return events
	}

	cases := []struct {
		name  string
		kinds []attendance.Kind
		want  attendance.DayType
	}{
		{"no events", nil, attendance.DayWorkday},
		{"punches only", []attendance.Kind{attendance.KindEntry, attendance.KindExit}, attendance.DayWorkday},
		{"vacation beats entry", []attendance.Kind{attendance.KindEntry, attendance.KindVacation}, attendance.DayVacation},
		{"vacation beats holiday", []attendance.Kind{attendance.KindHoliday, attendance.KindVacation}, attendance.DayVacation},
		{"holiday beats optional holiday", []attendance.Kind{attendance.KindOptionalHoliday, attendance.KindHoliday}, attendance.DayHoliday},
		{"optional holiday beats absence", []attendance.Kind{attendance.KindAbsence, attendance.KindOptionalHoliday}, attendance.DayOptionalHoliday},
		{"absence beats medical leave", []attendance.Kind{attendance.KindMedicalLeave, attendance.KindAbsence}, attendance.DayAbsence},
		{"medical leave alone", []attendance.Kind{attendance.KindMedicalLeave, attendance.KindEntry}, attendance.DayMedicalLeave},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Governing(mk(tc.kinds...)))
		})
	}
}

func TestClassify_Workday(t *testing.T) {
	date := attendance.Date(2024, time.May, 15)
	events := []attendance.Event{
		event(testCPF, attendance.KindExit, at(2024, time.May, 15, 17, 58)),
		event(testCPF, attendance.KindEntry, at(2024, time.May, 15, 7, 58)),
		event(testCPF, attendance.KindIntervalStart, at(2024, time.May, 15, 12, 0)),
	}

	record := Classify(date, events)

	assert.Equal(t, attendance.DayWorkday, record.DayType)
	require.NotNil(t, record.Entry)
	require.NotNil(t, record.IntervalStart)
	require.NotNil(t, record.Exit)
	assert.Nil(t, record.IntervalEnd)
	assert.True(t, record.Entry.Equal(at(2024, time.May, 15, 7, 58)))

	slots := record.Slots()
	assert.Equal(t, attendance.MissingSlot, slots[2])
}

func TestClassify_VacationHidesPunches(t *testing.T) {
	date := attendance.Date(2024, time.May, 15)
	events := []attendance.Event{
		event(testCPF, attendance.KindEntry, at(2024, time.May, 15, 8, 0)),
		event(testCPF, attendance.KindVacation, at(2024, time.May, 15, 0, 0)),
	}

	record := Classify(date, events)

	assert.Equal(t, attendance.DayVacation, record.DayType)
	assert.Nil(t, record.Entry)
	assert.Equal(t, [4]string{"FÉRIAS", "FÉRIAS", "FÉRIAS", "FÉRIAS"}, record.Slots())
}

func TestClassify_Idempotent(t *testing.T) {
	date := attendance.Date(2024, time.May, 15)
	events := []attendance.Event{
		event(testCPF, attendance.KindEntry, at(2024, time.May, 15, 8, 0)),
		event(testCPF, attendance.KindAbsence, at(2024, time.May, 15, 0, 0)),
	}

	first := Classify(date, events)
	second := Classify(date, events)
	assert.Equal(t, first, second)
}

func TestClassify_DuplicateKindKeepsEarliest(t *testing.T) {
	date := attendance.Date(2024, time.May, 15)
	events := []attendance.Event{
		event(testCPF, attendance.KindEntry, at(2024, time.May, 15, 8, 5)),
		event(testCPF, attendance.KindEntry, at(2024, time.May, 15, 8, 0)),
	}

	record := Classify(date, events)
	require.NotNil(t, record.Entry)
	assert.True(t, record.Entry.Equal(at(2024, time.May, 15, 8, 0)))
}
