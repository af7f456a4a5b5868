package attendance

import (
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/sector"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/worker"
)

const testCPF = "52998224725"

var brt = time.FixedZone("BRT", -3*60*60)

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, brt)
}

func event(subjectID string, kind attendance.Kind, ts time.Time) attendance.Event {
	return attendance.Event{
		ID:          string(kind) + ts.Format(time.RFC3339),
		SubjectID:   subjectID,
		Kind:        kind,
		Timestamp:   ts,
		CalendarDay: attendance.DateOf(ts, brt),
	}
}

func testWorker() worker.Worker {
	return worker.Worker{
		ID:        "w-1",
		SubjectID: testCPF,
		Name:      "Maria da Silva",
		SectorID:  "s-1",
		RestDays:  [7]bool{true, false, false, false, false, false, true},
	}
}

func testSector() sector.Sector {
	return sector.Sector{ID: "s-1", Name: "Portaria", EntryOffsetHours: 0.033, ExitOffsetHours: 0.033}
}
