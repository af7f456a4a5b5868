package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/sector"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type stubEvents struct {
	attendance.EventRepository
	events []attendance.Event
}

func (s stubEvents) ListBySubjects(ctx context.Context, ids []string, from, to time.Time) ([]attendance.Event, error) {
	return s.events, nil
}

func (s stubEvents) ListBySector(ctx context.Context, sectorID string, from, to time.Time) ([]attendance.Event, error) {
	return s.events, nil
}

type stubWorkers struct {
	worker.WorkerRepository
	workers []worker.Worker
}

func (s stubWorkers) GetBySubjectID(ctx context.Context, subjectID string) (worker.Worker, error) {
	for _, w := range s.workers {
		if w.SubjectID == subjectID {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (s stubWorkers) ListBySector(ctx context.Context, sectorID string) ([]worker.Worker, error) {
	var out []worker.Worker
	for _, w := range s.workers {
		if w.SectorID == sectorID {
			out = append(out, w)
		}
	}
	return out, nil
}

type stubSectors struct {
	sector.SectorRepository
	sectors []sector.Sector
}

func (s stubSectors) GetByID(ctx context.Context, id string) (sector.Sector, error) {
	for _, sec := range s.sectors {
		if sec.ID == id {
			return sec, nil
		}
	}
	return sector.Sector{}, sector.ErrSectorNotFound
}

func newTestService(events []attendance.Event) *ReportServiceImpl {
	workers := stubWorkers{workers: []worker.Worker{
		{SubjectID: "52998224725", Name: "Maria da Silva", SectorID: "s-1"},
		{SubjectID: "11144477735", Name: "José Souza", SectorID: "s-1"},
	}}
	sectors := stubSectors{sectors: []sector.Sector{
		{ID: "s-1", Name: "Portaria"},
		{ID: "s-2", Name: "Vazio"},
	}}
	svc := NewReportService(stubEvents{events: events}, workers, sectors, time.UTC, 366)
	svc.now = func() time.Time { return time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func strPtr(s string) *string { return &s }

func TestComposeAttendanceReport_WorkerPDF(t *testing.T) {
	events := []attendance.Event{{
		SubjectID:   "52998224725",
		Kind:        attendance.KindEntry,
		Timestamp:   time.Date(2024, time.May, 13, 8, 0, 0, 0, time.UTC),
		CalendarDay: attendance.Date(2024, time.May, 13),
	}}
	svc := newTestService(events)

	buf, filename, err := svc.ComposeAttendanceReport(context.Background(), report.AttendanceReportRequest{
		SubjectID: strPtr("529.982.247-25"),
		From:      "2024-05-01",
		To:        "2024-05-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01_52998224725.pdf", filename)
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}

func TestComposeAttendanceReport_SectorXLSX(t *testing.T) {
	svc := newTestService(nil)

	buf, filename, err := svc.ComposeAttendanceReport(context.Background(), report.AttendanceReportRequest{
		SectorID: strPtr("s-1"),
		From:     "2024-05-01",
		To:       "2024-05-07",
		Format:   report.FormatXLSX,
		Detailed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Portaria_2024-05-01_2024-05-07.xlsx", filename)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"MARIA DA SILVA", "JOSÉ SOUZA"}, f.GetSheetList())

	rows, err := f.GetRows("JOSÉ SOUZA")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Contains(t, rows[0][0], "PLANILHA DE HORÁRIOS")

	last := rows[len(rows)-1]
	assert.Equal(t, []string{"07/05 - ter", "---", "---", "---", "---"}, last)
}

func TestComposeAttendanceReport_Errors(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	_, _, err := svc.ComposeAttendanceReport(ctx, report.AttendanceReportRequest{SectorID: strPtr("s-2"), From: "2024-05-01", To: "2024-05-02"})
	assert.ErrorIs(t, err, report.ErrNoWorkers)

	_, _, err = svc.ComposeAttendanceReport(ctx, report.AttendanceReportRequest{SectorID: strPtr("s-9"), From: "2024-05-01", To: "2024-05-02"})
	assert.ErrorIs(t, err, sector.ErrSectorNotFound)

	_, _, err = svc.ComposeAttendanceReport(ctx, report.AttendanceReportRequest{SubjectID: strPtr("12345678909"), From: "2024-05-01", To: "2024-05-02"})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)

	var verrs validator.ValidationErrors
	_, _, err = svc.ComposeAttendanceReport(ctx, report.AttendanceReportRequest{From: "2024-05-01", To: "2024-05-02"})
	assert.ErrorAs(t, err, &verrs)

	_, _, err = svc.ComposeAttendanceReport(ctx, report.AttendanceReportRequest{SectorID: strPtr("s-1"), From: "2024-05-01", To: "2024-05-02", Format: "csv"})
	assert.ErrorAs(t, err, &verrs)
}
