package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/sector"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/jwt"
	attendanceService "github.com/cmlabs-hris/ponto-backend-go/internal/service/attendance"
)

type ReportServiceImpl struct {
	eventRepo  attendance.EventRepository
	workerRepo worker.WorkerRepository
	sectorRepo sector.SectorRepository
	builder    attendanceService.TableBuilder
	location   *time.Location
	maxDays    int
	now        func() time.Time
}

func NewReportService(
	eventRepo attendance.EventRepository,
	workerRepo worker.WorkerRepository,
	sectorRepo sector.SectorRepository,
	location *time.Location,
	maxDays int,
) *ReportServiceImpl {
	if location == nil {
		location = time.UTC
	}
	return &ReportServiceImpl{
		eventRepo:  eventRepo,
		workerRepo: workerRepo,
		sectorRepo: sectorRepo,
		builder:    attendanceService.NewTableBuilder(location),
		location:   location,
		maxDays:    maxDays,
		now:        time.Now,
	}
}

// authorizeReport lets plain users export only their own table.
func authorizeReport(ctx context.Context, req report.AttendanceReportRequest) error {
	p, ok := jwt.PrincipalFromContext(ctx)
	if !ok || p.Role.IsAdmin() {
		return nil
	}
	if req.SubjectID != nil && p.SubjectID != nil && *p.SubjectID == *req.SubjectID {
		return nil
	}
	return user.ErrSubjectMismatch
}

// ComposeAttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) ComposeAttendanceReport(ctx context.Context, req report.AttendanceReportRequest) (*bytes.Buffer, string, error) {
	req.MaxDays = s.maxDays
	if err := req.Validate(); err != nil {
		return nil, "", err
	}
	if err := authorizeReport(ctx, req); err != nil {
		return nil, "", err
	}

	var (
		tables   []WorkerTable
		filename string
		err      error
	)
	if req.SubjectID != nil && *req.SubjectID != "" {
		tables, err = s.workerTables(ctx, *req.SubjectID, req.FromDate, req.ToDate)
		filename = fmt.Sprintf("%s_%s", attendance.DateOf(s.now(), s.location).Format("2006-01-02"), *req.SubjectID)
	} else {
		var sectorName string
		tables, sectorName, err = s.sectorTables(ctx, *req.SectorID, req.FromDate, req.ToDate)
		filename = fmt.Sprintf("%s_%s_%s", safeFileName(sectorName), req.FromDate.Format("2006-01-02"), req.ToDate.Format("2006-01-02"))
	}
	if err != nil {
		return nil, "", err
	}

	doc := Compose(tables, req.FromDate, req.ToDate, req.Detailed)

	var buf *bytes.Buffer
	switch req.Format {
	case report.FormatPDF:
		buf, err = renderPDF(doc)
	case report.FormatXLSX:
		buf, err = renderXLSX(doc)
	default:
		return nil, "", report.ErrUnsupportedFormat
	}
	if err != nil {
		slog.Error("failed to render attendance report", "format", req.Format, "error", err)
		return nil, "", fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return buf, filename + "." + string(req.Format), nil
}

func (s *ReportServiceImpl) workerTables(ctx context.Context, subjectID string, from, to time.Time) ([]WorkerTable, error) {
	w, err := s.workerRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	sec, err := s.sectorRepo.GetByID(ctx, w.SectorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sector of worker %s: %w", w.SubjectID, err)
	}

	events, err := s.eventRepo.ListBySubjects(ctx, []string{w.SubjectID, attendance.SystemSubjectID}, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}

	return []WorkerTable{{
		Worker: w,
		Sector: sec,
		Days:   s.builder.Build(events, w, sec, from, to),
	}}, nil
}

func (s *ReportServiceImpl) sectorTables(ctx context.Context, sectorID string, from, to time.Time) ([]WorkerTable, string, error) {
	sec, err := s.sectorRepo.GetByID(ctx, sectorID)
	if err != nil {
		return nil, "", err
	}

	roster, err := s.workerRepo.ListBySector(ctx, sec.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list workers of sector: %w", err)
	}
	if len(roster) == 0 {
		return nil, "", report.ErrNoWorkers
	}

	events, err := s.eventRepo.ListBySector(ctx, sec.ID, from, to)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list attendance events: %w", err)
	}

	partition := attendanceService.NewPartition(events, s.location)
	tables := make([]WorkerTable, 0, len(roster))
	for _, w := range roster {
		tables = append(tables, WorkerTable{
			Worker: w,
			Sector: sec,
			Days:   s.builder.BuildFromPartition(partition, w, sec, from, to),
		})
	}
	return tables, sec.Name, nil
}

func safeFileName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		return "setor"
	}
	return name
}

var _ report.ReportService = (*ReportServiceImpl)(nil)
