package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/sector"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/redis"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/ponto-backend-go/internal/service/file"
)

const evidenceURLExpiry = 15 * time.Minute

// PunchLocker serializes punch workflows of one subject across instances.
type PunchLocker interface {
	AcquirePunchLock(ctx context.Context, subjectID string) (func(context.Context) error, error)
}

type Config struct {
	Cooldown     time.Duration
	Location     *time.Location
	MaxRangeDays int
}

type AttendanceServiceImpl struct {
	attendance.EventRepository
	worker.WorkerRepository
	sector.SectorRepository
	fileService file.FileService
	locker      PunchLocker

	engine   Engine
	builder  TableBuilder
	location *time.Location
	maxDays  int
	now      func() time.Time
}

func NewAttendanceService(
	eventRepo attendance.EventRepository,
	workerRepo worker.WorkerRepository,
	sectorRepo sector.SectorRepository,
	fileService file.FileService,
	locker PunchLocker,
	cfg Config,
) *AttendanceServiceImpl {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &AttendanceServiceImpl{
		EventRepository:  eventRepo,
		WorkerRepository: workerRepo,
		SectorRepository: sectorRepo,
		fileService:      fileService,
		locker:           locker,
		engine:           NewEngine(cfg.Cooldown, cfg.Location),
		builder:          NewTableBuilder(cfg.Location),
		location:         cfg.Location,
		maxDays:          cfg.MaxRangeDays,
		now:              time.Now,
	}
}

// authorizeSubject lets plain users read only their own data. Calls without a
// principal come from inside the process and are trusted.
func authorizeSubject(ctx context.Context, subjectID string) error {
	p, ok := jwt.PrincipalFromContext(ctx)
	if !ok || p.Role.IsAdmin() {
		return nil
	}
	if p.Role == user.RoleUser && p.SubjectID != nil && *p.SubjectID == subjectID {
		return nil
	}
	return user.ErrSubjectMismatch
}

func canPunch(ctx context.Context) bool {
	p, ok := jwt.PrincipalFromContext(ctx)
	return !ok || user.HasPermission(p.Role, user.PermissionPunchCreate)
}

func rejection(subjectID string, code attendance.ResultCode) attendance.PunchResponse {
	return attendance.PunchResponse{
		Result:    code,
		Message:   code.Message(),
		SubjectID: subjectID,
	}
}

// BuildTable implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) BuildTable(ctx context.Context, req attendance.TableRequest) (attendance.TableResponse, error) {
	req.MaxDays = s.maxDays
	if err := req.Validate(); err != nil {
		return attendance.TableResponse{}, err
	}
	if err := authorizeSubject(ctx, req.SubjectID); err != nil {
		return attendance.TableResponse{}, err
	}

	w, err := s.WorkerRepository.GetBySubjectID(ctx, req.SubjectID)
	if err != nil {
		return attendance.TableResponse{}, err
	}

	sec, err := s.SectorRepository.GetByID(ctx, w.SectorID)
	if err != nil {
		return attendance.TableResponse{}, fmt.Errorf("failed to get sector of worker %s: %w", w.SubjectID, err)
	}

	events, err := s.EventRepository.ListBySubjects(ctx, []string{w.SubjectID, attendance.SystemSubjectID}, req.FromDate, req.ToDate)
	if err != nil {
		return attendance.TableResponse{}, fmt.Errorf("failed to list attendance events: %w", err)
	}

	records := s.builder.Build(events, w, sec, req.FromDate, req.ToDate)

	days := make([]attendance.DayRecordResponse, 0, len(records))
	for _, r := range records {
		days = append(days, attendance.NewDayRecordResponse(r))
	}

	return attendance.TableResponse{
		SubjectID:  w.SubjectID,
		WorkerName: w.Name,
		SectorName: sec.Name,
		From:       req.FromDate.Format("2006-01-02"),
		To:         req.ToDate.Format("2006-01-02"),
		Days:       days,
	}, nil
}

// lookupWorker returns nil when the subject is malformed or unknown.
func (s *AttendanceServiceImpl) lookupWorker(ctx context.Context, subjectID string) (*worker.Worker, error) {
	if !validator.IsValidCPF(subjectID) {
		return nil, nil
	}
	w, err := s.WorkerRepository.GetBySubjectID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	return &w, nil
}

// snapshot loads today's events of the subject and the calendar-wide ones.
func (s *AttendanceServiceImpl) snapshot(ctx context.Context, w *worker.Worker, now time.Time) (Snapshot, error) {
	snap := Snapshot{Worker: w}
	if w == nil {
		return snap, nil
	}
	today := attendance.DateOf(now, s.location)
	events, err := s.EventRepository.ListBySubjects(ctx, []string{w.SubjectID, attendance.SystemSubjectID}, today, today)
	if err != nil {
		return snap, fmt.Errorf("failed to list today's events: %w", err)
	}
	snap.Events = events
	return snap, nil
}

// PreviewPunch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PreviewPunch(ctx context.Context, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}
	if !canPunch(ctx) {
		return rejection(req.SubjectID, attendance.ResultUnauthorized), nil
	}

	w, err := s.lookupWorker(ctx, req.SubjectID)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	now := s.now()
	snap, err := s.snapshot(ctx, w, now)
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	decision := s.engine.Evaluate(snap, now)
	resp := rejection(req.SubjectID, decision.Result)
	if w != nil {
		resp.WorkerName = &w.Name
	}
	if decision.Accepted() {
		kind := decision.Kind
		resp.Kind = &kind
		resp.Message = "Punch allowed"
	}
	return resp, nil
}

// EvaluatePunch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EvaluatePunch(ctx context.Context, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}
	if !canPunch(ctx) {
		return rejection(req.SubjectID, attendance.ResultUnauthorized), nil
	}

	w, err := s.lookupWorker(ctx, req.SubjectID)
	if err != nil {
		return attendance.PunchResponse{}, err
	}
	if w == nil {
		return rejection(req.SubjectID, attendance.ResultInvalidSubject), nil
	}

	if err := req.ValidateEvidence(); err != nil {
		return attendance.PunchResponse{}, err
	}

	release, err := s.locker.AcquirePunchLock(ctx, w.SubjectID)
	if err != nil {
		if errors.Is(err, redis.ErrLocked) {
			// Another terminal is recording a punch for the same worker right now.
			return rejection(w.SubjectID, attendance.ResultCooldown), nil
		}
		return attendance.PunchResponse{}, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("failed to release punch lock", "subject_id", w.SubjectID, "error", err)
		}
	}()

	var (
		resp        attendance.PunchResponse
		evidenceRef string
	)

	err = s.EventRepository.WithSubjectLock(ctx, w.SubjectID, func(txCtx context.Context) error {
		now := s.now()
		snap, err := s.snapshot(txCtx, w, now)
		if err != nil {
			return err
		}

		decision := s.engine.Evaluate(snap, now)
		if !decision.Accepted() {
			resp = rejection(w.SubjectID, decision.Result)
			return nil
		}

		today := attendance.DateOf(now, s.location)
		evidenceRef, err = s.fileService.UploadPunchEvidence(txCtx, w.SubjectID, today, string(decision.Kind), req.File, req.FileHeader.Filename)
		if err != nil {
			return fmt.Errorf("failed to store punch evidence: %w", err)
		}

		ev, err := s.EventRepository.Append(txCtx, attendance.Event{
			SubjectID:   w.SubjectID,
			Kind:        decision.Kind,
			Timestamp:   now,
			CalendarDay: today,
			EvidenceRef: &evidenceRef,
		})
		if err != nil {
			return err
		}

		kind := ev.Kind
		ts := ev.Timestamp
		id := ev.ID
		resp = attendance.PunchResponse{
			Result:     attendance.ResultOK,
			Message:    attendance.ResultOK.Message(),
			SubjectID:  w.SubjectID,
			WorkerName: &w.Name,
			Kind:       &kind,
			Timestamp:  &ts,
			EventID:    &id,
		}
		return nil
	})

	if err != nil {
		if evidenceRef != "" {
			if delErr := s.fileService.DeleteFile(context.WithoutCancel(ctx), evidenceRef); delErr != nil {
				slog.Warn("failed to remove orphaned punch evidence", "path", evidenceRef, "error", delErr)
			}
		}
		if errors.Is(err, attendance.ErrEventConflict) {
			return rejection(w.SubjectID, attendance.ResultCooldown), nil
		}
		return attendance.PunchResponse{}, err
	}

	if resp.Result == attendance.ResultOK {
		slog.Info("punch recorded", "subject_id", w.SubjectID, "kind", *resp.Kind)
	}
	return resp, nil
}

// RecordException implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordException(ctx context.Context, req attendance.ExceptionRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	if req.SubjectID != attendance.SystemSubjectID {
		if _, err := s.WorkerRepository.GetBySubjectID(ctx, req.SubjectID); err != nil {
			return attendance.EventResponse{}, err
		}
	}

	day := req.DateParsed
	var (
		created       attendance.Event
		attachmentRef string
	)

	err := s.EventRepository.WithSubjectLock(ctx, req.SubjectID, func(txCtx context.Context) error {
		existing, err := s.EventRepository.ListBySubjects(txCtx, []string{req.SubjectID}, day, day)
		if err != nil {
			return fmt.Errorf("failed to list events of the day: %w", err)
		}
		for _, e := range existing {
			if e.Kind.IsException() {
				return attendance.ErrExceptionExists
			}
		}

		var ref *string
		if req.File != nil && req.FileHeader != nil {
			attachmentRef, err = s.fileService.UploadExceptionAttachment(txCtx, req.SubjectID, day, req.File, req.FileHeader.Filename)
			if err != nil {
				return fmt.Errorf("failed to store exception attachment: %w", err)
			}
			ref = &attachmentRef
		}

		created, err = s.EventRepository.Append(txCtx, attendance.Event{
			SubjectID:   req.SubjectID,
			Kind:        req.Kind,
			Timestamp:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.location),
			CalendarDay: day,
			EvidenceRef: ref,
		})
		return err
	})

	if err != nil {
		if attachmentRef != "" {
			if delErr := s.fileService.DeleteFile(context.WithoutCancel(ctx), attachmentRef); delErr != nil {
				slog.Warn("failed to remove orphaned attachment", "path", attachmentRef, "error", delErr)
			}
		}
		if errors.Is(err, attendance.ErrEventConflict) {
			return attendance.EventResponse{}, attendance.ErrExceptionExists
		}
		return attendance.EventResponse{}, err
	}

	slog.Info("attendance exception recorded", "subject_id", created.SubjectID, "kind", created.Kind, "date", day.Format("2006-01-02"))
	return attendance.NewEventResponse(created), nil
}

// RemoveEvent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RemoveEvent(ctx context.Context, req attendance.RemoveEventRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	removed, err := s.EventRepository.Delete(ctx, req.SubjectID, req.DateParsed, req.Kind)
	if err != nil {
		return err
	}

	if removed.EvidenceRef != nil {
		if err := s.fileService.DeleteFile(ctx, *removed.EvidenceRef); err != nil {
			slog.Warn("failed to remove evidence of deleted event", "path", *removed.EvidenceRef, "error", err)
		}
	}

	slog.Info("attendance event removed", "subject_id", req.SubjectID, "kind", req.Kind, "date", req.Date)
	return nil
}

// ListEvents implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListEvents(ctx context.Context, filter attendance.EventFilter) ([]attendance.EventResponse, error) {
	filter.MaxDays = s.maxDays
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeSubject(ctx, filter.SubjectID); err != nil {
		return nil, err
	}

	events, err := s.EventRepository.ListBySubjects(ctx, []string{filter.SubjectID}, filter.FromDate, filter.ToDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, e := range events {
		resp := attendance.NewEventResponse(e)
		if e.EvidenceRef != nil {
			url, err := s.fileService.GetFileURL(ctx, *e.EvidenceRef, evidenceURLExpiry)
			if err != nil {
				slog.Warn("failed to build evidence url", "path", *e.EvidenceRef, "error", err)
			} else {
				resp.EvidenceURL = &url
			}
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

var _ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)
