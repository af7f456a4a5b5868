package master

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/sector"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/jwt"
)

type workerServiceImpl struct {
	workerRepo worker.WorkerRepository
	sectorRepo sector.SectorRepository
}

func NewWorkerService(workerRepo worker.WorkerRepository, sectorRepo sector.SectorRepository) worker.WorkerService {
	return &workerServiceImpl{
		workerRepo: workerRepo,
		sectorRepo: sectorRepo,
	}
}

// Get lets plain users read only their own registration.
func (s *workerServiceImpl) Get(ctx context.Context, subjectID string) (worker.WorkerResponse, error) {
	if p, ok := jwt.PrincipalFromContext(ctx); ok && !p.Role.IsAdmin() {
		if p.SubjectID == nil || *p.SubjectID != subjectID {
			return worker.WorkerResponse{}, user.ErrSubjectMismatch
		}
	}

	found, err := s.workerRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return worker.NewWorkerResponse(found), nil
}

func (s *workerServiceImpl) List(ctx context.Context, filter worker.WorkerFilter) ([]worker.WorkerResponse, error) {
	workers, err := s.workerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		responses = append(responses, worker.NewWorkerResponse(w))
	}
	return responses, nil
}

func (s *workerServiceImpl) Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	sec, err := s.sectorRepo.GetByID(ctx, req.SectorID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	entity := worker.Worker{
		SubjectID:     req.SubjectID,
		Name:          req.Name,
		SectorID:      sec.ID,
		RoleTitle:     req.RoleTitle,
		Registration:  req.Registration,
		AdmissionDate: req.AdmissionDateParsed,
		AccessLevel:   user.Role(req.AccessLevel),
	}
	if req.RestDays != nil {
		entity.RestDays = *req.RestDays
	}

	created, err := s.workerRepo.Create(ctx, entity)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return worker.WorkerResponse{}, worker.ErrSubjectIDExists
		}
		return worker.WorkerResponse{}, fmt.Errorf("failed to create worker: %w", err)
	}
	created.SectorName = sec.Name

	slog.Info("worker created", "subject_id", created.SubjectID, "sector_id", created.SectorID)
	return worker.NewWorkerResponse(created), nil
}

func (s *workerServiceImpl) Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	existing, err := s.workerRepo.GetBySubjectID(ctx, req.SubjectID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.SectorID != nil && *req.SectorID != existing.SectorID {
		sec, err := s.sectorRepo.GetByID(ctx, *req.SectorID)
		if err != nil {
			return worker.WorkerResponse{}, err
		}
		existing.SectorID = sec.ID
		existing.SectorName = sec.Name
	}
	if req.RoleTitle != nil {
		existing.RoleTitle = req.RoleTitle
	}
	if req.Registration != nil {
		existing.Registration = req.Registration
	}
	if req.AdmissionDateParsed != nil {
		existing.AdmissionDate = req.AdmissionDateParsed
	}
	if req.RestDays != nil {
		existing.RestDays = *req.RestDays
	}
	if req.AccessLevel != nil {
		existing.AccessLevel = user.Role(*req.AccessLevel)
	}

	updated, err := s.workerRepo.Update(ctx, existing)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to update worker: %w", err)
	}
	if updated.SectorName == "" {
		updated.SectorName = existing.SectorName
	}
	return worker.NewWorkerResponse(updated), nil
}
