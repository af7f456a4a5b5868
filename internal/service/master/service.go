package master

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/sector"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

type sectorServiceImpl struct {
	sectorRepo sector.SectorRepository
}

func NewSectorService(sectorRepo sector.SectorRepository) sector.SectorService {
	return &sectorServiceImpl{sectorRepo: sectorRepo}
}

func (s *sectorServiceImpl) Get(ctx context.Context, id string) (sector.SectorResponse, error) {
	found, err := s.sectorRepo.GetByID(ctx, id)
	if err != nil {
		return sector.SectorResponse{}, err
	}
	return sector.NewSectorResponse(found), nil
}

func (s *sectorServiceImpl) List(ctx context.Context) ([]sector.SectorResponse, error) {
	sectors, err := s.sectorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}

	responses := make([]sector.SectorResponse, 0, len(sectors))
	for _, sec := range sectors {
		responses = append(responses, sector.NewSectorResponse(sec))
	}
	return responses, nil
}

func (s *sectorServiceImpl) Create(ctx context.Context, req sector.CreateSectorRequest) (sector.SectorResponse, error) {
	if err := req.Validate(); err != nil {
		return sector.SectorResponse{}, err
	}

	created, err := s.sectorRepo.Create(ctx, sector.Sector{
		Name:             req.Name,
		EntryOffsetHours: req.EntryOffsetHours,
		ExitOffsetHours:  req.ExitOffsetHours,
	})
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return sector.SectorResponse{}, sector.ErrSectorNameExists
		}
		return sector.SectorResponse{}, fmt.Errorf("failed to create sector: %w", err)
	}

	slog.Info("sector created", "sector_id", created.ID, "name", created.Name)
	return sector.NewSectorResponse(created), nil
}

func (s *sectorServiceImpl) Update(ctx context.Context, req sector.UpdateSectorRequest) (sector.SectorResponse, error) {
	if err := req.Validate(); err != nil {
		return sector.SectorResponse{}, err
	}

	updated, err := s.sectorRepo.Update(ctx, sector.Sector{
		ID:               req.ID,
		Name:             req.Name,
		EntryOffsetHours: req.EntryOffsetHours,
		ExitOffsetHours:  req.ExitOffsetHours,
	})
	if err != nil {
		if errors.Is(err, sector.ErrSectorNotFound) {
			return sector.SectorResponse{}, err
		}
		if pgErrorCode(err) == pgUniqueViolation {
			return sector.SectorResponse{}, sector.ErrSectorNameExists
		}
		return sector.SectorResponse{}, fmt.Errorf("failed to update sector: %w", err)
	}
	return sector.NewSectorResponse(updated), nil
}

func (s *sectorServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.sectorRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sector.ErrSectorNotFound) {
			return err
		}
		if pgErrorCode(err) == pgForeignKeyViolation {
			return sector.ErrSectorInUse
		}
		return fmt.Errorf("failed to delete sector: %w", err)
	}

	slog.Info("sector deleted", "sector_id", id)
	return nil
}
