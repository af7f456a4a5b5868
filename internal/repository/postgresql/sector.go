package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/sector"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type sectorRepositoryImpl struct {
	db *database.DB
}

func NewSectorRepository(db *database.DB) sector.SectorRepository {
	return &sectorRepositoryImpl{db: db}
}

// Create implements sector.SectorRepository.
func (r *sectorRepositoryImpl) Create(ctx context.Context, s sector.Sector) (sector.Sector, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sectors (name, entry_offset_hours, exit_offset_hours)
		VALUES ($1, $2, $3)
		RETURNING id, name, entry_offset_hours, exit_offset_hours, created_at, updated_at
	`

	var result sector.Sector
	err := q.QueryRow(ctx, query, s.Name, s.EntryOffsetHours, s.ExitOffsetHours).Scan(
		&result.ID,
		&result.Name,
		&result.EntryOffsetHours,
		&result.ExitOffsetHours,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		return sector.Sector{}, fmt.Errorf("failed to create sector: %w", err)
	}

	return result, nil
}

// GetByID implements sector.SectorRepository.
func (r *sectorRepositoryImpl) GetByID(ctx context.Context, id string) (sector.Sector, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, entry_offset_hours, exit_offset_hours, created_at, updated_at
		FROM sectors
		WHERE id::text = $1
	`

	var result sector.Sector
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&result.EntryOffsetHours,
		&result.ExitOffsetHours,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sector.Sector{}, sector.ErrSectorNotFound
		}
		return sector.Sector{}, fmt.Errorf("failed to get sector: %w", err)
	}

	return result, nil
}

// List implements sector.SectorRepository.
func (r *sectorRepositoryImpl) List(ctx context.Context) ([]sector.Sector, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, entry_offset_hours, exit_offset_hours, created_at, updated_at
		FROM sectors
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}
	defer rows.Close()

	sectors := make([]sector.Sector, 0)
	for rows.Next() {
		var s sector.Sector
		if err := rows.Scan(&s.ID, &s.Name, &s.EntryOffsetHours, &s.ExitOffsetHours, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sector: %w", err)
		}
		sectors = append(sectors, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sectors: %w", err)
	}

	return sectors, nil
}

// Update implements sector.SectorRepository.
func (r *sectorRepositoryImpl) Update(ctx context.Context, s sector.Sector) (sector.Sector, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sectors
		SET name = $2, entry_offset_hours = $3, exit_offset_hours = $4, updated_at = NOW()
		WHERE id::text = $1
		RETURNING id, name, entry_offset_hours, exit_offset_hours, created_at, updated_at
	`

	var result sector.Sector
	err := q.QueryRow(ctx, query, s.ID, s.Name, s.EntryOffsetHours, s.ExitOffsetHours).Scan(
		&result.ID,
		&result.Name,
		&result.EntryOffsetHours,
		&result.ExitOffsetHours,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sector.Sector{}, sector.ErrSectorNotFound
		}
		return sector.Sector{}, fmt.Errorf("failed to update sector: %w", err)
	}

	return result, nil
}

// Delete implements sector.SectorRepository.
func (r *sectorRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM sectors WHERE id::text = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sector: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sector.ErrSectorNotFound
	}
	return nil
}
