package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/worker"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const workerSelect = `
	SELECT w.id, w.subject_id, w.name, w.sector_id, w.role_title, w.registration,
		   w.admission_date, w.rest_days, w.access_level, w.created_at, w.updated_at,
		   s.name
	FROM workers w
	JOIN sectors s ON s.id = w.sector_id
`

type workerRepositoryImpl struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepositoryImpl{db: db}
}

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var (
		w        worker.Worker
		restDays []bool
	)
	err := row.Scan(
		&w.ID, &w.SubjectID, &w.Name, &w.SectorID, &w.RoleTitle, &w.Registration,
		&w.AdmissionDate, &restDays, &w.AccessLevel, &w.CreatedAt, &w.UpdatedAt,
		&w.SectorName,
	)
	if err != nil {
		return worker.Worker{}, err
	}
	copy(w.RestDays[:], restDays)
	return w, nil
}

func (r *workerRepositoryImpl) queryWorkers(ctx context.Context, query string, args ...interface{}) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	workers := make([]worker.Worker, 0)
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workers: %w", err)
	}
	return workers, nil
}

// GetBySubjectID implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetBySubjectID(ctx context.Context, subjectID string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	w, err := scanWorker(q.QueryRow(ctx, workerSelect+` WHERE w.subject_id = $1`, subjectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker: %w", err)
	}
	return w, nil
}

// ListBySector implements worker.WorkerRepository.
func (r *workerRepositoryImpl) ListBySector(ctx context.Context, sectorID string) ([]worker.Worker, error) {
	return r.queryWorkers(ctx, workerSelect+` WHERE w.sector_id::text = $1 ORDER BY w.name`, sectorID)
}

// List implements worker.WorkerRepository.
func (r *workerRepositoryImpl) List(ctx context.Context, filter worker.WorkerFilter) ([]worker.Worker, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.SectorID != nil && *filter.SectorID != "" {
		args = append(args, *filter.SectorID)
		conditions = append(conditions, fmt.Sprintf("w.sector_id::text = $%d", len(args)))
	}
	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(w.name ILIKE $%d OR w.subject_id LIKE $%d)", len(args), len(args)))
	}

	query := workerSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY w.name"

	return r.queryWorkers(ctx, query, args...)
}

// Create implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO workers (subject_id, name, sector_id, role_title, registration, admission_date, rest_days, access_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		w.SubjectID,
		w.Name,
		w.SectorID,
		w.RoleTitle,
		w.Registration,
		w.AdmissionDate,
		w.RestDays[:],
		w.AccessLevel,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return w, nil
}

// Update implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Update(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers
		SET name = $2, sector_id = $3, role_title = $4, registration = $5,
			admission_date = $6, rest_days = $7, access_level = $8, updated_at = NOW()
		WHERE subject_id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		w.SubjectID,
		w.Name,
		w.SectorID,
		w.RoleTitle,
		w.Registration,
		w.AdmissionDate,
		w.RestDays[:],
		w.AccessLevel,
	).Scan(&w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to update worker: %w", err)
	}

	return w, nil
}
