package worker

import "context"

type WorkerRepository interface {
	// GetBySubjectID returns ErrWorkerNotFound when no worker carries the CPF
	GetBySubjectID(ctx context.Context, subjectID string) (Worker, error)

	// ListBySector returns the roster of a sector ordered by name
	ListBySector(ctx context.Context, sectorID string) ([]Worker, error)

	List(ctx context.Context, filter WorkerFilter) ([]Worker, error)
	Create(ctx context.Context, w Worker) (Worker, error)
	Update(ctx context.Context, w Worker) (Worker, error)
}
