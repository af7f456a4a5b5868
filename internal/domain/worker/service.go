package worker

import "context"

type WorkerService interface {
	Get(ctx context.Context, subjectID string) (WorkerResponse, error)
	List(ctx context.Context, filter WorkerFilter) ([]WorkerResponse, error)
	Create(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	Update(ctx context.Context, req UpdateWorkerRequest) (WorkerResponse, error)
}
