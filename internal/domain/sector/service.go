package sector

import "context"

type SectorService interface {
	Get(ctx context.Context, id string) (SectorResponse, error)
	List(ctx context.Context) ([]SectorResponse, error)
	Create(ctx context.Context, req CreateSectorRequest) (SectorResponse, error)
	Update(ctx context.Context, req UpdateSectorRequest) (SectorResponse, error)
	Delete(ctx context.Context, id string) error
}
