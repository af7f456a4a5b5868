package sector

import "context"

type SectorRepository interface {
	GetByID(ctx context.Context, id string) (Sector, error)
	List(ctx context.Context) ([]Sector, error)
	Create(ctx context.Context, s Sector) (Sector, error)
	Update(ctx context.Context, s Sector) (Sector, error)
	Delete(ctx context.Context, id string) error
}
