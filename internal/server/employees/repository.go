package employees

import "context"

// Repository is the storage contract for employee records. Lookups return
// shared.ErrorNotFound when no row matches.
type Repository interface {
	GetAll(ctx context.Context) ([]*Employee, error)
	GetByID(ctx context.Context, id int64) (*Employee, error)
	Create(ctx context.Context, e *Employee) (*Employee, error)
	Update(ctx context.Context, e *Employee) (*Employee, error)
	Delete(ctx context.Context, id int64) error
}
