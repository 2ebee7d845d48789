package video

import "context"

// Repository is the video catalog data access contract. Lookups of an
// unknown id return (nil, nil); mutations report whether a row was
// affected.
type Repository interface {
	List(ctx context.Context, limit, offset int) ([]*Video, int, error)
	GetByID(ctx context.Context, id int64) (*Video, error)
	GetRecord(ctx context.Context, id int64) (*Record, error)
	Create(ctx context.Context, rec *Record) (int64, error)
	Update(ctx context.Context, id int64, u Update) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	OptionValue(ctx context.Context, name string) (*string, error)
}
