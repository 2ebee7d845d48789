package timepoint

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *repoPG) List(ctx context.Context, personID int64) ([]*TimePoint, error) {
	rows, err := r.query(ctx,
		`SELECT tp_code, tp_datetime, tp_description FROM ListDolphTimePoints($1)`, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*TimePoint
	for rows.Next() {
		var tp TimePoint
		if err := rows.Scan(&tp.Code, &tp.Taken, &tp.Description); err != nil {
			return nil, err
		}
		items = append(items, &tp)
	}
	return items, rows.Err()
}

func (r *repoPG) ListImages(ctx context.Context, personID int64, code string) ([]*Image, error) {
	rows, err := r.query(ctx,
		`SELECT file_name FROM ListTimePointImgs($1, $2)`, personID, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.FileName); err != nil {
			return nil, err
		}
		items = append(items, &img)
	}
	return items, rows.Err()
}
