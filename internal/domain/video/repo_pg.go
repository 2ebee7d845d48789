package video

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const videoCols = `vid_id, vid_description, cat_id, cat_name, file_name, details`

func scanVideo(row pgx.Row) (*Video, error) {
	var v Video
	err := row.Scan(&v.ID, &v.Description, &v.CategoryID, &v.CategoryName, &v.FileName, &v.Details)
	return &v, err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Video, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM V_Videos`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+videoCols+` FROM V_Videos ORDER BY vid_id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Video, error) {
	v, err := scanVideo(r.conn(ctx).QueryRow(ctx, `SELECT `+videoCols+` FROM V_Videos WHERE vid_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *repoPG) GetRecord(ctx context.Context, id int64) (*Record, error) {
	var rec Record
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT vid_id, vid_description, cat_id, file_name, details
		FROM tblvideos WHERE vid_id = $1`, id).
		Scan(&rec.ID, &rec.Description, &rec.CategoryID, &rec.FileName, &rec.Details)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repoPG) Create(ctx context.Context, rec *Record) (int64, error) {
	var id int64
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO tblvideos (vid_description, cat_id, file_name, details)
		VALUES ($1, $2, $3, $4)
		RETURNING vid_id`,
		rec.Description, rec.CategoryID, rec.FileName, rec.Details).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("insert video returned no row")
	}
	if err != nil {
		return 0, err
	}
	rec.ID = id
	return id, nil
}

// Update writes only the fields named by u. The caller guarantees u is not
// empty.
func (r *repoPG) Update(ctx context.Context, id int64, u Update) (bool, error) {
	set := make([]string, 0, 4)
	args := []interface{}{id}
	add := func(col string, val interface{}) {
		args = append(args, val)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if u.Description != nil {
		add("vid_description", *u.Description)
	}
	if u.CategoryID != nil {
		add("cat_id", *u.CategoryID)
	}
	if u.FileName != nil {
		add("file_name", *u.FileName)
	}
	if u.Details != nil {
		add("details", *u.Details)
	}
	if len(set) == 0 {
		return false, nil
	}

	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE tblvideos SET `+strings.Join(set, ", ")+` WHERE vid_id = $1`, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repoPG) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM tblvideos WHERE vid_id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repoPG) ListCategories(ctx context.Context) ([]*Category, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT cat_id, cat_name FROM tblVidCat ORDER BY cat_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		items = append(items, &c)
	}
	return items, rows.Err()
}

func (r *repoPG) OptionValue(ctx context.Context, name string) (*string, error) {
	var value *string
	err := r.conn(ctx).QueryRow(ctx, `SELECT option_value FROM tbloptions WHERE option_name = $1`, name).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}
