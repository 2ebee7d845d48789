package dolphin

import (
	"context"
	"errors"
	"time"

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

// =========== Platform repository (Dolphin database) ===========

type platformRepoPG struct{ pool *pgxpool.Pool }

func NewPlatformRepoPG(pool *pgxpool.Pool) PlatformRepository {
	return &platformRepoPG{pool: pool}
}

func (r *platformRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// CheckDolphin reports 1 when the patient is registered, 0 or -1 when not.
// The sentinel convention is folded into a bool here.
func (r *platformRepoPG) PatientExists(ctx context.Context, personID int64) (bool, error) {
	var result int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT CheckDolphin($1)`, personID).Scan(&result); err != nil {
		return false, err
	}
	return result > 0, nil
}

func (r *platformRepoPG) CreatePatient(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `SELECT AddDolph($1, $2, $3, $4, $5)`,
		p.PersonID, p.FirstName, p.LastName, p.BirthDate, p.Gender)
	return err
}

func (r *platformRepoPG) TimePointExists(ctx context.Context, personID int64, code string) (bool, error) {
	var result int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT ChkTimePoint($1, $2)`, personID, code).Scan(&result); err != nil {
		return false, err
	}
	return result > 0, nil
}

func (r *platformRepoPG) CreateTimePoint(ctx context.Context, tp *TimePoint) error {
	_, err := r.conn(ctx).Exec(ctx, `SELECT AddTimePoint($1, $2, $3, $4)`,
		tp.PersonID, tp.Code, tp.Taken, tp.Description)
	return err
}

func (r *platformRepoPG) ListAppointments(ctx context.Context, personID int64) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT appo_date, descr FROM ApposforOne($1)`, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.Date, &a.Description); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

func (r *platformRepoPG) ListVisitPhotos(ctx context.Context, personID int64) ([]*VisitPhoto, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT work_id, visit_date, has_photo, photo_date FROM VisitsPhotoforOne($1)`, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*VisitPhoto
	for rows.Next() {
		var v VisitPhoto
		if err := rows.Scan(&v.WorkID, &v.VisitDate, &v.HasPhoto, &v.PhotoDate); err != nil {
			return nil, err
		}
		items = append(items, &v)
	}
	return items, rows.Err()
}

// =========== Clinic repository (clinic database) ===========

type clinicRepoPG struct{ pool *pgxpool.Pool }

func NewClinicRepoPG(pool *pgxpool.Pool) ClinicRepository {
	return &clinicRepoPG{pool: pool}
}

func (r *clinicRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *clinicRepoPG) GetPatientDetail(ctx context.Context, personID int64) (*PatientDetail, error) {
	var d PatientDetail
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT person_id, first_name, last_name, dob, gender
		FROM tblpatients WHERE person_id = $1`, personID).
		Scan(&d.PersonID, &d.FirstName, &d.LastName, &d.BirthDate, &d.Gender)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetPhotoDate reads a recorded override that disagrees with the visit
// date; agreement or no override both mean "no conflict".
func (r *clinicRepoPG) GetPhotoDate(ctx context.Context, workID int64, visitDate time.Time) (*time.Time, error) {
	var photoDate time.Time
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT photo_date FROM tblwork
		WHERE work_id = $1 AND photo_date IS NOT NULL AND photo_date <> $2`,
		workID, visitDate).Scan(&photoDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &photoDate, nil
}

func (r *clinicRepoPG) SetPhotoDate(ctx context.Context, workID int64, photoDate time.Time) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE tblwork SET photo_date = $2 WHERE work_id = $1`, workID, photoDate)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
