package payment

import (
	"context"
	"errors"
	"fmt"
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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) ListPayments(ctx context.Context, personID int64, limit, offset int) ([]*Payment, int, error) {
	var total int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*)
		FROM tblInvoice i
		JOIN tblwork w ON w.work_id = i.work_id
		WHERE w.person_id = $1`, personID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT i.invoice_id, i.work_id, p.person_id,
			p.first_name || ' ' || p.last_name AS patient_name, w.work_type,
			i.amount_paid, i.amount_paid_usd, i.amount_received, i.amount_received_usd,
			i.change_due, i.payment_date, i.notes
		FROM tblInvoice i
		JOIN tblwork w ON w.work_id = i.work_id
		JOIN tblpatients p ON p.person_id = w.person_id
		WHERE p.person_id = $1
		ORDER BY i.payment_date DESC, i.invoice_id DESC
		LIMIT $2 OFFSET $3`, personID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Payment
	for rows.Next() {
		var pay Payment
		if err := rows.Scan(&pay.InvoiceID, &pay.WorkID, &pay.PersonID,
			&pay.PatientName, &pay.WorkType,
			&pay.AmountPaid, &pay.AmountPaidUSD, &pay.AmountReceived, &pay.AmountReceivedUSD,
			&pay.ChangeDue, &pay.PaymentDate, &pay.Notes); err != nil {
			return nil, 0, err
		}
		items = append(items, &pay)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListActiveWork(ctx context.Context, personID int64) ([]*WorkBalance, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT w.work_id, w.work_type, w.total_required,
			COALESCE(SUM(i.amount_paid), 0) AS total_paid,
			w.total_required - COALESCE(SUM(i.amount_paid), 0) AS remaining
		FROM tblwork w
		LEFT JOIN tblInvoice i ON i.work_id = w.work_id
		WHERE w.person_id = $1 AND w.active
		GROUP BY w.work_id, w.work_type, w.total_required
		ORDER BY w.work_id`, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*WorkBalance
	for rows.Next() {
		var wb WorkBalance
		if err := rows.Scan(&wb.WorkID, &wb.WorkType, &wb.TotalRequired, &wb.TotalPaid, &wb.Remaining); err != nil {
			return nil, err
		}
		items = append(items, &wb)
	}
	return items, rows.Err()
}

func (r *repoPG) RateForDate(ctx context.Context, date time.Time) (*float64, error) {
	var rate *float64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT rate FROM tblexchange WHERE rate_date = $1`, date).Scan(&rate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rate, nil
}

// UpsertRate keeps exactly one row per calendar day; a repeated call for
// the same day overwrites the stored rate.
func (r *repoPG) UpsertRate(ctx context.Context, date time.Time, rate float64) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO tblexchange (rate_date, rate) VALUES ($1, $2)
		ON CONFLICT (rate_date) DO UPDATE SET rate = EXCLUDED.rate`, date, rate)
	return err
}

func (r *repoPG) AddInvoice(ctx context.Context, inv *Invoice) (int64, error) {
	var id int64
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO tblInvoice (work_id, amount_paid, amount_paid_usd,
			amount_received, amount_received_usd, change_due, payment_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING invoice_id`,
		inv.WorkID, inv.AmountPaid, inv.AmountPaidUSD,
		inv.AmountReceived, inv.AmountReceivedUSD, inv.ChangeDue, inv.PaymentDate, inv.Notes).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("insert invoice returned no row")
	}
	if err != nil {
		return 0, err
	}
	inv.InvoiceID = id
	return id, nil
}
