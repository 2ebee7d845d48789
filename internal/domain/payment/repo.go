package payment

import (
	"context"
	"time"
)

// Repository is the payment and exchange-rate data access contract.
// RateForDate returns (nil, nil) when no row exists for the date or the
// stored rate is NULL.
type Repository interface {
	ListPayments(ctx context.Context, personID int64, limit, offset int) ([]*Payment, int, error)
	ListActiveWork(ctx context.Context, personID int64) ([]*WorkBalance, error)
	RateForDate(ctx context.Context, date time.Time) (*float64, error)
	UpsertRate(ctx context.Context, date time.Time, rate float64) error
	AddInvoice(ctx context.Context, inv *Invoice) (int64, error)
}
