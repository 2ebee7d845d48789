package payment

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// truncate to the calendar day; the exchange table is keyed by date.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Service) ListPayments(ctx context.Context, personID int64, limit, offset int) ([]*Payment, int, error) {
	return s.repo.ListPayments(ctx, personID, limit, offset)
}

func (s *Service) ListActiveWork(ctx context.Context, personID int64) ([]*WorkBalance, error) {
	return s.repo.ListActiveWork(ctx, personID)
}

// CurrentExchangeRate resolves "today" against the service clock and
// returns that day with its rate, nil when none is recorded. Callers echo
// the returned day so the reported date always matches the row read.
func (s *Service) CurrentExchangeRate(ctx context.Context) (time.Time, *float64, error) {
	d := day(s.now())
	rate, err := s.repo.RateForDate(ctx, d)
	return d, rate, err
}

func (s *Service) ExchangeRateForDate(ctx context.Context, date time.Time) (*float64, error) {
	return s.repo.RateForDate(ctx, day(date))
}

func (s *Service) SetCurrentExchangeRate(ctx context.Context, rate float64) error {
	return s.SetExchangeRateForDate(ctx, s.now(), rate)
}

func (s *Service) SetExchangeRateForDate(ctx context.Context, date time.Time, rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("exchange rate must be positive, got %v", rate)
	}
	return s.repo.UpsertRate(ctx, day(date), rate)
}

// AddInvoice records one payment row and returns the generated invoice id.
func (s *Service) AddInvoice(ctx context.Context, inv *Invoice) (int64, error) {
	if inv.WorkID == 0 {
		return 0, fmt.Errorf("work_id is required")
	}
	if inv.AmountPaid < 0 || inv.AmountPaidUSD < 0 {
		return 0, fmt.Errorf("paid amounts must not be negative")
	}
	if inv.AmountReceived < 0 || inv.AmountReceivedUSD < 0 {
		return 0, fmt.Errorf("received amounts must not be negative")
	}
	if inv.PaymentDate.IsZero() {
		inv.PaymentDate = s.now()
	}
	return s.repo.AddInvoice(ctx, inv)
}
