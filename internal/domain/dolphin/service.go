package dolphin

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/platform/db"
)

type Service struct {
	platform PlatformRepository
	clinic   ClinicRepository

	// runTx wraps the check-then-create sequences in one transaction on the
	// Dolphin database. With a nil pool (tests) the sequence runs bare.
	runTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewService(platform PlatformRepository, clinic ClinicRepository, dolphinPool *pgxpool.Pool) *Service {
	s := &Service{platform: platform, clinic: clinic}
	if dolphinPool != nil {
		s.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return db.WithTx(ctx, dolphinPool, fn)
		}
	} else {
		s.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}
	}
	return s
}

func (s *Service) PatientExists(ctx context.Context, personID int64) (bool, error) {
	return s.platform.PatientExists(ctx, personID)
}

// EnsurePatient mirrors a clinic patient into Dolphin if it is not there
// yet. Returns true when a record was created.
func (s *Service) EnsurePatient(ctx context.Context, personID int64) (bool, error) {
	detail, err := s.clinic.GetPatientDetail(ctx, personID)
	if err != nil {
		return false, err
	}
	if detail == nil {
		return false, fmt.Errorf("patient %d not found", personID)
	}

	created := false
	err = s.runTx(ctx, func(ctx context.Context) error {
		exists, err := s.platform.PatientExists(ctx, personID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		p := &Patient{
			PersonID:  detail.PersonID,
			FirstName: detail.FirstName,
			LastName:  detail.LastName,
		}
		if detail.BirthDate != nil {
			p.BirthDate = *detail.BirthDate
		}
		if detail.Gender != nil {
			p.Gender = *detail.Gender
		}
		if err := s.platform.CreatePatient(ctx, p); err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (s *Service) TimePointExists(ctx context.Context, personID int64, code string) (bool, error) {
	if code == "" {
		return false, fmt.Errorf("timepoint code is required")
	}
	return s.platform.TimePointExists(ctx, personID, code)
}

// EnsureTimePoint registers a timepoint if the patient does not already
// have one with the same code. Returns true when a record was created.
func (s *Service) EnsureTimePoint(ctx context.Context, tp *TimePoint) (bool, error) {
	if tp.Code == "" {
		return false, fmt.Errorf("timepoint code is required")
	}
	if tp.Taken.IsZero() {
		tp.Taken = time.Now()
	}

	created := false
	err := s.runTx(ctx, func(ctx context.Context) error {
		exists, err := s.platform.TimePointExists(ctx, tp.PersonID, tp.Code)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		if err := s.platform.CreateTimePoint(ctx, tp); err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (s *Service) GetPatientDetail(ctx context.Context, personID int64) (*PatientDetail, error) {
	return s.clinic.GetPatientDetail(ctx, personID)
}

func (s *Service) ListAppointments(ctx context.Context, personID int64) ([]*Appointment, error) {
	return s.platform.ListAppointments(ctx, personID)
}

func (s *Service) ListVisitPhotos(ctx context.Context, personID int64) ([]*VisitPhoto, error) {
	return s.platform.ListVisitPhotos(ctx, personID)
}

func (s *Service) GetPhotoDate(ctx context.Context, workID int64, visitDate time.Time) (*time.Time, error) {
	return s.clinic.GetPhotoDate(ctx, workID, visitDate)
}

func (s *Service) SetPhotoDate(ctx context.Context, workID int64, photoDate time.Time) (bool, error) {
	if photoDate.IsZero() {
		return false, fmt.Errorf("photo date is required")
	}
	return s.clinic.SetPhotoDate(ctx, workID, photoDate)
}
