package dolphin

import (
	"context"
	"time"
)

// PlatformRepository wraps the stored procedures hosted on the Dolphin
// imaging-platform database.
type PlatformRepository interface {
	PatientExists(ctx context.Context, personID int64) (bool, error)
	CreatePatient(ctx context.Context, p *Patient) error
	TimePointExists(ctx context.Context, personID int64, code string) (bool, error)
	CreateTimePoint(ctx context.Context, tp *TimePoint) error
	ListAppointments(ctx context.Context, personID int64) ([]*Appointment, error)
	ListVisitPhotos(ctx context.Context, personID int64) ([]*VisitPhoto, error)
}

// ClinicRepository covers the clinic-side queries the integration needs:
// the patient row feeding mirror creation and the photo-date fields on
// tblwork. GetPhotoDate returns (nil, nil) when no override conflicts with
// the visit date.
type ClinicRepository interface {
	GetPatientDetail(ctx context.Context, personID int64) (*PatientDetail, error)
	GetPhotoDate(ctx context.Context, workID int64, visitDate time.Time) (*time.Time, error)
	SetPhotoDate(ctx context.Context, workID int64, photoDate time.Time) (bool, error)
}
