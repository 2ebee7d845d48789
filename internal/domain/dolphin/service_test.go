package dolphin

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// -- Mock Repositories --

type mockPlatformRepo struct {
	patients    map[int64]*Patient
	timepoints  map[string]*TimePoint
	appos       map[int64][]*Appointment
	visitPhotos map[int64][]*VisitPhoto
	createCalls int
}

func newMockPlatformRepo() *mockPlatformRepo {
	return &mockPlatformRepo{
		patients:    make(map[int64]*Patient),
		timepoints:  make(map[string]*TimePoint),
		appos:       make(map[int64][]*Appointment),
		visitPhotos: make(map[int64][]*VisitPhoto),
	}
}

func tpKey(personID int64, code string) string {
	return fmt.Sprintf("%d:%s", personID, code)
}

func (m *mockPlatformRepo) PatientExists(_ context.Context, personID int64) (bool, error) {
	_, ok := m.patients[personID]
	return ok, nil
}

func (m *mockPlatformRepo) CreatePatient(_ context.Context, p *Patient) error {
	m.createCalls++
	m.patients[p.PersonID] = p
	return nil
}

func (m *mockPlatformRepo) TimePointExists(_ context.Context, personID int64, code string) (bool, error) {
	_, ok := m.timepoints[tpKey(personID, code)]
	return ok, nil
}

func (m *mockPlatformRepo) CreateTimePoint(_ context.Context, tp *TimePoint) error {
	m.createCalls++
	m.timepoints[tpKey(tp.PersonID, tp.Code)] = tp
	return nil
}

func (m *mockPlatformRepo) ListAppointments(_ context.Context, personID int64) ([]*Appointment, error) {
	return m.appos[personID], nil
}

func (m *mockPlatformRepo) ListVisitPhotos(_ context.Context, personID int64) ([]*VisitPhoto, error) {
	return m.visitPhotos[personID], nil
}

type mockClinicRepo struct {
	details    map[int64]*PatientDetail
	photoDates map[int64]*time.Time
}

func newMockClinicRepo() *mockClinicRepo {
	return &mockClinicRepo{
		details:    make(map[int64]*PatientDetail),
		photoDates: make(map[int64]*time.Time),
	}
}

func (m *mockClinicRepo) GetPatientDetail(_ context.Context, personID int64) (*PatientDetail, error) {
	return m.details[personID], nil
}

func (m *mockClinicRepo) GetPhotoDate(_ context.Context, workID int64, visitDate time.Time) (*time.Time, error) {
	d, ok := m.photoDates[workID]
	if !ok || d == nil || d.Equal(visitDate) {
		return nil, nil
	}
	return d, nil
}

func (m *mockClinicRepo) SetPhotoDate(_ context.Context, workID int64, photoDate time.Time) (bool, error) {
	if _, ok := m.photoDates[workID]; !ok {
		return false, nil
	}
	m.photoDates[workID] = &photoDate
	return true, nil
}

func newTestService() (*Service, *mockPlatformRepo, *mockClinicRepo) {
	platform := newMockPlatformRepo()
	clinic := newMockClinicRepo()
	return NewService(platform, clinic, nil), platform, clinic
}

func somePatient(personID int64) *PatientDetail {
	dob := time.Date(1995, 6, 1, 0, 0, 0, 0, time.UTC)
	gender := "F"
	return &PatientDetail{PersonID: personID, FirstName: "Sara", LastName: "Hasan", BirthDate: &dob, Gender: &gender}
}

// -- Tests --

func TestEnsurePatient_CreatesMirror(t *testing.T) {
	svc, platform, clinic := newTestService()
	clinic.details[10] = somePatient(10)

	created, err := svc.EnsurePatient(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected patient to be created")
	}
	p, ok := platform.patients[10]
	if !ok {
		t.Fatal("expected mirror record in platform")
	}
	if p.FirstName != "Sara" || p.Gender != "F" {
		t.Errorf("unexpected mirror record: %+v", p)
	}
}

func TestEnsurePatient_AlreadyExists(t *testing.T) {
	svc, platform, clinic := newTestService()
	clinic.details[10] = somePatient(10)
	platform.patients[10] = &Patient{PersonID: 10}

	created, err := svc.EnsurePatient(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected no creation for existing patient")
	}
	if platform.createCalls != 0 {
		t.Errorf("expected no create call, got %d", platform.createCalls)
	}
}

func TestEnsurePatient_UnknownClinicPatient(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.EnsurePatient(context.Background(), 404); err == nil {
		t.Error("expected error for unknown clinic patient")
	}
}

func TestEnsureTimePoint(t *testing.T) {
	svc, platform, _ := newTestService()
	tp := &TimePoint{PersonID: 10, Code: "T1", Description: "Initial records"}

	created, err := svc.EnsureTimePoint(context.Background(), tp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected timepoint to be created")
	}
	if tp.Taken.IsZero() {
		t.Error("expected taken timestamp to default to now")
	}

	created, err = svc.EnsureTimePoint(context.Background(), &TimePoint{PersonID: 10, Code: "T1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected no creation for existing timepoint code")
	}
	if platform.createCalls != 1 {
		t.Errorf("expected exactly one create call, got %d", platform.createCalls)
	}
}

func TestEnsureTimePoint_RequiresCode(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.EnsureTimePoint(context.Background(), &TimePoint{PersonID: 10}); err == nil {
		t.Error("expected error for missing code")
	}
}

func TestGetPhotoDate_NoConflict(t *testing.T) {
	svc, _, clinic := newTestService()
	visit := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	clinic.photoDates[5] = &visit

	got, err := svc.GetPhotoDate(context.Background(), 5, visit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil when override matches visit date, got %v", got)
	}
}

func TestGetPhotoDate_Conflict(t *testing.T) {
	svc, _, clinic := newTestService()
	override := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	clinic.photoDates[5] = &override

	got, err := svc.GetPhotoDate(context.Background(), 5, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || !got.Equal(override) {
		t.Errorf("expected conflicting override %v, got %v", override, got)
	}
}

func TestSetPhotoDate_MissingWork(t *testing.T) {
	svc, _, _ := newTestService()
	ok, err := svc.SetPhotoDate(context.Background(), 99, time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected false for unknown work item")
	}
}

func TestSetPhotoDate_RequiresDate(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.SetPhotoDate(context.Background(), 5, time.Time{}); err == nil {
		t.Error("expected error for zero photo date")
	}
}
