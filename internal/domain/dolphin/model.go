package dolphin

import "time"

// Patient is the mirror record created in the Dolphin imaging platform for
// a clinic patient.
type Patient struct {
	PersonID  int64     `json:"person_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BirthDate time.Time `json:"birth_date"`
	Gender    string    `json:"gender"`
}

// TimePoint is a named, dated treatment milestone registered in Dolphin to
// organize a patient's photo sets.
type TimePoint struct {
	PersonID    int64     `json:"person_id"`
	Code        string    `json:"code"`
	Taken       time.Time `json:"taken"`
	Description string    `json:"description"`
}

// PatientDetail is the clinic-side tblpatients row feeding mirror creation.
type PatientDetail struct {
	PersonID  int64      `db:"person_id" json:"person_id"`
	FirstName string     `db:"first_name" json:"first_name"`
	LastName  string     `db:"last_name" json:"last_name"`
	BirthDate *time.Time `db:"dob" json:"birth_date,omitempty"`
	Gender    *string    `db:"gender" json:"gender,omitempty"`
}

// Appointment is one row from the ApposforOne procedure.
type Appointment struct {
	Date        time.Time `json:"date"`
	Description *string   `json:"description,omitempty"`
}

// VisitPhoto is one row from the VisitsPhotoforOne procedure: a visit date
// with its photo flag and any recorded override date.
type VisitPhoto struct {
	WorkID    int64      `json:"work_id"`
	VisitDate time.Time  `json:"visit_date"`
	HasPhoto  bool       `json:"has_photo"`
	PhotoDate *time.Time `json:"photo_date,omitempty"`
}
