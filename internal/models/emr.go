package models

import (
	"time"
)

// EMR represents an electronic medical record entry for a patient. The
// appointments extant for the patient at creation time are linked to the
// record via the appointments' emr_id column.
type EMR struct {
	BaseModel
	PatientID  string    `gorm:"size:36;not null;index" json:"patientId"`
	DoctorID   string    `gorm:"size:36;index" json:"doctorId"` // authoring doctor
	Title      string    `gorm:"size:255" json:"title"`
	Summary    string    `gorm:"type:text" json:"summary"`
	Details    string    `gorm:"type:text" json:"details"`
	RecordDate time.Time `json:"recordDate"`

	// Relations
	Patient      Patient       `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:EMRID" json:"appointments,omitempty"`
}
