package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "PENDING"
	StatusInProgress AppointmentStatus = "IN_PROGRESS"
	StatusCompleted  AppointmentStatus = "COMPLETED"
	StatusCancelled  AppointmentStatus = "CANCELLED"
)

// statusTransitions is the appointment state machine. An appointment may only
// move to one of the statuses listed for its current status; COMPLETED and
// CANCELLED are terminal.
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// IsValidStatus reports whether s is one of the four known status tokens.
func IsValidStatus(s AppointmentStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are permitted from s.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the state machine allows moving from s to next.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment represents a scheduled medical appointment between one patient
// and one doctor.
type Appointment struct {
	BaseModel
	PatientID       string            `gorm:"size:36;not null;index" json:"patientId"`
	DoctorID        string            `gorm:"size:36;not null;index" json:"doctorId"`
	EMRID           *string           `gorm:"size:36;index" json:"emrId,omitempty"`
	Reason          string            `gorm:"size:255;not null" json:"reason"`
	AppointmentDate time.Time         `json:"appointmentDate"`
	Status          AppointmentStatus `gorm:"size:20;default:'PENDING'" json:"status"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"-"`
}
