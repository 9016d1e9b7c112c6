package models

// Role enum
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// Identity is the authenticated caller, resolved once at the HTTP boundary
// and passed down to the services. Role tags which table ID refers to.
type Identity struct {
	ID   string
	Role Role
}

// IsPatient reports whether the identity belongs to the given patient.
func (i Identity) IsPatient(patientID string) bool {
	return i.Role == RolePatient && i.ID == patientID
}

// IsDoctor reports whether the identity belongs to the given doctor.
func (i Identity) IsDoctor(doctorID string) bool {
	return i.Role == RoleDoctor && i.ID == doctorID
}
