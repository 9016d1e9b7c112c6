package services

import "errors"

// Failure taxonomy shared by all services. Handlers translate these into HTTP
// statuses; everything else bubbles up as a 500.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource conflict")
	ErrForbidden    = errors.New("operation forbidden")
	ErrUnauthorized = errors.New("not authorized")
	ErrBadRequest   = errors.New("bad request")
)

// Common wrapped failures so callers can match on the category with errors.Is
// while still getting a precise message.
var (
	ErrPatientNotFound       = wrap(ErrNotFound, "patient not found")
	ErrDoctorNotFound        = wrap(ErrNotFound, "doctor not found")
	ErrAppointmentNotFound   = wrap(ErrNotFound, "appointment not found")
	ErrRecordNotFound        = wrap(ErrNotFound, "medical record not found")
	ErrEmailTaken            = wrap(ErrConflict, "email already registered")
	ErrHospitalIDTaken       = wrap(ErrConflict, "hospital ID already registered")
	ErrPendingExists         = wrap(ErrConflict, "patient already has a pending appointment")
	ErrDoctorUnavailable     = wrap(ErrForbidden, "doctor is not available")
	ErrInvalidTransition     = wrap(ErrBadRequest, "invalid appointment status transition")
	ErrAppointmentNotPending = wrap(ErrBadRequest, "appointment is not pending")
)

type wrappedError struct {
	base error
	msg  string
}

func (e *wrappedError) Error() string { return e.msg }
func (e *wrappedError) Unwrap() error { return e.base }

func wrap(base error, msg string) error {
	return &wrappedError{base: base, msg: msg}
}
