package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"medflow-server/internal/models"
	"medflow-server/internal/repositories"
)

// CreateAppointmentInput carries the patient-supplied appointment details.
type CreateAppointmentInput struct {
	Reason          string
	AppointmentDate time.Time
}

// UpdateAppointmentInput is a partial patch: nil fields are left untouched.
type UpdateAppointmentInput struct {
	Reason          *string
	AppointmentDate *time.Time
}

// AppointmentService owns the appointment state machine and the doctor
// availability side effects coupled to it.
type AppointmentService struct {
	store repositories.Store
	log   *zap.Logger
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(store repositories.Store, log *zap.Logger) *AppointmentService {
	return &AppointmentService{store: store, log: log}
}

// Create books a new PENDING appointment for the patient against the doctor
// and marks the doctor unavailable. The whole operation runs in one
// transaction with a row lock on the doctor, so concurrent bookings against
// the same doctor or patient serialize instead of racing the
// at-most-one-pending and availability checks.
func (s *AppointmentService) Create(ctx context.Context, requester models.Identity, patientID, doctorID string, input CreateAppointmentInput) (*models.Appointment, error) {
	var created *models.Appointment

	txErr := s.store.WithTx(func(tx repositories.Store) error {
		if _, err := tx.Patients().FindByID(ctx, patientID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrPatientNotFound
			}
			return err
		}

		doctor, err := tx.Doctors().FindByIDForUpdate(ctx, doctorID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrDoctorNotFound
			}
			return err
		}

		if !requester.IsPatient(patientID) {
			return ErrForbidden
		}

		if _, err := tx.Appointments().FindPendingByPatient(ctx, patientID); err == nil {
			return ErrPendingExists
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		if !doctor.IsAvailable {
			return ErrDoctorUnavailable
		}

		appointment := &models.Appointment{
			PatientID:       patientID,
			DoctorID:        doctorID,
			Reason:          input.Reason,
			AppointmentDate: input.AppointmentDate,
			Status:          models.StatusPending,
		}
		if err := tx.Appointments().Create(ctx, appointment); err != nil {
			return err
		}
		if err := tx.Doctors().SetAvailability(ctx, doctorID, false); err != nil {
			return err
		}

		created = appointment
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.Info("appointment created",
		zap.String("appointmentID", created.ID),
		zap.String("patientID", patientID),
		zap.String("doctorID", doctorID))
	return created, nil
}

// List returns a page of appointments.
func (s *AppointmentService) List(ctx context.Context, offset, limit int) ([]models.Appointment, error) {
	return s.store.Appointments().List(ctx, offset, limit)
}

// ListForPatient returns all appointments belonging to the patient.
func (s *AppointmentService) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	if _, err := s.store.Patients().FindByID(ctx, patientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return s.store.Appointments().ListByPatient(ctx, patientID)
}

// Get returns a single appointment by ID.
func (s *AppointmentService) Get(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment, err := s.store.Appointments().FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return appointment, nil
}

// Update applies a partial patch to an appointment. Only the owning patient
// may update, and only the reason and date; status changes go through Cancel
// or SwitchStatus.
func (s *AppointmentService) Update(ctx context.Context, requester models.Identity, appointmentID string, patch UpdateAppointmentInput) (*models.Appointment, error) {
	appointment, err := s.Get(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !requester.IsPatient(appointment.PatientID) {
		return nil, ErrUnauthorized
	}

	if patch.Reason != nil {
		appointment.Reason = *patch.Reason
	}
	if patch.AppointmentDate != nil {
		appointment.AppointmentDate = *patch.AppointmentDate
	}

	if err := s.store.Appointments().Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Cancel moves a PENDING appointment to CANCELLED and restores the doctor's
// availability. Cancellation of in-progress or completed appointments is
// rejected; IN_PROGRESS means the doctor is already engaged and COMPLETED is
// terminal.
func (s *AppointmentService) Cancel(ctx context.Context, requester models.Identity, appointmentID string) (*models.Appointment, error) {
	var cancelled *models.Appointment

	txErr := s.store.WithTx(func(tx repositories.Store) error {
		appointment, err := tx.Appointments().FindByID(ctx, appointmentID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrAppointmentNotFound
			}
			return err
		}
		if !requester.IsPatient(appointment.PatientID) {
			return ErrUnauthorized
		}
		if appointment.Status != models.StatusPending {
			return ErrAppointmentNotPending
		}

		appointment.Status = models.StatusCancelled
		if err := tx.Appointments().Update(ctx, appointment); err != nil {
			return err
		}
		if err := tx.Doctors().SetAvailability(ctx, appointment.DoctorID, true); err != nil {
			return err
		}

		cancelled = appointment
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.Info("appointment cancelled",
		zap.String("appointmentID", cancelled.ID),
		zap.String("doctorID", cancelled.DoctorID))
	return cancelled, nil
}

// SwitchStatus lets the appointment's doctor drive the state machine. Every
// requested move is validated against the transition table; moving to
// CANCELLED restores the doctor's availability.
func (s *AppointmentService) SwitchStatus(ctx context.Context, requester models.Identity, patientID, appointmentID string, newStatus models.AppointmentStatus) (*models.Appointment, error) {
	if requester.Role != models.RoleDoctor {
		return nil, ErrForbidden
	}
	if !models.IsValidStatus(newStatus) {
		return nil, ErrInvalidTransition
	}

	var updated *models.Appointment

	txErr := s.store.WithTx(func(tx repositories.Store) error {
		appointment, err := tx.Appointments().FindByPatientAndID(ctx, patientID, appointmentID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrAppointmentNotFound
			}
			return err
		}
		if !requester.IsDoctor(appointment.DoctorID) {
			return ErrForbidden
		}
		if !appointment.Status.CanTransitionTo(newStatus) {
			return ErrInvalidTransition
		}

		appointment.Status = newStatus
		if err := tx.Appointments().Update(ctx, appointment); err != nil {
			return err
		}
		if newStatus == models.StatusCancelled {
			if err := tx.Doctors().SetAvailability(ctx, appointment.DoctorID, true); err != nil {
				return err
			}
		}

		updated = appointment
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.Info("appointment status switched",
		zap.String("appointmentID", updated.ID),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

// CheckPending returns the patient's PENDING appointment, or nil when there
// is none.
func (s *AppointmentService) CheckPending(ctx context.Context, patientID string) (*models.Appointment, error) {
	appointment, err := s.store.Appointments().FindPendingByPatient(ctx, patientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return appointment, nil
}

// GetUncompleted returns the patient's PENDING and IN_PROGRESS appointments.
func (s *AppointmentService) GetUncompleted(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return s.store.Appointments().ListUncompletedByPatient(ctx, patientID)
}
