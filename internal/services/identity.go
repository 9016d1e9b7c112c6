package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"medflow-server/internal/models"
	"medflow-server/internal/repositories"
)

// ResolvedUser is the outcome of a credential lookup: exactly one of Patient
// or Doctor is set, matching Identity.Role.
type ResolvedUser struct {
	Identity models.Identity
	Patient  *models.Patient
	Doctor   *models.Doctor
}

// IdentityService resolves credentials (email or hospital-issued ID) to
// patient or doctor accounts and owns registration duplicate checks.
type IdentityService struct {
	store repositories.Store
	log   *zap.Logger
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(store repositories.Store, log *zap.Logger) *IdentityService {
	return &IdentityService{store: store, log: log}
}

// FindPatientByCredential resolves an email or hospital card ID to a patient.
func (s *IdentityService) FindPatientByCredential(ctx context.Context, credential string) (*models.Patient, error) {
	patient, err := s.store.Patients().FindByEmail(ctx, credential)
	if err == nil {
		return patient, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	patient, err = s.store.Patients().FindByHospitalCardID(ctx, credential)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return patient, nil
}

// FindDoctorByCredential resolves an email or hospital ID to a doctor.
func (s *IdentityService) FindDoctorByCredential(ctx context.Context, credential string) (*models.Doctor, error) {
	doctor, err := s.store.Doctors().FindByEmail(ctx, credential)
	if err == nil {
		return doctor, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	doctor, err = s.store.Doctors().FindByHospitalID(ctx, credential)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return doctor, nil
}

// RegisterPatient creates a patient account after checking that neither the
// email nor the hospital card ID is already registered.
func (s *IdentityService) RegisterPatient(ctx context.Context, patient *models.Patient, password string) error {
	if _, err := s.FindPatientByCredential(ctx, patient.Email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	if _, err := s.FindPatientByCredential(ctx, patient.HospitalCardID); err == nil {
		return ErrHospitalIDTaken
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	if err := patient.SetPassword(password); err != nil {
		return err
	}
	if err := s.store.Patients().Create(ctx, patient); err != nil {
		s.log.Error("failed to create patient", zap.Error(err))
		return err
	}
	s.log.Info("patient registered", zap.String("patientID", patient.ID))
	return nil
}

// RegisterDoctor creates a doctor account after checking that neither the
// email nor the hospital ID is already registered.
func (s *IdentityService) RegisterDoctor(ctx context.Context, doctor *models.Doctor, password string) error {
	if _, err := s.FindDoctorByCredential(ctx, doctor.Email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	if _, err := s.FindDoctorByCredential(ctx, doctor.HospitalID); err == nil {
		return ErrHospitalIDTaken
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	if err := doctor.SetPassword(password); err != nil {
		return err
	}
	if err := s.store.Doctors().Create(ctx, doctor); err != nil {
		s.log.Error("failed to create doctor", zap.Error(err))
		return err
	}
	s.log.Info("doctor registered", zap.String("doctorID", doctor.ID))
	return nil
}

// Authenticate matches a credential against both account tables and verifies
// the password. Patients are tried before doctors; the credential spaces do
// not overlap in practice because emails and hospital IDs are unique per role.
func (s *IdentityService) Authenticate(ctx context.Context, credential, password string) (*ResolvedUser, error) {
	patient, err := s.FindPatientByCredential(ctx, credential)
	if err == nil {
		if !patient.CheckPassword(password) {
			return nil, ErrUnauthorized
		}
		return &ResolvedUser{
			Identity: models.Identity{ID: patient.ID, Role: models.RolePatient},
			Patient:  patient,
		}, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	doctor, err := s.FindDoctorByCredential(ctx, credential)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !doctor.CheckPassword(password) {
		return nil, ErrUnauthorized
	}
	return &ResolvedUser{
		Identity: models.Identity{ID: doctor.ID, Role: models.RoleDoctor},
		Doctor:   doctor,
	}, nil
}
