package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"medflow-server/internal/models"
	"medflow-server/internal/repositories"
)

// CreateEMRInput carries the doctor-supplied clinical entry.
type CreateEMRInput struct {
	Title      string
	Summary    string
	Details    string
	RecordDate time.Time
}

// EMRService holds clinical records per patient and gates every access on the
// appointment relationship between the requesting doctor and the patient.
type EMRService struct {
	store repositories.Store
	log   *zap.Logger
}

// NewEMRService creates a new EMRService.
func NewEMRService(store repositories.Store, log *zap.Logger) *EMRService {
	return &EMRService{store: store, log: log}
}

// CanAccess reports whether the doctor may read or write the patient's
// records: true iff at least one appointment of any status links them.
func (s *EMRService) CanAccess(ctx context.Context, doctorID, patientID string) (bool, error) {
	count, err := s.store.Appointments().CountLinking(ctx, doctorID, patientID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// authorizeDoctor runs the access gate for a doctor identity.
func (s *EMRService) authorizeDoctor(ctx context.Context, requester models.Identity, patientID string) error {
	if requester.Role != models.RoleDoctor {
		return ErrForbidden
	}
	ok, err := s.CanAccess(ctx, requester.ID, patientID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnauthorized
	}
	return nil
}

// CreateRecord writes a new clinical entry for the patient, snapshotting the
// patient's current unlinked appointments into the record.
func (s *EMRService) CreateRecord(ctx context.Context, requester models.Identity, patientID string, input CreateEMRInput) (*models.EMR, error) {
	if _, err := s.store.Patients().FindByID(ctx, patientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	if err := s.authorizeDoctor(ctx, requester, patientID); err != nil {
		return nil, err
	}

	recordDate := input.RecordDate
	if recordDate.IsZero() {
		recordDate = time.Now()
	}

	var created *models.EMR
	txErr := s.store.WithTx(func(tx repositories.Store) error {
		record := &models.EMR{
			PatientID:  patientID,
			DoctorID:   requester.ID,
			Title:      input.Title,
			Summary:    input.Summary,
			Details:    input.Details,
			RecordDate: recordDate,
		}
		if err := tx.Records().Create(ctx, record); err != nil {
			return err
		}
		if err := tx.Appointments().AttachToEMR(ctx, patientID, record.ID); err != nil {
			return err
		}
		created = record
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.Info("medical record created",
		zap.String("emrID", created.ID),
		zap.String("patientID", patientID),
		zap.String("doctorID", requester.ID))
	return created, nil
}

// GetPatientRecords returns the patient's records. Patients may read their
// own; doctors must pass the access gate.
func (s *EMRService) GetPatientRecords(ctx context.Context, requester models.Identity, patientID string) ([]models.EMR, error) {
	if _, err := s.store.Patients().FindByID(ctx, patientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	switch requester.Role {
	case models.RolePatient:
		if requester.ID != patientID {
			return nil, ErrUnauthorized
		}
	case models.RoleDoctor:
		if err := s.authorizeDoctor(ctx, requester, patientID); err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnauthorized
	}

	return s.store.Records().ListByPatient(ctx, patientID)
}

// GetRecord returns one record, scoped to the patient so record IDs cannot be
// guessed across patients.
func (s *EMRService) GetRecord(ctx context.Context, requester models.Identity, patientID, emrID string) (*models.EMR, error) {
	switch requester.Role {
	case models.RolePatient:
		if requester.ID != patientID {
			return nil, ErrUnauthorized
		}
	case models.RoleDoctor:
		if err := s.authorizeDoctor(ctx, requester, patientID); err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnauthorized
	}

	record, err := s.store.Records().FindByPatientAndID(ctx, patientID, emrID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

// DeleteRecord removes a record after the requesting doctor passes the access
// gate for that patient.
func (s *EMRService) DeleteRecord(ctx context.Context, requester models.Identity, patientID, emrID string) error {
	if _, err := s.store.Records().FindByPatientAndID(ctx, patientID, emrID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	if requester.Role != models.RoleDoctor {
		return ErrForbidden
	}
	if ok, err := s.CanAccess(ctx, requester.ID, patientID); err != nil {
		return err
	} else if !ok {
		return ErrForbidden
	}

	if err := s.store.Records().Delete(ctx, patientID, emrID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}

	s.log.Info("medical record deleted",
		zap.String("emrID", emrID),
		zap.String("patientID", patientID))
	return nil
}
