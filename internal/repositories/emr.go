package repositories

import (
	"context"

	"gorm.io/gorm"

	"medflow-server/internal/models"
)

// EMRRepository is the persistence contract for electronic medical records.
type EMRRepository interface {
	Create(ctx context.Context, record *models.EMR) error
	// FindByPatientAndID scopes the lookup to a patient so record IDs cannot
	// be guessed across patients.
	FindByPatientAndID(ctx context.Context, patientID, emrID string) (*models.EMR, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.EMR, error)
	Delete(ctx context.Context, patientID, emrID string) error
}

type emrRepository struct {
	db *gorm.DB
}

func (r *emrRepository) Create(ctx context.Context, record *models.EMR) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *emrRepository) FindByPatientAndID(ctx context.Context, patientID, emrID string) (*models.EMR, error) {
	var record models.EMR
	err := r.db.WithContext(ctx).
		Preload("Appointments").
		First(&record, "id = ? AND patient_id = ?", emrID, patientID).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &record, nil
}

func (r *emrRepository) ListByPatient(ctx context.Context, patientID string) ([]models.EMR, error) {
	var records []models.EMR
	err := r.db.WithContext(ctx).
		Preload("Appointments").
		Where("patient_id = ?", patientID).
		Order("record_date desc").
		Find(&records).Error
	return records, err
}

func (r *emrRepository) Delete(ctx context.Context, patientID, emrID string) error {
	result := r.db.WithContext(ctx).
		Delete(&models.EMR{}, "id = ? AND patient_id = ?", emrID, patientID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ EMRRepository = (*emrRepository)(nil)
