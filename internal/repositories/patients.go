package repositories

import (
	"context"

	"gorm.io/gorm"

	"medflow-server/internal/models"
)

// PatientRepository is the persistence contract for patient accounts.
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	FindByID(ctx context.Context, id string) (*models.Patient, error)
	FindByEmail(ctx context.Context, email string) (*models.Patient, error)
	FindByHospitalCardID(ctx context.Context, hospitalCardID string) (*models.Patient, error)
	List(ctx context.Context, offset, limit int) ([]models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
	Delete(ctx context.Context, id string) error
}

type patientRepository struct {
	db *gorm.DB
}

func (r *patientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, id string) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &patient, nil
}

func (r *patientRepository) FindByEmail(ctx context.Context, email string) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, "email = ?", email).Error; err != nil {
		return nil, translateError(err)
	}
	return &patient, nil
}

func (r *patientRepository) FindByHospitalCardID(ctx context.Context, hospitalCardID string) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, "hospital_card_id = ?", hospitalCardID).Error; err != nil {
		return nil, translateError(err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context, offset, limit int) ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.WithContext(ctx).Order("created_at asc").Offset(offset).Limit(limit).Find(&patients).Error
	return patients, err
}

func (r *patientRepository) Update(ctx context.Context, patient *models.Patient) error {
	return r.db.WithContext(ctx).Save(patient).Error
}

func (r *patientRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Patient{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ PatientRepository = (*patientRepository)(nil)
