package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"medflow-server/internal/models"
)

// DoctorRepository is the persistence contract for doctor accounts.
// FindByIDForUpdate takes a row-level lock and is only meaningful inside a
// Store.WithTx unit of work; it serializes concurrent bookings against the
// same doctor.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	FindByID(ctx context.Context, id string) (*models.Doctor, error)
	FindByIDForUpdate(ctx context.Context, id string) (*models.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*models.Doctor, error)
	FindByHospitalID(ctx context.Context, hospitalID string) (*models.Doctor, error)
	List(ctx context.Context, offset, limit int) ([]models.Doctor, error)
	ListBySpecialization(ctx context.Context, specialization string, offset, limit int) ([]models.Doctor, error)
	Update(ctx context.Context, doctor *models.Doctor) error
	SetAvailability(ctx context.Context, id string, available bool) error
	Delete(ctx context.Context, id string) error
}

type doctorRepository struct {
	db *gorm.DB
}

func (r *doctorRepository) Create(ctx context.Context, doctor *models.Doctor) error {
	return r.db.WithContext(ctx).Create(doctor).Error
}

func (r *doctorRepository) FindByID(ctx context.Context, id string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByIDForUpdate(ctx context.Context, id string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&doctor, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, "email = ?", email).Error; err != nil {
		return nil, translateError(err)
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByHospitalID(ctx context.Context, hospitalID string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, "hospital_id = ?", hospitalID).Error; err != nil {
		return nil, translateError(err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context, offset, limit int) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.WithContext(ctx).Order("created_at asc").Offset(offset).Limit(limit).Find(&doctors).Error
	return doctors, err
}

func (r *doctorRepository) ListBySpecialization(ctx context.Context, specialization string, offset, limit int) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.WithContext(ctx).
		Where("specialization = ?", specialization).
		Order("created_at asc").Offset(offset).Limit(limit).
		Find(&doctors).Error
	return doctors, err
}

func (r *doctorRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	return r.db.WithContext(ctx).Save(doctor).Error
}

func (r *doctorRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	// MySQL reports zero affected rows when the flag already holds the target
	// value, so RowsAffected cannot distinguish "missing" from "unchanged".
	return r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Where("id = ?", id).
		Update("is_available", available).Error
}

func (r *doctorRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Doctor{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ DoctorRepository = (*doctorRepository)(nil)
