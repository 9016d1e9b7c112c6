package repositories

import (
	"context"

	"gorm.io/gorm"

	"medflow-server/internal/models"
)

// AppointmentRepository is the persistence contract for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	FindByID(ctx context.Context, id string) (*models.Appointment, error)
	// FindByPatientAndID scopes the lookup to a patient so appointment IDs
	// cannot be guessed across patients.
	FindByPatientAndID(ctx context.Context, patientID, appointmentID string) (*models.Appointment, error)
	List(ctx context.Context, offset, limit int) ([]models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	FindPendingByPatient(ctx context.Context, patientID string) (*models.Appointment, error)
	ListUncompletedByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	CountLinking(ctx context.Context, doctorID, patientID string) (int64, error)
	Update(ctx context.Context, appointment *models.Appointment) error
	// AttachToEMR stamps emr_id on all of the patient's appointments that are
	// not yet linked to a record.
	AttachToEMR(ctx context.Context, patientID, emrID string) error
}

type appointmentRepository struct {
	db *gorm.DB
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := r.db.WithContext(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientAndID(ctx context.Context, patientID, appointmentID string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		First(&appointment, "id = ? AND patient_id = ?", appointmentID, patientID).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context, offset, limit int) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Order("appointment_date asc").Offset(offset).Limit(limit).
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("appointment_date asc").
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) FindPendingByPatient(ctx context.Context, patientID string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		First(&appointment, "patient_id = ? AND status = ?", patientID, models.StatusPending).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) ListUncompletedByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND status IN ?", patientID,
			[]models.AppointmentStatus{models.StatusPending, models.StatusInProgress}).
		Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepository) CountLinking(ctx context.Context, doctorID, patientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

func (r *appointmentRepository) AttachToEMR(ctx context.Context, patientID, emrID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("patient_id = ? AND emr_id IS NULL", patientID).
		Update("emr_id", emrID).Error
}

var _ AppointmentRepository = (*appointmentRepository)(nil)
