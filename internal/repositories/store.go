package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by repositories when no row matches the query.
var ErrNotFound = errors.New("record not found")

// Store bundles the entity repositories behind one handle and runs units of
// work. WithTx executes fn against a Store bound to a single transaction,
// committing when fn returns nil and rolling back otherwise.
type Store interface {
	Patients() PatientRepository
	Doctors() DoctorRepository
	Appointments() AppointmentRepository
	Records() EMRRepository
	RefreshTokens() RefreshTokenRepository
	WithTx(fn func(Store) error) error
}

// GormStore implements Store on top of a gorm connection.
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a Store backed by the given gorm connection.
func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Patients() PatientRepository           { return &patientRepository{db: s.db} }
func (s *GormStore) Doctors() DoctorRepository             { return &doctorRepository{db: s.db} }
func (s *GormStore) Appointments() AppointmentRepository   { return &appointmentRepository{db: s.db} }
func (s *GormStore) Records() EMRRepository                { return &emrRepository{db: s.db} }
func (s *GormStore) RefreshTokens() RefreshTokenRepository { return &refreshTokenRepository{db: s.db} }

func (s *GormStore) WithTx(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

var _ Store = (*GormStore)(nil)

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
