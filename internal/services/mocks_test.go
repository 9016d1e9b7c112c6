package services

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"medflow-server/internal/models"
	"medflow-server/internal/repositories"
)

// memStore is an in-memory implementation of repositories.Store used to
// exercise the services without a database. WithTx runs the unit of work
// directly against the same maps; the services under test only mutate state
// after their guard checks pass, so rollback is not simulated.
type memStore struct {
	patients      map[string]*models.Patient
	doctors       map[string]*models.Doctor
	appointments  map[string]*models.Appointment
	records       map[string]*models.EMR
	refreshTokens map[string]*models.RefreshToken
}

func newMemStore() *memStore {
	return &memStore{
		patients:      make(map[string]*models.Patient),
		doctors:       make(map[string]*models.Doctor),
		appointments:  make(map[string]*models.Appointment),
		records:       make(map[string]*models.EMR),
		refreshTokens: make(map[string]*models.RefreshToken),
	}
}

func (s *memStore) Patients() repositories.PatientRepository         { return &memPatients{s} }
func (s *memStore) Doctors() repositories.DoctorRepository           { return &memDoctors{s} }
func (s *memStore) Appointments() repositories.AppointmentRepository { return &memAppointments{s} }
func (s *memStore) Records() repositories.EMRRepository              { return &memRecords{s} }
func (s *memStore) RefreshTokens() repositories.RefreshTokenRepository {
	return &memRefreshTokens{s}
}

func (s *memStore) WithTx(fn func(repositories.Store) error) error {
	return fn(s)
}

var _ repositories.Store = (*memStore)(nil)

// seed helpers

func (s *memStore) addPatient(p *models.Patient) *models.Patient {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	s.patients[p.ID] = p
	return p
}

func (s *memStore) addDoctor(d *models.Doctor) *models.Doctor {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	s.doctors[d.ID] = d
	return d
}

func (s *memStore) addAppointment(a *models.Appointment) *models.Appointment {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	s.appointments[a.ID] = a
	return a
}

// --- patients ---

type memPatients struct{ s *memStore }

func (r *memPatients) Create(ctx context.Context, patient *models.Patient) error {
	r.s.addPatient(patient)
	return nil
}

func (r *memPatients) FindByID(ctx context.Context, id string) (*models.Patient, error) {
	if p, ok := r.s.patients[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *memPatients) FindByEmail(ctx context.Context, email string) (*models.Patient, error) {
	for _, p := range r.s.patients {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memPatients) FindByHospitalCardID(ctx context.Context, hospitalCardID string) (*models.Patient, error) {
	for _, p := range r.s.patients {
		if p.HospitalCardID == hospitalCardID {
			return p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memPatients) List(ctx context.Context, offset, limit int) ([]models.Patient, error) {
	var out []models.Patient
	for _, p := range r.s.patients {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, offset, limit), nil
}

func (r *memPatients) Update(ctx context.Context, patient *models.Patient) error {
	r.s.patients[patient.ID] = patient
	return nil
}

func (r *memPatients) Delete(ctx context.Context, id string) error {
	if _, ok := r.s.patients[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.patients, id)
	return nil
}

// --- doctors ---

type memDoctors struct{ s *memStore }

func (r *memDoctors) Create(ctx context.Context, doctor *models.Doctor) error {
	r.s.addDoctor(doctor)
	return nil
}

func (r *memDoctors) FindByID(ctx context.Context, id string) (*models.Doctor, error) {
	if d, ok := r.s.doctors[id]; ok {
		return d, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *memDoctors) FindByIDForUpdate(ctx context.Context, id string) (*models.Doctor, error) {
	return r.FindByID(ctx, id)
}

func (r *memDoctors) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	for _, d := range r.s.doctors {
		if d.Email == email {
			return d, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memDoctors) FindByHospitalID(ctx context.Context, hospitalID string) (*models.Doctor, error) {
	for _, d := range r.s.doctors {
		if d.HospitalID == hospitalID {
			return d, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memDoctors) List(ctx context.Context, offset, limit int) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range r.s.doctors {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, offset, limit), nil
}

func (r *memDoctors) ListBySpecialization(ctx context.Context, specialization string, offset, limit int) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range r.s.doctors {
		if d.Specialization == specialization {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, offset, limit), nil
}

func (r *memDoctors) Update(ctx context.Context, doctor *models.Doctor) error {
	r.s.doctors[doctor.ID] = doctor
	return nil
}

func (r *memDoctors) SetAvailability(ctx context.Context, id string, available bool) error {
	d, ok := r.s.doctors[id]
	if !ok {
		return repositories.ErrNotFound
	}
	d.IsAvailable = available
	return nil
}

func (r *memDoctors) Delete(ctx context.Context, id string) error {
	if _, ok := r.s.doctors[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.doctors, id)
	return nil
}

// --- appointments ---

type memAppointments struct{ s *memStore }

func (r *memAppointments) Create(ctx context.Context, appointment *models.Appointment) error {
	r.s.addAppointment(appointment)
	return nil
}

func (r *memAppointments) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	if a, ok := r.s.appointments[id]; ok {
		return a, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *memAppointments) FindByPatientAndID(ctx context.Context, patientID, appointmentID string) (*models.Appointment, error) {
	a, ok := r.s.appointments[appointmentID]
	if !ok || a.PatientID != patientID {
		return nil, repositories.ErrNotFound
	}
	return a, nil
}

func (r *memAppointments) List(ctx context.Context, offset, limit int) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.s.appointments {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, offset, limit), nil
}

func (r *memAppointments) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.s.appointments {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memAppointments) FindPendingByPatient(ctx context.Context, patientID string) (*models.Appointment, error) {
	for _, a := range r.s.appointments {
		if a.PatientID == patientID && a.Status == models.StatusPending {
			return a, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memAppointments) ListUncompletedByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.s.appointments {
		if a.PatientID == patientID &&
			(a.Status == models.StatusPending || a.Status == models.StatusInProgress) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAppointments) CountLinking(ctx context.Context, doctorID, patientID string) (int64, error) {
	var count int64
	for _, a := range r.s.appointments {
		if a.DoctorID == doctorID && a.PatientID == patientID {
			count++
		}
	}
	return count, nil
}

func (r *memAppointments) Update(ctx context.Context, appointment *models.Appointment) error {
	r.s.appointments[appointment.ID] = appointment
	return nil
}

func (r *memAppointments) AttachToEMR(ctx context.Context, patientID, emrID string) error {
	for _, a := range r.s.appointments {
		if a.PatientID == patientID && a.EMRID == nil {
			id := emrID
			a.EMRID = &id
		}
	}
	return nil
}

// --- records ---

type memRecords struct{ s *memStore }

func (r *memRecords) Create(ctx context.Context, record *models.EMR) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	r.s.records[record.ID] = record
	return nil
}

func (r *memRecords) FindByPatientAndID(ctx context.Context, patientID, emrID string) (*models.EMR, error) {
	record, ok := r.s.records[emrID]
	if !ok || record.PatientID != patientID {
		return nil, repositories.ErrNotFound
	}
	out := *record
	for _, a := range r.s.appointments {
		if a.EMRID != nil && *a.EMRID == record.ID {
			out.Appointments = append(out.Appointments, *a)
		}
	}
	return &out, nil
}

func (r *memRecords) ListByPatient(ctx context.Context, patientID string) ([]models.EMR, error) {
	var out []models.EMR
	for _, record := range r.s.records {
		if record.PatientID == patientID {
			out = append(out, *record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRecords) Delete(ctx context.Context, patientID, emrID string) error {
	record, ok := r.s.records[emrID]
	if !ok || record.PatientID != patientID {
		return repositories.ErrNotFound
	}
	delete(r.s.records, emrID)
	return nil
}

// --- refresh tokens ---

type memRefreshTokens struct{ s *memStore }

func (r *memRefreshTokens) Create(ctx context.Context, token *models.RefreshToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	r.s.refreshTokens[token.ID] = token
	return nil
}

func (r *memRefreshTokens) FindActive(ctx context.Context, token string, userID string) (*models.RefreshToken, error) {
	for _, stored := range r.s.refreshTokens {
		if stored.Token == token && stored.UserID == userID && !stored.IsRevoked {
			return stored, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memRefreshTokens) Revoke(ctx context.Context, token *models.RefreshToken) error {
	token.IsRevoked = true
	return nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
