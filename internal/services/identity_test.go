package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medflow-server/internal/models"
)

func TestRegisterPatient(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and hashes the password", func(t *testing.T) {
		store := newMemStore()
		svc := NewIdentityService(store, zap.NewNop())

		patient := &models.Patient{
			FirstName:      "Ada",
			LastName:       "Umeh",
			Email:          "ada@example.com",
			HospitalCardID: "CARD-001",
		}
		require.NoError(t, svc.RegisterPatient(ctx, patient, "Str0ng!Pass"))

		assert.NotEmpty(t, patient.ID)
		assert.NotEqual(t, "Str0ng!Pass", patient.Password)
		assert.True(t, patient.CheckPassword("Str0ng!Pass"))
	})

	t.Run("duplicate email", func(t *testing.T) {
		store := newMemStore()
		store.addPatient(&models.Patient{Email: "ada@example.com", HospitalCardID: "CARD-001"})
		svc := NewIdentityService(store, zap.NewNop())

		err := svc.RegisterPatient(ctx, &models.Patient{
			Email:          "ada@example.com",
			HospitalCardID: "CARD-002",
		}, "Str0ng!Pass")
		assert.ErrorIs(t, err, ErrEmailTaken)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("duplicate hospital card ID", func(t *testing.T) {
		store := newMemStore()
		store.addPatient(&models.Patient{Email: "ada@example.com", HospitalCardID: "CARD-001"})
		svc := NewIdentityService(store, zap.NewNop())

		err := svc.RegisterPatient(ctx, &models.Patient{
			Email:          "other@example.com",
			HospitalCardID: "CARD-001",
		}, "Str0ng!Pass")
		assert.ErrorIs(t, err, ErrHospitalIDTaken)
	})
}

func TestRegisterDoctor(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate hospital ID", func(t *testing.T) {
		store := newMemStore()
		store.addDoctor(&models.Doctor{Email: "house@example.com", HospitalID: "HOSP-001"})
		svc := NewIdentityService(store, zap.NewNop())

		err := svc.RegisterDoctor(ctx, &models.Doctor{
			Email:      "cuddy@example.com",
			HospitalID: "HOSP-001",
		}, "Str0ng!Pass")
		assert.ErrorIs(t, err, ErrHospitalIDTaken)
	})
}

func TestFindByCredential(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	patient := store.addPatient(&models.Patient{
		Email:          "ada@example.com",
		HospitalCardID: "CARD-001",
	})
	svc := NewIdentityService(store, zap.NewNop())

	t.Run("by email", func(t *testing.T) {
		found, err := svc.FindPatientByCredential(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, patient.ID, found.ID)
	})

	t.Run("by hospital card ID", func(t *testing.T) {
		found, err := svc.FindPatientByCredential(ctx, "CARD-001")
		require.NoError(t, err)
		assert.Equal(t, patient.ID, found.ID)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := svc.FindPatientByCredential(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrPatientNotFound)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	patient := &models.Patient{Email: "ada@example.com", HospitalCardID: "CARD-001"}
	require.NoError(t, patient.SetPassword("Patient!Pass1"))
	store.addPatient(patient)

	doctor := &models.Doctor{Email: "house@example.com", HospitalID: "HOSP-001"}
	require.NoError(t, doctor.SetPassword("Doctor!Pass1"))
	store.addDoctor(doctor)

	svc := NewIdentityService(store, zap.NewNop())

	t.Run("patient by email", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "ada@example.com", "Patient!Pass1")
		require.NoError(t, err)
		assert.Equal(t, models.RolePatient, user.Identity.Role)
		assert.Equal(t, patient.ID, user.Identity.ID)
		require.NotNil(t, user.Patient)
		assert.Nil(t, user.Doctor)
	})

	t.Run("doctor by hospital ID", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "HOSP-001", "Doctor!Pass1")
		require.NoError(t, err)
		assert.Equal(t, models.RoleDoctor, user.Identity.Role)
		assert.Equal(t, doctor.ID, user.Identity.ID)
		require.NotNil(t, user.Doctor)
		assert.Nil(t, user.Patient)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "ada@example.com", "wrong")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown credential", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "nobody", "whatever")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}
