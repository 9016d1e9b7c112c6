package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, s := range []AppointmentStatus{
		StatusPending, StatusInProgress, StatusCompleted, StatusCancelled,
	} {
		assert.True(t, IsValidStatus(s), "%s", s)
	}
	assert.False(t, IsValidStatus("ARCHIVED"))
	assert.False(t, IsValidStatus("pending"))
	assert.False(t, IsValidStatus(""))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusPending, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, false},
		{StatusInProgress, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusInProgress, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestPasswordHashing(t *testing.T) {
	p := &Patient{}
	assert.NoError(t, p.SetPassword("Str0ng!Pass"))
	assert.NotEqual(t, "Str0ng!Pass", p.Password)
	assert.True(t, p.CheckPassword("Str0ng!Pass"))
	assert.False(t, p.CheckPassword("wrong"))

	d := &Doctor{}
	assert.NoError(t, d.SetPassword("Doctor!Pass1"))
	assert.True(t, d.CheckPassword("Doctor!Pass1"))
	assert.False(t, d.CheckPassword("Doctor!Pass2"))
}
