package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Run("accepts a strong password", func(t *testing.T) {
		assert.NoError(t, ValidatePassword("Str0ng!Pass", "Ada", "Umeh"))
	})

	cases := []struct {
		name     string
		password string
	}{
		{"too short", "S0r!t"},
		{"no upper case", "str0ng!pass"},
		{"no lower case", "STR0NG!PASS"},
		{"no digit", "Strong!Pass"},
		{"no special character", "Str0ngPass1"},
		{"contains first name", "AdaStr0ng!Pass"},
		{"contains last name", "Str0ng!umehPass"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, ValidatePassword(tc.password, "Ada", "Umeh"))
		})
	}
}
