package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/staffdocs/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	assert.Nil(t, WrapValidationError(nil))

	err := WrapValidationError(assert.AnError)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestPasswordStrength(t *testing.T) {
	rule := PasswordStrength{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"Valid", "Str0ng!pass", true},
		{"TooShort", "S0!a", false},
		{"NoUpper", "weak0!pass", false},
		{"NoLower", "WEAK0!PASS", false},
		{"NoNumber", "Weakly!pass", false},
		{"NoSpecial", "Weak0passw", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rule.Validate(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	assert.NoError(t, Email.Validate("someone@example.com"))
	assert.Error(t, Email.Validate("not-an-email"))
	assert.Error(t, Email.Validate("missing@tld"))
}

func TestUsername(t *testing.T) {
	assert.NoError(t, Username.Validate("maria.santos_1"))
	assert.Error(t, Username.Validate("Maria"))
	assert.Error(t, Username.Validate("has space"))
	assert.Error(t, Username.Validate("dash-ed"))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("value"))
	assert.Error(t, NotBlank.Validate("   "))
}
