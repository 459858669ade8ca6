package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Location string `json:"location" validate:"omitempty,oneof=parlor home"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(signup{Name: "Asha", Email: "asha@example.com", Password: "secret1", Location: "home"})
	assert.NoError(t, err)
}

func TestStruct_ReportsFieldsByJSONName(t *testing.T) {
	err := Struct(signup{Email: "not-an-email", Password: "123", Location: "spa"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "email: must be a valid email")
	assert.Contains(t, err.Error(), "name: is required")
	assert.Contains(t, err.Error(), "password: must be at least 6")
	assert.Contains(t, err.Error(), "location: must be one of [parlor home]")
}
