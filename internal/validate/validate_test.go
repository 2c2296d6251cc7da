package validate

import (
	"testing"

	"textile-backend/internal/apperr"

	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}

func TestStruct_ReportsJSONFieldName(t *testing.T) {
	err := Struct(contactForm{Email: "a@b.com"})
	require.True(t, apperr.Is(err, apperr.KindValidation))
	require.Contains(t, err.Error(), "name is required")

	err = Struct(contactForm{Name: "Priya", Email: "not-an-email"})
	require.Contains(t, err.Error(), "email must be a valid email address")
	require.Equal(t, map[string]string{"email": "email"}, Fields(err))

	require.NoError(t, Struct(contactForm{Name: "Priya", Email: "priya@example.com"}))
}

func TestPhone(t *testing.T) {
	got, err := Phone("98765 43210", "IN")
	require.NoError(t, err)
	require.Equal(t, "+919876543210", got)

	_, err = Phone("12", "IN")
	require.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = Phone("call me", "IN")
	require.True(t, apperr.Is(err, apperr.KindValidation))
}
