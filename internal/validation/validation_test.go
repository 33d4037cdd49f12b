package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-api/internal/apperr"
	"auth-api/internal/domain"
)

func TestRegisterTrimsFields(t *testing.T) {
	req := domain.RegisterRequest{
		Username: "  test  ",
		Name:     "  test  ",
		Password: " test123 ",
	}

	require.NoError(t, Register(&req))
	assert.Equal(t, "test", req.Username)
	assert.Equal(t, "test", req.Name)
	assert.Equal(t, "test123", req.Password)
}

func TestRegisterTrimIsIdempotent(t *testing.T) {
	req := domain.RegisterRequest{Username: " alice ", Name: " Alice ", Password: " secret1 "}
	require.NoError(t, Register(&req))

	again := req
	require.NoError(t, Register(&again))
	assert.Equal(t, req, again)
}

func TestRegisterCollectsAllViolations(t *testing.T) {
	req := domain.RegisterRequest{Username: "", Name: "", Password: ""}

	err := Register(&req)
	require.Error(t, err)

	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Details, 3)

	fields := make([]string, 0, len(ve.Details))
	for _, d := range ve.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"username", "name", "password"}, fields)
}

func TestRegisterRejectsShortValues(t *testing.T) {
	tests := []struct {
		name  string
		req   domain.RegisterRequest
		field string
	}{
		{"short username", domain.RegisterRequest{Username: "ab", Name: "test", Password: "test123"}, "username"},
		{"short password", domain.RegisterRequest{Username: "test", Name: "test", Password: "12345"}, "password"},
		{"whitespace-only name", domain.RegisterRequest{Username: "test", Name: "   ", Password: "test123"}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Register(&tt.req)
			var ve *apperr.ValidationError
			require.True(t, errors.As(err, &ve))
			require.Len(t, ve.Details, 1)
			assert.Equal(t, tt.field, ve.Details[0].Field)
			assert.NotEmpty(t, ve.Details[0].Message)
		})
	}
}

func TestLoginRequiresPresenceOnly(t *testing.T) {
	valid := domain.LoginRequest{Username: "ab", Password: "x"}
	assert.NoError(t, Login(&valid))

	empty := domain.LoginRequest{Username: " ", Password: ""}
	err := Login(&empty)
	var ve *apperr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Details, 2)
}
