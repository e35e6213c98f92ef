package response

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

func validationErrors(t *testing.T, p payload) validator.ValidationErrors {
	t.Helper()

	err := validator.New().Struct(p)
	require.Error(t, err)

	return err.(validator.ValidationErrors)
}

func TestValidationError_MissingFields(t *testing.T) {
	t.Parallel()

	errs := validationErrors(t, payload{})

	resp := ValidationError(errs)
	assert.Equal(t, "Please enter all fields", resp.Error)
}

func TestValidationError_MalformedEmail(t *testing.T) {
	t.Parallel()

	errs := validationErrors(t, payload{Name: "Ada", Email: "not-an-email"})

	resp := ValidationError(errs)
	assert.Equal(t, "Please enter a valid email", resp.Error)
}
