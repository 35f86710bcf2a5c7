package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validationFixture struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Sex      string `json:"sex" binding:"required,oneof=Jantan Betina"`
	WeightKg string `json:"weight_kg" binding:"required,decimalstr"`
}

func bindingValidator(t *testing.T) *validator.Validate {
	t.Helper()
	SetupValidator()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v
}

func TestSetupValidator_DecimalStr(t *testing.T) {
	v := bindingValidator(t)

	t.Run("accepts decimal strings", func(t *testing.T) {
		for _, value := range []string{"35", "35.5", "0", "-1.25"} {
			err := v.Var(value, "decimalstr")
			assert.NoError(t, err, value)
		}
	})

	t.Run("rejects non-decimal strings", func(t *testing.T) {
		for _, value := range []string{"heavy", "1,5", ""} {
			err := v.Var(value, "decimalstr")
			assert.Error(t, err, value)
		}
	})
}

func TestFormatValidationErrors(t *testing.T) {
	v := bindingValidator(t)

	t.Run("reports each failing field by its json name", func(t *testing.T) {
		err := v.Struct(validationFixture{
			Sex:      "Male",
			WeightKg: "heavy",
		})
		require.Error(t, err)

		resp := FormatValidationErrors(err, "req-123")
		require.NotNil(t, resp.Error)
		assert.False(t, resp.Success)
		assert.Equal(t, "ERR_VALIDATION", resp.Error.Code)
		assert.Equal(t, "req-123", resp.Error.RequestID)
		require.Len(t, resp.Error.Details, 3)

		fields := map[string]string{}
		for _, d := range resp.Error.Details {
			fields[d.Field] = d.Message
		}
		assert.Equal(t, "This field is required", fields["name"])
		assert.Equal(t, "Must be one of: Jantan Betina", fields["sex"])
		assert.Equal(t, "Must be a decimal number", fields["weight_kg"])
	})

	t.Run("non-validation errors yield an empty detail list", func(t *testing.T) {
		resp := FormatValidationErrors(assert.AnError, "")
		require.NotNil(t, resp.Error)
		assert.Empty(t, resp.Error.Details)
	})
}
