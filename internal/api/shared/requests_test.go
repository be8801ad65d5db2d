package shared

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/test",
			bytes.NewBufferString(`{"name":"widget"}`))

		var p payload
		require.NoError(t, DecodeJSON(req, &p))
		assert.Equal(t, "widget", p.Name)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/test",
			bytes.NewBufferString(`{"name":`))

		var p payload
		assert.Error(t, DecodeJSON(req, &p))
	})
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	t.Parallel()

	type payload struct {
		FullName string `json:"full_name" validate:"required"`
	}

	err := Validate.Struct(payload{})
	require.Error(t, err)

	var validationErrors validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrors)
	require.Len(t, validationErrors, 1)
	assert.Equal(t, "full_name", validationErrors[0].Field())
}
