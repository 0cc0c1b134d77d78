package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePreferences_Valid(t *testing.T) {
	doc := `{
		"hourly_rate_min": 30,
		"hourly_rate_max": 70,
		"keywords": ["go", "react"],
		"min_score_to_notify": 85,
		"auto_save": false
	}`
	assert.NoError(t, ValidatePreferences([]byte(doc)))
}

func TestValidatePreferences_ListFieldsUnconstrained(t *testing.T) {
	// List coercion happens at decode time; the schema accepts any shape.
	assert.NoError(t, ValidatePreferences([]byte(`{"keywords": "react"}`)))
	assert.NoError(t, ValidatePreferences([]byte(`{"locations": 7}`)))
}

func TestValidatePreferences_ScalarTypeMismatch(t *testing.T) {
	err := ValidatePreferences([]byte(`{"hourly_rate_min": "forty"}`))
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.NotEmpty(t, ve.Errors)
	assert.Equal(t, "hourly_rate_min", ve.Errors[0].Field)
	assert.Contains(t, err.Error(), "hourly_rate_min")
}

func TestValidatePreferences_RangeViolations(t *testing.T) {
	assert.Error(t, ValidatePreferences([]byte(`{"hourly_rate_min": -5}`)))
	assert.Error(t, ValidatePreferences([]byte(`{"min_score_to_notify": 150}`)))
}

func TestValidatePreferences_MalformedJSON(t *testing.T) {
	err := ValidatePreferences([]byte(`{broken`))
	require.Error(t, err)

	var le *SchemaLoadError
	assert.True(t, errors.As(err, &le))
}

func TestValidatePreferences_UnknownFieldsAllowed(t *testing.T) {
	assert.NoError(t, ValidatePreferences([]byte(`{"future_field": true}`)))
}
