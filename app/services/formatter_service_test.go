// Package services provides external service integrations and technical concerns like notifications and tokens
package services

import (
	"testing"

	"github.com/aztec-interiors/fitflow/models"
	"github.com/aztec-interiors/fitflow/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceFormDataCoversAllColumns(t *testing.T) {
	out := CoerceFormData(map[string]any{})
	require.Len(t, out, len(models.FormColumns))
	for _, column := range models.FormColumns {
		v, ok := out[column]
		assert.True(t, ok, "column %s missing", column)
		assert.Nil(t, v)
	}
}

func TestCoerceFormDataTextFields(t *testing.T) {
	out := CoerceFormData(map[string]any{
		"customer_name":  "  Jane Smith  ",
		"customer_phone": "",
		"mirror_qty":     float64(2),
		"door_colour":    nil,
	})

	require.NotNil(t, out["customer_name"])
	assert.Equal(t, "Jane Smith", *out["customer_name"])
	assert.Nil(t, out["customer_phone"])
	require.NotNil(t, out["mirror_qty"])
	assert.Equal(t, "2", *out["mirror_qty"])
	assert.Nil(t, out["door_colour"])
}

func TestCoerceFormDataCheckboxFields(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		ticked bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"tick mark", "✓", true},
		{"checked string", "Checked", true},
		{"true string", "true", true},
		{"yes string", "Yes", false},
		{"cross mark", "✗", false},
		{"x string", "x", false},
		{"no string", "no", false},
		{"empty string", "", false},
		{"null-ish string", "N/A", false},
		{"numeric one", float64(1), false},
		{"numeric zero", float64(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := CoerceFormData(map[string]any{
				"dresser_desk_present": tt.value,
			})
			if tt.ticked {
				require.NotNil(t, out["dresser_desk_present"])
				assert.Equal(t, utils.CheckboxTick, *out["dresser_desk_present"])
			} else {
				assert.Nil(t, out["dresser_desk_present"])
			}
		})
	}
}

func TestCoerceFormDataIgnoresUnknownKeys(t *testing.T) {
	out := CoerceFormData(map[string]any{
		"customer_name": "Jane",
		"not_a_column":  "surprise",
	})
	_, ok := out["not_a_column"]
	assert.False(t, ok)
}

func TestStripJSONFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripJSONFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripJSONFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripJSONFence(`{"a":1}`))
}

func TestParseStructuredReply(t *testing.T) {
	parsed, err := parseStructuredReply(`{"customer_name":"Jane"}`)
	require.NoError(t, err)
	assert.Equal(t, "Jane", parsed["customer_name"])

	// An unparsable reply keeps the raw text in the error for diagnosis
	_, err = parseStructuredReply("Sorry, I cannot help with that.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sorry, I cannot help with that.")
}
