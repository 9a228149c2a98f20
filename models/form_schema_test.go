package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldDisplayName(t *testing.T) {
	assert.Equal(t, "Customer Name", FieldDisplayName("customer_name"))
	assert.Equal(t, "Soffit Lights Qty", FieldDisplayName("soffit_lights_qty"))
	assert.Equal(t, "Notes", FieldDisplayName("notes"))
}

func TestIsCheckboxField(t *testing.T) {
	assert.True(t, IsCheckboxField("dresser_desk_present"))
	assert.True(t, IsCheckboxField("internal_mirror_present"))
	assert.False(t, IsCheckboxField("customer_name"))
}

func TestFormSectionsCoverEveryColumn(t *testing.T) {
	seen := make(map[string]bool)
	for _, section := range FormSections {
		for _, field := range section.Fields {
			seen[field] = true
		}
	}
	for _, column := range FormColumns {
		assert.True(t, seen[column], "column %s missing from form sections", column)
	}
}
