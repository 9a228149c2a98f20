package models

import "strings"

// FormColumns lists every field of the fitting survey form, in export order.
var FormColumns = []string{
	"customer_name", "customer_phone", "customer_email", "customer_address",
	"door_colour", "door_style", "worktop_colour", "worktop_style",
	"handles_style", "handles_colour", "bedside_cabinets_style",
	"bedside_cabinets_qty", "dresser_desk_present", "dresser_desk_qty_size",
	"internal_mirror_present", "internal_mirror_qty_size", "mirror_style",
	"mirror_qty", "soffit_lights_type", "soffit_lights_colour",
	"soffit_lights_qty", "gable_lights_colour", "gable_lights_qty",
	"special_requirements", "budget_range", "preferred_completion_date",
}

// CheckboxFields are ticked on paper and coerced to a tick mark or null
// when structured.
var CheckboxFields = []string{
	"dresser_desk_present",
	"internal_mirror_present",
}

// FormSection groups related form fields for PDF and Excel rendering
type FormSection struct {
	Title  string
	Fields []string
}

// FormSections defines the layout of the survey form, section by section.
var FormSections = []FormSection{
	{Title: "Customer Information", Fields: []string{"customer_name", "customer_phone", "customer_email", "customer_address"}},
	{Title: "Kitchen Design Preferences", Fields: []string{"door_colour", "door_style", "worktop_colour", "worktop_style", "handles_style", "handles_colour"}},
	{Title: "Bedside Cabinets", Fields: []string{"bedside_cabinets_style", "bedside_cabinets_qty"}},
	{Title: "Dresser/Desk", Fields: []string{"dresser_desk_present", "dresser_desk_qty_size"}},
	{Title: "Internal Mirror", Fields: []string{"internal_mirror_present", "internal_mirror_qty_size"}},
	{Title: "Mirror", Fields: []string{"mirror_style", "mirror_qty"}},
	{Title: "Soffit Lights", Fields: []string{"soffit_lights_type", "soffit_lights_colour", "soffit_lights_qty"}},
	{Title: "Gable Lights", Fields: []string{"gable_lights_colour", "gable_lights_qty"}},
	{Title: "Additional Information", Fields: []string{"special_requirements", "budget_range", "preferred_completion_date"}},
}

// IsCheckboxField reports whether the given field is a checkbox on the paper form
func IsCheckboxField(field string) bool {
	for _, f := range CheckboxFields {
		if f == field {
			return true
		}
	}
	return false
}

// FieldDisplayName converts a form field name to its human readable label
func FieldDisplayName(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
