package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aztec-interiors/fitflow/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleFormData() map[string]*string {
	return map[string]*string{
		"customer_name":    utils.ToPtr("Jane Smith"),
		"customer_phone":   utils.ToPtr("07700900123"),
		"customer_address": utils.ToPtr("12 Harewood Road, Leeds LS2 9AB"),
		"door_colour":      utils.ToPtr("Sage"),
		"budget_range":     utils.ToPtr("5000-8000"),
	}
}

func TestPDFExporter(t *testing.T) {
	dir := t.TempDir()
	exporter := NewPDFExporter(dir)

	filename, err := exporter.Export(sampleFormData())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "form_"))
	assert.True(t, strings.HasSuffix(filename, ".pdf"))

	info, err := os.Stat(filepath.Join(dir, filename))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPDFExporterHandlesMissingValues(t *testing.T) {
	dir := t.TempDir()
	exporter := NewPDFExporter(dir)

	filename, err := exporter.Export(map[string]*string{})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, filename))
	require.NoError(t, err)
}

func TestExcelExporter(t *testing.T) {
	dir := t.TempDir()
	exporter := NewExcelExporter(dir)

	filename, err := exporter.Export(sampleFormData())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))

	f, err := excelize.OpenFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Survey Form")
	assert.Contains(t, sheets, "Summary")
	assert.NotContains(t, sheets, "Sheet1")

	// The summary sheet lists every column in export order
	name, err := f.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "customer_name", name)
	value, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", value)
}
