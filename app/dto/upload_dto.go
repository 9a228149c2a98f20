package dto

import "io"

// ProcessScanRequest carries an uploaded scan of the survey form
type ProcessScanRequest struct {
	File             io.Reader `json:"-"`
	OriginalFilename string    `json:"-"`
	FileSize         int64     `json:"-"`
}

// ProcessScanResponse returns the result of an OCR + structuring run on an
// uploaded scan of the survey form
type ProcessScanResponse struct {
	Message        string             `json:"message"`
	Submission     FormSubmissionDTO  `json:"submission"`
	StructuredData map[string]*string `json:"structured_data"`
	PDFURL         string             `json:"pdf_url,omitempty"`
	ExcelURL       string             `json:"excel_url,omitempty"`
}

// GenerateExportRequest carries form data to render into a PDF or Excel document.
// When SubmissionID is set the stored submission data is used instead.
type GenerateExportRequest struct {
	SubmissionID *uint             `json:"submission_id,omitempty"`
	FormData     map[string]string `json:"form_data,omitempty"`
}

// GenerateExportResponse returns the location of a rendered document
type GenerateExportResponse struct {
	Message     string `json:"message"`
	DownloadURL string `json:"download_url" example:"/api/v1/download/form_20250115_103000.pdf"`
	Filename    string `json:"filename" example:"form_20250115_103000.pdf"`
}
