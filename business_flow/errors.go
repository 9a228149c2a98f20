// Package businessflow contains the core business logic and use cases for the fitting-company backend
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Customer-related errors
	ErrCustomerNotFound        = errors.New("customer not found")
	ErrCustomerNameRequired    = errors.New("customer name is required")
	ErrCustomerAddressRequired = errors.New("customer address is required")

	// Job-related errors
	ErrJobNotFound          = errors.New("job not found")
	ErrJobReferenceConflict = errors.New("job reference already exists")
	ErrJobCustomerRequired  = errors.New("job customer is required")
	ErrScheduleItemNotFound = errors.New("schedule item not found")
	ErrJobDocumentNotFound  = errors.New("job document not found")
	ErrJobChecklistNotFound = errors.New("job checklist not found")
	ErrJobRoomNotFound      = errors.New("job room not found")
	ErrJobInvoiceNotFound   = errors.New("job invoice not found")

	// Quotation-related errors
	ErrQuotationNotFound      = errors.New("quotation not found")
	ErrQuotationTotalRequired = errors.New("quotation total is required")
	ErrQuotationJobConflict   = errors.New("job already has a quotation")

	// Form token errors
	ErrFormTokenInvalid     = errors.New("form token is invalid")
	ErrFormTokenExpired     = errors.New("form token has expired")
	ErrFormTokenAlreadyUsed = errors.New("form token has already been used")

	// Form submission errors
	ErrFormSubmissionNotFound = errors.New("form submission not found")
	ErrFormDataRequired       = errors.New("form data is required")
	ErrNoFileUploaded         = errors.New("no file uploaded")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrExportNotFound         = errors.New("export file not found")

	// Auth errors
	ErrUserNotFound      = errors.New("user not found")
	ErrAccountInactive   = errors.New("account is inactive")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrInvalidCaptcha    = errors.New("invalid captcha")

	// Catalog errors
	ErrProductNotFound = errors.New("product not found")

	// Filter errors
	ErrInvalidPage           = errors.New("page must be at least 1")
	ErrInvalidPageSize       = errors.New("page size must be between 1 and 100")
	ErrStartDateAfterEndDate = errors.New("start date cannot be after end date")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

func IsCustomerNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound)
}

func IsCustomerNameRequired(err error) bool {
	return errors.Is(err, ErrCustomerNameRequired)
}

func IsCustomerAddressRequired(err error) bool {
	return errors.Is(err, ErrCustomerAddressRequired)
}

func IsJobNotFound(err error) bool {
	return errors.Is(err, ErrJobNotFound)
}

func IsJobReferenceConflict(err error) bool {
	return errors.Is(err, ErrJobReferenceConflict)
}

func IsQuotationNotFound(err error) bool {
	return errors.Is(err, ErrQuotationNotFound)
}

func IsQuotationTotalRequired(err error) bool {
	return errors.Is(err, ErrQuotationTotalRequired)
}

func IsQuotationJobConflict(err error) bool {
	return errors.Is(err, ErrQuotationJobConflict)
}

func IsFormTokenInvalid(err error) bool {
	return errors.Is(err, ErrFormTokenInvalid)
}

func IsFormTokenExpired(err error) bool {
	return errors.Is(err, ErrFormTokenExpired)
}

func IsFormTokenAlreadyUsed(err error) bool {
	return errors.Is(err, ErrFormTokenAlreadyUsed)
}

func IsFormSubmissionNotFound(err error) bool {
	return errors.Is(err, ErrFormSubmissionNotFound)
}

func IsFormDataRequired(err error) bool {
	return errors.Is(err, ErrFormDataRequired)
}

func IsNoFileUploaded(err error) bool {
	return errors.Is(err, ErrNoFileUploaded)
}

func IsUnsupportedFileType(err error) bool {
	return errors.Is(err, ErrUnsupportedFileType)
}

func IsExportNotFound(err error) bool {
	return errors.Is(err, ErrExportNotFound)
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsInvalidCaptcha(err error) bool {
	return errors.Is(err, ErrInvalidCaptcha)
}

func IsProductNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}

func IsStartDateAfterEndDate(err error) bool {
	return errors.Is(err, ErrStartDateAfterEndDate)
}
