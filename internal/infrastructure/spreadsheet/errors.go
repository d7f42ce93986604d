package spreadsheet

import "fmt"

// Row-scoped error codes
const (
	ErrCodeRequiredField = "ERR_IMPORT_REQUIRED_FIELD"
	ErrCodeInvalidType   = "ERR_IMPORT_INVALID_TYPE"
	ErrCodeInvalidValue  = "ERR_IMPORT_INVALID_VALUE"
	ErrCodeMalformedRow  = "ERR_IMPORT_MALFORMED_ROW"
)

// RowError represents an error in a specific row. Row errors are collected
// and returned in the validation result, never raised as Go errors; a bad
// row must not abort the batch.
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NewRowError creates a new RowError
func NewRowError(row int, column, code, message string) RowError {
	return RowError{
		Row:     row,
		Column:  column,
		Code:    code,
		Message: message,
	}
}

// ErrorCollection accumulates row errors with a cap on how many are kept.
// The total count keeps climbing past the cap so callers can report "N
// errors, first M shown".
type ErrorCollection struct {
	errors     []RowError
	maxErrors  int
	totalCount int
}

// NewErrorCollection creates a new ErrorCollection with a maximum error limit
func NewErrorCollection(maxErrors int) *ErrorCollection {
	if maxErrors <= 0 {
		maxErrors = 100
	}
	return &ErrorCollection{
		errors:    make([]RowError, 0, maxErrors),
		maxErrors: maxErrors,
	}
}

// Add adds an error to the collection
func (ec *ErrorCollection) Add(err RowError) {
	ec.totalCount++
	if len(ec.errors) < ec.maxErrors {
		ec.errors = append(ec.errors, err)
	}
}

// AddRequiredError adds a required field error
func (ec *ErrorCollection) AddRequiredError(row int, column string) {
	ec.Add(NewRowError(row, column, ErrCodeRequiredField, fmt.Sprintf("field '%s' is required", column)))
}

// AddTypeError adds a type validation error
func (ec *ErrorCollection) AddTypeError(row int, column, expectedType, value string) {
	ec.Add(RowError{
		Row:     row,
		Column:  column,
		Code:    ErrCodeInvalidType,
		Message: fmt.Sprintf("expected %s", expectedType),
		Value:   value,
	})
}

// AddValueError adds an invalid value error
func (ec *ErrorCollection) AddValueError(row int, column, message, value string) {
	ec.Add(RowError{
		Row:     row,
		Column:  column,
		Code:    ErrCodeInvalidValue,
		Message: message,
		Value:   value,
	})
}

// HasErrors returns true if any error was recorded
func (ec *ErrorCollection) HasErrors() bool {
	return ec.totalCount > 0
}

// Errors returns the kept errors
func (ec *ErrorCollection) Errors() []RowError {
	return ec.errors
}

// TotalCount returns the number of errors recorded, kept or not
func (ec *ErrorCollection) TotalCount() int {
	return ec.totalCount
}

// IsTruncated returns true when more errors occurred than were kept
func (ec *ErrorCollection) IsTruncated() bool {
	return ec.totalCount > len(ec.errors)
}
