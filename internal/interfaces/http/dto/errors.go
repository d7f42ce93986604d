package dto

import "net/http"

// Error code constants, format ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for the current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeEmptyInventory is used when approval hits an inventory with no counted items
	ErrCodeEmptyInventory = "ERR_EMPTY_INVENTORY"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:   http.StatusUnprocessableEntity,
	ErrCodeEmptyInventory: http.StatusUnprocessableEntity,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the standardized
// transport codes. Codes absent here pass through NormalizeErrorCode
// unchanged and resolve to 500.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,

	"INVALID_STATE":      ErrCodeInvalidState,
	"INVALID_TRANSITION": ErrCodeInvalidState,
	"EMPTY_INVENTORY":    ErrCodeEmptyInventory,

	"EMPTY_MANAGER_NOTE": ErrCodeValidationRequired,
	"VALIDATION_ERRORS":  ErrCodeValidation,

	"INVALID_SELLER_CODE":    ErrCodeInvalidInput,
	"INVALID_AUXILIARY_CODE": ErrCodeInvalidInput,
	"INVALID_ORDER_NUMBER":   ErrCodeInvalidInput,
	"INVALID_MOVEMENT_KIND":  ErrCodeInvalidInput,
	"INVALID_QUANTITY":       ErrCodeInvalidInput,
	"INVALID_UNIT_VALUE":     ErrCodeInvalidInput,
	"INVALID_STATUS":         ErrCodeInvalidInput,
	"DUPLICATE_PRODUCT":      ErrCodeInvalidInput,
}

// NormalizeErrorCode converts a domain error code to the standardized
// transport format. Unknown codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
