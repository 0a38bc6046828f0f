package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

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
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Region engine error codes
const (
	// ErrCodeReconcileFailed is used when the region store cannot be synchronized
	ErrCodeReconcileFailed = "ERR_RECONCILE_FAILED"
	// ErrCodeSessionNotFound is used for unknown or closed assignment sessions
	ErrCodeSessionNotFound = "ERR_SESSION_NOT_FOUND"
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeNoPendingEdit is used when a commit finds nothing staged
	ErrCodeNoPendingEdit = "ERR_NO_PENDING_EDIT"
	// ErrCodeRegionProtected is used when a catalog-backed region is renamed or deleted
	ErrCodeRegionProtected = "ERR_REGION_PROTECTED"
	// ErrCodeRegionInUse is used when deleting a region that points still reference
	ErrCodeRegionInUse = "ERR_REGION_IN_USE"
	// ErrCodeSaveFailed is used when the store rejected a write
	ErrCodeSaveFailed = "ERR_SAVE_FAILED"
	// ErrCodeGeocodeFailed is used when an address could not be located
	ErrCodeGeocodeFailed = "ERR_GEOCODE_FAILED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Region engine errors
	ErrCodeReconcileFailed: http.StatusServiceUnavailable,
	ErrCodeSessionNotFound: http.StatusNotFound,
	ErrCodeInvalidState:    http.StatusConflict,
	ErrCodeNoPendingEdit:   http.StatusConflict,
	ErrCodeRegionProtected: http.StatusForbidden,
	ErrCodeRegionInUse:     http.StatusConflict,
	ErrCodeSaveFailed:      http.StatusBadGateway,
	ErrCodeGeocodeFailed:   http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the standardized wire codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"ALREADY_EXISTS":        ErrCodeAlreadyExists,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"UNAUTHORIZED":          ErrCodeUnauthorized,
	"FORBIDDEN":             ErrCodeForbidden,
	"CONCURRENCY_CONFLICT":  ErrCodeConcurrencyConflict,
	"BAD_REQUEST":           ErrCodeBadRequest,
	"INTERNAL_ERROR":        ErrCodeInternal,
	"INVALID_NAME":          ErrCodeValidation,
	"INVALID_COORDINATE":    ErrCodeValidationRange,
	"INVALID_NEIGHBORHOOD":  ErrCodeValidation,
	"INVALID_NEIGHBORHOODS": ErrCodeValidation,
	"RECONCILE_FAILED":      ErrCodeReconcileFailed,
	"SESSION_NOT_FOUND":     ErrCodeSessionNotFound,
	"INVALID_STATE":         ErrCodeInvalidState,
	"NO_PENDING_EDIT":       ErrCodeNoPendingEdit,
	"REGION_PROTECTED":      ErrCodeRegionProtected,
	"REGION_IN_USE":         ErrCodeRegionInUse,
	"SAVE_FAILED":           ErrCodeSaveFailed,
	"GEOCODE_FAILED":        ErrCodeGeocodeFailed,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
