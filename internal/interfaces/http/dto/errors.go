package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes for failures that never reach the domain
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// domainErrorStatus maps domain error codes to HTTP status codes. Codes not
// listed here fall back by prefix: constructor validation codes start with
// INVALID_ and map to 400.
var domainErrorStatus = map[string]int{
	"NOT_FOUND":          http.StatusNotFound,
	"ALREADY_EXISTS":     http.StatusConflict,
	"PROTECTED":          http.StatusConflict,
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"PRODUCT_AMBIGUOUS":  http.StatusUnprocessableEntity,
	"NO_STORED_RAW":      http.StatusUnprocessableEntity,
	"EMPTY_SHIPMENT":     http.StatusBadRequest,
	"BAD_REQUEST":        http.StatusBadRequest,
	"INTERNAL_ERROR":     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := domainErrorStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
