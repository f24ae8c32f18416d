// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case. Generic codes mirror HTTP status semantics;
// domain-specific codes cover failures the status alone cannot convey.
// Clients are expected to branch on these codes for programmatic handling.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "advice_failed",
//	  "message": "advisory model request failed"
//	}
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"
	ErrCodeUnavailable  = "service_unavailable"
	ErrCodeBodyTooLarge = "request_too_large"

	// Domain-specific:
	ErrCodeAdviceFailed     = "advice_failed"
	ErrCodeCreateFailed     = "create_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
