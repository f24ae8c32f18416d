// Package services defines the business logic behind the advisory API:
// crop advice, the suggestions catalog and human-assistance requests.
// This file centralizes service-level error values so that handlers can map
// them to HTTP results consistently.
package services

import "errors"

var (
	// ErrTooLong is returned when a prompt exceeds the configured rune limit.
	ErrTooLong = errors.New("prompt too long")

	// ErrInvalidPhone is returned when an assistance request carries a
	// missing or malformed phone number.
	ErrInvalidPhone = errors.New("phone number is required and must contain 6-15 digits")

	// ErrEmptyIssue is returned when an assistance request has no issue text.
	ErrEmptyIssue = errors.New("issue description is required")

	// ErrIssueTooLong is returned when the issue text exceeds the configured limit.
	ErrIssueTooLong = errors.New("issue description too long")

	// ErrAssistanceNotFound indicates that the requested assistance request
	// does not exist.
	ErrAssistanceNotFound = errors.New("assistance request not found")
)
