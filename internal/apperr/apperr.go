// Package apperr defines the error taxonomy reported across the API
// boundary: validation failures, business-rule failures, and everything
// else. The transport layer renders errors exclusively through Classify.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
)

// FieldError describes a single field violation inside a ValidationError.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports one or more malformed input fields. It is raised
// before any collaborator is touched.
type ValidationError struct {
	Details []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Details[0].Field, e.Details[0].Message)
}

// NewBodyRequired reports an absent or undecodable request body.
func NewBodyRequired() *ValidationError {
	return &ValidationError{Details: []FieldError{{Field: "body", Message: "Request body is required"}}}
}

// BusinessError is a domain-rule failure with a stable message and a
// client-error status, raised intentionally by the service layer.
type BusinessError struct {
	Status  int
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

// NewBusiness builds a BusinessError with the given status code.
func NewBusiness(status int, message string) *BusinessError {
	return &BusinessError{Status: status, Message: message}
}

// Response is the serialized error envelope. Exactly one of the optional
// fields is populated depending on the category.
type Response struct {
	Type    string       `json:"type"`
	Message string       `json:"message,omitempty"`
	Details []FieldError `json:"details,omitempty"`
	Stack   string       `json:"stack,omitempty"`
}

// Classify maps any error to an HTTP status and response body, checking
// validation first, then business, then falling through to internal.
// Stack detail is attached only outside production.
func Classify(err error, production bool) (int, Response) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, Response{
			Type:    "Validation Error",
			Details: ve.Details,
		}
	}

	var be *BusinessError
	if errors.As(err, &be) {
		status := be.Status
		if status == 0 {
			status = http.StatusBadRequest
		}
		return status, Response{
			Type:    "Application Error",
			Message: be.Message,
		}
	}

	resp := Response{
		Type:    "Internal Server Error",
		Message: err.Error(),
	}
	if !production {
		resp.Stack = string(debug.Stack())
	}
	return http.StatusInternalServerError, resp
}
