// Package advisory is the integration boundary to the generative model that
// answers farmers' crop questions. A Gateway composes the crop-doctor
// instruction, the farmer's text and an optional inline image, runs the
// optional plant pre-check and returns the model's raw markdown reply.
//
// The same Advisor contract is implemented on the client side by
// RemoteAdvisor, which calls the server's advisory endpoint.
package advisory

import (
	"context"
	"errors"
	"strings"

	"github.com/tbourn/krishi-mitra/internal/i18n"
)

var (
	// ErrInvalidRequest is returned when neither prompt text nor an image is supplied.
	ErrInvalidRequest = errors.New("prompt or image is required")

	// ErrInvalidImage is returned when image data cannot be decoded.
	ErrInvalidImage = errors.New("image data is not valid base64")

	// ErrModelUnavailable is returned when no model is configured.
	ErrModelUnavailable = errors.New("advisory model is not configured")
)

// GatewayError is a transport or provider failure. Message is human readable
// and safe to show; Status is the HTTP-equivalent status (0 when unknown).
type GatewayError struct {
	Message string
	Status  int
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *GatewayError) Unwrap() error { return e.Err }

// Image is an inline image attached to an advice request.
type Image struct {
	Data     []byte
	MIMEType string
}

// AdviceRequest is one question to the crop doctor.
type AdviceRequest struct {
	Prompt   string
	Image    *Image
	Language i18n.Language
}

// Empty reports whether the request carries neither text nor image.
func (r AdviceRequest) Empty() bool {
	return strings.TrimSpace(r.Prompt) == "" && (r.Image == nil || len(r.Image.Data) == 0)
}

// Advisor answers advice requests. Errors are ErrInvalidRequest or *GatewayError.
type Advisor interface {
	RequestAdvice(ctx context.Context, req AdviceRequest) (string, error)
}
