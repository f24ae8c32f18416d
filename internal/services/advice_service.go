// Package services – AdviceService
//
// AdviceService is the server-side use case behind the advisory endpoint. It
// normalizes the wire request (language tag, optional base64 image), enforces
// the prompt length guard, asks the configured Advisor and renders the reply
// to sanitized HTML next to the raw markdown.
package services

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/krishi-mitra/internal/advisory"
	"github.com/tbourn/krishi-mitra/internal/i18n"
	"github.com/tbourn/krishi-mitra/internal/render"
)

// AdviceInput is the transport-neutral form of an advisory request.
type AdviceInput struct {
	Prompt    string
	Language  string
	ImageData string
}

// Advice is the reply of the crop doctor.
type Advice struct {
	Text     string
	HTML     string
	Language i18n.Language
}

// AdviceService answers crop questions through an advisory.Advisor.
type AdviceService struct {
	Advisor  advisory.Advisor
	Renderer *render.Renderer

	// MaxPromptRunes caps the prompt length. Zero disables the guard.
	MaxPromptRunes int
}

// NewAdviceService constructs an AdviceService with the default prompt cap.
func NewAdviceService(a advisory.Advisor, r *render.Renderer) *AdviceService {
	return &AdviceService{Advisor: a, Renderer: r, MaxPromptRunes: 4000}
}

// Advise validates in and returns the model's reply. Errors are
// advisory.ErrInvalidRequest, advisory.ErrInvalidImage, ErrTooLong or
// whatever the Advisor returns (typically *advisory.GatewayError).
func (s *AdviceService) Advise(ctx context.Context, in AdviceInput) (*Advice, error) {
	lang := i18n.Parse(in.Language)

	tr := otel.Tracer("services/AdviceService")
	ctx, span := tr.Start(ctx, "Advise",
		trace.WithAttributes(
			attribute.String("advice.language", string(lang)),
			attribute.Bool("advice.has_image", strings.TrimSpace(in.ImageData) != ""),
		),
	)
	defer span.End()

	if s.MaxPromptRunes > 0 && utf8.RuneCountInString(in.Prompt) > s.MaxPromptRunes {
		return nil, ErrTooLong
	}

	req := advisory.AdviceRequest{Prompt: in.Prompt, Language: lang}
	if strings.TrimSpace(in.ImageData) != "" {
		img, err := advisory.DecodeImage(in.ImageData)
		if err != nil {
			return nil, err
		}
		req.Image = img
	}
	if req.Empty() {
		return nil, advisory.ErrInvalidRequest
	}
	if s.Advisor == nil {
		return nil, &advisory.GatewayError{Message: advisory.ErrModelUnavailable.Error(), Status: http.StatusServiceUnavailable, Err: advisory.ErrModelUnavailable}
	}

	text, err := s.Advisor.RequestAdvice(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	out := &Advice{Text: text, Language: lang}
	if s.Renderer != nil {
		out.HTML = s.Renderer.HTML(text)
	}
	return out, nil
}
