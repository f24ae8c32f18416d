package advisory

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/krishi-mitra/internal/i18n"
)

// Prompt is what a Model receives: the composed text part and an optional
// inline image part.
type Prompt struct {
	Text  string
	Image *Image
}

// Model generates a reply for a prompt.
type Model interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// Gateway is the server-side Advisor backed by a Model. There is no retry; a
// non-zero Timeout bounds each call.
type Gateway struct {
	Model   Model
	Checker PlantChecker
	Timeout time.Duration
}

// NewGateway returns a gateway with the always-succeeding plant check.
func NewGateway(m Model, timeout time.Duration) *Gateway {
	return &Gateway{Model: m, Checker: AlwaysPlant{}, Timeout: timeout}
}

// RequestAdvice validates req, runs the plant pre-check when an image is
// attached and asks the model. A failed pre-check returns the localized
// refusal without calling the model. The model's text is returned unmodified.
func (g *Gateway) RequestAdvice(ctx context.Context, req AdviceRequest) (reply string, err error) {
	tr := otel.Tracer("advisory/Gateway")
	ctx, span := tr.Start(ctx, "Gateway.RequestAdvice",
		trace.WithAttributes(
			attribute.String("advice.language", string(req.Language)),
			attribute.Bool("advice.has_image", req.Image != nil),
		),
	)
	start := time.Now()
	outcome := outcomeOK
	defer func() {
		adviceReqs.WithLabelValues(outcome).Inc()
		adviceLat.Observe(time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.String("advice.outcome", outcome))
		span.End()
	}()

	if req.Empty() {
		outcome = outcomeInvalid
		return "", ErrInvalidRequest
	}
	if !req.Language.Valid() {
		req.Language = i18n.Default
	}

	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	if req.Image != nil {
		checker := g.Checker
		if checker == nil {
			checker = AlwaysPlant{}
		}
		ok, cerr := checker.IsPlant(ctx, req.Image)
		if cerr != nil {
			outcome = outcomeError
			return "", &GatewayError{Message: "plant check failed", Status: http.StatusBadGateway, Err: cerr}
		}
		if !ok {
			outcome = outcomeRefused
			return i18n.T(req.Language, i18n.PlantRefusal), nil
		}
	}

	if g.Model == nil {
		outcome = outcomeError
		return "", &GatewayError{Message: ErrModelUnavailable.Error(), Status: http.StatusServiceUnavailable, Err: ErrModelUnavailable}
	}

	text, merr := g.Model.Generate(ctx, Prompt{
		Text:  ComposeText(req.Language, req.Prompt),
		Image: req.Image,
	})
	if merr != nil {
		if errors.Is(merr, context.DeadlineExceeded) {
			outcome = outcomeTimeout
			zerolog.Ctx(ctx).Warn().Dur("timeout", g.Timeout).Msg("advice request timed out")
			return "", &GatewayError{Message: "advisory model timed out", Status: http.StatusGatewayTimeout, Err: merr}
		}
		outcome = outcomeError
		zerolog.Ctx(ctx).Error().Err(merr).Msg("advice request failed")
		var ge *GatewayError
		if errors.As(merr, &ge) {
			return "", ge
		}
		return "", &GatewayError{Message: "advisory model request failed", Status: http.StatusBadGateway, Err: merr}
	}
	return text, nil
}

// Unconfigured is a Model that always fails with ErrModelUnavailable. It keeps
// the server usable for the non-advisory endpoints when no API key is set.
type Unconfigured struct{}

func (Unconfigured) Generate(context.Context, Prompt) (string, error) {
	return "", &GatewayError{Message: ErrModelUnavailable.Error(), Status: http.StatusServiceUnavailable, Err: ErrModelUnavailable}
}
