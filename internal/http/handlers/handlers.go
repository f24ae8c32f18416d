// Package handlers provides the HTTP endpoints of the advisory API:
//   - POST /crops              (crop doctor advice)
//   - GET  /context            (location + weather enrichment)
//   - GET  /suggestions        (localized tips catalog, keyword search)
//   - GET  /market/prices      (reference price table)
//   - POST /assistance         (human call-back request, idempotent)
//   - GET  /assistance/{id}
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"

	"github.com/tbourn/krishi-mitra/internal/domain"
	"github.com/tbourn/krishi-mitra/internal/enrich"
	"github.com/tbourn/krishi-mitra/internal/services"
	"github.com/tbourn/krishi-mitra/internal/suggestions"
)

//
// Service contracts (context-aware)
//

// AdviceService answers crop questions.
type AdviceService interface {
	Advise(ctx context.Context, in services.AdviceInput) (*services.Advice, error)
}

// ContextService resolves best-effort location and weather context. It never fails.
type ContextService interface {
	Lookup(ctx context.Context, lat, lon float64) enrich.Context
}

// SuggestionService serves the tips catalog and searches it.
type SuggestionService interface {
	Catalog(ctx context.Context, lang string) suggestions.Catalog
	Search(ctx context.Context, lang, q string, k int) []services.SuggestionHit
}

// AssistanceService files and reads human-assistance requests.
type AssistanceService interface {
	Submit(ctx context.Context, in services.AssistanceInput, idemKey string) (*domain.AssistanceRequest, bool, error)
	Get(ctx context.Context, id string) (*domain.AssistanceRequest, error)
}

//
// Handler wiring
//

// Handlers groups the API endpoints. Any service may be nil, in which case
// its endpoints answer 503.
type Handlers struct {
	adviceSvc  AdviceService
	ctxSvc     ContextService
	suggestSvc SuggestionService
	assistSvc  AssistanceService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(advice AdviceService, ctxSvc ContextService, suggest SuggestionService, assist AssistanceService) *Handlers {
	return &Handlers{adviceSvc: advice, ctxSvc: ctxSvc, suggestSvc: suggest, assistSvc: assist}
}
