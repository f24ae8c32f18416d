// Package services – SuggestionService
//
// SuggestionService serves the localized suggestions catalog and keyword
// search over it. Crop tips, schemes and any operator-supplied notes are
// indexed once at construction with the in-memory Jaccard index.
package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/krishi-mitra/internal/i18n"
	"github.com/tbourn/krishi-mitra/internal/search"
	"github.com/tbourn/krishi-mitra/internal/suggestions"
)

// Hit kinds.
const (
	KindTip    = "tip"
	KindScheme = "scheme"
	KindNote   = "note"
)

// SuggestionHit is one search result.
type SuggestionHit struct {
	ID      string  `json:"id"`
	Kind    string  `json:"kind"`
	Title   string  `json:"title,omitempty"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// SuggestionService provides the catalog and search over it.
type SuggestionService struct {
	Index search.Index

	// Threshold drops hits scoring below it.
	Threshold float64
	// TopK bounds the number of hits. Zero means 5.
	TopK int
}

// NewSuggestionService indexes the English catalog plus notes.
func NewSuggestionService(notes []search.Document) *SuggestionService {
	cat := suggestions.For(i18n.English)
	docs := make([]search.Document, 0, len(cat.Tips)+len(cat.Schemes)+len(notes))
	for _, t := range cat.Tips {
		docs = append(docs, search.Document{
			ID:   KindTip + ":" + t.ID,
			Text: t.Crop + " " + t.Title + ". " + t.Description,
		})
	}
	for _, sc := range cat.Schemes {
		docs = append(docs, search.Document{
			ID:   KindScheme + ":" + sc.ID,
			Text: sc.Title + ". " + sc.Description,
		})
	}
	for _, n := range notes {
		docs = append(docs, search.Document{ID: KindNote + ":" + n.ID, Text: n.Text})
	}
	return &SuggestionService{Index: search.New(docs), TopK: 5}
}

// Catalog returns the suggestions content for the requested language.
func (s *SuggestionService) Catalog(_ context.Context, lang string) suggestions.Catalog {
	return suggestions.For(i18n.Parse(lang))
}

// Search returns up to k best matching tips, schemes and notes for q; k <= 0
// uses TopK. Titles are taken from the catalog of the requested language.
func (s *SuggestionService) Search(ctx context.Context, lang, q string, k int) []SuggestionHit {
	tr := otel.Tracer("services/SuggestionService")
	_, span := tr.Start(ctx, "Search",
		trace.WithAttributes(attribute.Int("query.len", len(q))),
	)
	defer span.End()

	if s.Index == nil || strings.TrimSpace(q) == "" {
		return []SuggestionHit{}
	}
	if k <= 0 {
		k = s.TopK
	}
	if k <= 0 {
		k = 5
	}
	cat := suggestions.For(i18n.Parse(lang))

	out := make([]SuggestionHit, 0, k)
	for _, r := range s.Index.TopK(q, k) {
		if r.Score < s.Threshold {
			continue
		}
		kind, id, _ := strings.Cut(r.ID, ":")
		h := SuggestionHit{ID: id, Kind: kind, Snippet: r.Snippet, Score: r.Score}
		switch kind {
		case KindTip:
			for _, t := range cat.Tips {
				if t.ID == id {
					h.Title = t.Title
				}
			}
		case KindScheme:
			for _, sc := range cat.Schemes {
				if sc.ID == id {
					h.Title = sc.Title
				}
			}
		}
		out = append(out, h)
	}
	span.SetAttributes(attribute.Int("hits", len(out)))
	return out
}
