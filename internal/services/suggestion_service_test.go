package services

import (
	"context"
	"testing"

	"github.com/tbourn/krishi-mitra/internal/search"
)

func TestSuggestionCatalog_Localized(t *testing.T) {
	svc := NewSuggestionService(nil)

	en := svc.Catalog(context.Background(), "en")
	ml := svc.Catalog(context.Background(), "ml-IN")
	if en.Language != "en" || ml.Language != "ml" {
		t.Fatalf("languages = %s/%s", en.Language, ml.Language)
	}
	if en.Headings.SoilHealth == ml.Headings.SoilHealth {
		t.Fatalf("headings should be localized")
	}
	if len(ml.Tips) != len(en.Tips) || len(ml.Tips) == 0 {
		t.Fatalf("malayalam should fall back to english tips")
	}
}

func TestSuggestionSearch_TipsSchemesNotes(t *testing.T) {
	svc := NewSuggestionService([]search.Document{
		{ID: "note-1", Text: "Coconut palms need potash after the monsoon."},
	})

	hits := svc.Search(context.Background(), "en", "tomato blight fungicide", 0)
	if len(hits) == 0 || hits[0].Kind != KindTip || hits[0].ID != "tomato" || hits[0].Title != "Tomato Care" {
		t.Fatalf("unexpected tomato hits: %+v", hits)
	}

	hits = svc.Search(context.Background(), "en", "crop insurance", 0)
	if len(hits) == 0 || hits[0].Kind != KindScheme || hits[0].ID != "pmfby" {
		t.Fatalf("unexpected scheme hits: %+v", hits)
	}

	hits = svc.Search(context.Background(), "en", "coconut potash", 0)
	if len(hits) == 0 || hits[0].Kind != KindNote || hits[0].ID != "note-1" || hits[0].Title != "" {
		t.Fatalf("unexpected note hits: %+v", hits)
	}
}

func TestSuggestionSearch_EmptyAndThreshold(t *testing.T) {
	svc := NewSuggestionService(nil)
	if got := svc.Search(context.Background(), "en", "  ", 0); got == nil || len(got) != 0 {
		t.Fatalf("blank query should yield an empty slice, got %#v", got)
	}
	svc.Threshold = 1.1
	if got := svc.Search(context.Background(), "en", "tomato", 0); len(got) != 0 {
		t.Fatalf("threshold should drop all hits, got %+v", got)
	}
}

func TestSuggestionSearch_LimitK(t *testing.T) {
	svc := NewSuggestionService(nil)
	if got := svc.Search(context.Background(), "en", "soil fertilizer watering compost", 1); len(got) != 1 {
		t.Fatalf("k=1 should cap hits, got %d", len(got))
	}
}
