package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/krishi-mitra/internal/domain"
)

func TestCreateAssistanceRequest_Error_NoTable(t *testing.T) {
	db := newTestDB(t)
	r, err := CreateAssistanceRequest(context.Background(), db, "9999", "leaf curl", "en")
	if err == nil || r != nil {
		t.Fatalf("expected error creating without table, got r=%v err=%v", r, err)
	}
}

func TestCreateAndGetAssistanceRequest(t *testing.T) {
	db := newTestDB(t, &domain.AssistanceRequest{})
	start := time.Now().UTC().Add(-time.Minute)

	r, err := CreateAssistanceRequest(context.Background(), db, "9999", "leaf curl", "ml")
	if err != nil {
		t.Fatalf("CreateAssistanceRequest: %v", err)
	}
	if r.ID == "" || r.Phone != "9999" || r.Issue != "leaf curl" || r.Language != "ml" {
		t.Fatalf("unexpected fields: %+v", r)
	}
	if r.CreatedAt.Before(start) || r.CreatedAt.Location() != time.UTC {
		t.Fatalf("CreatedAt should be recent UTC, got %v", r.CreatedAt)
	}

	got, err := GetAssistanceRequest(context.Background(), db, r.ID)
	if err != nil || got.Issue != "leaf curl" {
		t.Fatalf("readback = %+v, %v", got, err)
	}

	if _, err := GetAssistanceRequest(context.Background(), db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAssistanceByPhone_OrderAndLimit(t *testing.T) {
	db := newTestDB(t, &domain.AssistanceRequest{})
	base := time.Now().UTC()
	rows := []domain.AssistanceRequest{
		{ID: "1", Phone: "p1", Issue: "old", Language: "en", CreatedAt: base.Add(-2 * time.Hour)},
		{ID: "2", Phone: "p1", Issue: "new", Language: "en", CreatedAt: base},
		{ID: "3", Phone: "p2", Issue: "other", Language: "en", CreatedAt: base},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	out, err := ListAssistanceByPhone(context.Background(), db, "p1", 0)
	if err != nil || len(out) != 2 || out[0].ID != "2" || out[1].ID != "1" {
		t.Fatalf("unexpected list: %+v err=%v", out, err)
	}
	out, _ = ListAssistanceByPhone(context.Background(), db, "p1", 1)
	if len(out) != 1 || out[0].ID != "2" {
		t.Fatalf("limit not applied: %+v", out)
	}
}
