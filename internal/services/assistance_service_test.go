package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/krishi-mitra/internal/domain"
)

// ----- Fake repo -----

type fakeAssistanceRepo struct {
	rows    map[string]*domain.AssistanceRequest
	idem    map[string]*domain.Idempotency
	creates int

	createErr error
}

func newFakeAssistanceRepo() *fakeAssistanceRepo {
	return &fakeAssistanceRepo{
		rows: map[string]*domain.AssistanceRequest{},
		idem: map[string]*domain.Idempotency{},
	}
}

func (r *fakeAssistanceRepo) CreateAssistanceRequest(_ context.Context, _ *gorm.DB, phone, issue, lang string) (*domain.AssistanceRequest, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.creates++
	row := &domain.AssistanceRequest{ID: uuid.NewString(), Phone: phone, Issue: issue, Language: lang, CreatedAt: time.Now().UTC()}
	r.rows[row.ID] = row
	return row, nil
}

func (r *fakeAssistanceRepo) GetAssistanceRequest(_ context.Context, _ *gorm.DB, id string) (*domain.AssistanceRequest, error) {
	if row, ok := r.rows[id]; ok {
		return row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAssistanceRepo) GetIdempotency(_ context.Context, _ *gorm.DB, scope, key string, now time.Time) (*domain.Idempotency, error) {
	rec, ok := r.idem[scope+"|"+key]
	if !ok || !rec.ExpiresAt.After(now) {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (r *fakeAssistanceRepo) CreateIdempotency(_ context.Context, _ *gorm.DB, scope, key, resourceID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	rec := &domain.Idempotency{Scope: scope, Key: key, ResourceID: resourceID, Status: status, ExpiresAt: time.Now().UTC().Add(ttl)}
	r.idem[scope+"|"+key] = rec
	return rec, nil
}

// ----- Tests -----

func TestAssistanceSubmit_NormalizesAndStores(t *testing.T) {
	r := newFakeAssistanceRepo()
	svc := NewAssistanceService(nil, r)

	req, replayed, err := svc.Submit(context.Background(), AssistanceInput{
		Phone:    " +91 98470-12345 ",
		Issue:    "  Yellow leaves on paddy  ",
		Language: "ml",
	}, "")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if replayed {
		t.Fatalf("first submit must not be a replay")
	}
	if req.Phone != "+919847012345" || req.Issue != "Yellow leaves on paddy" || req.Language != "ml" {
		t.Fatalf("unexpected row: %+v", req)
	}
}

func TestAssistanceSubmit_Validation(t *testing.T) {
	svc := NewAssistanceService(nil, newFakeAssistanceRepo())

	cases := []struct {
		name string
		in   AssistanceInput
		want error
	}{
		{"missing phone", AssistanceInput{Issue: "pests"}, ErrInvalidPhone},
		{"letters in phone", AssistanceInput{Phone: "call me", Issue: "pests"}, ErrInvalidPhone},
		{"short phone", AssistanceInput{Phone: "123", Issue: "pests"}, ErrInvalidPhone},
		{"blank issue", AssistanceInput{Phone: "9847012345", Issue: "   "}, ErrEmptyIssue},
		{"long issue", AssistanceInput{Phone: "9847012345", Issue: strings.Repeat("x", 2001)}, ErrIssueTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := svc.Submit(context.Background(), tc.in, ""); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v; want %v", err, tc.want)
			}
		})
	}
}

func TestAssistanceSubmit_IdempotentReplay(t *testing.T) {
	r := newFakeAssistanceRepo()
	svc := NewAssistanceService(nil, r)
	in := AssistanceInput{Phone: "9847012345", Issue: "wilting"}

	first, _, err := svc.Submit(context.Background(), in, "key-1")
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, replayed, err := svc.Submit(context.Background(), in, "key-1")
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !replayed || second.ID != first.ID {
		t.Fatalf("expected replay of %s, got %s replayed=%v", first.ID, second.ID, replayed)
	}
	if r.creates != 1 {
		t.Fatalf("creates = %d; want 1", r.creates)
	}

	if _, replayed, _ := svc.Submit(context.Background(), in, "key-2"); replayed || r.creates != 2 {
		t.Fatalf("a new key must create a new request")
	}
}

func TestAssistanceSubmit_RepoError(t *testing.T) {
	r := newFakeAssistanceRepo()
	r.createErr = errors.New("disk full")
	svc := NewAssistanceService(nil, r)

	if _, _, err := svc.Submit(context.Background(), AssistanceInput{Phone: "9847012345", Issue: "x"}, "k"); err == nil {
		t.Fatalf("expected error")
	}
	if len(r.idem) != 0 {
		t.Fatalf("no idempotency record expected on failure")
	}
}

func TestAssistanceGet(t *testing.T) {
	r := newFakeAssistanceRepo()
	svc := NewAssistanceService(nil, r)
	req, _, _ := svc.Submit(context.Background(), AssistanceInput{Phone: "9847012345", Issue: "x"}, "")

	got, err := svc.Get(context.Background(), req.ID)
	if err != nil || got.ID != req.ID {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	if _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, ErrAssistanceNotFound) {
		t.Fatalf("want ErrAssistanceNotFound, got %v", err)
	}
}
