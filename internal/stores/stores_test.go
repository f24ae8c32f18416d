package stores

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/tbourn/krishi-mitra/internal/domain"
	"github.com/tbourn/krishi-mitra/internal/i18n"
)

// failingKV fails every call with err.
type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Set(context.Context, string, string) error         { return f.err }
func (f failingKV) Delete(context.Context, string) error              { return f.err }

func TestLanguageStore_DefaultAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	s, err := NewLanguageStore(ctx, kv)
	if err != nil {
		t.Fatalf("NewLanguageStore: %v", err)
	}
	if s.Get() != i18n.English {
		t.Fatalf("default language = %q; want en", s.Get())
	}

	if err := s.Set(ctx, i18n.Malayalam); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _, _ := kv.Get(ctx, KeyLanguage); v != "ml" {
		t.Fatalf("stored value = %q; want ml", v)
	}

	// reload from the same backing store
	s2, _ := NewLanguageStore(ctx, kv)
	if s2.Get() != i18n.Malayalam {
		t.Fatalf("reloaded language = %q; want ml", s2.Get())
	}
}

func TestLanguageStore_InvalidStoredValueFallsBack(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	_ = kv.Set(ctx, KeyLanguage, "fr")
	s, _ := NewLanguageStore(ctx, kv)
	if s.Get() != i18n.English {
		t.Fatalf("invalid stored value should yield en, got %q", s.Get())
	}
	if err := s.Set(ctx, "fr"); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}
}

func TestLanguageStore_Toggle(t *testing.T) {
	ctx := context.Background()
	s, _ := NewLanguageStore(ctx, NewMemoryKV())
	if l, err := s.Toggle(ctx); err != nil || l != i18n.Malayalam {
		t.Fatalf("Toggle = %q, %v", l, err)
	}
	if l, _ := s.Toggle(ctx); l != i18n.English {
		t.Fatalf("second Toggle = %q", l)
	}
}

func TestLanguageStore_WriteFailureKeepsValue(t *testing.T) {
	ctx := context.Background()
	s := &LanguageStore{kv: failingKV{err: errors.New("disk full")}, lang: i18n.English}
	if err := s.Set(ctx, i18n.Malayalam); err == nil {
		t.Fatalf("expected write error")
	}
	if s.Get() != i18n.English {
		t.Fatalf("failed write must not change the active language")
	}
	if _, err := NewLanguageStore(ctx, failingKV{err: errors.New("boom")}); err == nil {
		t.Fatalf("expected restore error")
	}
}

func TestIdentityStore_LoginDemoProfile(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s, _ := NewIdentityStore(ctx, kv)
	if s.Authenticated() {
		t.Fatalf("fresh store should be signed out")
	}

	u, err := s.Login(ctx, LoginForm{Phone: " 9876543210 ", Password: "x"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.ID == "" || u.Name != DemoName || u.Phone != "9876543210" || u.Location != DefaultLocation ||
		!reflect.DeepEqual(u.Crops, []string{"Rice", "Tomato"}) {
		t.Fatalf("unexpected profile: %+v", u)
	}

	// persisted and restored
	s2, _ := NewIdentityStore(ctx, kv)
	got, ok := s2.Current()
	if !ok || got.ID != u.ID || got.Phone != u.Phone {
		t.Fatalf("restored profile = %+v ok=%v", got, ok)
	}
}

func TestIdentityStore_LoginRequiresNonEmptyPair(t *testing.T) {
	ctx := context.Background()
	s, _ := NewIdentityStore(ctx, NewMemoryKV())
	for _, f := range []LoginForm{{}, {Phone: "1"}, {Password: "p"}, {Phone: "  ", Password: "p"}} {
		if _, err := s.Login(ctx, f); !errors.Is(err, ErrEmptyCredentials) {
			t.Fatalf("Login(%+v) err = %v; want ErrEmptyCredentials", f, err)
		}
	}
}

func TestIdentityStore_Signup(t *testing.T) {
	ctx := context.Background()
	s, _ := NewIdentityStore(ctx, NewMemoryKV())

	u, err := s.Signup(ctx, SignupForm{Phone: "1", Password: "p", Crops: " Rice, ,Chili ,", History: "paddy for 10 years"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if u.Name != SignupName || u.Location != DefaultLocation || !reflect.DeepEqual(u.Crops, []string{"Rice", "Chili"}) || u.History != "paddy for 10 years" {
		t.Fatalf("unexpected profile: %+v", u)
	}

	u2, _ := s.Signup(ctx, SignupForm{Phone: "2", Password: "p", Location: "Kochi, Kerala"})
	if u2.Location != "Kochi, Kerala" || len(u2.Crops) != 0 {
		t.Fatalf("unexpected profile: %+v", u2)
	}
	if cur, _ := s.Current(); cur.Phone != "2" {
		t.Fatalf("last write should win, got %+v", cur)
	}
}

func TestIdentityStore_LogoutAndMalformed(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s, _ := NewIdentityStore(ctx, kv)
	_, _ = s.Login(ctx, LoginForm{Phone: "1", Password: "p"})

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if s.Authenticated() {
		t.Fatalf("should be signed out after Logout")
	}
	if _, ok, _ := kv.Get(ctx, KeyUser); ok {
		t.Fatalf("profile key should be deleted")
	}

	_ = kv.Set(ctx, KeyUser, "{not json")
	s2, err := NewIdentityStore(ctx, kv)
	if err != nil || s2.Authenticated() {
		t.Fatalf("malformed profile should restore as signed out, err=%v", err)
	}
}

func TestIdentityStore_CurrentReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s, _ := NewIdentityStore(ctx, NewMemoryKV())
	_, _ = s.Login(ctx, LoginForm{Phone: "1", Password: "p"})
	u, _ := s.Current()
	u.Crops[0] = "Mutated"
	again, _ := s.Current()
	if again.Crops[0] != "Rice" {
		t.Fatalf("Current must return a copy")
	}
}

func TestArchiveStore_LoadAppend(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	a := NewArchiveStore(kv)

	if ArchiveKey(i18n.Malayalam) != "chatConversations_ml" {
		t.Fatalf("unexpected key %q", ArchiveKey(i18n.Malayalam))
	}

	list, err := a.Load(ctx, i18n.English)
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("empty archive = %v, %v", list, err)
	}

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	snap := domain.ConversationSnapshot{ID: "c1", CreatedAt: ts, Messages: []domain.ArchivedMessage{{ID: "m", Role: domain.RoleUser, Content: "hi", CreatedAt: ts}}}
	if err := a.Append(ctx, i18n.English, snap); err != nil {
		t.Fatalf("Append: %v", err)
	}
	snap.Messages = append(snap.Messages, domain.ArchivedMessage{ID: "m2", Role: domain.RoleAssistant, Content: "hello", CreatedAt: ts})
	if err := a.Append(ctx, i18n.English, snap); err != nil {
		t.Fatalf("Append again: %v", err)
	}

	list, _ = a.Load(ctx, i18n.English)
	if len(list) != 1 || len(list[0].Messages) != 2 {
		t.Fatalf("same id should replace, got %+v", list)
	}
	if other, _ := a.Load(ctx, i18n.Malayalam); len(other) != 0 {
		t.Fatalf("archives are per-language")
	}

	_ = kv.Set(ctx, ArchiveKey(i18n.Malayalam), "[{broken")
	if bad, err := a.Load(ctx, i18n.Malayalam); err != nil || len(bad) != 0 {
		t.Fatalf("malformed archive should load empty, got %v, %v", bad, err)
	}
}
