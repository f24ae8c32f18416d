package stores

import (
	"context"
	"sync"

	"github.com/tbourn/krishi-mitra/internal/i18n"
)

// LanguageStore holds the active interface language.
type LanguageStore struct {
	kv KV

	mu   sync.RWMutex
	lang i18n.Language
}

// NewLanguageStore restores the persisted preference. A missing or
// unrecognized value yields English.
func NewLanguageStore(ctx context.Context, kv KV) (*LanguageStore, error) {
	s := &LanguageStore{kv: kv, lang: i18n.Default}
	v, ok, err := kv.Get(ctx, KeyLanguage)
	if err != nil {
		return nil, err
	}
	if ok {
		if l := i18n.Language(v); l.Valid() {
			s.lang = l
		}
	}
	return s, nil
}

// Get returns the active language.
func (s *LanguageStore) Get() i18n.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lang
}

// Set persists lang and makes it active. Unsupported values are rejected.
func (s *LanguageStore) Set(ctx context.Context, lang i18n.Language) error {
	if !lang.Valid() {
		return ErrUnsupportedLanguage
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(ctx, KeyLanguage, string(lang)); err != nil {
		return err
	}
	s.lang = lang
	return nil
}

// Toggle switches between the two languages and returns the new one.
func (s *LanguageStore) Toggle(ctx context.Context) (i18n.Language, error) {
	next := s.Get().Other()
	if err := s.Set(ctx, next); err != nil {
		return s.Get(), err
	}
	return next, nil
}
