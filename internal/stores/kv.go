// Package stores implements the terminal client's persisted single-value
// stores: the language preference, the signed-in identity and the
// per-language conversation archive. Each store is constructed explicitly
// from a KV backend, restores its value on construction and writes through
// on every mutation (last write wins).
package stores

import (
	"context"
	"sync"
)

// Well-known storage keys.
const (
	KeyUser          = "krishi-mitra-user"
	KeyLanguage      = "krishi-mitra-language"
	archiveKeyPrefix = "chatConversations_"
)

// KV is a string-valued persistent key-value store.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryKV is a process-local KV, used when no state directory is available
// and in tests.
type MemoryKV struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryKV returns an empty in-memory KV.
func NewMemoryKV() *MemoryKV { return &MemoryKV{m: map[string]string{}} }

func (k *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	v, ok := k.m[key]
	return v, ok, nil
}

func (k *MemoryKV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	k.m[key] = value
	k.mu.Unlock()
	return nil
}

func (k *MemoryKV) Delete(_ context.Context, key string) error {
	k.mu.Lock()
	delete(k.m, key)
	k.mu.Unlock()
	return nil
}
