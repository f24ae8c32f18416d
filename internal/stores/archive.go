package stores

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/krishi-mitra/internal/domain"
	"github.com/tbourn/krishi-mitra/internal/i18n"
)

// ArchiveStore reads and writes the per-language conversation archive.
type ArchiveStore struct {
	kv KV
}

// NewArchiveStore returns an archive over kv.
func NewArchiveStore(kv KV) *ArchiveStore { return &ArchiveStore{kv: kv} }

// ArchiveKey is the storage key of the archive for lang.
func ArchiveKey(lang i18n.Language) string { return archiveKeyPrefix + string(lang) }

// Load returns the archived conversations for lang in stored order. A missing
// or malformed archive yields an empty list.
func (a *ArchiveStore) Load(ctx context.Context, lang i18n.Language) ([]domain.ConversationSnapshot, error) {
	v, ok, err := a.kv.Get(ctx, ArchiveKey(lang))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.ConversationSnapshot{}, nil
	}
	var out []domain.ConversationSnapshot
	if err := json.Unmarshal([]byte(v), &out); err != nil {
		log.Warn().Err(err).Str("lang", string(lang)).Msg("ignoring malformed conversation archive")
		return []domain.ConversationSnapshot{}, nil
	}
	if out == nil {
		out = []domain.ConversationSnapshot{}
	}
	return out, nil
}

// Append adds snap to the archive for lang, replacing the whole stored value.
// A snapshot whose ID is already archived replaces the earlier copy.
func (a *ArchiveStore) Append(ctx context.Context, lang i18n.Language, snap domain.ConversationSnapshot) error {
	list, err := a.Load(ctx, lang)
	if err != nil {
		return err
	}
	replaced := false
	for i := range list {
		if list[i].ID == snap.ID {
			list[i] = snap
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, snap)
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return a.kv.Set(ctx, ArchiveKey(lang), string(b))
}
