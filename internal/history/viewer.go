// Package history lists archived conversations of the active language.
package history

import (
	"context"
	"sort"
	"time"

	"github.com/tbourn/krishi-mitra/internal/domain"
	"github.com/tbourn/krishi-mitra/internal/i18n"
	"github.com/tbourn/krishi-mitra/internal/stores"
)

// Entry is one row of the history list.
type Entry struct {
	ID        string
	Speaker   string // label of the first message's author
	CreatedAt time.Time
	Preview   string // content of the last message
	Messages  int
}

// Archive is the read side of stores.ArchiveStore.
type Archive interface {
	Load(ctx context.Context, lang i18n.Language) ([]domain.ConversationSnapshot, error)
}

var _ Archive = (*stores.ArchiveStore)(nil)

// Viewer reads the archive; it never writes.
type Viewer struct {
	archive Archive
}

func NewViewer(a Archive) *Viewer { return &Viewer{archive: a} }

// List returns the archived conversations for lang, latest first.
func (v *Viewer) List(ctx context.Context, lang i18n.Language) ([]Entry, error) {
	snaps, err := v.archive.Load(ctx, lang)
	if err != nil {
		return nil, err
	}
	return Summarize(snaps, lang), nil
}

// Conversation returns the archived conversation id.
func (v *Viewer) Conversation(ctx context.Context, lang i18n.Language, id string) (domain.ConversationSnapshot, bool, error) {
	snaps, err := v.archive.Load(ctx, lang)
	if err != nil {
		return domain.ConversationSnapshot{}, false, err
	}
	for _, s := range snaps {
		if s.ID == id {
			return s, true, nil
		}
	}
	return domain.ConversationSnapshot{}, false, nil
}

// Summarize turns snapshots into list entries sorted by creation time,
// latest first. A conversation without messages is attributed to the
// assistant.
func Summarize(snaps []domain.ConversationSnapshot, lang i18n.Language) []Entry {
	sorted := make([]domain.ConversationSnapshot, len(snaps))
	copy(sorted, snaps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	out := make([]Entry, 0, len(sorted))
	for _, s := range sorted {
		e := Entry{
			ID:        s.ID,
			Speaker:   i18n.T(lang, i18n.SpeakerAI),
			CreatedAt: s.CreatedAt,
			Preview:   i18n.T(lang, i18n.NoMessages),
			Messages:  len(s.Messages),
		}
		if n := len(s.Messages); n > 0 {
			if s.Messages[0].Role == domain.RoleUser {
				e.Speaker = i18n.T(lang, i18n.SpeakerUser)
			}
			if c := s.Messages[n-1].Content; c != "" {
				e.Preview = c
			}
		}
		out = append(out, e)
	}
	return out
}
