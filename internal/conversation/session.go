// Package conversation holds the in-memory chat log of the terminal client:
// optimistic user turns, resolution of the advisory reply into exactly one
// assistant turn, feedback and read-aloud state.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tbourn/krishi-mitra/internal/advisory"
	"github.com/tbourn/krishi-mitra/internal/domain"
	"github.com/tbourn/krishi-mitra/internal/i18n"
	"github.com/tbourn/krishi-mitra/internal/speech"
)

// MaxImageBytes caps uploads read by SubmitImage.
const MaxImageBytes = 10 << 20

// Session is safe for concurrent use. The advisor is called without the lock
// held; at most one request is outstanding at a time.
type Session struct {
	mu         sync.Mutex
	advisor    advisory.Advisor
	speech     *speech.Controller
	lang       i18n.Language
	id         string
	messages   []Message
	awaiting   bool
	generation uint64

	now   func() time.Time
	newID func() string
}

// New returns a session greeting the farmer in lang. sc may be nil when
// read-aloud is not wanted.
func New(advisor advisory.Advisor, sc *speech.Controller, lang i18n.Language) *Session {
	if !lang.Valid() {
		lang = i18n.Default
	}
	s := &Session{
		advisor: advisor,
		speech:  sc,
		lang:    lang,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	s.reset()
	if sc != nil {
		sc.OnChange(s.readingChanged)
	}
	return s
}

// reset must be called with s.mu held (or before the session is shared).
func (s *Session) reset() {
	s.id = s.newID()
	s.messages = []Message{{
		ID:        WelcomeID,
		Role:      domain.RoleAssistant,
		Content:   i18n.T(s.lang, i18n.Welcome),
		CreatedAt: s.now(),
	}}
}

// Language returns the language used for new messages and requests.
func (s *Session) Language() i18n.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// SetLanguage switches the language of subsequent messages and requests.
func (s *Session) SetLanguage(lang i18n.Language) {
	if !lang.Valid() {
		return
	}
	s.mu.Lock()
	s.lang = lang
	s.mu.Unlock()
}

// AwaitingReply reports whether a request is outstanding.
func (s *Session) AwaitingReply() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaiting
}

// Messages returns a copy of the log in display order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// SubmitText appends text as a user turn and resolves the advisory reply into
// one assistant turn, which is returned. Blank text is ignored: (nil, nil).
func (s *Session) SubmitText(ctx context.Context, text string) (*Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return s.submit(ctx, text, text, nil)
}

// SubmitImage reads r as an image and submits it with caption. A blank
// caption is shown as the localized default caption; only the farmer's own
// text is sent to the advisor.
func (s *Session) SubmitImage(ctx context.Context, r io.Reader, caption string) (*Message, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if len(data) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}
	img := &advisory.Image{Data: data, MIMEType: advisory.DetectImageMIME(data)}

	shown := caption
	if strings.TrimSpace(shown) == "" {
		shown = i18n.T(s.Language(), i18n.DefaultImageCaption)
	}
	return s.submit(ctx, shown, caption, img)
}

func (s *Session) submit(ctx context.Context, shown, prompt string, img *advisory.Image) (*Message, error) {
	s.mu.Lock()
	if s.awaiting {
		s.mu.Unlock()
		return nil, ErrAwaitingReply
	}
	s.messages = append(s.messages, Message{
		ID:        s.newID(),
		Role:      domain.RoleUser,
		Content:   shown,
		Image:     img,
		CreatedAt: s.now(),
	})
	s.awaiting = true
	gen := s.generation
	lang := s.lang
	s.mu.Unlock()

	content := s.ask(ctx, advisory.AdviceRequest{Prompt: prompt, Image: img, Language: lang})

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		zerolog.Ctx(ctx).Debug().Uint64("generation", gen).Msg("discarding reply for cleared conversation")
		return nil, ErrStaleReply
	}
	s.awaiting = false
	m := Message{
		ID:        s.newID(),
		Role:      domain.RoleAssistant,
		Content:   content,
		CreatedAt: s.now(),
	}
	s.messages = append(s.messages, m)
	return &m, nil
}

// ask never fails: errors become the localized apology.
func (s *Session) ask(ctx context.Context, req advisory.AdviceRequest) string {
	if s.advisor == nil {
		return i18n.T(req.Language, i18n.Apology)
	}
	reply, err := s.advisor.RequestAdvice(ctx, req)
	if err != nil {
		ev := zerolog.Ctx(ctx).Warn().Err(err)
		var ge *advisory.GatewayError
		if errors.As(err, &ge) {
			ev = ev.Int("status", ge.Status)
		}
		ev.Msg("advice request failed")
		return i18n.T(req.Language, i18n.Apology)
	}
	if strings.TrimSpace(reply) == "" {
		return i18n.T(req.Language, i18n.EmptyReply)
	}
	return reply
}

// Clear stops read-aloud and restarts the log with the welcome message. A
// reply still in flight will be discarded.
func (s *Session) Clear() {
	s.mu.Lock()
	s.generation++
	s.awaiting = false
	s.reset()
	s.mu.Unlock()

	if s.speech != nil {
		s.speech.Stop()
	}
}

// SetFeedback annotates message id. Unknown ids and invalid values are
// ignored.
func (s *Session) SetFeedback(id string, f Feedback) {
	if !f.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		s.messages[i].Feedback = f
	}
}

// ToggleSpeech starts reading message id aloud, or stops it if it is the one
// being read. Unknown ids are ignored.
func (s *Session) ToggleSpeech(id string) {
	if s.speech == nil {
		return
	}
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	text, lang := s.messages[i].Content, s.lang
	s.mu.Unlock()

	s.speech.Toggle(id, text, lang)
}

// SpeechEnded reports that playback of id finished on its own.
func (s *Session) SpeechEnded(id string) {
	if s.speech != nil {
		s.speech.Ended(id)
	}
}

func (s *Session) readingChanged(prev, next string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		switch s.messages[i].ID {
		case prev:
			s.messages[i].IsBeingRead = false
		case next:
			s.messages[i].IsBeingRead = true
		}
	}
}

// Snapshot returns the log in its archived form. The snapshot id is stable
// until the next Clear.
func (s *Session) Snapshot() domain.ConversationSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := domain.ConversationSnapshot{
		ID:        s.id,
		CreatedAt: s.messages[0].CreatedAt,
		Messages:  make([]domain.ArchivedMessage, 0, len(s.messages)),
	}
	for _, m := range s.messages {
		snap.Messages = append(snap.Messages, m.archived())
	}
	return snap
}

func (s *Session) indexOf(id string) int {
	for i := range s.messages {
		if s.messages[i].ID == id {
			return i
		}
	}
	return -1
}
