// Package speech reads assistant messages aloud. A Controller tracks the
// single message currently being read and guarantees that starting a new
// utterance cancels the previous one.
package speech

import (
	"strings"
)

// Voice is a system voice.
type Voice struct {
	Name string
	Lang string // BCP 47 style locale, e.g. "ml-IN" or "en"
}

// Utterance is one piece of text to read.
type Utterance struct {
	Text   string
	Locale string
	Voice  *Voice
}

// Engine is the platform speech capability.
//
// Speak must return without waiting for playback and must invoke onEnd from
// another goroutine once the utterance finishes or is cancelled.
type Engine interface {
	Available() bool
	Voices() []Voice
	Speak(u Utterance, onEnd func()) error
	Cancel()
}

// Unavailable is an Engine for hosts without speech output. Every call is a
// no-op.
type Unavailable struct{}

func (Unavailable) Available() bool { return false }
func (Unavailable) Voices() []Voice { return nil }
func (Unavailable) Speak(Utterance, func()) error { return nil }
func (Unavailable) Cancel() {}

// PickVoice returns the first voice whose locale starts with prefix, or nil
// when none matches and the engine default should be used.
func PickVoice(voices []Voice, prefix string) *Voice {
	prefix = strings.ToLower(prefix)
	for i := range voices {
		if strings.HasPrefix(strings.ToLower(voices[i].Lang), prefix) {
			v := voices[i]
			return &v
		}
	}
	return nil
}
