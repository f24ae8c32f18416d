package speech

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/krishi-mitra/internal/i18n"
)

// Listener observes reading transitions. prev is the message that stopped
// being read and next the one that started; either may be empty.
type Listener func(prev, next string)

// Controller owns the "currently reading" message.
type Controller struct {
	mu        sync.Mutex
	engine    Engine
	current   string
	token     uint64
	listeners []Listener
}

// NewController wraps e. A nil engine behaves like Unavailable.
func NewController(e Engine) *Controller {
	if e == nil {
		e = Unavailable{}
	}
	return &Controller{engine: e}
}

// OnChange registers l. Listeners run with the controller lock held and must
// not call back into the controller.
func (c *Controller) OnChange(l Listener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()
}

// Available reports whether the engine can speak.
func (c *Controller) Available() bool { return c.engine.Available() }

// Current returns the id of the message being read, or "".
func (c *Controller) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Speak reads text for message id, stopping whatever was being read first.
func (c *Controller) Speak(id, text string, lang i18n.Language) {
	if !c.engine.Available() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.engine.Cancel()
	prev := c.current
	c.token++
	tok := c.token

	u := Utterance{
		Text:   text,
		Locale: lang.Locale(),
		Voice:  PickVoice(c.engine.Voices(), lang.VoicePrefix()),
	}
	if err := c.engine.Speak(u, func() { c.finish(tok) }); err != nil {
		log.Warn().Err(err).Str("message_id", id).Msg("speech playback failed")
		c.current = ""
		c.notify(prev, "")
		return
	}
	c.current = id
	c.notify(prev, id)
}

// Stop cancels playback and clears the reading flag.
func (c *Controller) Stop() {
	if !c.engine.Available() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.Cancel()
	c.token++
	c.clear()
}

// Toggle stops id if it is being read and reads it otherwise.
func (c *Controller) Toggle(id, text string, lang i18n.Language) {
	if c.Current() == id && id != "" {
		c.Stop()
		return
	}
	c.Speak(id, text, lang)
}

// Ended marks the natural end of playback for id. It is ignored if another
// message has taken over in the meantime.
func (c *Controller) Ended(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == id {
		c.clear()
	}
}

func (c *Controller) finish(tok uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tok == c.token {
		c.clear()
	}
}

func (c *Controller) clear() {
	if c.current == "" {
		return
	}
	prev := c.current
	c.current = ""
	c.notify(prev, "")
}

func (c *Controller) notify(prev, next string) {
	if prev == next {
		return
	}
	for _, l := range c.listeners {
		l(prev, next)
	}
}
