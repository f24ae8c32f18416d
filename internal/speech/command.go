package speech

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// CommandEngine speaks through an espeak-ng compatible binary.
type CommandEngine struct {
	path string

	once   sync.Once
	voices []Voice

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewCommandEngine resolves name on PATH. When the binary is missing or name
// is empty it returns Unavailable.
func NewCommandEngine(name string) Engine {
	if strings.TrimSpace(name) == "" {
		return Unavailable{}
	}
	path, err := exec.LookPath(name)
	if err != nil {
		log.Debug().Str("command", name).Msg("speech command not found; read-aloud disabled")
		return Unavailable{}
	}
	return &CommandEngine{path: path}
}

func (e *CommandEngine) Available() bool { return true }

// Voices lists the installed voices once, via "--voices".
func (e *CommandEngine) Voices() []Voice {
	e.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		out, err := exec.CommandContext(ctx, e.path, "--voices").Output()
		if err != nil {
			log.Debug().Err(err).Msg("listing speech voices failed")
			return
		}
		e.voices = parseVoices(out)
	})
	return e.voices
}

// Speak starts the binary with the text on stdin.
func (e *CommandEngine) Speak(u Utterance, onEnd func()) error {
	voice := u.Locale
	if u.Voice != nil {
		voice = u.Voice.Lang
	}
	cmd := exec.Command(e.path, "-v", voice, "--stdin")
	cmd.Stdin = strings.NewReader(u.Text)
	if err := cmd.Start(); err != nil {
		return err
	}

	e.mu.Lock()
	e.cmd = cmd
	e.mu.Unlock()

	go func() {
		_ = cmd.Wait()
		e.mu.Lock()
		if e.cmd == cmd {
			e.cmd = nil
		}
		e.mu.Unlock()
		if onEnd != nil {
			onEnd()
		}
	}()
	return nil
}

// Cancel kills the running utterance, if any.
func (e *CommandEngine) Cancel() {
	e.mu.Lock()
	cmd := e.cmd
	e.cmd = nil
	e.mu.Unlock()
	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}

// parseVoices reads the "--voices" table:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  en-us           --/M      English_(America)  gmw/en-US
func parseVoices(out []byte) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[0] == "Pty" {
			continue
		}
		voices = append(voices, Voice{Lang: fields[1], Name: fields[3]})
	}
	return voices
}
