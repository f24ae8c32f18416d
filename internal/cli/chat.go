package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tbourn/krishi-mitra/internal/conversation"
	"github.com/tbourn/krishi-mitra/internal/domain"
	"github.com/tbourn/krishi-mitra/internal/i18n"
)

const chatHelp = `Commands:
  /image <path> [caption]   send a photo of your crop
  /speak <n>                read message n aloud (again to stop)
  /stop                     stop reading aloud
  /feedback <n> up|down     rate reply n
  /save                     archive this conversation
  /clear                    start a new conversation
  /lang [en|ml]             switch language (toggles without argument)
  /history                  list saved conversations
  /prices [crop]            reference market prices
  /sell <crop> <qty> <price>  post a sale listing (per quintal)
  /listings                 your sale listings
  /remove <id>              remove a listing
  /quit                     leave
Anything else is sent to the crop doctor.`

// Chat runs the interactive loop on in until EOF, /quit or ctx is done.
func (a *App) Chat(ctx context.Context, in io.Reader) error {
	sess := conversation.New(a.Advisor, a.Speech, a.Lang.Get())
	a.printMessage(sess, 0)
	a.printf("(type /help for commands)\n")

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64<<10), 1<<20)
	for {
		a.printf("> ")
		if !sc.Scan() {
			a.printf("\n")
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return nil
		}
		quit, err := a.handleLine(ctx, sess, sc.Text())
		if err != nil {
			a.printf("! %s\n", describeErr(err))
		}
		if quit {
			a.Speech.Stop()
			return nil
		}
	}
}

func (a *App) handleLine(ctx context.Context, sess *conversation.Session, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, "/") {
		return false, a.ask(sess, func() (*conversation.Message, error) { return sess.SubmitText(ctx, line) })
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch cmd {
	case "/quit", "/exit":
		return true, nil
	case "/help":
		a.printf("%s\n", chatHelp)
	case "/image":
		if len(args) == 0 {
			return false, errors.New("usage: /image <path> [caption]")
		}
		path := args[0]
		caption := strings.TrimSpace(strings.TrimPrefix(rest, path))
		f, err := os.Open(path)
		if err != nil {
			return false, err
		}
		defer f.Close()
		return false, a.ask(sess, func() (*conversation.Message, error) { return sess.SubmitImage(ctx, f, caption) })
	case "/speak":
		m, err := messageArg(sess, args)
		if err != nil {
			return false, err
		}
		if !a.Speech.Available() {
			return false, errors.New("read-aloud is not available (set KRISHI_SPEECH_COMMAND)")
		}
		sess.ToggleSpeech(m.ID)
	case "/stop":
		a.Speech.Stop()
	case "/feedback":
		m, err := messageArg(sess, args)
		if err != nil {
			return false, err
		}
		if m.Role != domain.RoleAssistant || m.ID == conversation.WelcomeID {
			return false, errors.New("only replies can be rated")
		}
		f := conversation.FeedbackNone
		if len(args) > 1 {
			switch strings.ToLower(args[1]) {
			case "up", "+", "yes", "positive":
				f = conversation.FeedbackPositive
			case "down", "-", "no", "negative":
				f = conversation.FeedbackNegative
			}
		}
		if !f.Valid() {
			return false, errors.New("usage: /feedback <n> up|down")
		}
		sess.SetFeedback(m.ID, f)
		a.printf("Thanks for the feedback.\n")
	case "/save":
		if err := a.Archive.Append(ctx, sess.Language(), sess.Snapshot()); err != nil {
			return false, err
		}
		a.printf("Conversation saved.\n")
	case "/clear":
		sess.Clear()
		a.printMessage(sess, 0)
	case "/lang":
		lang, err := a.SetLanguage(ctx, rest)
		if err != nil {
			return false, err
		}
		sess.SetLanguage(lang)
		a.printf("Language: %s\n", lang)
	case "/history":
		return false, a.ShowHistory(ctx)
	case "/prices":
		a.ShowPrices(rest)
	case "/sell":
		if len(args) < 3 {
			return false, errors.New("usage: /sell <crop> <quantity> <price>")
		}
		n := len(args)
		l, err := a.Sell(strings.Join(args[:n-2], " "), args[n-2], args[n-1])
		if err != nil {
			return false, err
		}
		a.printf("Listed %s (%s).\n", l.Crop, l.ID[:min(8, len(l.ID))])
		if l.AboveMarket() {
			a.printf("Note: your price is above the market reference.\n")
		}
	case "/listings":
		a.ShowListings()
	case "/remove":
		if len(args) == 0 || !a.RemoveListing(args[0]) {
			return false, errors.New("no listing with that id")
		}
		a.printf("Removed.\n")
	default:
		return false, fmt.Errorf("unknown command %s (try /help)", cmd)
	}
	return false, nil
}

// ask prints the user turn that submit appends, waits for the reply and
// prints it.
func (a *App) ask(sess *conversation.Session, submit func() (*conversation.Message, error)) error {
	before := len(sess.Messages())
	a.printf("%s\n", i18n.T(sess.Language(), i18n.Thinking))
	reply, err := submit()
	if err != nil {
		if errors.Is(err, conversation.ErrStaleReply) {
			return nil
		}
		return err
	}
	if reply == nil {
		return nil
	}
	msgs := sess.Messages()
	for i := before; i < len(msgs); i++ {
		if msgs[i].Role == domain.RoleAssistant {
			a.printMessage(sess, i)
		}
	}
	return nil
}

func (a *App) printMessage(sess *conversation.Session, i int) {
	msgs := sess.Messages()
	if i < 0 || i >= len(msgs) {
		return
	}
	m := msgs[i]
	lang := sess.Language()
	label := i18n.T(lang, i18n.SpeakerAI)
	if m.Role == domain.RoleUser {
		label = i18n.T(lang, i18n.SpeakerUser)
	}
	a.printf("[%d] %s\n%s\n", i, label, a.Renderer.Terminal(m.Content, a.Color))
	if m.Role == domain.RoleAssistant && m.ID != conversation.WelcomeID {
		a.printf("    %s /feedback %d up|down · /speak %d\n", i18n.T(lang, i18n.WasHelpful), i, i)
	}
}

func messageArg(sess *conversation.Session, args []string) (conversation.Message, error) {
	if len(args) == 0 {
		return conversation.Message{}, errors.New("message number required")
	}
	n, err := strconv.Atoi(args[0])
	msgs := sess.Messages()
	if err != nil || n < 0 || n >= len(msgs) {
		return conversation.Message{}, fmt.Errorf("no message %q", args[0])
	}
	return msgs[n], nil
}

