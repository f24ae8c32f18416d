// Package cli implements the krishi terminal client: the cobra command tree,
// the interactive chat loop and the plain-text views of the local stores.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tbourn/krishi-mitra/internal/advisory"
	"github.com/tbourn/krishi-mitra/internal/config"
	"github.com/tbourn/krishi-mitra/internal/history"
	"github.com/tbourn/krishi-mitra/internal/market"
	"github.com/tbourn/krishi-mitra/internal/render"
	"github.com/tbourn/krishi-mitra/internal/repo"
	"github.com/tbourn/krishi-mitra/internal/speech"
	"github.com/tbourn/krishi-mitra/internal/stores"
	"github.com/tbourn/krishi-mitra/internal/sysutil"
)

// App bundles the client-side state. The ledger lives in process memory
// only; everything else is backed by the local key-value store.
type App struct {
	Out io.Writer

	Lang     *stores.LanguageStore
	Identity *stores.IdentityStore
	Archive  *stores.ArchiveStore
	History  *history.Viewer
	Ledger   *market.Ledger
	Speech   *speech.Controller
	Advisor  advisory.Advisor
	API      *APIClient
	Renderer *render.Renderer
	Color    bool
}

// NewApp restores the persisted stores from kv and wires the collaborators.
// api may be nil for commands that never reach the server.
func NewApp(ctx context.Context, kv stores.KV, advisor advisory.Advisor, api *APIClient, engine speech.Engine, out io.Writer) (*App, error) {
	if engine == nil {
		engine = speech.Unavailable{}
	}
	if out == nil {
		out = os.Stdout
	}
	lang, err := stores.NewLanguageStore(ctx, kv)
	if err != nil {
		return nil, fmt.Errorf("restore language: %w", err)
	}
	ident, err := stores.NewIdentityStore(ctx, kv)
	if err != nil {
		return nil, fmt.Errorf("restore profile: %w", err)
	}
	archive := stores.NewArchiveStore(kv)
	return &App{
		Out:      out,
		Lang:     lang,
		Identity: ident,
		Archive:  archive,
		History:  history.NewViewer(archive),
		Ledger:   market.NewLedger(),
		Speech:   speech.NewController(engine),
		Advisor:  advisor,
		API:      api,
		Renderer: render.New(),
	}, nil
}

// Open builds an App from the client configuration: the local state database
// under cfg.StateDir, the remote advisor and the speech command. The returned
// close function releases the database.
func Open(ctx context.Context, cfg config.ClientConfig, out io.Writer) (*App, func(), error) {
	if err := os.MkdirAll(cfg.StateDir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("create state dir: %w", err)
	}
	db, err := repo.OpenSQLite(cfg.DBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("open state db: %w", err)
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := repo.MigrateClient(db); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("migrate state db: %w", err)
	}

	app, err := NewApp(ctx, repo.NewKVStore(db),
		advisory.NewRemoteAdvisor(cfg.APIURL, cfg.Timeout),
		NewAPIClient(cfg.APIURL, cfg.Timeout),
		speech.NewCommandEngine(cfg.SpeechCommand),
		out,
	)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	app.Color = colorEnabled(out)
	return app, closeDB, nil
}

// colorEnabled honours NO_COLOR and only colors terminals.
func colorEnabled(w io.Writer) bool {
	if sysutil.IsTruthy(os.Getenv("NO_COLOR")) || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	st, err := f.Stat()
	return err == nil && st.Mode()&os.ModeCharDevice != 0
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}

func stamp(t time.Time) string {
	return t.Local().Format("02 Jan 2006 15:04")
}
