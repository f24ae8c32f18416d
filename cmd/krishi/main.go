// Command krishi is the Krishi Mitra terminal client.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tbourn/krishi-mitra/internal/cli"
	"github.com/tbourn/krishi-mitra/internal/config"
	"github.com/tbourn/krishi-mitra/internal/sysutil"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	open := func(ctx context.Context, out io.Writer) (*cli.App, func(), error) {
		cfg, err := config.LoadClient()
		if err != nil {
			return nil, nil, err
		}
		sysutil.ConfigureLogger(os.Stderr, cfg.LogLevel, true, "krishi")
		return cli.Open(ctx, cfg, out)
	}

	root := cli.NewRootCommand(sysutil.FirstNonEmpty(os.Getenv("KRISHI_VERSION"), version), open)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
