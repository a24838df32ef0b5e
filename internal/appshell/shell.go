// internal/appshell/shell.go
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

// Main is the shared process shell for the phrp binaries: it primes PHRP_*
// environment defaults from an optional .env file, wires SIGINT/SIGTERM into
// the context, runs the app, and exits with its code.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	// Optional .env in the working directory supplies PHRP_* defaults.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Empty argv is left to the app: phrp prints usage, phrp-mass reads stdin.
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}

	stop()
	os.Exit(code)
}
