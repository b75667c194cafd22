package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/draftboard/internal/adapters/source"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // Board written or server stopped cleanly
	ExitPrecondition = 1 // Missing or unusable input data, bad season
	ExitError        = 2 // Configuration or runtime error
)

// ErrInvalidSeason is returned for seasons outside (minSeason, maxSeason).
var ErrInvalidSeason = errors.New("invalid season")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := execute(ctx, os.Args[1:])
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}

func execute(ctx context.Context, args []string) error {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// exitCode maps err to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, source.ErrSourceNotFound),
		errors.Is(err, source.ErrUnrecognizedSchema),
		errors.Is(err, source.ErrADPColumnNotFound),
		errors.Is(err, ErrInvalidSeason):
		return ExitPrecondition
	default:
		return ExitError
	}
}
