package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/buildplan/internal/app"
	"github.com/specialistvlad/buildplan/internal/cli"
	"github.com/specialistvlad/buildplan/internal/env"
	"github.com/specialistvlad/buildplan/internal/hcl"
	"github.com/specialistvlad/buildplan/internal/registry"
)

// main is the entrypoint for the buildplan application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:], os.Environ()); err != nil {
		stop()
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. The build plan goes to outW, logs and usage to errW. A nil
// modules list selects the compiled-in extension modules.
func run(ctx context.Context, outW, errW io.Writer, args, environ []string, modules ...registry.Module) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}
	appConfig.Environ = env.FromEnviron(environ)

	// Conflicting compiled-in modules panic during registration; report it
	// as a regular error instead of a stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	buildplanApp := app.NewApp(outW, errW, appConfig, hcl.NewLoader(), modules...)
	return buildplanApp.Run(ctx)
}
