// Command dealconsole encodes and decodes contract calls of the deal onboarding console.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/smartcontractkit/deal-console/engine/console/commands"
	"github.com/smartcontractkit/deal-console/engine/console/config"
	"github.com/smartcontractkit/deal-console/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	settings, err := config.Load(configPath(args))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lggr, err := logger.NewWithLevel(settings.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = lggr.Sync() }()

	root, err := commands.New(lggr, settings).Root()
	if err != nil {
		return err
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return root.ExecuteContext(ctx)
}

// configPath finds the --config flag before the command tree is built, since the commands are
// created from the settings it names.
func configPath(args []string) string {
	fs := pflag.NewFlagSet("dealconsole", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	path := fs.String("config", commands.DefaultConfigPath, "")
	// help and unknown flags are reported by the command tree
	_ = fs.Parse(args)

	return *path
}
