// Package commands assembles the dealconsole CLI from its command packages.
//
// There are two ways to use commands from this package:
//
// 1. Via the Commands factory:
//
//	cmds := commands.New(lggr, settings)
//	root, err := cmds.Root()
//
// 2. Via direct package imports (for DI/testing):
//
//	import "github.com/smartcontractkit/deal-console/engine/console/commands/codec"
//
//	cmds, err := codec.NewCommands(codec.Config{
//	    Logger:   lggr,
//	    Settings: settings,
//	    Deps:     codec.Deps{...}, // inject a fake environment for testing
//	})
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/deal-console/engine/console/commands/codec"
	"github.com/smartcontractkit/deal-console/engine/console/commands/decimals"
	"github.com/smartcontractkit/deal-console/engine/console/commands/flags"
	"github.com/smartcontractkit/deal-console/engine/console/commands/interfaces"
	"github.com/smartcontractkit/deal-console/engine/console/commands/text"
	"github.com/smartcontractkit/deal-console/engine/console/config"
	"github.com/smartcontractkit/deal-console/engine/console/environment"
	"github.com/smartcontractkit/deal-console/pkg/logger"
)

// DefaultConfigPath is the settings file read when --config is not given.
const DefaultConfigPath = "dealconsole.yaml"

var rootLong = text.LongDesc(`
	Encodes and decodes contract calls of the deal onboarding console.

	Settings are read from the --config file and DEALCONSOLE_* environment variables.
`)

// Commands provides a factory for creating CLI commands with shared configuration.
type Commands struct {
	lggr     logger.Logger
	settings *config.Config
	envFn    environment.LoaderFunc
}

// New creates a new Commands factory sharing lggr and settings across all commands.
func New(lggr logger.Logger, settings *config.Config) *Commands {
	return &Commands{lggr: lggr, settings: settings}
}

// WithEnvironmentLoader overrides how commands load their environment.
func (c *Commands) WithEnvironmentLoader(fn environment.LoaderFunc) *Commands {
	c.envFn = fn
	return c
}

// Codec creates the signature, selector, encode and decode commands.
func (c *Commands) Codec() ([]*cobra.Command, error) {
	return codec.NewCommands(codec.Config{
		Logger:   c.lggr,
		Settings: c.settings,
		Deps:     codec.Deps{EnvironmentLoader: c.envFn},
	})
}

// Decimals creates the decimals command group.
func (c *Commands) Decimals() (*cobra.Command, error) {
	return decimals.NewCommand(decimals.Config{
		Logger:   c.lggr,
		Settings: c.settings,
	})
}

// Interfaces creates the interfaces command group.
func (c *Commands) Interfaces() (*cobra.Command, error) {
	return interfaces.NewCommand(interfaces.Config{
		Logger:   c.lggr,
		Settings: c.settings,
		Deps:     interfaces.Deps{EnvironmentLoader: c.envFn},
	})
}

// Root creates the dealconsole root command holding every command.
func (c *Commands) Root() (*cobra.Command, error) {
	root := &cobra.Command{
		Use:           "dealconsole",
		Short:         "Deal console call-data tools",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.Config(root, DefaultConfigPath)

	codecCmds, err := c.Codec()
	if err != nil {
		return nil, fmt.Errorf("failed to create codec commands: %w", err)
	}
	root.AddCommand(codecCmds...)

	decimalsCmd, err := c.Decimals()
	if err != nil {
		return nil, fmt.Errorf("failed to create decimals commands: %w", err)
	}
	root.AddCommand(decimalsCmd)

	interfacesCmd, err := c.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to create interfaces commands: %w", err)
	}
	root.AddCommand(interfacesCmd)

	return root, nil
}
