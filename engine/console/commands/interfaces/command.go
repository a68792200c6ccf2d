package interfaces

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/deal-console/engine/console/commands/text"
	"github.com/smartcontractkit/deal-console/engine/console/config"
	"github.com/smartcontractkit/deal-console/engine/console/environment"
	"github.com/smartcontractkit/deal-console/pkg/logger"
)

var (
	interfacesShort = "Browse contract interfaces"

	interfacesLong = text.LongDesc(`
		Commands listing the versioned contract interfaces known to the console.

		Interfaces are read from abi_dir, laid out as <version>/<Name>.json, or from the console
		web server at abi_base_url when it is set.
	`)
)

// Config holds the configuration for interfaces commands.
type Config struct {
	// Logger is the logger to use for command output. Required.
	Logger logger.Logger

	// Settings are the console settings. Required.
	Settings *config.Config

	// Deps holds optional dependencies that can be overridden.
	// If fields are nil, production defaults are used.
	Deps Deps
}

// Validate checks that all required configuration fields are set.
func (c Config) Validate() error {
	var missing []string

	if c.Logger == nil {
		missing = append(missing, "Logger")
	}
	if c.Settings == nil {
		missing = append(missing, "Settings")
	}

	if len(missing) > 0 {
		return errors.New("interfaces.Config: missing required fields: " + strings.Join(missing, ", "))
	}

	return nil
}

// deps returns the Deps with defaults applied.
func (c *Config) deps() *Deps {
	c.Deps.applyDefaults()

	return &c.Deps
}

func (c *Config) environment() (*environment.Environment, error) {
	env, err := c.deps().EnvironmentLoader(c.Settings, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	return env, nil
}

// NewCommand creates a new interfaces command with all subcommands.
func NewCommand(cfg Config) (*cobra.Command, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.deps()

	cmd := &cobra.Command{
		Use:     "interfaces",
		Aliases: []string{"abis"},
		Short:   interfacesShort,
		Long:    interfacesLong,
	}

	cmd.AddCommand(newVersionsCmd(cfg))
	cmd.AddCommand(newContractsCmd(cfg))
	cmd.AddCommand(newFunctionsCmd(cfg))

	return cmd, nil
}
