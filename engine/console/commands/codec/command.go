package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/deal-console/engine/console/config"
	"github.com/smartcontractkit/deal-console/engine/console/environment"
	"github.com/smartcontractkit/deal-console/internal/pointer"
	"github.com/smartcontractkit/deal-console/pkg/logger"
)

// Config holds the configuration for codec commands.
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
		return errors.New("codec.Config: missing required fields: " + strings.Join(missing, ", "))
	}

	return nil
}

// deps returns the Deps with defaults applied.
func (c *Config) deps() *Deps {
	c.Deps.applyDefaults()

	return &c.Deps
}

// environment loads the environment of the settings, with the asset decimals of the deal taken
// from the --asset-decimals flag of cmd when set.
func (c *Config) environment(cmd *cobra.Command) (*environment.Environment, error) {
	settings := c.Settings
	if f := cmd.Flags().Lookup("asset-decimals"); f != nil && f.Changed {
		d, err := cmd.Flags().GetInt("asset-decimals")
		if err != nil {
			return nil, err
		}
		if d < 0 || d > maxDecimals {
			return nil, fmt.Errorf("invalid --asset-decimals %d: must be between 0 and %d", d, maxDecimals)
		}
		overridden := *settings
		overridden.AssetDecimals = pointer.To(d)
		settings = &overridden
	}

	return c.deps().EnvironmentLoader(settings, c.Logger)
}

// maxDecimals is the largest scale an uint256 amount can have.
const maxDecimals = 77

// NewCommands creates the codec commands: signature, selector, template, encode and decode. They
// are added to the root command directly.
func NewCommands(cfg Config) ([]*cobra.Command, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.deps()

	return []*cobra.Command{
		newSignatureCmd(cfg),
		newSelectorCmd(),
		newTemplateCmd(cfg),
		newEncodeCmd(cfg),
		newDecodeCmd(cfg),
	}, nil
}

const functionFlagUsage = "Function name, or canonical signature when the name is overloaded"
