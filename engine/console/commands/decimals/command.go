// Package decimals provides the CLI commands converting amounts between raw integers and their
// decimal form.
package decimals

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/deal-console/codec/decimals"
	"github.com/smartcontractkit/deal-console/engine/console/commands/flags"
	"github.com/smartcontractkit/deal-console/engine/console/commands/text"
	"github.com/smartcontractkit/deal-console/engine/console/config"
	"github.com/smartcontractkit/deal-console/pkg/logger"
)

var (
	decimalsShort = "Convert amounts between raw and decimal form"

	decimalsLong = text.LongDesc(`
		Commands converting token amounts between the raw integers stored on chain and their
		human readable decimal form.

		Without --decimals the configured default_decimals is used.
	`)

	formatExample = text.Examples(`
		# 1.5 USDC
		dealconsole decimals format 1500000 -d 6

		# Full precision of a long fraction
		dealconsole decimals format 1234567891 --exact
	`)

	parseExample = text.Examples(`
		# Raw value of 1.5 USDC
		dealconsole decimals parse 1.5 -d 6
	`)
)

// Config holds the configuration for decimals commands.
type Config struct {
	// Logger is the logger to use for command output. Required.
	Logger logger.Logger

	// Settings are the console settings. Required.
	Settings *config.Config
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
		return errors.New("decimals.Config: missing required fields: " + strings.Join(missing, ", "))
	}

	return nil
}

func (c Config) scale(cmd *cobra.Command) int {
	if d := flags.MustInt(cmd.Flags().GetInt("decimals")); d >= 0 {
		return d
	}

	return c.Settings.DefaultDecimals
}

// NewCommand creates a new decimals command with all subcommands.
func NewCommand(cfg Config) (*cobra.Command, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cmd := &cobra.Command{
		Use:   "decimals",
		Short: decimalsShort,
		Long:  decimalsLong,
	}

	cmd.AddCommand(newFormatCmd(cfg))
	cmd.AddCommand(newParseCmd(cfg))

	return cmd, nil
}

func newFormatCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "format <raw>",
		Short:   "Show a raw integer amount in decimal form",
		Example: formatExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := cfg.scale(cmd)
			raw := strings.TrimSpace(args[0])
			if raw != "" && strings.Trim(raw, "0123456789") != "" {
				return fmt.Errorf("invalid raw amount %q: %w", raw, decimals.ErrInvalidAmount)
			}

			out := decimals.FormatWithDecimals(raw, d)
			if flags.MustBool(cmd.Flags().GetBool("exact")) {
				out = decimals.FormatExact(raw, d)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}

	flags.Decimals(cmd, "Decimals of the amount (default from config)")
	cmd.Flags().Bool("exact", false, "Show every fractional digit")

	return cmd
}

func newParseCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "parse <amount>",
		Short:   "Convert an amount in decimal form to its raw integer",
		Example: parseExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := decimals.ParseAmount(args[0], cfg.scale(cmd))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), raw)

			return err
		},
	}

	flags.Decimals(cmd, "Decimals of the amount (default from config)")

	return cmd
}
