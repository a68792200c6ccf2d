package codec

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/deal-console/codec/signature"
	"github.com/smartcontractkit/deal-console/engine/console/commands/flags"
	"github.com/smartcontractkit/deal-console/engine/console/commands/text"
)

var (
	selectorShort = "Compute the selector of a function signature"

	selectorLong = text.LongDesc(`
		Prints the 4-byte selector of a canonical function signature: the first four bytes of the
		Keccak-256 hash of the signature text.
	`)

	selectorExample = text.Examples(`
		# Selector of an ERC-20 transfer
		dealconsole selector "transfer(address,uint256)"
	`)

	signatureShort = "Show the canonical signature and selector of a contract function"

	signatureExample = text.Examples(`
		# Signature of TranchedPool.deposit in the newest interface version
		dealconsole signature --contract TranchedPool --function deposit

		# In a given version
		dealconsole signature -c TranchedPool --function "withdraw(uint256,uint256)" --abi-version v1.2.0
	`)
)

func newSelectorCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "selector <signature>",
		Short:   selectorShort,
		Long:    selectorLong,
		Example: selectorExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), signature.Selector(args[0]))
			return err
		},
	}
}

type signatureFlags struct {
	version  string
	contract string
	function string
}

func newSignatureCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "signature",
		Short:   signatureShort,
		Example: signatureExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := signatureFlags{
				version:  flags.MustString(cmd.Flags().GetString("abi-version")),
				contract: flags.MustString(cmd.Flags().GetString("contract")),
				function: flags.MustString(cmd.Flags().GetString("function")),
			}

			return runSignature(cmd, cfg, f)
		},
	}

	flags.Version(cmd)
	flags.Contract(cmd)
	cmd.Flags().String("function", "", functionFlagUsage+" (required)")
	_ = cmd.MarkFlagRequired("function")

	return cmd
}

func runSignature(cmd *cobra.Command, cfg Config, f signatureFlags) error {
	env, err := cfg.environment(cmd)
	if err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}
	fn, err := env.Function(cmd.Context(), f.version, f.contract, f.function)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, err = fmt.Fprintf(out, "Signature: %s\nSelector:  %s\n", fn.Signature, signature.Of(fn))

	return err
}
