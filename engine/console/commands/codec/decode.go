package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/deal-console/codec/calldata"
	"github.com/smartcontractkit/deal-console/codec/descriptor"
	"github.com/smartcontractkit/deal-console/codec/signature"
	"github.com/smartcontractkit/deal-console/engine/console/commands/flags"
	"github.com/smartcontractkit/deal-console/engine/console/commands/text"
	"github.com/smartcontractkit/deal-console/engine/console/environment"
)

var (
	decodeShort = "Decode call-data"

	decodeLong = text.LongDesc(`
		Decodes the call-data of a contract function call into its parameter values.

		Without --function the function is looked up by the selector of the data. The selector is
		checked against the function and decoding continues even when it does not match. Values
		that cannot be decoded are shown as bracketed markers such as [Decode Error].

		With --params-only the data holds only the encoded parameters, without selector.
	`)

	decodeExample = text.Examples(`
		# Decode a TranchedPool call, finding the function by selector
		dealconsole decode -c TranchedPool 0xe2bbb158000000...

		# Decode parameters only, as JSON
		dealconsole decode -c TranchedPool --function deposit --params-only -f json 000000...
	`)
)

type decodeFlags struct {
	version    string
	contract   string
	function   string
	paramsOnly bool
	decimals   int
	format     string
}

func newDecodeCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decode <hex-data>",
		Short:   decodeShort,
		Long:    decodeLong,
		Example: decodeExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := decodeFlags{
				version:    flags.MustString(cmd.Flags().GetString("abi-version")),
				contract:   flags.MustString(cmd.Flags().GetString("contract")),
				function:   flags.MustString(cmd.Flags().GetString("function")),
				paramsOnly: flags.MustBool(cmd.Flags().GetBool("params-only")),
				decimals:   flags.MustInt(cmd.Flags().GetInt("decimals")),
				format:     flags.MustString(cmd.Flags().GetString("format")),
			}

			return runDecode(cmd, cfg, f, args[0])
		},
	}

	// Shared flags
	flags.Version(cmd)
	flags.Contract(cmd)
	flags.Format(cmd)
	flags.Decimals(cmd, "Decimals of amount parameters (default resolved from config and names)")
	flags.AssetDecimals(cmd)

	// Local flags specific to this command
	cmd.Flags().String("function", "", functionFlagUsage+" (default found by selector)")
	cmd.Flags().Bool("params-only", false, "The data holds encoded parameters only")

	return cmd
}

func runDecode(cmd *cobra.Command, cfg Config, f decodeFlags, data string) error {
	if f.paramsOnly && f.function == "" {
		return errors.New("--function is required with --params-only")
	}

	env, err := cfg.environment(cmd)
	if err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}
	renderer, err := env.Renderer(f.format)
	if err != nil {
		return err
	}
	fn, err := resolveDecodeFunction(cmd, env, f, data)
	if err != nil {
		return err
	}

	dec := calldata.NewDecoder(env.CodecOptions(f.decimals)...)
	var out string
	if f.paramsOnly {
		out, err = renderer.RenderFields(dec.DecodeParameters(fn, data))
	} else {
		out, err = renderer.RenderTransaction(dec.DecodeTransaction(fn, data))
	}
	if err != nil {
		return fmt.Errorf("failed to render decoded data: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)

	return err
}

func resolveDecodeFunction(cmd *cobra.Command, env *environment.Environment, f decodeFlags, data string) (descriptor.ParsedFunction, error) {
	if f.function != "" {
		return env.Function(cmd.Context(), f.version, f.contract, f.function)
	}

	c, err := env.Contract(cmd.Context(), f.version, f.contract)
	if err != nil {
		return descriptor.ParsedFunction{}, err
	}
	hex := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(data)), "0x")
	if len(hex) < 2*signature.SelectorLength {
		return descriptor.ParsedFunction{}, fmt.Errorf("%s, pass --function", calldata.MsgTooShort)
	}

	return c.FunctionBySelector("0x" + hex[:2*signature.SelectorLength])
}
