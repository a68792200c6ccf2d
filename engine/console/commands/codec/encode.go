package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/deal-console/codec/calldata"
	"github.com/smartcontractkit/deal-console/codec/decimals"
	"github.com/smartcontractkit/deal-console/codec/descriptor"
	"github.com/smartcontractkit/deal-console/engine/console/commands/flags"
	"github.com/smartcontractkit/deal-console/engine/console/commands/text"
	"github.com/smartcontractkit/deal-console/engine/console/environment"
)

var (
	encodeShort = "Encode a function call"

	encodeLong = text.LongDesc(`
		Encodes the call-data of a contract function from textual parameter values.

		Values are given with --arg name=value, or as a JSON object in --args-file. Arrays and
		tuples take JSON text. Values that cannot be encoded are replaced by a placeholder and
		reported as warnings, so the call-data always has the shape the function expects.

		With --display-amounts, amount parameters are read in decimal form (e.g. 1.5) and scaled
		to their raw value with the resolved decimals.

		With --validate, values are checked strictly before encoding and the command fails
		instead of substituting placeholders. Use the template command for a starting point.
	`)

	encodeExample = text.Examples(`
		# Encode a deposit into tranche 1
		dealconsole encode -c TranchedPool --function deposit --arg trancheId=1 --arg amount=1000000

		# Amounts in decimal form, with USDC decimals
		dealconsole encode -c TranchedPool --function deposit --arg trancheId=1 --arg amount=1.5 --display-amounts -d 6

		# Values from a file, YAML output
		dealconsole encode -c TranchedPool --function lockPool --args-file values.json -f yaml

		# Fail on any value that would be replaced by a placeholder
		dealconsole encode -c TranchedPool --function deposit --arg trancheId=1 --arg amount=1000000 --validate
	`)
)

type encodeFlags struct {
	version        string
	contract       string
	function       string
	args           []string
	argsFile       string
	displayAmounts bool
	validate       bool
	decimals       int
	format         string
}

func newEncodeCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encode",
		Short:   encodeShort,
		Long:    encodeLong,
		Example: encodeExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, _ := cmd.Flags().GetStringArray("arg")
			f := encodeFlags{
				version:        flags.MustString(cmd.Flags().GetString("abi-version")),
				contract:       flags.MustString(cmd.Flags().GetString("contract")),
				function:       flags.MustString(cmd.Flags().GetString("function")),
				args:           args,
				argsFile:       flags.MustString(cmd.Flags().GetString("args-file")),
				displayAmounts: flags.MustBool(cmd.Flags().GetBool("display-amounts")),
				validate:       flags.MustBool(cmd.Flags().GetBool("validate")),
				decimals:       flags.MustInt(cmd.Flags().GetInt("decimals")),
				format:         flags.MustString(cmd.Flags().GetString("format")),
			}

			return runEncode(cmd, cfg, f)
		},
	}

	// Shared flags
	flags.Version(cmd)
	flags.Contract(cmd)
	flags.Format(cmd)
	flags.Decimals(cmd, "Decimals of amount parameters (default resolved from config and names)")
	flags.AssetDecimals(cmd)

	// Local flags specific to this command
	cmd.Flags().String("function", "", functionFlagUsage+" (required)")
	cmd.Flags().StringArray("arg", nil, "Parameter value as name=value, repeatable")
	cmd.Flags().String("args-file", "", "JSON object file of parameter values")
	cmd.Flags().Bool("display-amounts", false, "Read amount parameters in decimal form")
	cmd.Flags().Bool("validate", false, "Fail on values that cannot be encoded as given")
	_ = cmd.MarkFlagRequired("function")

	return cmd
}

func runEncode(cmd *cobra.Command, cfg Config, f encodeFlags) error {
	env, err := cfg.environment(cmd)
	if err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}
	renderer, err := env.Renderer(f.format)
	if err != nil {
		return err
	}
	fn, err := env.Function(cmd.Context(), f.version, f.contract, f.function)
	if err != nil {
		return err
	}

	values, err := collectValues(f.argsFile, f.args)
	if err != nil {
		return err
	}
	if f.displayAmounts {
		if err := scaleAmounts(env, fn, f.decimals, values); err != nil {
			return err
		}
	}
	if f.validate {
		if err := calldata.Validate(fn, values); err != nil {
			return fmt.Errorf("invalid parameter values for %s:\n%w", fn.Signature, err)
		}
	}

	call := calldata.NewEncoder(env.CodecOptions(f.decimals)...).EncodeFunction(fn, values)
	out, err := renderer.RenderCallData(call)
	if err != nil {
		return fmt.Errorf("failed to render call-data: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)

	return err
}

// collectValues merges the values of the args file with the --arg values, which take precedence.
func collectValues(argsFile string, args []string) (map[string]string, error) {
	values := make(map[string]string)

	if argsFile != "" {
		raw, err := os.ReadFile(argsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read args file: %w", err)
		}
		fileValues, err := parseValues(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse args file %s: %w", argsFile, err)
		}
		maps.Copy(values, fileValues)
	}

	for _, a := range args {
		name, value, ok := strings.Cut(a, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --arg %q: expected name=value", a)
		}
		values[strings.TrimSpace(name)] = value
	}

	return values, nil
}

// parseValues reads a JSON object of parameter values. Strings are taken as is, any other value
// as its JSON text.
func parseValues(raw []byte) (map[string]string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(obj))
	for k, v := range obj {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			values[k] = s
			continue
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, v); err != nil {
			return nil, err
		}
		values[k] = compact.String()
	}

	return values, nil
}

// scaleAmounts converts the amount parameters of fn from decimal form to raw integers. Arrays of
// amounts are scaled element by element.
func scaleAmounts(env *environment.Environment, fn descriptor.ParsedFunction, override int, values map[string]string) error {
	policy := env.Policy(override)
	for i, in := range fn.Inputs {
		name := descriptor.FieldName(in.Name, i)
		value, ok := values[name]
		if !ok || value == "" || !decimals.ShouldShowDecimals(in.Type, name) {
			continue
		}
		d := policy.Resolve(env.Query(fn.Name, name))
		raw, err := scaleValue(descriptor.TypeOf(in), value, d)
		if err != nil {
			return fmt.Errorf("invalid amount for %s: %w", name, err)
		}
		values[name] = raw
	}

	return nil
}

// scaleValue scales value, the text of a parameter of type t. Types other than unsigned integers
// and arrays of them are returned unchanged.
func scaleValue(t descriptor.Type, value string, d int) (string, error) {
	switch t.Kind {
	case descriptor.KindUint:
		return decimals.ParseAmount(value, d)
	case descriptor.KindSlice, descriptor.KindArray:
		if !isAmountArray(t) {
			return value, nil
		}
	default:
		return value, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(value), &elems); err != nil {
		return "", fmt.Errorf("expected a JSON array: %w", err)
	}
	scaled := make([]json.RawMessage, len(elems))
	for i, e := range elems {
		text := string(e)
		var s string
		if err := json.Unmarshal(e, &s); err == nil {
			text = s
		}
		raw, err := scaleValue(*t.Elem, text, d)
		if err != nil {
			return "", fmt.Errorf("element %d: %w", i, err)
		}
		if t.Elem.Kind == descriptor.KindUint {
			raw = strconv.Quote(raw)
		}
		scaled[i] = json.RawMessage(raw)
	}
	out, err := json.Marshal(scaled)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

func isAmountArray(t descriptor.Type) bool {
	for t.Kind == descriptor.KindSlice || t.Kind == descriptor.KindArray {
		t = *t.Elem
	}

	return t.Kind == descriptor.KindUint
}
