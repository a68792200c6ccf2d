package codec

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartcontractkit/deal-console/codec/calldata"
	"github.com/smartcontractkit/deal-console/codec/descriptor"
	"github.com/smartcontractkit/deal-console/engine/console/commands/flags"
	"github.com/smartcontractkit/deal-console/engine/console/commands/text"
)

var (
	templateShort = "Print a value skeleton for the parameters of a function"

	templateLong = text.LongDesc(`
		Prints the JSON skeleton of the parameters of a contract function, in the shape encode
		takes with --args-file. Structs become objects with their fields in declaration order and
		arrays become lists.

		With --param only the value of that parameter is printed, as the text --arg takes.

		The placeholder style shows the expected type of each value, the empty style fills in
		zero values and the example style fills in sample values that pass encode --validate.
	`)

	templateExample = text.Examples(`
		# Args file skeleton for TranchedPool.lockPool
		dealconsole template -c TranchedPool --function lockPool > values.json

		# Sample value of a single struct parameter
		dealconsole template -c TranchedPool --function setTerms --param terms --style example
	`)
)

type templateFlags struct {
	version  string
	contract string
	function string
	param    string
	style    string
}

func newTemplateCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Short:   templateShort,
		Long:    templateLong,
		Example: templateExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := templateFlags{
				version:  flags.MustString(cmd.Flags().GetString("abi-version")),
				contract: flags.MustString(cmd.Flags().GetString("contract")),
				function: flags.MustString(cmd.Flags().GetString("function")),
				param:    flags.MustString(cmd.Flags().GetString("param")),
				style:    flags.MustString(cmd.Flags().GetString("style")),
			}

			return runTemplate(cmd, cfg, f)
		},
	}

	flags.Version(cmd)
	flags.Contract(cmd)
	cmd.Flags().String("function", "", functionFlagUsage+" (required)")
	cmd.Flags().String("param", "", "Print the value of this parameter only")
	cmd.Flags().String("style", "placeholder", "Values to fill in: placeholder, empty or example")
	_ = cmd.MarkFlagRequired("function")

	return cmd
}

func runTemplate(cmd *cobra.Command, cfg Config, f templateFlags) error {
	style, err := calldata.ParseTemplateStyle(f.style)
	if err != nil {
		return err
	}
	env, err := cfg.environment(cmd)
	if err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}
	fn, err := env.Function(cmd.Context(), f.version, f.contract, f.function)
	if err != nil {
		return err
	}

	var out string
	if f.param == "" {
		b, err := calldata.FunctionTemplate(fn, style)
		if err != nil {
			return err
		}
		out = string(b)
	} else {
		out, err = paramTemplate(fn, f.param, style)
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

	return err
}

func paramTemplate(fn descriptor.ParsedFunction, param string, style calldata.TemplateStyle) (string, error) {
	for i, t := range fn.InputTypes() {
		if descriptor.FieldName(fn.Inputs[i].Name, i) == param {
			return calldata.TemplateText(t, style)
		}
	}

	return "", fmt.Errorf("function %s has no parameter %q", fn.Signature, param)
}
