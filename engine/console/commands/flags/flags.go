// Package flags provides the flags shared by console commands, so they are named and behave the
// same everywhere. Command specific flags are defined next to their command.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// MustString returns the string value, ignoring the error.
// Safe to use with registered flags where GetString cannot fail.
func MustString(s string, _ error) string { return s }

// MustInt returns the int value, ignoring the error.
func MustInt(i int, _ error) int { return i }

// MustBool returns the bool value, ignoring the error.
func MustBool(b bool, _ error) bool { return b }

// Config adds the persistent --config flag naming the settings file.
func Config(cmd *cobra.Command, defaultPath string) {
	cmd.PersistentFlags().String("config", defaultPath, "Path to the console config file")
}

// Format adds the --format/-f flag selecting text, yaml or json output. An empty value means the
// configured output_format.
func Format(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "Output format: text, yaml or json (default from config)")
}

// Version adds the --abi-version flag selecting the interface version. An empty value means the
// newest version.
func Version(cmd *cobra.Command) {
	cmd.Flags().String("abi-version", "", "Interface version (default newest)")
	normalize(cmd, "version", "abi-version")
}

// Contract adds the required --contract/-c flag.
func Contract(cmd *cobra.Command) {
	cmd.Flags().StringP("contract", "c", "", "Contract name (required)")
	_ = cmd.MarkFlagRequired("contract")
}

// Decimals adds the --decimals/-d flag. A negative value means the decimals are resolved from the
// config and the parameter names.
func Decimals(cmd *cobra.Command, usage string) {
	cmd.Flags().IntP("decimals", "d", -1, usage)
}

// AssetDecimals adds the --asset-decimals flag overriding the configured asset_decimals of the
// deal. Check cmd.Flags().Changed("asset-decimals") before using the value.
func AssetDecimals(cmd *cobra.Command) {
	cmd.Flags().Int("asset-decimals", 0, "asset_decimals of the deal (default from config)")
}

// normalize accepts alias as a silent spelling of name.
func normalize(cmd *cobra.Command, alias, name string) {
	existing := cmd.Flags().GetNormalizeFunc()
	cmd.Flags().SetNormalizeFunc(func(f *pflag.FlagSet, n string) pflag.NormalizedName {
		if n == alias {
			return pflag.NormalizedName(name)
		}
		if existing != nil {
			return existing(f, n)
		}

		return pflag.NormalizedName(n)
	})
}
