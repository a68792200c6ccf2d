package interfaces

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/deal-console/codec/signature"
	"github.com/smartcontractkit/deal-console/engine/console/commands/flags"
	"github.com/smartcontractkit/deal-console/engine/console/commands/text"
)

var (
	versionsExample = text.Examples(`
		dealconsole interfaces versions
	`)

	contractsExample = text.Examples(`
		# Contracts of the newest version
		dealconsole interfaces contracts

		# Contracts of a given version
		dealconsole interfaces contracts --abi-version v1.2.0
	`)

	functionsExample = text.Examples(`
		dealconsole interfaces functions -c TranchedPool
	`)
)

func newVersionsCmd(cfg Config) *cobra.Command {
	return &cobra.Command{
		Use:     "versions",
		Short:   "List interface versions, newest first",
		Example: versionsExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := cfg.environment()
			if err != nil {
				return err
			}
			ids, err := env.Interfaces.AvailableVersions(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list versions: %w", err)
			}
			for _, id := range ids {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), id); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func newContractsCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contracts",
		Short:   "List the contracts of an interface version",
		Example: contractsExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := cfg.environment()
			if err != nil {
				return err
			}
			id, err := env.Version(cmd.Context(), flags.MustString(cmd.Flags().GetString("abi-version")))
			if err != nil {
				return err
			}
			v, err := env.Interfaces.LoadVersion(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "%s: %s\n", v.Name, v.Description); err != nil {
				return err
			}
			table := newTable(out, "Contract", "Functions", "Chains")
			for _, c := range v.Contracts {
				chains := slices.Sorted(maps.Keys(c.Addresses))
				table.Append([]string{c.Name, strconv.Itoa(len(c.Functions())), strings.Join(chains, ", ")})
			}
			table.Render()

			return nil
		},
	}

	flags.Version(cmd)

	return cmd
}

func newFunctionsCmd(cfg Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "functions",
		Short:   "List the functions of a contract with their selectors",
		Example: functionsExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := cfg.environment()
			if err != nil {
				return err
			}
			c, err := env.Contract(cmd.Context(),
				flags.MustString(cmd.Flags().GetString("abi-version")),
				flags.MustString(cmd.Flags().GetString("contract")),
			)
			if err != nil {
				return err
			}

			table := newTable(cmd.OutOrStdout(), "Selector", "Signature", "Mutability")
			for _, fn := range c.Functions() {
				table.Append([]string{signature.Of(fn), fn.Signature, string(fn.StateMutability)})
			}
			table.Render()

			return nil
		},
	}

	flags.Version(cmd)
	flags.Contract(cmd)

	return cmd
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetBorders(tablewriter.Border{Left: false, Right: false, Top: true, Bottom: true})

	return table
}
