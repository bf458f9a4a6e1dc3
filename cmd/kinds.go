package cmd

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the kinds that can be generated or fuzzed",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Kind", "Category"})
			table.SetBorder(false)
			table.SetCenterSeparator("")

			for _, kind := range catalog.Kinds() {
				category := "datatype"
				if catalog.IsResource(kind) {
					category = "resource"
				}

				table.Append([]string{string(kind), category})
			}

			table.Render()

			cmd.Println()
			cmd.Println("Session flags:")

			for _, flag := range domain.KnownFlags() {
				cmd.Println("  " + flag)
			}
		},
	}
}

func init() {
	rootCmd.AddCommand(newKindsCmd())
}
