package cmd

import (
	"github.com/spf13/cobra"
)

const fuzzLongDescription = `Fuzz an existing resource.

The input file holds one JSON-encoded node of the given kind; comments and
trailing commas are accepted. Use "-" to read from stdin. Each case applies a
random subset of field edits to a fresh copy of the input and records every
edit in its mutation log.`

func newFuzzCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fuzz <kind> <file>",
		Short: "Apply random corrupting edits to a resource",
		Long:  fuzzLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCampaign(cmd, args[0], args[1])
		},
	}

	configureCampaignFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(newFuzzCmd())
}
