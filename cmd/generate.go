package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fhirfuzz.dev/pkg/fhirfuzz/internal/adapter"
	"fhirfuzz.dev/pkg/fhirfuzz/internal/controller"
)

const generateLongDescription = `Generate new instances of a kind.

Every case is a self-consistent random instance built bottom-up. Case i uses
seed SEED+i, so a single case can be reproduced with --seed SEED+i --count 1.
Run "fhirfuzz kinds" for the available kinds.`

var (
	countFlag           uint
	parallelFlag        uint
	seedFlag            int64
	fuzzFlags           []string
	maxDepthFlag        int
	maxStringLengthFlag int
	shardFlag           string
	formatFlag          string
	noTUIFlag           bool
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <kind>",
		Short: "Generate random instances of a kind",
		Long:  generateLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCampaign(cmd, args[0], "")
		},
	}

	configureCampaignFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(newGenerateCmd())
}

// configureCampaignFlags adds the flags shared by generate and fuzz.
func configureCampaignFlags(cmd *cobra.Command) {
	cmd.Flags().UintVarP(&countFlag, countFlagName, "n", viper.GetUint(countConfigKey), "number of cases")
	cmd.Flags().UintVarP(&parallelFlag, parallelFlagName, "p", viper.GetUint(parallelConfigKey), "number of parallel workers")
	cmd.Flags().Int64Var(&seedFlag, seedFlagName, 0, "base RNG seed (default: derived from the clock)")
	cmd.Flags().StringArrayVarP(&fuzzFlags, fuzzFlagFlagName, "f", viper.GetStringSlice(flagsConfigKey), "enable a session flag (can be repeated)")
	cmd.Flags().IntVar(&maxDepthFlag, maxDepthFlagName, viper.GetInt(maxDepthConfigKey), "maximum nesting of recursive types")
	cmd.Flags().IntVar(&maxStringLengthFlag, maxStringLengthFlagName, viper.GetInt(maxStringLengthConfigKey), "maximum string length")
	cmd.Flags().StringVarP(&shardFlag, shardFlagName, "s", viper.GetString(shardConfigKey), "shard index and total shard count in the format INDEX/TOTAL (e.g., 0/3)")
	cmd.Flags().StringVar(&formatFlag, formatFlagName, viper.GetString(formatConfigKey), "case file format (json, yaml or toml)")
	cmd.Flags().BoolVar(&noTUIFlag, noTUIFlagName, viper.GetBool(noTUIConfigKey), "print cases instead of opening the interactive browser")
}

// bindCampaignFlags points the campaign config keys at the flags of cmd.
// generate and fuzz share the keys, so binding happens when one of them runs.
func bindCampaignFlags(cmd *cobra.Command) {
	bindFlagToConfig(cmd.Flags().Lookup(countFlagName), countConfigKey)
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)
	bindFlagToConfig(cmd.Flags().Lookup(seedFlagName), seedConfigKey)
	bindFlagToConfig(cmd.Flags().Lookup(fuzzFlagFlagName), flagsConfigKey)
	bindFlagToConfig(cmd.Flags().Lookup(maxDepthFlagName), maxDepthConfigKey)
	bindFlagToConfig(cmd.Flags().Lookup(maxStringLengthFlagName), maxStringLengthConfigKey)
	bindFlagToConfig(cmd.Flags().Lookup(shardFlagName), shardConfigKey)
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), formatConfigKey)
	bindFlagToConfig(cmd.Flags().Lookup(noTUIFlagName), noTUIConfigKey)
}

// runCampaign resolves the settings and runs one generate or fuzz campaign.
func runCampaign(cmd *cobra.Command, kind, input string) error {
	bindCampaignFlags(cmd)

	settings, err := loadSettings(kind, input)
	if err != nil {
		return err
	}

	format, err := adapter.ParseFormat(settings.Format)
	if err != nil {
		return err
	}

	encoder, err := adapter.NewEncoder(format)
	if err != nil {
		return err
	}

	store := adapter.NewCaseStore(files, encoder)
	ui := controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()) && !settings.NoTUI)

	return newWorkflow(files, store, ui, campaign).Run(cmd.Context(), settings.runArgs())
}
