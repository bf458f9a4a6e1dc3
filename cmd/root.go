// Package cmd provides the root command and CLI setup for fhirfuzz.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"fhirfuzz.dev/pkg/fhirfuzz/internal/adapter"
	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain/fuzzers"
)

var files adapter.ResourceFileAdapter
var catalog *fuzzers.Catalog
var campaign domain.Campaign

// newWorkflow assembles the workflow of one run. The case store and UI
// depend on per-run settings, so the workflow is not shared.
var newWorkflow = domain.NewWorkflow

// outputDirFlag is a root-level flag naming the directory cases are saved to.
var outputDirFlag string

var verboseFlag bool
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	files = adapter.NewLocalResourceFileAdapter()
	catalog = fuzzers.NewCatalog()
	campaign = domain.NewCampaign(catalog)
}

const rootLongDescription = `fhirfuzz synthesizes and corrupts FHIR resources for negative-path testing.

It can generate brand-new plausible instances of a registered kind, or apply
a random subset of corrupting edits to an existing resource, recording every
edit in a mutation log. Runs are reproducible from their seed.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fhirfuzz",
		Short: "FHIR resource fuzzer",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputConfigKey),
			"directory generated cases are written to (default: not saved)",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// An interrupt cancels the running campaign.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
