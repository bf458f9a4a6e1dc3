package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the build and catalog version",
		Long:  "Displays the module version, VCS revision, Go version and the number of fuzzable kinds.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, _ := debug.ReadBuildInfo()

			for _, line := range versionLines(info, len(catalog.Kinds())) {
				cmd.Println(line)
			}
		},
	}
}

// versionLines describes a build. Missing build info yields an unknown
// version; VCS settings are reported when the binary was stamped with them.
func versionLines(info *debug.BuildInfo, kinds int) []string {
	if info == nil {
		return []string{"fhirfuzz (unknown version)", fmt.Sprintf("kinds\t%d", kinds)}
	}

	version := info.Main.Version
	if version == "" {
		version = "(devel)"
	}

	lines := []string{"fhirfuzz " + version}

	var revision, built string

	modified := false

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.time":
			built = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision != "" {
		if len(revision) > 12 {
			revision = revision[:12]
		}

		if modified {
			revision += "+dirty"
		}

		lines = append(lines, "commit\t"+revision)
	}

	if built != "" {
		lines = append(lines, "built\t"+built)
	}

	return append(lines, "go\t"+info.GoVersion, fmt.Sprintf("kinds\t%d", kinds))
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}
