package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"fhirfuzz.dev/pkg/fhirfuzz/internal/adapter"
	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
)

const stdoutFlagName = "stdout"

// configDocs lists the keys written by init, in file order, with the comment
// placed above each one.
var configDocs = []struct {
	key     string
	comment string
}{
	{configVersionKey, "config schema version"},
	{outputConfigKey, "output file; empty writes to stdout"},
	{formatConfigKey, "serialization of saved cases"},
	{countConfigKey, "cases per run"},
	{parallelConfigKey, "concurrent case workers"},
	{shardConfigKey, `run only the cases of one shard, as "index/count"`},
	{flagsConfigKey, "session flags"},
	{maxDepthConfigKey, "composite nesting limit for generated nodes"},
	{maxStringLengthConfigKey, "length bound for generated strings"},
	{noTUIConfigKey, "print plain output instead of the interactive view"},
	{logFilenameKey, "rotating log file"},
	{logLevelKey, "debug, info, warn or error"},
	{logVerboseKey, "log at debug level"},
	{logMaxSizeKey, "megabytes before rotation"},
	{logMaxBackupsKey, "rotated files kept"},
	{logMaxAgeKey, "days a rotated file is kept"},
	{logCompressKey, "gzip rotated files"},
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented fhirfuzz.yaml with the current settings",
		Long: `Create a fhirfuzz.yaml in the current working directory. Every key is written
with its current value and a comment naming what it controls; the header lists
the fuzzable kinds, the session flags and the output formats. An existing file
is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			contents, err := renderConfigTemplate()
			if err != nil {
				return err
			}

			if toStdout, _ := cmd.Flags().GetBool(stdoutFlagName); toStdout {
				_, err = cmd.OutOrStdout().Write(contents)

				return err
			}

			targetPath := filepath.Join(configFolderPath, configFileName)
			if err := writeNewFile(targetPath, contents); err != nil {
				return err
			}

			cmd.Println("wrote", targetPath)

			return nil
		},
	}

	cmd.Flags().Bool(stdoutFlagName, false, "print the configuration instead of writing "+configFileName)

	return cmd
}

// renderConfigTemplate renders the current configuration as commented YAML.
func renderConfigTemplate() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	for _, doc := range configDocs {
		section, name := root, doc.key
		if parent, leaf, ok := strings.Cut(doc.key, "."); ok {
			section, name = mappingChild(root, parent), leaf
		}

		value := &yaml.Node{}
		if err := value.Encode(viper.Get(doc.key)); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", doc.key, err)
		}

		comment := doc.comment
		if doc.key == flagsConfigKey {
			comment += ": " + strings.Join(domain.KnownFlags(), ", ")
		}

		key := &yaml.Node{Kind: yaml.ScalarNode, Value: name, HeadComment: comment}
		section.Content = append(section.Content, key, value)
	}

	kinds := make([]string, 0, len(catalog.Kinds()))
	for _, kind := range catalog.Kinds() {
		kinds = append(kinds, string(kind))
	}

	formats := make([]string, 0, len(adapter.Formats()))
	for _, format := range adapter.Formats() {
		formats = append(formats, string(format))
	}

	document := &yaml.Node{
		Kind: yaml.DocumentNode,
		HeadComment: strings.Join([]string{
			"fhirfuzz configuration",
			"kinds: " + strings.Join(kinds, ", "),
			"formats: " + strings.Join(formats, ", "),
			"seed: set a fixed session seed here; when unset each run draws one from the clock",
		}, "\n"),
		Content: []*yaml.Node{root},
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(document); err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}

	return buf.Bytes(), nil
}

func mappingChild(parent *yaml.Node, name string) *yaml.Node {
	for i := 0; i+1 < len(parent.Content); i += 2 {
		if parent.Content[i].Value == name {
			return parent.Content[i+1]
		}
	}

	child := &yaml.Node{Kind: yaml.MappingNode}
	parent.Content = append(parent.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name}, child)

	return child
}

func writeNewFile(path string, contents []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("config file %s already exists", path)
	}

	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if _, err := f.Write(contents); err != nil {
		_ = f.Close()

		return fmt.Errorf("failed to write config file: %w", err)
	}

	return f.Close()
}

func init() {
	rootCmd.AddCommand(newInitCmd())
}
