package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
)

func chdirTemp(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	return tempDir
}

func TestInitCmd_WritesCommentedConfig(t *testing.T) {
	tempDir := chdirTemp(t)

	cmd, out := newTestCmd(t, newInitCmd())
	cmd.SetArgs([]string{"init", "--log-file", filepath.Join(tempDir, "test.log")})
	require.NoError(t, cmd.Execute())

	targetPath := filepath.Join(tempDir, configFileName)
	assert.Contains(t, out.String(), "wrote")

	contents, err := os.ReadFile(targetPath)
	require.NoError(t, err)

	text := string(contents)
	assert.Contains(t, text, "# fhirfuzz configuration")
	assert.Contains(t, text, "# session flags: "+domain.FlagExceedMaxLength+", "+domain.FlagWidenLists)
	assert.Contains(t, text, "Patient")
	assert.Contains(t, text, "toml")
	assert.Contains(t, text, "# cases per run")

	var parsed struct {
		Version int `yaml:"version"`
		Run     struct {
			Count    int `yaml:"count"`
			Parallel int `yaml:"parallel"`
		} `yaml:"run"`
		Fuzz struct {
			Flags    []string `yaml:"flags"`
			MaxDepth int      `yaml:"max_depth"`
		} `yaml:"fuzz"`
		Log struct {
			Level string `yaml:"level"`
		} `yaml:"log"`
	}

	require.NoError(t, yaml.Unmarshal(contents, &parsed))
	assert.Equal(t, currentConfigVersion, parsed.Version)
	assert.Equal(t, viper.GetInt(countConfigKey), parsed.Run.Count)
	assert.Equal(t, viper.GetInt(parallelConfigKey), parsed.Run.Parallel)
	assert.ElementsMatch(t, viper.GetStringSlice(flagsConfigKey), parsed.Fuzz.Flags)
	assert.Equal(t, viper.GetInt(maxDepthConfigKey), parsed.Fuzz.MaxDepth)
	assert.Equal(t, viper.GetString(logLevelKey), parsed.Log.Level)
}

func TestInitCmd_Stdout(t *testing.T) {
	tempDir := chdirTemp(t)

	cmd, out := newTestCmd(t, newInitCmd())
	cmd.SetArgs([]string{"init", "--stdout", "--log-file", filepath.Join(tempDir, "test.log")})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "max_string_length:")
	assert.NoFileExists(t, filepath.Join(tempDir, configFileName))
}

func TestInitCmd_ErrorsWhenFileExists(t *testing.T) {
	tempDir := chdirTemp(t)

	targetPath := filepath.Join(tempDir, configFileName)
	require.NoError(t, os.WriteFile(targetPath, []byte("existing: true\n"), 0o644))

	cmd, _ := newTestCmd(t, newInitCmd())
	cmd.SetArgs([]string{"init", "--log-file", filepath.Join(tempDir, "test.log")})

	err := cmd.Execute()
	require.ErrorContains(t, err, "already exists")

	contents, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.Equal(t, "existing: true\n", string(contents))
}
