package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"fhirfuzz.dev/pkg/fhirfuzz/internal/adapter"
	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "fhirfuzz"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName          = "output"
	formatFlagName          = "format"
	verboseFlagName         = "verbose"
	logFileFlagName         = "log-file"
	countFlagName           = "count"
	parallelFlagName        = "parallel"
	seedFlagName            = "seed"
	fuzzFlagFlagName        = "flag"
	maxDepthFlagName        = "max-depth"
	maxStringLengthFlagName = "max-string-length"
	shardFlagName           = "shard"
	noTUIFlagName           = "no-tui"

	outputConfigKey          = "output"
	formatConfigKey          = "format"
	seedConfigKey            = "seed"
	countConfigKey           = "run.count"
	parallelConfigKey        = "run.parallel"
	shardConfigKey           = "run.shard"
	flagsConfigKey           = "fuzz.flags"
	maxDepthConfigKey        = "fuzz.max_depth"
	maxStringLengthConfigKey = "fuzz.max_string_length"
	noTUIConfigKey           = "ui.no_tui"

	defaultOutput   = ""
	defaultFormat   = string(adapter.FormatJSON)
	defaultCount    = 1
	defaultParallel = 1
	defaultShard    = ""
	defaultNoTUI    = false

	envPrefix = "FHIRFUZZ"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".fhirfuzz.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

// configDefaults seeds every config key except the seed, which stays unset
// so that an unseeded run draws one from the clock.
var configDefaults = map[string]any{
	configVersionKey:         currentConfigVersion,
	outputConfigKey:          defaultOutput,
	formatConfigKey:          defaultFormat,
	countConfigKey:           defaultCount,
	parallelConfigKey:        defaultParallel,
	shardConfigKey:           defaultShard,
	flagsConfigKey:           []string{},
	maxDepthConfigKey:        domain.DefaultMaxDepth,
	maxStringLengthConfigKey: domain.DefaultMaxStringLength,
	noTUIConfigKey:           defaultNoTUI,
	logFilenameKey:           defaultLogFilename,
	logLevelKey:              defaultLogLevel,
	logVerboseKey:            defaultLogVerbose,
	logMaxSizeKey:            defaultLogMaxSize,
	logMaxBackupsKey:         defaultLogMaxBackups,
	logMaxAgeKey:             defaultLogMaxAge,
	logCompressKey:           defaultLogCompress,
}

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	for key, value := range configDefaults {
		viper.SetDefault(key, value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Ignoring unreadable config file", "path", viper.ConfigFileUsed(), "error", err)
		}
	}
}

// parseSlogLevel accepts slog level names ("debug", "WARN", "info+2"),
// "warning", and bare numeric levels. Anything else yields defaultLevel.
func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	value = strings.TrimSpace(value)

	switch {
	case value == "":
		return defaultLevel
	case strings.EqualFold(value, "warning"):
		return slog.LevelWarn
	}

	if n, err := strconv.Atoi(value); err == nil {
		return slog.Level(n)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return defaultLevel
	}

	return level
}

// configureLogger configures the global slog logger.
//
// By default it logs at the configured level; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) *slog.Logger {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)

	return globalLogger
}
