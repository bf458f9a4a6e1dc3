package cmd

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain"
	"fhirfuzz.dev/pkg/fhirfuzz/internal/domain/fuzzers"
	m "fhirfuzz.dev/pkg/fhirfuzz/internal/model"
)

// settingsValidate checks resolved run settings before a session starts.
var settingsValidate *validator.Validate

func init() {
	v, err := newSettingsValidator()
	cobra.CheckErr(err)

	settingsValidate = v
}

func newSettingsValidator() (*validator.Validate, error) {
	v := validator.New()

	if err := v.RegisterValidation("fuzzkind", validateKind); err != nil {
		return nil, fmt.Errorf("register fuzzkind validation: %w", err)
	}

	if err := v.RegisterValidation("fuzzflag", validateFlag); err != nil {
		return nil, fmt.Errorf("register fuzzflag validation: %w", err)
	}

	return v, nil
}

func validateKind(fl validator.FieldLevel) bool {
	return slices.Contains(catalog.Kinds(), m.Kind(fl.Field().String()))
}

func validateFlag(fl validator.FieldLevel) bool {
	return slices.Contains(domain.KnownFlags(), fl.Field().String())
}

// runSettings is the resolved configuration of a generate or fuzz run.
type runSettings struct {
	Kind            string   `validate:"required,fuzzkind"`
	Input           string   `validate:"omitempty"`
	Count           uint     `validate:"gte=1,lte=100000"`
	Parallel        uint     `validate:"gte=1,lte=1024"`
	Seed            int64    `validate:"-"`
	Flags           []string `validate:"dive,fuzzflag"`
	MaxDepth        int      `validate:"gte=1,lte=64"`
	MaxStringLength int      `validate:"gte=1"`
	Output          string   `validate:"omitempty"`
	Format          string   `validate:"oneof=json yaml toml"`
	ShardIndex      uint     `validate:"ltfield=ShardCount"`
	ShardCount      uint     `validate:"gte=1"`
	NoTUI           bool     `validate:"-"`
}

// loadSettings resolves the run settings from flags, environment and config.
func loadSettings(kind, input string) (runSettings, error) {
	shardIndex, shardCount, err := parseShardFlag(viper.GetString(shardConfigKey))
	if err != nil {
		return runSettings{}, err
	}

	s := runSettings{
		Kind:            kind,
		Input:           input,
		Count:           viper.GetUint(countConfigKey),
		Parallel:        viper.GetUint(parallelConfigKey),
		Seed:            resolveSeed(),
		Flags:           viper.GetStringSlice(flagsConfigKey),
		MaxDepth:        viper.GetInt(maxDepthConfigKey),
		MaxStringLength: viper.GetInt(maxStringLengthConfigKey),
		Output:          viper.GetString(outputConfigKey),
		Format:          viper.GetString(formatConfigKey),
		ShardIndex:      shardIndex,
		ShardCount:      shardCount,
		NoTUI:           viper.GetBool(noTUIConfigKey),
	}

	if err := s.Validate(); err != nil {
		return runSettings{}, err
	}

	return s, nil
}

func resolveSeed() int64 {
	if viper.IsSet(seedConfigKey) {
		return viper.GetInt64(seedConfigKey)
	}

	return time.Now().UnixNano()
}

// Validate reports the first invalid setting.
func (s runSettings) Validate() error {
	if err := settingsValidate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	return nil
}

// runArgs converts the settings into workflow arguments.
func (s runSettings) runArgs() domain.RunArgs {
	flags := slices.Clone(s.Flags)
	slices.Sort(flags)

	return domain.RunArgs{
		CampaignArgs: domain.CampaignArgs{
			Kind:       m.Kind(s.Kind),
			Count:      s.Count,
			Parallel:   s.Parallel,
			Seed:       s.Seed,
			ShardIndex: s.ShardIndex,
			ShardCount: s.ShardCount,
			Options: []domain.Option{
				domain.WithRegistrar(fuzzers.Defaults),
				domain.WithFlags(flags...),
				domain.WithMaxDepth(s.MaxDepth),
				domain.WithMaxStringLength(s.MaxStringLength),
				domain.WithLogger(globalLogger),
			},
		},
		InputPath: m.Path(s.Input),
		Output:    m.Path(s.Output),
		Flags:     flags,
	}
}

// parseShardFlag parses INDEX/TOTAL. An empty value means a single shard.
func parseShardFlag(shard string) (uint, uint, error) {
	if shard == "" {
		return 0, 1, nil
	}

	var index, total uint

	_, err := fmt.Sscanf(shard, "%d/%d", &index, &total)
	if err != nil || total == 0 || index >= total {
		return 0, 0, fmt.Errorf("invalid shard %q: want INDEX/TOTAL with 0 <= INDEX < TOTAL", shard)
	}

	return index, total, nil
}
