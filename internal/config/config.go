package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds process configuration for the report tooling. Everything has
// a sensible default; a config file and RASOI_* environment variables can
// override any of it.
type Config struct {
	LogLevel      string       `mapstructure:"log_level"`
	UnitTableFile string       `mapstructure:"unit_table_file"`
	Report        ReportConfig `mapstructure:"report"`
}

// ReportConfig holds combined-report defaults.
type ReportConfig struct {
	CombineMealTypes bool `mapstructure:"combine_meal_types"`
	CombineKitchens  bool `mapstructure:"combine_kitchens"`
	// ServingDefaults maps a meal slot to per-person serving grams,
	// overriding the compiled-in recommendations.
	ServingDefaults map[string]float64 `mapstructure:"serving_defaults"`
}

// Load reads configuration from the given file, layered under environment
// overrides. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("unit_table_file", "")
	v.SetDefault("report.combine_meal_types", true)
	v.SetDefault("report.combine_kitchens", true)

	v.SetEnvPrefix("RASOI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
