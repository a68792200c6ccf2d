// Package config loads the settings of the deal console CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds the console settings. Values come from an optional config file, overridden by
// DEALCONSOLE_* environment variables.
type Config struct {
	ABIDir            string `mapstructure:"abi_dir" yaml:"abi_dir"`                                                         // Directory holding <version>/<Name>.json interface files
	ABIBaseURL        string `mapstructure:"abi_base_url" yaml:"abi_base_url" validate:"omitempty,http_url"`                 // Console web server to load interfaces from instead of ABIDir
	CacheSize         int    `mapstructure:"cache_size" yaml:"cache_size" validate:"gte=0"`                                  // Loaded interfaces kept in memory, 0 disables caching
	LogLevel          string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`              // Log level of the CLI
	DefaultDecimals   int    `mapstructure:"default_decimals" yaml:"default_decimals" validate:"gte=0,lte=77"`               // Scale of amounts when nothing more specific is known
	AssetDecimals     *int   `mapstructure:"asset_decimals" yaml:"asset_decimals" validate:"omitempty,gte=0,lte=77"`         // asset_decimals of the selected deal
	WaterfallDecimals *int   `mapstructure:"waterfall_decimals" yaml:"waterfall_decimals" validate:"omitempty,gte=0,lte=77"` // asset_decimals of the deal's waterfall configuration
	OutputFormat      string `mapstructure:"output_format" yaml:"output_format" validate:"oneof=text yaml json"`             // Output format of the commands
}

var defaults = map[string]any{
	"abi_dir":          "public/abis",
	"cache_size":       256,
	"log_level":        "info",
	"default_decimals": 18,
	"output_format":    "text",
}

const envPrefix = "DEALCONSOLE"

var envKeys = []string{
	"abi_dir",
	"abi_base_url",
	"cache_size",
	"log_level",
	"default_decimals",
	"asset_decimals",
	"waterfall_decimals",
	"output_format",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		return name
	})

	return v
}

// Load loads the config from the file path, falling back to defaults and env vars if the file
// does not exist. Env vars that are set override the values loaded from the file.
func Load(filePath string) (*Config, error) {
	v := newViper()

	if filePath != "" {
		v.SetConfigFile(filePath)
		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
			}
		}
	}

	return unmarshal(v)
}

// LoadEnv loads the config from defaults and env vars only.
func LoadEnv() (*Config, error) {
	return unmarshal(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	for _, key := range envKeys {
		// BindEnv only fails without a key
		_ = v.BindEnv(key)
	}

	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	errs := make([]error, len(fieldErrs))
	for i, fe := range fieldErrs {
		errs[i] = fmt.Errorf("invalid %s %v: must satisfy %s", fe.Field(), fe.Value(), constraint(fe))
	}

	return errors.Join(errs...)
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}

	return fe.Tag() + "=" + fe.Param()
}
