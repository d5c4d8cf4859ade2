// internal/common/config/loader.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix        = "PREDICTOR"
	DefaultModelFile = "linear_regression_model.json"
)

// LoadResult carries the configuration plus where it came from, so the caller
// can log it once the logger exists.
type LoadResult struct {
	Config     *Config
	ConfigFile string
	EnvFile    string
}

// Load reads configs/config.yaml (optional) from the working directory or the
// install directory, merges config.<APP_ENVIRONMENT>.yaml, and applies
// PREDICTOR_* environment overrides.
func Load() (*LoadResult, error) {
	envFile := loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	if dir, err := InstallDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "configs"))
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	cfg, err := finish(v)
	if err != nil {
		return nil, err
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = env
	}

	return &LoadResult{Config: cfg, ConfigFile: v.ConfigFileUsed(), EnvFile: envFile}, nil
}

// LoadFromFile loads configuration from a specific file path. Unlike Load, a
// missing file is an error.
func LoadFromFile(path string) (*LoadResult, error) {
	envFile := loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := finish(v)
	if err != nil {
		return nil, err
	}

	return &LoadResult{Config: cfg, ConfigFile: v.ConfigFileUsed(), EnvFile: envFile}, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	registerDefaults(v)
	return v
}

// registerDefaults makes every key known to viper so AutomaticEnv overrides
// reach Unmarshal even when no config file sets them.
func registerDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "price-predictor")
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.environment", "")
	v.SetDefault("model.path", "")
	v.SetDefault("model.file_name", DefaultModelFile)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("metrics.textfile_path", "")
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile loads the first .env found and returns its path, or "" when none exists.
func loadEnvFile() string {
	possiblePaths := []string{
		".env",
		"../.env",
	}
	if dir, err := InstallDir(); err == nil {
		possiblePaths = append(possiblePaths, filepath.Join(dir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// applyDefaults fills fields a config file explicitly left empty.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "price-predictor"
	}
	if cfg.Model.FileName == "" {
		cfg.Model.FileName = DefaultModelFile
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console (got %q)", cfg.Logging.Format)
	}

	if strings.ContainsRune(cfg.Model.FileName, filepath.Separator) {
		return fmt.Errorf("model.file_name must be a bare file name, use model.path for full paths")
	}

	return nil
}
