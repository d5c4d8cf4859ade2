// internal/common/config/config.go
package config

import (
	"os"
	"path/filepath"
)

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Model   ModelConfig   `mapstructure:"model"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ModelConfig locates the persisted regression artifact.
type ModelConfig struct {
	// Path overrides the artifact location entirely. Relative paths resolve
	// against the working directory.
	Path string `mapstructure:"path"`
	// FileName is looked up next to the executable when Path is empty.
	FileName string `mapstructure:"file_name"`
}

// ResolvePath returns the artifact path: Path when set, otherwise FileName
// inside installDir.
func (m ModelConfig) ResolvePath(installDir string) string {
	if m.Path != "" {
		if abs, err := filepath.Abs(m.Path); err == nil {
			return abs
		}
		return m.Path
	}
	return filepath.Join(installDir, m.FileName)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig controls the node_exporter textfile flush. An empty
// TextfilePath disables it.
type MetricsConfig struct {
	TextfilePath string `mapstructure:"textfile_path"`
}

// InstallDir returns the directory holding the running executable, with
// symlinks resolved.
func InstallDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
