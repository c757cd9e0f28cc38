// Config loading for the ffb CLI. A config.yaml in the config directory can
// set the data directory; a default file is written on first run.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyDataDir = "data_dir"

	defaultConfigDir = ".ffb"
	defaultDataDir   = ".ffb-db"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	DataDir string `yaml:"data_dir"`
}

// loadConfig reads config.yaml from the config directory using Viper. It
// creates the directory and a default config.yaml on first run. A missing
// config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := writeConfigIfMissing(filepath.Join(configDir, "config.yaml")); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyDataDir, defaultDataDir)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&configFile{DataDir: defaultDataDir})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// resolveConfigDir returns the config directory from flag, env, or default.
func resolveConfigDir() string {
	if flags.configDir != "" {
		return flags.configDir
	}
	if v := os.Getenv("FFB_CONFIG_DIR"); v != "" {
		return v
	}
	return defaultConfigDir
}

// resolveDataDir returns the data directory with precedence
// flag > config.yaml > env > default.
func resolveDataDir(cfg *viper.Viper) string {
	if flags.dataDir != "" {
		return flags.dataDir
	}
	if v := cfg.GetString(cfgKeyDataDir); v != "" {
		return v
	}
	if v := os.Getenv("FFB_DATA_DIR"); v != "" {
		return v
	}
	return defaultDataDir
}
