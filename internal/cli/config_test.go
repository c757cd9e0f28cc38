package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigWritesDefaultFile(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "conf")

	cfg, err := loadConfig(configDir)
	require.NoError(t, err)
	assert.Equal(t, defaultDataDir, cfg.GetString(cfgKeyDataDir))

	_, err = os.Stat(filepath.Join(configDir, "config.yaml"))
	assert.NoError(t, err, "first run should write config.yaml")
}

func TestLoadConfigKeepsExistingFile(t *testing.T) {
	configDir := t.TempDir()
	path := filepath.Join(configDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /custom/data\n"), 0o644))

	cfg, err := loadConfig(configDir)
	require.NoError(t, err)
	assert.Equal(t, "/custom/data", cfg.GetString(cfgKeyDataDir))
}

func TestResolveDataDirPrecedence(t *testing.T) {
	configDir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(configDir, "config.yaml"), []byte("data_dir: from-config\n"), 0o644))
	cfg, err := loadConfig(configDir)
	require.NoError(t, err)

	t.Run("flag wins", func(t *testing.T) {
		flags.dataDir = "from-flag"
		t.Cleanup(func() { flags.dataDir = "" })
		assert.Equal(t, "from-flag", resolveDataDir(cfg))
	})

	t.Run("config wins over default", func(t *testing.T) {
		flags.dataDir = ""
		assert.Equal(t, "from-config", resolveDataDir(cfg))
	})
}

func TestResolveConfigDirPrecedence(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		flags.configDir = "from-flag"
		t.Cleanup(func() { flags.configDir = "" })
		assert.Equal(t, "from-flag", resolveConfigDir())
	})

	t.Run("env wins over default", func(t *testing.T) {
		flags.configDir = ""
		t.Setenv("FFB_CONFIG_DIR", "from-env")
		assert.Equal(t, "from-env", resolveConfigDir())
	})

	t.Run("default", func(t *testing.T) {
		flags.configDir = ""
		assert.Equal(t, defaultConfigDir, resolveConfigDir())
	})
}
