package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefaultConfig_CreatesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	err := WriteDefaultConfig(configPath)
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "auto_reload: true")
	assert.Contains(t, content, "row_height: 1")
	assert.Contains(t, content, "overscan_rows: 4")
	assert.Contains(t, content, "frozen_columns: 1")
	assert.Contains(t, content, "keep: 50")
}

func TestWriteDefaultConfig_RefusesExistingFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("auto_reload: false\n"), 0644))

	err := WriteDefaultConfig(configPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")

	// The existing file is untouched.
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "auto_reload: false\n", string(data))
}

func TestWriteDefaultConfig_ViperRoundtrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(configPath))

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	var loaded Config
	require.NoError(t, v.Unmarshal(&loaded))

	defaults := Defaults()
	assert.Equal(t, defaults.AutoReload, loaded.AutoReload)
	assert.Equal(t, defaults.Grid, loaded.Grid)
	assert.Equal(t, defaults.UI, loaded.UI)
	assert.Equal(t, defaults.Recents.Keep, loaded.Recents.Keep)
	assert.Equal(t, defaults.Flags, loaded.Flags)
}
