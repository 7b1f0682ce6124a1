package config

import (
	"os"
	"path/filepath"
	"testing"

	"seedfix/feature/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "file", cfg.Gateway.Driver)
	assert.True(t, cfg.Gateway.Backup)
	assert.Equal(t, "seeds", cfg.Storage.Bucket)
	assert.Equal(t, 30, cfg.Storage.TimeoutSeconds)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.DefaultPort())

	// Tag defaults and DefaultConfig describe the same profile.
	assert.Equal(t, seed.DefaultConfig(), cfg.Seed)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := `
gateway:
  driver: s3
seed:
  document: seeds/init.sql
  placeholders:
    - P1
    - P2
  table:
    - B1=A1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte(yaml), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "s3", cfg.Gateway.Driver)
	assert.Equal(t, "seeds/init.sql", cfg.Seed.Document)
	assert.Equal(t, []string{"P1", "P2"}, cfg.Seed.Placeholders)
	assert.Equal(t, []string{"B1=A1"}, cfg.Seed.Table)
	// Untouched keys keep their defaults.
	assert.Equal(t, "contents", cfg.Seed.ParentLabel)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte("log:\n  level: warn\n"), 0o644))

	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED_PLACEHOLDERS", "X1,X2,X3")
	t.Setenv("DATABASE_DRIVER", "mysql")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"X1", "X2", "X3"}, cfg.Seed.Placeholders)
	assert.Equal(t, 3306, cfg.Database.DefaultPort())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SEED_DOCUMENT=from-dotenv.sql\n"), 0o644))
	// Restored after the test; godotenv.Overload sets it process-wide.
	t.Setenv("SEED_DOCUMENT", "")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.sql", cfg.Seed.Document)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte("log: [unclosed"), 0o644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
