package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keydrill.yaml")
	data := "device: /dev/pts/3\nescape_wait: 80ms\nseed: 42\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "/dev/pts/3", cfg.Device)
	assert.Equal(t, 80*time.Millisecond, cfg.EscapeWait)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, defPace, cfg.Pace, "unset keys keep defaults")
	assert.True(t, cfg.Color)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_DirectoryAsFile(t *testing.T) {
	_, err := Load(t.TempDir(), nil)
	assert.ErrorContains(t, err, "is a directory")
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("KEYDRILL_PACE", "0s")
	t.Setenv("KEYDRILL_COLOR", "false")
	t.Setenv("KEYDRILL_LOG_LEVEL", "warn")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), cfg.Pace)
	assert.False(t, cfg.Color)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_FlagsWinOverEnv(t *testing.T) {
	t.Setenv("KEYDRILL_SEED", "5")
	t.Setenv("KEYDRILL_DEVICE", "/dev/tty9")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--seed=7", "--escape-wait=120ms"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 120*time.Millisecond, cfg.EscapeWait)
	assert.Equal(t, "/dev/tty9", cfg.Device, "unset flags do not mask env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero escape wait", func(c *Config) { c.EscapeWait = 0 }, "escape_wait"},
		{"huge escape wait", func(c *Config) { c.EscapeWait = 2 * time.Second }, "escape_wait"},
		{"negative pace", func(c *Config) { c.Pace = -time.Millisecond }, "pace"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"no log file", func(c *Config) { c.Log.File = "" }, "log.file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
