// Package config loads keydrill settings from defaults, an optional YAML
// file, KEYDRILL_* environment variables and command-line flags, in that
// order of increasing precedence.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	defEscapeWait = 50 * time.Millisecond
	defPace       = 400 * time.Millisecond
	defLogLevel   = "info"

	maxEscapeWait = time.Second
	maxPace       = 10 * time.Second

	// EnvVarPrefix prefixes every environment override.
	EnvVarPrefix = "KEYDRILL"
)

var replacer = strings.NewReplacer(".", "_", "-", "_")

// Config holds every runtime setting.
type Config struct {
	// Device is a tty path; empty means stdin and stdout.
	Device string `mapstructure:"device" yaml:"device"`

	// EscapeWait bounds the wait for the rest of an escape sequence.
	EscapeWait time.Duration `mapstructure:"escape_wait" yaml:"escape_wait"`

	// Pace is the pause after a fully correct drill.
	Pace time.Duration `mapstructure:"pace" yaml:"pace"`

	// Seed fixes the random source. Zero picks a random seed.
	Seed uint64 `mapstructure:"seed" yaml:"seed"`

	Color bool `mapstructure:"color" yaml:"color"`

	// Catalog is a YAML drill file; empty means the builtin drills.
	Catalog string `mapstructure:"catalog" yaml:"catalog"`

	Log Log `mapstructure:"log" yaml:"log"`
}

// Log configures the log file.
type Log struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		EscapeWait: defEscapeWait,
		Pace:       defPace,
		Color:      true,
		Log: Log{
			File:  filepath.Join(os.TempDir(), "keydrill.log"),
			Level: defLogLevel,
		},
	}
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"device":      "device",
	"escape-wait": "escape_wait",
	"pace":        "pace",
	"seed":        "seed",
	"color":       "color",
	"catalog":     "catalog",
	"log-file":    "log.file",
	"log-level":   "log.level",
}

// RegisterFlags adds the override flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	def := DefaultConfig()
	fs.String("device", def.Device, "terminal device to drill on (default stdin/stdout)")
	fs.Duration("escape-wait", def.EscapeWait, "how long to wait for the rest of an escape sequence")
	fs.Duration("pace", def.Pace, "pause after a correct drill")
	fs.Uint64("seed", def.Seed, "random seed (0 picks one)")
	fs.Bool("color", def.Color, "colorize output")
	fs.String("catalog", def.Catalog, "drill catalog file (default builtin drills)")
	fs.String("log-file", def.Log.File, "log file path")
	fs.String("log-level", def.Log.Level, "log level (debug, info, warn, error)")
}

// Load builds the configuration. cfgFile may be empty; flags may be nil.
// Only flags that were set on the command line override other sources.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Viper only overrides keys it already knows, so seed it with the defaults.
	b, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("encode defaults: %w", err)
	}
	if err := v.MergeConfig(bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if cfgFile != "" {
		fi, err := os.Stat(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if fi.IsDir() {
			return nil, fmt.Errorf("config file %s is a directory", cfgFile)
		}
		v.SetConfigFile(cfgFile)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", cfgFile, err)
		}
	}

	v.SetEnvPrefix(EnvVarPrefix)
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and the log level.
func (c *Config) Validate() error {
	if c.EscapeWait <= 0 || c.EscapeWait > maxEscapeWait {
		return fmt.Errorf("escape_wait must be in (0, %s], got %s", maxEscapeWait, c.EscapeWait)
	}
	if c.Pace < 0 || c.Pace > maxPace {
		return fmt.Errorf("pace must be in [0, %s], got %s", maxPace, c.Pace)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.File == "" {
		return fmt.Errorf("log.file is required")
	}
	return nil
}
