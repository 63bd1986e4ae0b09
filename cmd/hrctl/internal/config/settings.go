package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/auth"
	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/logging"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable hrctl reads, e.g. HRCTL_SERVER.
const EnvPrefix = "HRCTL"

const (
	DefaultServer  = "http://localhost:8080"
	DefaultTimeout = 10 * time.Second
)

// Settings is the merged result of flags, environment and config file.
type Settings struct {
	Server         string        `mapstructure:"server"`
	NonInteractive bool          `mapstructure:"non-interactive"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Token          string        `mapstructure:"token"` // bypasses the session file, for scripts and CI
	Log            LogSettings   `mapstructure:"log"`
}

// LogSettings configures the CLI logger.
type LogSettings struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max-size-mb"`
	MaxBackups int    `mapstructure:"max-backups"`
	MaxAgeDays int    `mapstructure:"max-age-days"`
}

// LoggingOptions converts the log settings for the logging package.
func (l LogSettings) LoggingOptions() logging.Options {
	return logging.Options{
		Level:      l.Level,
		File:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
	}
}

// flagKeys maps persistent flag names to their settings keys.
var flagKeys = map[string]string{
	"server":          "server",
	"non-interactive": "non-interactive",
	"timeout":         "timeout",
	"token":           "token",
	"log-level":       "log.level",
	"log-file":        "log.file",
}

// Load merges, in increasing precedence, defaults, the config file,
// HRCTL_* environment variables and explicitly set flags.
//
// configFile may be empty, in which case ~/.hrctl/config.yaml is read
// if it exists. An explicitly named file must exist.
func Load(flags *pflag.FlagSet, configFile string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("server", DefaultServer)
	v.SetDefault("non-interactive", false)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("token", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max-size-mb", 10)
	v.SetDefault("log.max-backups", 3)
	v.SetDefault("log.max-age-days", 7)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(home, auth.DirName))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the merged settings.
func (s *Settings) Validate() error {
	s.Server = strings.TrimRight(strings.TrimSpace(s.Server), "/")
	if s.Server == "" {
		return errors.New("server URL is required (--server or HRCTL_SERVER)")
	}
	if !strings.HasPrefix(s.Server, "http://") && !strings.HasPrefix(s.Server, "https://") {
		return fmt.Errorf("server URL %q must start with http:// or https://", s.Server)
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	if _, err := logging.ParseLevel(s.Log.Level); err != nil {
		return err
	}
	return nil
}
