package config

import (
	"context"

	"github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/internal/client"
	"go.uber.org/zap"
)

type contextKey string

const configKey contextKey = "hrctl-config"

// GlobalConfig holds shared configuration for all hrctl commands.
// The root command's PersistentPreRunE injects it into the cobra command
// context; subcommands read it back with MustFromContext.
type GlobalConfig struct {
	Settings       *Settings
	Logger         *zap.Logger
	ClientProvider *client.Provider
}

// ServerURL returns the API base URL in effect.
func (c *GlobalConfig) ServerURL() string {
	return c.Settings.Server
}

// NonInteractive reports whether prompts are disabled.
func (c *GlobalConfig) NonInteractive() bool {
	return c.Settings.NonInteractive
}

// InjectConfig adds config to the cobra command context.
func InjectConfig(ctx context.Context, cfg *GlobalConfig) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from the cobra command context.
// Returns (nil, false) if config is not present.
func FromContext(ctx context.Context) (*GlobalConfig, bool) {
	cfg, ok := ctx.Value(configKey).(*GlobalConfig)
	return cfg, ok
}

// MustFromContext retrieves config from context or panics.
// Only RunE functions, which always run after the root hook, should use it.
func MustFromContext(ctx context.Context) *GlobalConfig {
	cfg, ok := FromContext(ctx)
	if !ok {
		panic("hrctl: config not found in context - this is a bug in hrctl")
	}
	return cfg
}
