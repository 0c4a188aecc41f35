// Package config reads the server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "pexkit"

	// TokenFile is the cached OAuth session filename.
	TokenFile = "token.json"
)

// Config holds everything cmd/server needs to wire the process.
type Config struct {
	// ProjectID is the Google Cloud project hosting Firestore.
	ProjectID string

	// Port the HTTP server listens on.
	Port string

	// OAuth client for Google sign-in.
	OAuthClientID     string
	OAuthClientSecret string
	OAuthRedirectURL  string

	// Dir is where session state is cached.
	Dir string

	// Optional LINE credentials for the reminder digest. Both must be set
	// for the notifier to be enabled.
	LINEChannelToken string
	LINEUserID       string
}

// Load reads the configuration from the environment. The caller is expected
// to have loaded any .env file first.
func Load() (*Config, error) {
	cfg := &Config{
		ProjectID:         os.Getenv("GOOGLE_CLOUD_PROJECT"),
		Port:              os.Getenv("PORT"),
		OAuthClientID:     os.Getenv("GOOGLE_OAUTH_CLIENT_ID"),
		OAuthClientSecret: os.Getenv("GOOGLE_OAUTH_CLIENT_SECRET"),
		OAuthRedirectURL:  os.Getenv("OAUTH_REDIRECT_URL"),
		Dir:               os.Getenv("PEXKIT_CONFIG_DIR"),
		LINEChannelToken:  os.Getenv("LINE_CHANNEL_TOKEN"),
		LINEUserID:        os.Getenv("LINE_USER_ID"),
	}

	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("GOOGLE_CLOUD_PROJECT environment variable is required")
	}
	if cfg.OAuthClientID == "" || cfg.OAuthClientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_OAUTH_CLIENT_ID and GOOGLE_OAUTH_CLIENT_SECRET environment variables are required")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.OAuthRedirectURL == "" {
		cfg.OAuthRedirectURL = "http://localhost:" + cfg.Port + "/auth/callback"
	}
	if cfg.Dir == "" {
		cfg.Dir = DefaultConfigDir()
	}
	return cfg, nil
}

// DefaultConfigDir returns XDG_CONFIG_HOME/pexkit, or $HOME/.config/pexkit.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path of the cached OAuth session.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// NotifierEnabled reports whether the LINE digest notifier is configured.
func (c *Config) NotifierEnabled() bool {
	return c.LINEChannelToken != "" && c.LINEUserID != ""
}
