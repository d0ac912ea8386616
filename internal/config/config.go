// Package config provides centralized configuration management for boardctl.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultAPIURL is used when BOARDCTL_API_URL is not set.
	DefaultAPIURL = "http://localhost:8080"
	// DefaultGitHubDomain is used when GITHUB_DOMAIN is not set.
	DefaultGitHubDomain = "github.com"
)

// Config holds all configuration parameters for the application.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Log     LogConfig
	GitHub  GitHubConfig
	Jira    JiraConfig
}

// APIConfig holds the board backend location.
type APIConfig struct {
	URL string
}

// SessionConfig holds where the login session is persisted.
type SessionConfig struct {
	File string
}

// LogConfig controls the optional log file.
type LogConfig struct {
	File bool
}

// GitHubConfig holds GitHub specific configuration.
type GitHubConfig struct {
	Token  string
	Domain string
}

// JiraConfig holds JIRA specific configuration.
type JiraConfig struct {
	BaseURL  string
	Username string
	Token    string
}

// Dir returns ~/.boardctl, the home of the session file, config file and logs.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".boardctl"), nil
}

// LoadConfig reads configuration from environment variables and, when present,
// from ~/.boardctl/config.yaml. Environment variables win over the file.
// The API URL is not validated here; callers apply their overrides first and
// then call ValidateAPIConfig.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("api.url", "BOARDCTL_API_URL")
	v.BindEnv("session.file", "BOARDCTL_SESSION_FILE")
	v.BindEnv("log.file", "BOARDCTL_LOG_FILE")
	v.BindEnv("github.token", "GITHUB_TOKEN")
	v.BindEnv("github.domain", "GITHUB_DOMAIN")
	v.BindEnv("jira.url", "JIRA_URL")
	v.BindEnv("jira.username", "JIRA_USERNAME")
	v.BindEnv("jira.token", "JIRA_TOKEN")

	v.SetDefault("api.url", DefaultAPIURL)
	v.SetDefault("github.domain", DefaultGitHubDomain)

	dir, dirErr := Dir()
	if dirErr == nil {
		v.SetDefault("session.file", filepath.Join(dir, "session.json"))

		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	config := &Config{
		API: APIConfig{
			URL: strings.TrimRight(v.GetString("api.url"), "/"),
		},
		Session: SessionConfig{
			File: v.GetString("session.file"),
		},
		Log: LogConfig{
			File: v.GetBool("log.file"),
		},
		GitHub: GitHubConfig{
			Token:  v.GetString("github.token"),
			Domain: v.GetString("github.domain"),
		},
		Jira: JiraConfig{
			BaseURL:  v.GetString("jira.url"),
			Username: v.GetString("jira.username"),
			Token:    v.GetString("jira.token"),
		},
	}

	if config.GitHub.Domain == "" {
		config.GitHub.Domain = DefaultGitHubDomain
	}

	return config, nil
}

// ValidateAPIConfig checks that the backend URL is an absolute http(s) URL.
func ValidateAPIConfig(config *Config) error {
	if config.API.URL == "" {
		return fmt.Errorf("missing required environment variables: [BOARDCTL_API_URL]")
	}

	u, err := url.Parse(config.API.URL)
	if err != nil {
		return fmt.Errorf("invalid BOARDCTL_API_URL %q: %w", config.API.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid BOARDCTL_API_URL %q: scheme must be http or https", config.API.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid BOARDCTL_API_URL %q: missing host", config.API.URL)
	}

	return nil
}

// ValidateGitHubConfig validates GitHub-specific configuration.
func ValidateGitHubConfig(config *Config) error {
	if config.GitHub.Token == "" {
		return fmt.Errorf("missing required environment variables: [GITHUB_TOKEN]")
	}
	return nil
}

// ValidateJiraConfig validates JIRA-specific configuration.
func ValidateJiraConfig(config *Config) error {
	var missingVars []string

	if config.Jira.BaseURL == "" {
		missingVars = append(missingVars, "JIRA_URL")
	}
	if config.Jira.Username == "" {
		missingVars = append(missingVars, "JIRA_USERNAME")
	}
	if config.Jira.Token == "" {
		missingVars = append(missingVars, "JIRA_TOKEN")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}
