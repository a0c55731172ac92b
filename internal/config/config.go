package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL matches the backend's default development address
const DefaultAPIURL = "http://localhost:8000"

const configFile = "config.yaml"

// Config holds the client configuration
type Config struct {
	// APIURL is the base URL of the events backend
	APIURL string `yaml:"api_url"`

	// TimeoutSeconds bounds every backend request
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// LogFormat is text or json
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		TimeoutSeconds: 30,
		LogLevel:       "warn",
		LogFormat:      "text",
	}
}

// Home returns the eventsctl config directory: $EVENTSCTL_HOME when set,
// otherwise ~/.eventsctl.
func Home() string {
	if home := os.Getenv("EVENTSCTL_HOME"); home != "" {
		return home
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		// Fall back to a project-local dot directory.
		return ".eventsctl"
	}
	return filepath.Join(userHome, ".eventsctl")
}

// Load reads the configuration from Home()/config.yaml.
// A missing file yields the defaults; a malformed file is an error.
// EVENTSCTL_API_URL overrides the configured URL either way.
func Load() (Config, error) {
	return LoadFrom(filepath.Join(Home(), configFile))
}

// LoadFrom reads the configuration from an explicit path
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 30
	}

	if url := os.Getenv("EVENTSCTL_API_URL"); url != "" {
		cfg.APIURL = url
	}

	return cfg, nil
}
