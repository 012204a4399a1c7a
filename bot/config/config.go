// Package config loads the application configuration on top of the
// reusable core config.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/m3rciful/apptbot/core/config"
	coredatabase "github.com/m3rciful/apptbot/core/database"
)

// GeocodeConfig holds reverse geocoding settings.
type GeocodeConfig struct {
	BaseURL        string `yaml:"base_url" envconfig:"GEOCODE_BASE_URL"`
	UserAgent      string `yaml:"user_agent" envconfig:"GEOCODE_USER_AGENT"`
	TimeoutSeconds int    `yaml:"timeout_seconds" envconfig:"GEOCODE_TIMEOUT_SECONDS"`
}

// Timeout returns the configured request timeout.
func (g GeocodeConfig) Timeout() time.Duration {
	if g.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// ContactConfig holds the contact details shown to users.
type ContactConfig struct {
	Phone string `yaml:"phone" envconfig:"CONTACT_PHONE"`
}

// Config is the full application configuration.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Geocode  GeocodeConfig       `yaml:"geocode"`
	Contact  ContactConfig       `yaml:"contact"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Core
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalize(cfg *Config) error {
	if strings.TrimSpace(cfg.Database.Host) == "" {
		return fmt.Errorf("database.host is required")
	}
	if strings.TrimSpace(cfg.Database.Name) == "" {
		return fmt.Errorf("database.name is required")
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "5432"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConnections <= 0 {
		cfg.Database.MaxConnections = 10
	}

	if cfg.Geocode.BaseURL == "" {
		cfg.Geocode.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geocode.UserAgent == "" {
		cfg.Geocode.UserAgent = "TelegramAppointmentBot/1.0"
	}
	if cfg.Geocode.TimeoutSeconds < 0 {
		return fmt.Errorf("geocode.timeout_seconds must be >= 0")
	}

	if strings.TrimSpace(cfg.Contact.Phone) == "" {
		return fmt.Errorf("contact.phone is required")
	}
	return nil
}
