// Package appconfig loads the optional application settings file. Env
// variables stay the source of truth for deployment concerns; the yaml
// file only carries the knobs operators want under version control.
package appconfig

import (
	"os"

	"gopkg.in/yaml.v3"
)

// MailConfig names the sender for outgoing notifications.
type MailConfig struct {
	FromName string `yaml:"from_name"`
	FromMail string `yaml:"from_mail"`
}

// SeedConfig controls demo data loading for the memory store.
type SeedConfig struct {
	Demo bool `yaml:"demo"`
}

// Config is the application settings document.
type Config struct {
	Mail MailConfig `yaml:"mail"`
	Seed SeedConfig `yaml:"seed"`
}

// Load reads the file named by APP_CONFIG, falling back to defaults
// when unset. Env overrides apply after the file so deployments can
// patch single values without editing it.
func Load() (Config, error) {
	cfg := Config{
		Mail: MailConfig{FromName: "Banque du Numérique"},
	}

	if path := os.Getenv("APP_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if v := os.Getenv("MAIL_FROM_NAME"); v != "" {
		cfg.Mail.FromName = v
	}
	if v := os.Getenv("MAIL_FROM_ADDRESS"); v != "" {
		cfg.Mail.FromMail = v
	}
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		cfg.Seed.Demo = true
	}
	return cfg, nil
}
