package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/goccy/go-yaml"
	icingadbConfig "github.com/icinga/icingadb/pkg/config"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

// EnvPrefix is the prefix of environment variables overriding the config file,
// e.g. BIRTHDAY_NOTIFICATIONS_API-TIMEOUT or BIRTHDAY_NOTIFICATIONS_LOGGING_LEVEL.
const EnvPrefix = "BIRTHDAY_NOTIFICATIONS"

// ConfigFile is the entire configuration of the process, read from an
// optional YAML file with environment variable overrides on top.
//
// The Telegram credential and destination chat are deliberately not part of
// this file; they live in the TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID
// environment variables and are read by the pipeline only when needed.
type ConfigFile struct {
	BirthdaysPath string                 `yaml:"birthdays-path" default:"data/birthdays.json"`
	TemplatesPath string                 `yaml:"templates-path" default:"data/messages.json"`
	APIBaseURL    string                 `yaml:"api-base-url" default:"https://api.telegram.org"`
	APITimeout    time.Duration          `yaml:"api-timeout" default:"30s"`
	Logging       icingadbConfig.Logging `yaml:"logging"`
}

// Validate implements part of the config validation on process startup.
func (c *ConfigFile) Validate() error {
	if c.BirthdaysPath == "" {
		return errors.New("birthdays-path must not be empty")
	}
	if c.TemplatesPath == "" {
		return errors.New("templates-path must not be empty")
	}
	if c.APIBaseURL == "" {
		return errors.New("api-base-url must not be empty")
	}
	if c.APITimeout <= 0 {
		return errors.New("api-timeout must be positive")
	}

	return c.Logging.Validate()
}

// config is the process-wide configuration, initialized by LoadConfig.
var config *ConfigFile

// LoadConfig populates the process-wide configuration from the YAML file at
// path, the BIRTHDAY_NOTIFICATIONS_* environment variables and the defaults,
// and validates it. An empty path skips the file so that the command also runs
// on defaults and environment alone.
func LoadConfig(path string) error {
	var reader io.Reader = bytes.NewReader(nil)
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = file.Close() }()

		reader = file
	}

	cfg, err := loadConfig(reader, os.Environ())
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	config = cfg
	return nil
}

// Config returns the process-wide configuration. LoadConfig must have been
// called before.
func Config() *ConfigFile {
	return config
}

// loadConfig creates a ConfigFile from the given YAML document, over which the
// matching variables of environ and then the defaults are applied.
func loadConfig(yamlReader io.Reader, environ []string) (*ConfigFile, error) {
	cfg := new(ConfigFile)

	if err := yaml.NewDecoder(yamlReader, yaml.Strict()).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := PopulateFromYamlEnvironment(EnvPrefix, cfg, environ); err != nil {
		return nil, err
	}

	if err := defaults.Set(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
