package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "umlsql.yaml"

// Config carries the settings for commands that talk to a live database.
type Config struct {
	DatabaseURL string   `yaml:"database_url"`
	Schema      string   `yaml:"schema"`
	Exclude     []string `yaml:"exclude"`
}

// Load reads a YAML config file. An empty path falls back to the
// default file, and a missing default is not an error; a missing
// explicit path is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %v", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %v", path, err)
	}

	return &cfg, nil
}

// ApplyEnv fills settings the file left empty from the environment.
func (c *Config) ApplyEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}

// Validate applies defaults and checks that required settings are set.
func (c *Config) Validate() error {
	if c.Schema == "" {
		c.Schema = "public"
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url not set (in config, .env or environment)")
	}
	return nil
}
