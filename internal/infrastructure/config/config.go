package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no --config flag is given and it exists in the working directory.
const DefaultFile = "projectsched.yaml"

// ErrInvalidConfig is returned when the merged configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the merged configuration of a run: file, then environment, then flags.
type Config struct {
	ProjectURL        string `yaml:"project_url" json:"project_url"`
	StatusFieldName   string `yaml:"status_field" json:"status_field"`
	ScheduleFieldName string `yaml:"schedule_field" json:"schedule_field"`
	ScheduledState    string `yaml:"scheduled_state" json:"scheduled_state"`
	TodoState         string `yaml:"todo_state" json:"todo_state"`
	Token             string `yaml:"token" json:"token"`
	APIURL            string `yaml:"api_url" json:"api_url"`
	Timeout           string `yaml:"timeout" json:"timeout"`
	Log               Log    `yaml:"log" json:"log"`
}

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

const configSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["status_field", "schedule_field", "scheduled_state", "todo_state"],
  "properties": {
    "project_url": { "type": "string" },
    "status_field": { "type": "string", "minLength": 1 },
    "schedule_field": { "type": "string", "minLength": 1 },
    "scheduled_state": { "type": "string", "minLength": 1 },
    "todo_state": { "type": "string", "minLength": 1 },
    "token": { "type": "string" },
    "api_url": { "type": "string", "pattern": "^https?://" },
    "timeout": { "type": "string", "pattern": "^[0-9]+(\\.[0-9]+)?(ms|s|m)$" },
    "log": {
      "type": "object",
      "properties": {
        "level": { "enum": ["debug", "info", "warn", "error"] },
        "format": { "enum": ["text", "json"] }
      }
    }
  }
}`

var configSchemaLoader = gojsonschema.NewStringLoader(configSchemaJSON)

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		StatusFieldName:   "Status",
		ScheduleFieldName: "Schedule",
		ScheduledState:    "Scheduled",
		TodoState:         "Todo",
		APIURL:            "https://api.github.com/",
		Timeout:           "30s",
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path reads DefaultFile
// if it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// envBindings maps environment variables to config fields. Earlier entries win.
var envBindings = []struct {
	names []string
	set   func(*Config, string)
}{
	{[]string{"PROJECT_URL"}, func(c *Config, v string) { c.ProjectURL = v }},
	{[]string{"STATUS_FIELD_NAME"}, func(c *Config, v string) { c.StatusFieldName = v }},
	{[]string{"SCHEDULE_FIELD_NAME"}, func(c *Config, v string) { c.ScheduleFieldName = v }},
	{[]string{"SCHEDULE_STATE_NAME"}, func(c *Config, v string) { c.ScheduledState = v }},
	{[]string{"TODO_STATE_NAME"}, func(c *Config, v string) { c.TodoState = v }},
	{[]string{"GITHUB_TOKEN", "GH_TOKEN"}, func(c *Config, v string) { c.Token = v }},
	{[]string{"GITHUB_GRAPHQL_URL", "GITHUB_API_URL"}, func(c *Config, v string) { c.APIURL = apiRoot(v) }},
}

// apiRoot turns a GraphQL endpoint such as https://api.github.com/graphql
// into the API root the client resolves "graphql" against.
func apiRoot(v string) string {
	return strings.TrimSuffix(strings.TrimSuffix(v, "/"), "/graphql")
}

// ApplyEnv overrides fields from the environment. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	for _, b := range envBindings {
		for _, name := range b.names {
			if v := strings.TrimSpace(getenv(name)); v != "" {
				b.set(c, v)
				break
			}
		}
	}
}

// Validate checks the configuration against its schema. The project URL and
// the token are left to the board parser and the GraphQL client, which report
// their own errors.
func (c *Config) Validate() error {
	result, err := gojsonschema.Validate(configSchemaLoader, gojsonschema.NewGoLoader(c))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
	}
	if _, err := c.RequestTimeout(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// RequestTimeout parses Timeout. Empty means no override.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return d, nil
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.Token != "" {
		c.Token = "***"
	}
	return c
}
