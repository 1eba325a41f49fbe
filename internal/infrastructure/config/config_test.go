package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := Default()
	cfg.ProjectURL = "https://github.com/orgs/acme/projects/7"
	cfg.Token = "ghp_test"
	return cfg
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.StatusFieldName != "Status" || cfg.TodoState != "Todo" || cfg.Timeout != "30s" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	content := `project_url: https://github.com/users/octocat/projects/3
status_field: Stage
todo_state: Backlog
timeout: 5s
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ProjectURL != "https://github.com/users/octocat/projects/3" || cfg.StatusFieldName != "Stage" || cfg.TodoState != "Backlog" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.ScheduleFieldName != "Schedule" {
		t.Fatalf("default lost: %+v", cfg)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Fatalf("unexpected log config: %+v", cfg.Log)
	}
	if d, _ := cfg.RequestTimeout(); d != 5*time.Second {
		t.Fatalf("timeout = %s", d)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("project_url: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PROJECT_URL":         "https://github.com/orgs/acme/projects/9",
		"GH_TOKEN":            "from-gh",
		"SCHEDULE_STATE_NAME": "Later",
		"TODO_STATE_NAME":     "  ",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.ProjectURL != env["PROJECT_URL"] || cfg.Token != "from-gh" || cfg.ScheduledState != "Later" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.TodoState != "Todo" {
		t.Fatalf("blank env overrode value: %q", cfg.TodoState)
	}

	env["GITHUB_TOKEN"] = "from-github"
	cfg.ApplyEnv(func(k string) string { return env[k] })
	if cfg.Token != "from-github" {
		t.Fatalf("GITHUB_TOKEN should take precedence, got %q", cfg.Token)
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty todo", func(c *Config) { c.TodoState = "" }, "todo_state"},
		{"bad timeout", func(c *Config) { c.Timeout = "soon" }, "timeout"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "level"},
		{"bad api url", func(c *Config) { c.APIURL = "ftp://example.com" }, "api_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("got %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Fatalf("error does not mention %s: %v", tt.field, err)
			}
		})
	}
}

func TestValidate_LeavesProjectAndTokenToCallers(t *testing.T) {
	cfg := validConfig()
	cfg.ProjectURL = "https://github.com/acme/repo"
	cfg.Token = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("project url and token should not be validated here: %v", err)
	}
}

func TestValidate_MessageHasSinglePrefix(t *testing.T) {
	cfg := validConfig()
	cfg.Timeout = "soon"
	err := cfg.Validate()
	if strings.Count(err.Error(), ErrInvalidConfig.Error()) != 1 {
		t.Fatalf("repeated prefix: %q", err.Error())
	}
}

func TestApplyEnv_APIURL(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"graphql endpoint", map[string]string{"GITHUB_GRAPHQL_URL": "https://api.github.com/graphql"}, "https://api.github.com"},
		{"enterprise endpoint", map[string]string{"GITHUB_GRAPHQL_URL": "https://ghe.example.com/api/graphql/"}, "https://ghe.example.com/api"},
		{"graphql wins over api", map[string]string{
			"GITHUB_GRAPHQL_URL": "https://api.github.com/graphql",
			"GITHUB_API_URL":     "https://other.example.com",
		}, "https://api.github.com"},
		{"api url only", map[string]string{"GITHUB_API_URL": "https://api.github.com"}, "https://api.github.com"},
		{"unset keeps default", map[string]string{}, "https://api.github.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.ApplyEnv(func(k string) string { return tt.env[k] })
			if cfg.APIURL != tt.want {
				t.Fatalf("APIURL = %q, want %q", cfg.APIURL, tt.want)
			}
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := validConfig()
	r := cfg.Redacted()
	if r.Token != "***" || cfg.Token != "ghp_test" {
		t.Fatalf("redaction wrong: %q / %q", r.Token, cfg.Token)
	}
}
