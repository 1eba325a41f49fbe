package cli

import (
	"os"

	"github.com/felixgeelhaar/projectsched/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

// boardFlags are shared by every command that works on a board.
type boardFlags struct {
	project        string
	statusField    string
	scheduleField  string
	scheduledState string
	todoState      string
	apiURL         string
	timeout        string
}

func addBoardFlags(cmd *cobra.Command, f *boardFlags) {
	cmd.Flags().StringVarP(&f.project, "project", "p", "", "project URL, e.g. https://github.com/orgs/acme/projects/7")
	cmd.Flags().StringVar(&f.statusField, "status-field", "", "name of the single-select status field")
	cmd.Flags().StringVar(&f.scheduleField, "schedule-field", "", "name of the date field holding the schedule")
	cmd.Flags().StringVar(&f.scheduledState, "scheduled-state", "", "status option meaning scheduled")
	cmd.Flags().StringVar(&f.todoState, "todo-state", "", "status option overdue items are moved to")
	cmd.Flags().StringVar(&f.apiURL, "api-url", "", "GitHub API root the graphql endpoint is resolved against")
	cmd.Flags().StringVar(&f.timeout, "timeout", "", "per-request timeout, e.g. 30s")
}

// loadConfig merges the config file, the environment and the flags of cmd, then validates the result.
func loadConfig(cmd *cobra.Command, f *boardFlags) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)

	flags := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("project", &cfg.ProjectURL, f.project)
	set("status-field", &cfg.StatusFieldName, f.statusField)
	set("schedule-field", &cfg.ScheduleFieldName, f.scheduleField)
	set("scheduled-state", &cfg.ScheduledState, f.scheduledState)
	set("todo-state", &cfg.TodoState, f.todoState)
	set("api-url", &cfg.APIURL, f.apiURL)
	set("timeout", &cfg.Timeout, f.timeout)
	set("log-level", &cfg.Log.Level, logLevel)
	set("log-format", &cfg.Log.Format, logFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
