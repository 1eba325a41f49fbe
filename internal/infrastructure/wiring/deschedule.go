package wiring

import (
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/projectsched/internal/infrastructure/config"
	"github.com/felixgeelhaar/projectsched/pkg/application"
	"github.com/felixgeelhaar/projectsched/pkg/graphql"
)

// BuildDescheduleService wires an authenticated GraphQL client into a DescheduleService.
func BuildDescheduleService(cfg *config.Config, logger *slog.Logger) (*application.DescheduleService, error) {
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}

	client, err := graphql.NewClient(cfg.Token,
		graphql.WithBaseURL(cfg.APIURL),
		graphql.WithTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL client: %w", err)
	}

	return application.NewDescheduleService(client, logger), nil
}

// DescheduleParams extracts the run parameters from a configuration.
func DescheduleParams(cfg *config.Config) application.DescheduleParams {
	return application.DescheduleParams{
		ProjectURL:        cfg.ProjectURL,
		StatusFieldName:   cfg.StatusFieldName,
		ScheduleFieldName: cfg.ScheduleFieldName,
		ScheduledState:    cfg.ScheduledState,
		TodoState:         cfg.TodoState,
	}
}
