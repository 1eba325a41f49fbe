package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/projectsched/pkg/domain/board"
	"github.com/felixgeelhaar/projectsched/pkg/graphql"
)

// projectQuery is completed with the owner root field ("organization" or "user").
const projectQuery = `
query GetProjectV2Data($login: String!, $number: Int!, $statusField: String!, $scheduleField: String!) {
	%s(login: $login) {
		projectV2(number: $number) {
			id
			statusField: field(name: $statusField) {
				...FieldShape
			}
			scheduleField: field(name: $scheduleField) {
				...FieldShape
			}
		}
	}
}

fragment FieldShape on ProjectV2FieldConfiguration {
	... on ProjectV2Field {
		id
		name
		dataType
	}
	... on ProjectV2SingleSelectField {
		id
		name
		dataType
		options {
			id
			name
		}
	}
	... on ProjectV2IterationField {
		id
		name
		dataType
	}
}
`

type projectNode struct {
	ID            string       `json:"id"`
	StatusField   *board.Field `json:"statusField"`
	ScheduleField *board.Field `json:"scheduleField"`
}

type ownerNode struct {
	ProjectV2 *projectNode `json:"projectV2"`
}

// BoardResolver turns a project URL into a validated Board.
type BoardResolver struct {
	client graphql.Querier
	logger *slog.Logger
}

func NewBoardResolver(client graphql.Querier, logger *slog.Logger) *BoardResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &BoardResolver{client: client, logger: logger}
}

// Resolve looks the project up by owner and number and fetches the status and
// schedule fields by name.
func (r *BoardResolver) Resolve(ctx context.Context, projectURL, statusField, scheduleField string) (*board.Board, error) {
	ref, err := board.ParseReference(projectURL)
	if err != nil {
		return nil, err
	}

	data, err := r.client.Query(ctx, fmt.Sprintf(projectQuery, ref.OwnerType), map[string]any{
		"login":         ref.Owner,
		"number":        ref.Number,
		"statusField":   statusField,
		"scheduleField": scheduleField,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query project %s: %w", ref, err)
	}

	var owners map[string]*ownerNode
	if err := json.Unmarshal(data, &owners); err != nil {
		return nil, fmt.Errorf("failed to decode project %s: %w", ref, err)
	}
	owner := owners[string(ref.OwnerType)]
	if owner == nil || owner.ProjectV2 == nil {
		return nil, fmt.Errorf("%w: %s", board.ErrProjectNotFound, ref)
	}
	project := owner.ProjectV2

	b, err := board.NewBoard(project.ID, ref, statusField, normalizeField(project.StatusField), scheduleField, normalizeField(project.ScheduleField))
	if err != nil {
		return nil, err
	}

	r.logger.Info("resolved project",
		"project", ref.String(),
		"id", b.ID,
		"status_field", b.StatusField.ID,
		"schedule_field", b.ScheduleField.ID,
		"options", b.StatusField.OptionNames(),
	)
	return b, nil
}

// normalizeField maps a field of a type none of the fragments cover, which
// decodes as an empty object, to an unknown type so validation reports it as
// mistyped rather than missing.
func normalizeField(f *board.Field) *board.Field {
	if f != nil && f.Type == "" {
		f.Type = "UNKNOWN"
	}
	return f
}
