package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/projectsched/internal/infrastructure/config"
	"github.com/felixgeelhaar/projectsched/pkg/domain/board"
	"github.com/felixgeelhaar/projectsched/pkg/domain/schedule"
	"github.com/felixgeelhaar/projectsched/pkg/graphql"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		msg := e.Err.Error()
		if strings.HasPrefix(msg, e.Message) {
			return msg
		}
		return fmt.Sprintf("%s: %s", e.Message, msg)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var optErr *board.OptionError
	if errors.As(err, &optErr) {
		return NewCLIError("unknown status option", "Pass one of the available options with --todo-state or --scheduled-state", err)
	}

	var fieldErr *board.FieldError
	if errors.As(err, &fieldErr) {
		if errors.Is(err, board.ErrFieldType) {
			return NewCLIError("wrong field type", fmt.Sprintf("The %s field must be of type %s", fieldErr.Role, fieldErr.Want), err)
		}
		return NewCLIError("field not found", fmt.Sprintf("Check --%s-field; field names are case-sensitive", fieldErr.Role), err)
	}

	switch {
	case errors.Is(err, board.ErrMalformedReference):
		return NewCLIError("invalid project url", "Use a URL like https://github.com/orgs/<org>/projects/<number>", err)
	case errors.Is(err, board.ErrProjectNotFound):
		return NewCLIError("project not found", "Check the owner and number, and that the token can read the project", err)
	case errors.Is(err, graphql.ErrMissingToken):
		return NewCLIError("no GitHub token", "Set GITHUB_TOKEN or token in the config file", err)
	case errors.Is(err, config.ErrInvalidConfig):
		return NewCLIError("invalid configuration", "Check the config file, environment variables and flags", err)
	case errors.Is(err, graphql.ErrMissingCursor), errors.Is(err, graphql.ErrMissingPageInfo):
		return NewCLIError("invalid paginated query", "", err)
	case errors.Is(err, schedule.ErrItemsFailed):
		return NewCLIError("run finished with errors", "Fix the listed items on the board and run again", err)
	}

	return err
}
