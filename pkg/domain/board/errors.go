package board

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for board resolution. All of them abort a run.
var (
	// ErrMalformedReference indicates the board reference is not a projects URL.
	ErrMalformedReference = errors.New("malformed project url")

	// ErrProjectNotFound indicates the owner or the project does not exist or is not visible.
	ErrProjectNotFound = errors.New("project not found")

	// ErrFieldNotFound indicates the project has no field with the configured name.
	ErrFieldNotFound = errors.New("field not found")

	// ErrFieldType indicates a field exists but has the wrong data type.
	ErrFieldType = errors.New("unexpected field type")

	// ErrOptionNotFound indicates a single-select field has no option with the configured name.
	ErrOptionNotFound = errors.New("field option not found")
)

// FieldError describes a missing or mistyped board field.
type FieldError struct {
	Role string // "status" or "schedule"
	Name string
	Want FieldType
	Got  FieldType // empty when the field is missing
}

func (e *FieldError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("Project does not have a %s field named %q", e.Role, e.Name)
	}
	return fmt.Sprintf("Type of %s field named %q is not %s (got %s)", e.Role, e.Name, e.Want, e.Got)
}

// Is allows errors.Is to match ErrFieldNotFound or ErrFieldType.
func (e *FieldError) Is(target error) bool {
	if e.Got == "" {
		return target == ErrFieldNotFound
	}
	return target == ErrFieldType
}

// OptionError lists the options that were available when a lookup failed.
type OptionError struct {
	Name      string
	Available []string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("No such field option: %s. Available options are: %s", e.Name, strings.Join(e.Available, ", "))
}

// Is allows errors.Is to work with OptionError.
func (e *OptionError) Is(target error) bool {
	return target == ErrOptionNotFound
}
