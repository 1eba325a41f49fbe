package board

import "strings"

// FieldType is the data type the API reports for a project field.
type FieldType string

const (
	FieldTypeSingleSelect FieldType = "SINGLE_SELECT"
	FieldTypeDate         FieldType = "DATE"
)

// Option is one selectable value of a single-select field.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Field is a typed attribute of board items.
type Field struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Type    FieldType `json:"dataType"`
	Options []Option  `json:"options,omitempty"`
}

// Option returns the first option whose name matches, ignoring case.
func (f Field) Option(name string) (Option, error) {
	for _, o := range f.Options {
		if strings.EqualFold(o.Name, name) {
			return o, nil
		}
	}
	return Option{}, &OptionError{Name: name, Available: f.OptionNames()}
}

// OptionNames returns the option names in field order.
func (f Field) OptionNames() []string {
	names := make([]string, 0, len(f.Options))
	for _, o := range f.Options {
		names = append(names, o.Name)
	}
	return names
}

// Board is a resolved project with the two fields the descheduler works with.
type Board struct {
	ID            string
	Reference     Reference
	StatusField   Field
	ScheduleField Field
}

// NewBoard validates the fetched fields and assembles a Board. Checks run in
// order: status field present, schedule field present, status field is
// single-select, schedule field is a date. A nil field means the project has
// no field with that name.
func NewBoard(id string, ref Reference, statusName string, status *Field, scheduleName string, schedule *Field) (*Board, error) {
	if status == nil {
		return nil, &FieldError{Role: "status", Name: statusName, Want: FieldTypeSingleSelect}
	}
	if schedule == nil {
		return nil, &FieldError{Role: "schedule", Name: scheduleName, Want: FieldTypeDate}
	}
	if status.Type != FieldTypeSingleSelect {
		return nil, &FieldError{Role: "status", Name: statusName, Want: FieldTypeSingleSelect, Got: status.Type}
	}
	if schedule.Type != FieldTypeDate {
		return nil, &FieldError{Role: "schedule", Name: scheduleName, Want: FieldTypeDate, Got: schedule.Type}
	}

	s, d := *status, *schedule
	if s.Name == "" {
		s.Name = statusName
	}
	if d.Name == "" {
		d.Name = scheduleName
	}
	return &Board{ID: id, Reference: ref, StatusField: s, ScheduleField: d}, nil
}
