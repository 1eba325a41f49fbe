package schedule

// ContentType names the kind of object a board item wraps.
type ContentType string

const (
	ContentDraftIssue  ContentType = "DraftIssue"
	ContentIssue       ContentType = "Issue"
	ContentPullRequest ContentType = "PullRequest"
)

// Content is the object behind a board item. Every variant exposes a title.
type Content struct {
	Type  ContentType `json:"type,omitempty"`
	Title string      `json:"title"`
}

// Item is a snapshot of one board item.
type Item struct {
	ID      string  `json:"id"`
	Content Content `json:"content"`
	// Status is the selected option name of the status field, empty when unset.
	Status string `json:"status,omitempty"`
	// Schedule is the raw value of the schedule field, empty when unset.
	Schedule string `json:"schedule,omitempty"`
}

// Title returns the title of the wrapped content.
func (i Item) Title() string {
	return i.Content.Title
}
