package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/projectsched/pkg/application"
	"github.com/felixgeelhaar/projectsched/pkg/domain/board"
	"github.com/felixgeelhaar/projectsched/pkg/domain/schedule"
)

func TestRenderCheck(t *testing.T) {
	items := []schedule.Item{
		{ID: "I1", Content: schedule.Content{Title: "Write report"}, Status: "Scheduled", Schedule: "2020-01-01"},
		{ID: "I2", Content: schedule.Content{Title: "Plan trip"}, Status: "Scheduled"},
	}
	report := &application.CheckReport{
		Board:      &board.Board{Reference: board.Reference{OwnerType: board.OwnerUser, Owner: "me", Number: 4}},
		TodoOption: board.Option{ID: "O1", Name: "Todo"},
		Items:      5,
		Report:     schedule.Classify(items, "Scheduled", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	var buf bytes.Buffer
	renderCheck(&buf, report)
	out := buf.String()

	for _, want := range []string{"users/me/projects/4", "5 items, 2 scheduled", "Write report", "-> Todo", "Plan trip", "does not have a schedule field", "1 to deschedule, 1 with problems"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCheck_NoScheduledItems(t *testing.T) {
	report := &application.CheckReport{
		Board:  &board.Board{Reference: board.Reference{OwnerType: board.OwnerOrganization, Owner: "acme", Number: 1}},
		Report: schedule.Classify(nil, "Scheduled", time.Now()),
	}

	var buf bytes.Buffer
	renderCheck(&buf, report)
	if !strings.Contains(buf.String(), "No scheduled items.") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}
