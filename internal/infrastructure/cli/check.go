package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/projectsched/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/projectsched/pkg/application"
	"github.com/felixgeelhaar/projectsched/pkg/domain/schedule"
	"github.com/spf13/cobra"
)

var checkFlags boardFlags

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	problemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show what run would do without changing the project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, &checkFlags)
		if err != nil {
			return MapError(err)
		}

		logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
		if err != nil {
			return MapError(err)
		}

		svc, err := wiring.BuildDescheduleService(cfg, logger)
		if err != nil {
			return MapError(err)
		}

		report, err := svc.Check(cmd.Context(), wiring.DescheduleParams(cfg))
		if err != nil {
			return MapError(err)
		}

		renderCheck(cmd.OutOrStdout(), report)
		return MapError(schedule.NewRunResult(len(report.Report.Scheduled), nil, report.Report.Errors).Err())
	},
}

func renderCheck(w io.Writer, report *application.CheckReport) {
	_, _ = fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Project %s: %d items, %d scheduled",
		report.Board.Reference, report.Items, len(report.Report.Scheduled))))

	if len(report.Report.Scheduled) == 0 {
		_, _ = fmt.Fprintln(w, "No scheduled items.")
		return
	}

	columns := []table.Column{
		{Title: "Item", Width: 40},
		{Title: "Schedule", Width: 12},
		{Title: "Action", Width: 12},
		{Title: "Problem", Width: 50},
	}

	rows := make([]table.Row, 0, len(report.Report.Scheduled))
	for _, a := range report.Report.Scheduled {
		action := "keep"
		switch a.Verdict {
		case schedule.VerdictDeschedule:
			action = "-> " + report.TodoOption.Name
		case schedule.VerdictError:
			action = "fix"
		}
		rows = append(rows, table.Row{a.Item.Title(), a.Item.Schedule, action, a.Problem})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	_, _ = fmt.Fprintln(w, t.View())

	overdue := len(report.Report.ToDeschedule)
	problems := len(report.Report.Errors)
	switch {
	case problems > 0:
		_, _ = fmt.Fprintln(w, problemStyle.Render(fmt.Sprintf("%d to deschedule, %d with problems", overdue, problems)))
	case overdue > 0:
		_, _ = fmt.Fprintln(w, overdueStyle.Render(fmt.Sprintf("%d to deschedule", overdue)))
	default:
		_, _ = fmt.Fprintln(w, okStyle.Render("Nothing to deschedule"))
	}
}

func init() {
	addBoardFlags(checkCmd, &checkFlags)
	RootCmd.AddCommand(checkCmd)
}
