package cli

import (
	"github.com/felixgeelhaar/projectsched/internal/infrastructure/wiring"
	"github.com/spf13/cobra"
)

var runFlags boardFlags

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Move overdue scheduled items back to the todo state",
	Long: `Resolve the project, fetch every item, and set the status of each item that
is in the scheduled state with a schedule date in the past to the todo state.

Items with a missing or invalid schedule date and items whose update fails do
not stop the run; they are reported together at the end and the command exits
with status 1.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, &runFlags)
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

		result, err := svc.Run(cmd.Context(), wiring.DescheduleParams(cfg))
		if err != nil {
			return MapError(err)
		}
		return MapError(result.Err())
	},
}

func init() {
	addBoardFlags(runCmd, &runFlags)
	RootCmd.AddCommand(runCmd)
}
