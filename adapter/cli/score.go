package cli

import (
	"fmt"

	scoringCommands "github.com/felixgeelhaar/focusos/internal/scoring/application/commands"
	scoringQueries "github.com/felixgeelhaar/focusos/internal/scoring/application/queries"
	"github.com/spf13/cobra"
)

var (
	scoreArea        string
	scoreProject     string
	scoreCurrentArea string
	scoreDeepWork    bool
	historyLimit     int
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Rank tasks by priority score",
}

var scoreRecomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Recompute scores and show what to do now",
	Long: `Score every actionable task and print the Now (top 3) and Next (top 10)
lists with an explanation per task.

Examples:
  focusos score recompute
  focusos score recompute --deep-work
  focusos score recompute --current-area 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		areaID, err := ParseOptionalID(scoreArea)
		if err != nil {
			return err
		}
		projectID, err := ParseOptionalID(scoreProject)
		if err != nil {
			return err
		}
		currentArea, err := ParseOptionalID(scoreCurrentArea)
		if err != nil {
			return err
		}

		result, err := app.RecomputeHandler.Handle(cmd.Context(), scoringCommands.RecomputeCommand{
			UserID:        app.CurrentUserID,
			AreaID:        areaID,
			ProjectID:     projectID,
			CurrentAreaID: currentArea,
			DeepWork:      scoreDeepWork,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return WriteJSON(cmd.OutOrStdout(), result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), RenderShortlist(result.Shortlist, result.ScoredAt))
		return nil
	},
}

var scoreHistoryCmd = &cobra.Command{
	Use:   "history [task-id]",
	Short: "Show why a task ranks where it does",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		taskID, err := ParseID(args[0])
		if err != nil {
			return err
		}

		runs, err := app.ListRunsHandler.Handle(cmd.Context(), scoringQueries.ListRunsQuery{
			UserID: app.CurrentUserID,
			TaskID: taskID,
			Limit:  historyLimit,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return WriteJSON(cmd.OutOrStdout(), runs)
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No scoring runs yet. Run: focusos score recompute")
			return nil
		}
		out := cmd.OutOrStdout()
		for _, r := range runs {
			fmt.Fprintf(out, "%s  %s  %s\n",
				scoreStyle.Render(fmt.Sprint(r.PriorityScore)),
				r.ScoredAt.Format("2006-01-02 15:04"),
				mutedStyle.Render(r.Explanation),
			)
		}
		return nil
	},
}

func init() {
	scoreRecomputeCmd.Flags().StringVar(&scoreArea, "area", "", "only score tasks in this area")
	scoreRecomputeCmd.Flags().StringVar(&scoreProject, "project", "", "only score tasks in this project")
	scoreRecomputeCmd.Flags().StringVar(&scoreCurrentArea, "current-area", "", "area you are working in now (context switch penalty)")
	scoreRecomputeCmd.Flags().BoolVar(&scoreDeepWork, "deep-work", false, "favour high-energy tasks")
	scoreHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "max runs to show (default 20)")

	scoreCmd.AddCommand(scoreRecomputeCmd)
	scoreCmd.AddCommand(scoreHistoryCmd)
	rootCmd.AddCommand(scoreCmd)
}
