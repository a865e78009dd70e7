package cli

import (
	"fmt"

	planningCommands "github.com/felixgeelhaar/focusos/internal/planning/application/commands"
	planningQueries "github.com/felixgeelhaar/focusos/internal/planning/application/queries"
	"github.com/spf13/cobra"
)

var (
	planMinutes   int
	planDeepWork  bool
	planAreaFocus string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan your day",
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate today's Must / Should / Could plan",
	Long: `Allocate the top ranked tasks into Must (60%), Should (30%) and Could
buckets for today. Scores computed in the last few minutes are reused.

Examples:
  focusos plan generate
  focusos plan generate --minutes 180
  focusos plan generate --deep-work --area-focus 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		areaFocus, err := ParseOptionalID(planAreaFocus)
		if err != nil {
			return err
		}

		command := planningCommands.GeneratePlanCommand{
			UserID:      app.CurrentUserID,
			AreaFocusID: areaFocus,
		}
		if cmd.Flags().Changed("minutes") {
			command.AvailableMinutes = &planMinutes
		}
		if cmd.Flags().Changed("deep-work") {
			command.DeepWork = &planDeepWork
		}

		plan, err := app.GeneratePlanHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}
		if jsonOutput {
			return WriteJSON(cmd.OutOrStdout(), plan)
		}
		fmt.Fprintln(cmd.OutOrStdout(), RenderPlan(plan))
		return nil
	},
}

var planTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		plan, err := app.GetTodayPlanHandler.Handle(cmd.Context(), planningQueries.GetTodayPlanQuery{UserID: app.CurrentUserID})
		if err != nil {
			return err
		}
		if jsonOutput {
			return WriteJSON(cmd.OutOrStdout(), plan)
		}
		if plan == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No plan for today. Run: focusos plan generate")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), RenderPlan(plan))
		return nil
	},
}

func init() {
	planGenerateCmd.Flags().IntVarP(&planMinutes, "minutes", "m", 0, "minutes available today (default from settings)")
	planGenerateCmd.Flags().BoolVar(&planDeepWork, "deep-work", false, "favour high-energy tasks")
	planGenerateCmd.Flags().StringVar(&planAreaFocus, "area-focus", "", "area to focus on today")

	planCmd.AddCommand(planGenerateCmd)
	planCmd.AddCommand(planTodayCmd)
	rootCmd.AddCommand(planCmd)
}
