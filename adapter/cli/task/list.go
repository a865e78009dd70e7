package task

import (
	"fmt"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/queries"
	"github.com/spf13/cobra"
)

var (
	listStatus  string
	listArea    string
	listProject string
	listLimit   int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks, newest first.

Examples:
  focusos task list
  focusos task list --status WAITING
  focusos task list --area 1b4e28ba-2fa1-11d2-883f-0016d3cca427 -n 5`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		areaID, err := cli.ParseOptionalID(listArea)
		if err != nil {
			return err
		}
		projectID, err := cli.ParseOptionalID(listProject)
		if err != nil {
			return err
		}

		tasks, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			UserID:    app.CurrentUserID,
			Status:    listStatus,
			AreaID:    areaID,
			ProjectID: projectID,
			Limit:     listLimit,
		})
		if err != nil {
			return err
		}
		if cli.JSONOutput() {
			return cli.WriteJSON(cmd.OutOrStdout(), tasks)
		}

		out := cmd.OutOrStdout()
		if len(tasks) == 0 {
			fmt.Fprintln(out, "No tasks found.")
			return nil
		}
		for _, t := range tasks {
			effort := "-"
			if t.EffortMinutes != nil {
				effort = fmt.Sprintf("%dm", *t.EffortMinutes)
			}
			fmt.Fprintf(out, "%s  %-11s %5s  %s\n", t.ID, t.Status, effort, t.Title)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status")
	listCmd.Flags().StringVar(&listArea, "area", "", "filter by area id")
	listCmd.Flags().StringVar(&listProject, "project", "", "filter by project id")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "max tasks to show")
}
