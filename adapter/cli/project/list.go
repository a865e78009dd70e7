package project

import (
	"fmt"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/felixgeelhaar/focusos/internal/projects/application/queries"
	"github.com/spf13/cobra"
)

var (
	listArea   string
	listStatus string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List projects",
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

		projects, err := app.ListProjectsHandler.Handle(cmd.Context(), queries.ListProjectsQuery{
			UserID: app.CurrentUserID,
			AreaID: areaID,
			Status: listStatus,
		})
		if err != nil {
			return err
		}
		if cli.JSONOutput() {
			return cli.WriteJSON(cmd.OutOrStdout(), projects)
		}

		out := cmd.OutOrStdout()
		if len(projects) == 0 {
			fmt.Fprintln(out, "No projects found.")
			return nil
		}
		for _, p := range projects {
			line := fmt.Sprintf("%s  %-8s %s", p.ID, p.Status, p.Name)
			if p.DeadlineAt != nil {
				line += fmt.Sprintf(" (due %s)", p.DeadlineAt.Format("2006-01-02"))
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listArea, "area", "", "filter by area id")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status (default ACTIVE)")
}
