package task

import (
	"fmt"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/felixgeelhaar/focusos/internal/productivity/application/queries"
	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04"

var showCmd = &cobra.Command{
	Use:     "show [task-id]",
	Short:   "Show task details",
	Aliases: []string{"get", "view"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		taskID, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}

		t, err := app.GetTaskHandler.Handle(cmd.Context(), queries.GetTaskQuery{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return err
		}
		if cli.JSONOutput() {
			return cli.WriteJSON(cmd.OutOrStdout(), t)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Task: %s\n", t.ID)
		fmt.Fprintf(out, "  Title:       %s\n", t.Title)
		fmt.Fprintf(out, "  Status:      %s\n", t.Status)
		fmt.Fprintf(out, "  Area:        %s\n", t.AreaID)
		if t.ProjectID != nil {
			fmt.Fprintf(out, "  Project:     %s\n", *t.ProjectID)
		}
		if t.Description != "" {
			fmt.Fprintf(out, "  Description: %s\n", t.Description)
		}
		if t.EffortMinutes != nil {
			fmt.Fprintf(out, "  Effort:      %dm\n", *t.EffortMinutes)
		}
		fmt.Fprintf(out, "  Energy:      %s\n", t.Energy)
		fmt.Fprintf(out, "  Ratings:     impact %d, urgency %d, strategic %d, risk %d\n",
			t.Impact, t.Urgency, t.StrategicValue, t.RiskOfDelay)
		if t.IsBlocker {
			fmt.Fprintln(out, "  Blocker:     yes")
		}
		if t.DeadlineAt != nil {
			fmt.Fprintf(out, "  Deadline:    %s\n", t.DeadlineAt.Format(timeLayout))
		}
		if t.SnoozedUntil != nil {
			fmt.Fprintf(out, "  Snoozed:     %s\n", t.SnoozedUntil.Format(timeLayout))
		}
		if t.CompletedAt != nil {
			fmt.Fprintf(out, "  Completed:   %s\n", t.CompletedAt.Format(timeLayout))
		}
		fmt.Fprintf(out, "  Created:     %s\n", t.CreatedAt.Format(timeLayout))
		return nil
	},
}
