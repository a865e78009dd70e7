package inbox

import (
	"fmt"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	"github.com/felixgeelhaar/focusos/internal/inbox/application/queries"
	"github.com/spf13/cobra"
)

var (
	listStatus string
	listLimit  int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List inbox items",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		items, err := app.ListInboxHandler.Handle(cmd.Context(), queries.ListItemsQuery{
			UserID: app.CurrentUserID,
			Status: listStatus,
			Limit:  listLimit,
		})
		if err != nil {
			return err
		}
		if cli.JSONOutput() {
			return cli.WriteJSON(cmd.OutOrStdout(), items)
		}

		out := cmd.OutOrStdout()
		if len(items) == 0 {
			fmt.Fprintln(out, "Inbox zero.")
			return nil
		}
		for _, item := range items {
			fmt.Fprintf(out, "%s  %-8s %s\n", item.ID, item.Suggested, item.RawText)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "UNPROCESSED (default) or TRIAGED")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "max items to show")
}
