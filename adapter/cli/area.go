package cli

import (
	"fmt"

	"github.com/felixgeelhaar/focusos/internal/productivity/application/commands"
	"github.com/spf13/cobra"
)

var (
	areaColor string
	areaOrder int
)

var areaCmd = &cobra.Command{
	Use:     "area",
	Short:   "Manage areas of responsibility",
	Aliases: []string{"domain"},
}

var areaAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create an area",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		id, err := app.CreateAreaHandler.Handle(cmd.Context(), commands.CreateAreaCommand{
			UserID:    app.CurrentUserID,
			Name:      args[0],
			Color:     areaColor,
			SortOrder: areaOrder,
		})
		if err != nil {
			return err
		}
		if jsonOutput {
			return WriteJSON(cmd.OutOrStdout(), map[string]any{"id": id, "name": args[0]})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Area created: %s\n", id)
		return nil
	},
}

var areaListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List active areas",
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		areas, err := app.ListAreasHandler.Handle(cmd.Context(), app.CurrentUserID)
		if err != nil {
			return err
		}
		if jsonOutput {
			return WriteJSON(cmd.OutOrStdout(), areas)
		}
		if len(areas) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No areas yet. Run: focusos area add Work")
			return nil
		}
		for _, a := range areas {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", a.ID, a.Name)
		}
		return nil
	},
}

func init() {
	areaAddCmd.Flags().StringVar(&areaColor, "color", "", "display color, e.g. #336699")
	areaAddCmd.Flags().IntVar(&areaOrder, "order", 0, "sort order")

	areaCmd.AddCommand(areaAddCmd)
	areaCmd.AddCommand(areaListCmd)
	rootCmd.AddCommand(areaCmd)
}
