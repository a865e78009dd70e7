package settings

import (
	"errors"
	"fmt"
	"io"

	"github.com/felixgeelhaar/focusos/adapter/cli"
	identitySettings "github.com/felixgeelhaar/focusos/internal/identity/application/settings"
	"github.com/spf13/cobra"
)

var (
	setMinutes  int
	setDeepWork bool
)

// Cmd groups the preference commands.
var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage planning preferences",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}
		prefs, err := app.SettingsService.Get(cmd.Context(), app.CurrentUserID)
		if err != nil {
			return err
		}
		return printPreferences(cmd.OutOrStdout(), prefs)
	},
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Change preferences",
	Long: `Change the defaults used when generating a daily plan.

Examples:
  focusos settings set --minutes 300
  focusos settings set --deep-work=false`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		var update identitySettings.Update
		if cmd.Flags().Changed("minutes") {
			update.DefaultAvailableMinutes = &setMinutes
		}
		if cmd.Flags().Changed("deep-work") {
			update.DeepWorkEnabled = &setDeepWork
		}
		if update.DefaultAvailableMinutes == nil && update.DeepWorkEnabled == nil {
			return errors.New("nothing to update: pass --minutes or --deep-work")
		}

		prefs, err := app.SettingsService.Update(cmd.Context(), app.CurrentUserID, update)
		if err != nil {
			return err
		}
		return printPreferences(cmd.OutOrStdout(), prefs)
	},
}

func printPreferences(w io.Writer, prefs identitySettings.Preferences) error {
	if cli.JSONOutput() {
		return cli.WriteJSON(w, prefs)
	}
	fmt.Fprintf(w, "Available minutes: %d\n", prefs.DefaultAvailableMinutes)
	fmt.Fprintf(w, "Deep work:         %t\n", prefs.DeepWorkEnabled)
	return nil
}

func init() {
	setCmd.Flags().IntVarP(&setMinutes, "minutes", "m", 0, "default minutes available per day")
	setCmd.Flags().BoolVar(&setDeepWork, "deep-work", false, "favour high-energy tasks by default")

	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(setCmd)
}
