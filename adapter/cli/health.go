package cli

import (
	"fmt"
	"sort"

	"github.com/felixgeelhaar/focusos/pkg/observability"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check database and cache connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}
		if app.Container == nil || app.Container.Health == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		}

		results := app.Container.Health.Check(cmd.Context())
		if jsonOutput {
			return WriteJSON(cmd.OutOrStdout(), results)
		}
		names := make([]string, 0, len(results))
		for name := range results {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			r := results[name]
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s %s\n", name, r.Status, r.Message)
		}
		if observability.Overall(results) != observability.HealthStatusHealthy {
			return fmt.Errorf("unhealthy")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
