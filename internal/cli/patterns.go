package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edhofdc/sourcecode-scanner/internal/secrets"
)

func newPatternsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "patterns", Short: "List secret detection patterns"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the heuristic engine's secret patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range secrets.Patterns() {
				trust := "standard"
				if p.HighTrust {
					trust = "high-trust"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.Type, trust, p.Regexp.String())
			}
			return nil
		},
	})
	return cmd
}
