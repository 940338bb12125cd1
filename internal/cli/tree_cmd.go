package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"phaseboard/internal/cli/formatter"
)

// newTreeCmd prints the board hierarchy without entering the TUI, for
// piping and non-interactive terminals.
func newTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the board hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.Client.FetchTree(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetching board: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBoard(tree))
			return nil
		},
	}
}
