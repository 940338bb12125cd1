package cli

import (
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds everything the CLI commands need: the backend client driving
// the TUI and the HTTP handler behind the serve command. main wires both.
type App struct {
	Client BoardClient

	// Router serves the REST API; nil disables the serve command's
	// listener with an explanatory error.
	Router http.Handler

	// IsInteractive gates the TUI on a real terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "phaseboard" command. Running it with no
// subcommand launches the TUI.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "phaseboard",
		Short: "Hierarchical project board: phases, task lists, tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}

	root.AddCommand(
		newServeCmd(app),
		newTreeCmd(app),
	)

	return root
}

func runTUI(app *App) error {
	if app.IsInteractive != nil && !app.IsInteractive() {
		return fmt.Errorf("the board requires an interactive terminal; use 'phaseboard serve' for the API")
	}
	m := newAppModel(app.Client)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newServeCmd(app *App) *cobra.Command {
	defaultAddr := os.Getenv("PHASEBOARD_HTTP_ADDR")
	if defaultAddr == "" {
		defaultAddr = ":8080"
	}

	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Router == nil {
				return fmt.Errorf("serve is unavailable when PHASEBOARD_ADDR points at a remote server")
			}
			fmt.Printf("phaseboard API listening on %s\n", addr)
			return http.ListenAndServe(addr, app.Router)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	return cmd
}
