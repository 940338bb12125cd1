package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// refreshViewMsg tells every view on the stack to reload its data after a
// mutation made above it (for example a form completing).
type refreshViewMsg struct{}

// statusMsg displays a transient message in the status line of the grid.
type statusMsg struct {
	text  string
	isErr bool
}

// mutationAppliedMsg is emitted after a CRUD mutation has landed on the
// backend. The grid shows the status text and refetches the tree.
type mutationAppliedMsg struct {
	status string
}

// formCompleteMsg is sent when a form completes or is cancelled.
// The appModel handles it atomically: pop the form view, then run nextCmd.
type formCompleteMsg struct {
	nextCmd tea.Cmd
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// statusCmd returns a tea.Cmd that displays a status line message.
func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isErr: isErr} }
}
