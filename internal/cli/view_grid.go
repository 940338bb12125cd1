package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"phaseboard/internal/cli/formatter"
	"phaseboard/internal/domain"
	"phaseboard/internal/gateway"
	"phaseboard/internal/grid"
)

// treeLoadedMsg signals that a tree refetch finished.
type treeLoadedMsg struct {
	tree *domain.Tree
	err  error
}

// mutationDoneMsg carries the backend verdict for a dispatched intent.
type mutationDoneMsg struct {
	ticket *gateway.Ticket
	err    error
}

// gridView is the hierarchical phase → task list → task browser. All
// structure shown comes from projecting the shared tree through the
// expansion state and the search filter; the view itself only holds
// cursor, scroll and interaction state.
type gridView struct {
	state   *SharedState
	rows    []grid.Row
	cursor  int
	offset  int
	loading bool
	err     error

	search    textinput.Model
	searching bool
	query     string

	// moveKey marks the grabbed row while in move mode.
	moveKey string
	moveRow grid.Row

	status    string
	statusErr bool
}

func newGridView(state *SharedState) *gridView {
	ti := textinput.New()
	ti.Placeholder = "search"
	ti.Prompt = "/"
	ti.CharLimit = 64
	return &gridView{
		state:   state,
		loading: true,
		search:  ti,
	}
}

func (v *gridView) ID() ViewID    { return ViewGrid }
func (v *gridView) Title() string { return "Board" }

func (v *gridView) ShortHelp() []key.Binding {
	if v.moveKey != "" {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel move")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter/space", "toggle")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *gridView) capturesInput() bool { return v.searching }

func (v *gridView) Init() tea.Cmd {
	return v.loadTree()
}

func (v *gridView) loadTree() tea.Cmd {
	client := v.state.Client
	return func() tea.Msg {
		tree, err := client.FetchTree(context.Background())
		return treeLoadedMsg{tree: tree, err: err}
	}
}

// recompute re-projects the shared tree into visible rows and clamps the
// cursor. Called after every tree or filter change.
func (v *gridView) recompute() {
	v.rows = grid.Filter(grid.Project(v.state.Tree, v.state.Expansion), v.query)
	if v.cursor >= len(v.rows) {
		v.cursor = len(v.rows) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *gridView) currentRow() (grid.Row, bool) {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return grid.Row{}, false
	}
	return v.rows[v.cursor], true
}

func (v *gridView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case treeLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		*v.state.Tree = *msg.tree
		v.state.Expansion.InitializeOnce(v.state.Tree)
		v.recompute()
		return v, nil

	case refreshViewMsg:
		return v, v.loadTree()

	case statusMsg:
		v.status = msg.text
		v.statusErr = msg.isErr
		return v, nil

	case mutationAppliedMsg:
		v.status = msg.status
		v.statusErr = false
		return v, v.loadTree()

	case mutationDoneMsg:
		switch v.state.Gateway.Resolve(v.state.Tree, msg.ticket, msg.err) {
		case gateway.OutcomeRolledBack:
			v.recompute()
			v.status = msg.err.Error()
			v.statusErr = true
		case gateway.OutcomeStale:
			// A newer local mutation superseded this one; nothing to do.
		}
		return v, nil

	case tea.KeyMsg:
		if v.searching {
			return v.updateSearch(msg)
		}
		return v.handleKey(msg)
	}

	if v.searching {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *gridView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.searching = false
		v.search.Blur()
		v.search.SetValue("")
		v.query = ""
		v.recompute()
		return v, nil
	case tea.KeyEnter:
		v.searching = false
		v.search.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if q := v.search.Value(); q != v.query {
		v.query = q
		v.cursor = 0
		v.recompute()
	}
	return v, cmd
}

func (v *gridView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.status = ""
	v.statusErr = false

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.rows)-1 {
			v.cursor++
		}
	case "g":
		v.cursor = 0
	case "G":
		v.cursor = len(v.rows) - 1
		if v.cursor < 0 {
			v.cursor = 0
		}

	case "/":
		v.searching = true
		v.search.Focus()
		return v, textinput.Blink

	case "m":
		if v.moveKey != "" {
			v.cancelMove()
			return v, nil
		}
		if row, ok := v.currentRow(); ok {
			v.moveKey = row.Key
			v.moveRow = row
		}
		return v, nil

	case "esc":
		if v.moveKey != "" {
			v.cancelMove()
		}
		return v, nil

	case "enter", " ":
		if v.moveKey != "" && msg.String() == "enter" {
			return v, v.drop()
		}
		if row, ok := v.currentRow(); ok && row.HasChildren {
			v.state.Expansion.Toggle(row.Kind, row.EntityID())
			v.recompute()
		}
		return v, nil

	case "a":
		return v, v.addAtCursor()
	case "A":
		return v, pushView(newPhaseFormView(v.state, nil))
	case "e":
		return v, v.editAtCursor()
	case "x":
		return v, v.deleteAtCursor()

	case "r":
		v.loading = true
		return v, v.loadTree()
	}
	return v, nil
}

func (v *gridView) cancelMove() {
	v.moveKey = ""
	v.moveRow = grid.Row{}
}

// drop classifies the grab/target pair and, when it yields an intent,
// applies it optimistically and calls the backend. Policy rejections show
// up in the status line; structural rejections keep move mode active so
// another target can be chosen.
func (v *gridView) drop() tea.Cmd {
	target, ok := v.currentRow()
	if !ok {
		v.cancelMove()
		return nil
	}
	intent, err := grid.ClassifyDrop(v.state.Tree, v.moveRow, target)
	if err != nil {
		v.cancelMove()
		v.status = err.Error()
		v.statusErr = true
		return nil
	}
	if intent == nil {
		return nil
	}
	v.cancelMove()

	ticket, err := v.state.Gateway.Dispatch(v.state.Tree, intent)
	if err != nil {
		v.status = err.Error()
		v.statusErr = true
		return nil
	}
	v.recompute()

	g := v.state.Gateway
	return func() tea.Msg {
		callErr := g.Call(context.Background(), ticket)
		return mutationDoneMsg{ticket: ticket, err: callErr}
	}
}

// addAtCursor pushes the creation form matching the cursor row: a task
// list under a phase, a root task under a list, a subtask under a task.
// With no rows yet, it falls back to creating a phase.
func (v *gridView) addAtCursor() tea.Cmd {
	row, ok := v.currentRow()
	if !ok {
		return pushView(newPhaseFormView(v.state, nil))
	}
	switch row.Kind {
	case grid.RowPhase:
		return pushView(newTaskListFormView(v.state, row.PhaseID, nil))
	case grid.RowTaskList:
		return pushView(newTaskFormView(v.state, row.TaskListID, nil, nil))
	default:
		taskID := row.TaskID
		return pushView(newTaskFormView(v.state, row.TaskListID, &taskID, nil))
	}
}

func (v *gridView) editAtCursor() tea.Cmd {
	row, ok := v.currentRow()
	if !ok {
		return nil
	}
	switch row.Kind {
	case grid.RowPhase:
		if p := v.state.Tree.Phase(row.PhaseID); p != nil {
			return pushView(newPhaseFormView(v.state, p))
		}
	case grid.RowTaskList:
		if l, _ := v.state.Tree.List(row.TaskListID); l != nil {
			return pushView(newTaskListFormView(v.state, row.PhaseID, l))
		}
	default:
		if t := v.state.Tree.Task(row.TaskID); t != nil {
			return pushView(newTaskFormView(v.state, row.TaskListID, nil, t))
		}
	}
	return nil
}

func (v *gridView) deleteAtCursor() tea.Cmd {
	row, ok := v.currentRow()
	if !ok {
		return nil
	}
	client := v.state.Client
	tree := v.state.Tree

	var prompt string
	var del func(ctx context.Context) error
	switch row.Kind {
	case grid.RowPhase:
		n := 0
		if p := tree.Phase(row.PhaseID); p != nil {
			n = tree.PhaseTaskCount(p)
		}
		prompt = deletePrompt(row.Title, n)
		id := row.PhaseID
		del = func(ctx context.Context) error { return client.DeletePhase(ctx, id) }
	case grid.RowTaskList:
		n := 0
		if l, _ := tree.List(row.TaskListID); l != nil {
			n = tree.ListTaskCount(l)
		}
		prompt = deletePrompt(row.Title, n)
		id := row.TaskListID
		del = func(ctx context.Context) error { return client.DeleteTaskList(ctx, id) }
	default:
		prompt = deletePrompt(row.Title, tree.SubtreeSize(row.TaskID)-1)
		id := row.TaskID
		del = func(ctx context.Context) error { return client.DeleteTask(ctx, id) }
	}
	return pushView(newConfirmDeleteView(v.state, prompt, row.Title, del))
}

func deletePrompt(title string, children int) string {
	p := fmt.Sprintf("Delete %q", title)
	if children > 0 {
		p += fmt.Sprintf(" and %d contained item(s)", children)
	}
	return p + "?"
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *gridView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading board...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString("\n")

	if v.searching || v.query != "" {
		b.WriteString("  " + v.search.View() + "\n\n")
	}

	if len(v.rows) == 0 {
		if v.query != "" {
			b.WriteString("  " + formatter.Dim("No rows match the search.") + "\n")
		} else {
			b.WriteString("  " + formatter.Dim("Empty board. Press a to create a phase.") + "\n")
		}
	} else {
		v.renderRows(&b)
	}

	if v.status != "" {
		style := formatter.StyleDim
		if v.statusErr {
			style = formatter.StyleRed
		}
		b.WriteString("\n  " + style.Render(v.status))
	} else if v.moveKey != "" {
		b.WriteString("\n  " + formatter.StyleYellow.Render(
			fmt.Sprintf("Moving %q — select a target and press enter", v.moveRow.Title)))
	}
	return b.String()
}

func (v *gridView) renderRows(b *strings.Builder) {
	height := v.state.ContentHeight() - 2
	if height < 3 {
		height = 3
	}
	// Keep the cursor inside the visible window.
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+height {
		v.offset = v.cursor - height + 1
	}
	end := v.offset + height
	if end > len(v.rows) {
		end = len(v.rows)
	}

	now := time.Now()
	for i := v.offset; i < end; i++ {
		b.WriteString(v.renderRow(v.rows[i], i == v.cursor, now))
		b.WriteString("\n")
	}
	if end < len(v.rows) {
		b.WriteString("  " + formatter.Dim(fmt.Sprintf("… %d more", len(v.rows)-end)) + "\n")
	}
}

func (v *gridView) renderRow(row grid.Row, selected bool, now time.Time) string {
	prefix := "  "
	if selected {
		prefix = formatter.StyleHeader.Render("❯") + " "
	}
	if row.Key == v.moveKey {
		prefix = formatter.StyleYellow.Render("⇅") + " "
	}

	indent := strings.Repeat("  ", row.Level)

	marker := "• "
	if row.HasChildren {
		if row.Expanded {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}

	var line string
	switch row.Kind {
	case grid.RowPhase:
		line = formatter.Bold(row.Title)
		if r := formatter.DateRange(row.StartDate, row.EndDate); r != "" {
			line += "  " + formatter.Dim(r)
		}
		if row.ChildCount > 0 {
			line += "  " + formatter.Dim(fmt.Sprintf("(%d)", row.ChildCount))
		}
	case grid.RowTaskList:
		line = formatter.StyleBlue.Render(row.Title)
		if badge := formatter.AccessBadge(row.Access); badge != "" {
			line += " " + badge
		}
		if row.ChildCount > 0 {
			line += "  " + formatter.Dim(fmt.Sprintf("(%d)", row.ChildCount))
		}
	default:
		line = formatter.StyleFg.Render(row.Title)
		if badge := formatter.PriorityBadge(row.Priority); badge != "" {
			line += "  " + badge
		}
		if row.Status != "" {
			line += "  " + formatter.Dim(row.Status)
		}
		if row.DueDate != nil {
			line += "  " + formatter.DueDateStyle(*row.DueDate, now).Render(formatter.RelativeDateFrom(*row.DueDate, now))
		}
	}

	// Dim rows that cannot receive the grabbed row, so legal targets
	// stand out during a move.
	if v.moveKey != "" && row.Key != v.moveKey {
		if !grid.CanDrop(v.state.Tree, v.moveRow, row) {
			line = formatter.Dim(row.Title)
		}
	}

	return prefix + indent + marker + line
}
