package cli

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"phaseboard/internal/domain"
	"phaseboard/internal/repository"
)

// splitCSV parses a comma-separated form value into trimmed, non-empty items.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func joinCSV(items []string) string {
	return strings.Join(items, ", ")
}

// mutationCmd runs fn against the backend, then asks the stack to reload
// so views see post-mutation state. Errors skip the reload and show up on
// the grid's status line.
func mutationCmd(okText string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			return statusMsg{text: err.Error(), isErr: true}
		}
		return mutationAppliedMsg{status: okText}
	}
}

// newPhaseFormView builds the create/edit form for a phase. A nil existing
// phase means create.
func newPhaseFormView(state *SharedState, existing *domain.Phase) View {
	var name, start, end string
	title := "New Phase"
	if existing != nil {
		title = "Edit Phase"
		name = existing.Name
		start = formatOptionalDate(existing.StartDate)
		end = formatOptionalDate(existing.EndDate)
	}

	form := huh.NewForm(
		huh.NewGroup(
			requiredInput("Name", "Discovery", &name),
			dateInput("Start Date (blank for none)", "", &start),
			dateInput("End Date (blank for none)", "", &end),
		),
	).WithTheme(boardHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		client := state.Client
		if existing != nil {
			p := *existing
			p.Name = name
			p.StartDate = parseOptionalDate(start)
			p.EndDate = parseOptionalDate(end)
			return mutationCmd("Phase updated.", func(ctx context.Context) error {
				return client.UpdatePhase(ctx, &p)
			})
		}
		p := domain.Phase{
			Name:      name,
			StartDate: parseOptionalDate(start),
			EndDate:   parseOptionalDate(end),
		}
		return mutationCmd("Phase created.", func(ctx context.Context) error {
			return client.CreatePhase(ctx, &p)
		})
	}

	return newFormView(state, title, form, done)
}

// newTaskListFormView builds the create/edit form for a task list under the
// given phase. A nil existing list means create.
func newTaskListFormView(state *SharedState, phaseID string, existing *domain.TaskList) View {
	var name string
	access := string(domain.AccessPublic)
	title := "New Task List"
	if existing != nil {
		title = "Edit Task List"
		name = existing.Name
		access = string(existing.Access)
	}

	form := huh.NewForm(
		huh.NewGroup(
			requiredInput("Name", "Backlog", &name),
			huh.NewSelect[string]().
				Title("Access").
				Options(
					huh.NewOption("Public", string(domain.AccessPublic)),
					huh.NewOption("Private", string(domain.AccessPrivate)),
				).
				Value(&access),
		),
	).WithTheme(boardHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		client := state.Client
		if existing != nil {
			l := *existing
			l.Name = name
			l.Access = domain.AccessLevel(access)
			return mutationCmd("Task list updated.", func(ctx context.Context) error {
				return client.UpdateTaskList(ctx, &l)
			})
		}
		l := domain.TaskList{
			PhaseID: phaseID,
			Name:    name,
			Access:  domain.AccessLevel(access),
		}
		return mutationCmd("Task list created.", func(ctx context.Context) error {
			return client.CreateTaskList(ctx, &l)
		})
	}

	return newFormView(state, title, form, done)
}

// newTaskFormView builds the create/edit form for a task in the given list.
// parentID, when set, creates the task as a subtask of that parent. A nil
// existing task means create.
func newTaskFormView(state *SharedState, listID string, parentID *string, existing *domain.Task) View {
	var taskTitle, due, tags, assignees string
	status := domain.DefaultTaskStatuses[0]
	priority := "3"
	formTitle := "New Task"
	if parentID != nil {
		formTitle = "New Subtask"
	}
	if existing != nil {
		formTitle = "Edit Task"
		taskTitle = existing.Title
		status = existing.Status
		priority = strconv.Itoa(existing.Priority)
		due = formatOptionalDate(existing.DueDate)
		tags = joinCSV(existing.Tags)
		assignees = joinCSV(existing.Assignees)
	}

	statusOptions := make([]huh.Option[string], 0, len(domain.DefaultTaskStatuses))
	for _, s := range domain.DefaultTaskStatuses {
		statusOptions = append(statusOptions, huh.NewOption(s, s))
	}

	form := huh.NewForm(
		huh.NewGroup(
			requiredInput("Title", "Write the onboarding doc", &taskTitle),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOptions...).
				Value(&status),
			huh.NewInput().
				Title("Priority (1 urgent .. 5 low)").
				Placeholder("3").
				Value(&priority).
				Validate(validateOptionalPriority),
			dateInput("Due Date (blank for none)", "", &due),
			huh.NewInput().
				Title("Assignees (comma separated)").
				Placeholder("ada, grace").
				Value(&assignees),
			huh.NewInput().
				Title("Tags (comma separated)").
				Placeholder("design, urgent").
				Value(&tags),
		),
	).WithTheme(boardHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		client := state.Client
		p, err := strconv.Atoi(priority)
		if err != nil {
			p = 3
		}

		if existing != nil {
			rec := repository.TaskRecord{Task: *existing, TaskListID: listID}
			rec.Title = taskTitle
			rec.Status = status
			rec.Priority = p
			rec.DueDate = parseOptionalDate(due)
			rec.Assignees = splitCSV(assignees)
			rec.Tags = splitCSV(tags)
			return mutationCmd("Task updated.", func(ctx context.Context) error {
				return client.UpdateTask(ctx, &rec)
			})
		}

		rec := repository.TaskRecord{
			Task: domain.Task{
				Title:     taskTitle,
				Status:    status,
				Priority:  p,
				DueDate:   parseOptionalDate(due),
				Assignees: splitCSV(assignees),
				Tags:      splitCSV(tags),
				ParentID:  parentID,
			},
			TaskListID: listID,
		}
		okText := "Task created."
		if parentID != nil {
			okText = "Subtask created."
		}
		return mutationCmd(okText, func(ctx context.Context) error {
			return client.CreateTask(ctx, &rec)
		})
	}

	return newFormView(state, formTitle, form, done)
}

// newConfirmDeleteView builds a yes/no confirmation; del runs only on yes.
func newConfirmDeleteView(state *SharedState, prompt, name string, del func(ctx context.Context) error) View {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		),
	).WithTheme(boardHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		if !confirmed {
			return statusCmd("Kept "+name+".", false)
		}
		return mutationCmd("Deleted "+name+".", del)
	}

	return newFormView(state, "Delete", form, done)
}
