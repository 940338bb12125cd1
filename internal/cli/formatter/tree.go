package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"phaseboard/internal/domain"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Status string
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders a list of TreeItems as an indented tree using
// box-drawing characters for connectors. Done items get a green ✔ prefix,
// in-progress items get an amber ▶ prefix, and detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string // prefix + statusPrefix + title (styled)
		badge   string // styled badge or ""
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	// Pass 1: build each line's content and track max visible width.
	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			for i := 1; i < item.Level; i++ {
				prefix += treePipe
			}
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		statusPrefix := ""

		switch item.Status {
		case "done":
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		case "in_progress":
			statusPrefix = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(title)
		}

		content := prefix + statusPrefix + title
		lines[idx].content = content

		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	// Pass 2: render with right-aligned badges.
	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}

// FormatBoard renders the whole board hierarchy as a static tree, one
// section per phase.
func FormatBoard(t *domain.Tree) string {
	if t == nil || t.Empty() {
		return Dim("Empty board.") + "\n"
	}

	var b strings.Builder
	for pi, p := range t.Phases {
		if pi > 0 {
			b.WriteString("\n")
		}
		header := Bold(p.Name)
		if r := DateRange(p.StartDate, p.EndDate); r != "" {
			header += "  " + Dim(r)
		}
		b.WriteString(header + "\n")

		var items []TreeItem
		for li, l := range p.TaskLists {
			detail := fmt.Sprintf("%d tasks", t.ListTaskCount(l))
			if l.Access == domain.AccessPrivate {
				detail += ", private"
			}
			items = append(items, TreeItem{
				Title:  l.Name,
				Level:  1,
				IsLast: li == len(p.TaskLists)-1,
				Detail: detail,
			})
			items = append(items, boardTaskItems(t, l.TaskIDs, 2)...)
		}
		b.WriteString(RenderTree(items))
	}
	return b.String()
}

func boardTaskItems(t *domain.Tree, ids []string, level int) []TreeItem {
	var items []TreeItem
	for i, id := range ids {
		task := t.Tasks[id]
		if task == nil {
			continue
		}
		detail := ""
		if task.DueDate != nil {
			detail = "due " + task.DueDate.Format("2006-01-02")
		}
		items = append(items, TreeItem{
			Title:  task.Title,
			Level:  level,
			IsLast: i == len(ids)-1,
			Status: task.Status,
			Detail: detail,
		})
		items = append(items, boardTaskItems(t, task.ChildIDs, level+1)...)
	}
	return items
}
