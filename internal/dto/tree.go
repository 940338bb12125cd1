// Package dto defines the JSON wire types shared by the REST server and
// the HTTP client, plus conversions to and from the domain tree.
package dto

import (
	"time"

	"phaseboard/internal/domain"
)

// TaskDTO carries one task with its subtasks nested in stored order.
type TaskDTO struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	Priority  int        `json:"priority"`
	Assignees []string   `json:"assignees,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Children  []TaskDTO  `json:"children,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type TaskListDTO struct {
	ID        string    `json:"id"`
	PhaseID   string    `json:"phase_id"`
	Name      string    `json:"name"`
	Access    string    `json:"access"`
	Tasks     []TaskDTO `json:"tasks"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PhaseDTO struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	StartDate *time.Time    `json:"start_date,omitempty"`
	EndDate   *time.Time    `json:"end_date,omitempty"`
	TaskLists []TaskListDTO `json:"task_lists"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// TreeDTO is the full nested hierarchy, ordered as stored.
type TreeDTO struct {
	Phases []PhaseDTO `json:"phases"`
}

// FromTree flattens nothing: the arena's child-ID lists become nested
// task arrays so the payload needs no second lookup structure.
func FromTree(t *domain.Tree) TreeDTO {
	out := TreeDTO{Phases: make([]PhaseDTO, 0, len(t.Phases))}
	for _, p := range t.Phases {
		pd := PhaseDTO{
			ID:        p.ID,
			Name:      p.Name,
			StartDate: p.StartDate,
			EndDate:   p.EndDate,
			TaskLists: make([]TaskListDTO, 0, len(p.TaskLists)),
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
		for _, l := range p.TaskLists {
			ld := TaskListDTO{
				ID:        l.ID,
				PhaseID:   l.PhaseID,
				Name:      l.Name,
				Access:    string(l.Access),
				Tasks:     tasksFromArena(t, l.TaskIDs),
				CreatedAt: l.CreatedAt,
				UpdatedAt: l.UpdatedAt,
			}
			pd.TaskLists = append(pd.TaskLists, ld)
		}
		out.Phases = append(out.Phases, pd)
	}
	return out
}

func tasksFromArena(t *domain.Tree, ids []string) []TaskDTO {
	out := make([]TaskDTO, 0, len(ids))
	for _, id := range ids {
		task := t.Tasks[id]
		if task == nil {
			continue
		}
		out = append(out, TaskDTO{
			ID:        task.ID,
			Title:     task.Title,
			Status:    task.Status,
			Priority:  task.Priority,
			Assignees: task.Assignees,
			Tags:      task.Tags,
			DueDate:   task.DueDate,
			Children:  tasksFromArena(t, task.ChildIDs),
			CreatedAt: task.CreatedAt,
			UpdatedAt: task.UpdatedAt,
		})
	}
	return out
}

// ToTree rebuilds the arena form the client works with.
func (d TreeDTO) ToTree() *domain.Tree {
	tree := domain.NewTree()
	for _, pd := range d.Phases {
		p := &domain.Phase{
			ID:        pd.ID,
			Name:      pd.Name,
			StartDate: pd.StartDate,
			EndDate:   pd.EndDate,
			CreatedAt: pd.CreatedAt,
			UpdatedAt: pd.UpdatedAt,
		}
		for _, ld := range pd.TaskLists {
			l := &domain.TaskList{
				ID:        ld.ID,
				PhaseID:   ld.PhaseID,
				Name:      ld.Name,
				Access:    domain.AccessLevel(ld.Access),
				CreatedAt: ld.CreatedAt,
				UpdatedAt: ld.UpdatedAt,
			}
			l.TaskIDs = addTasksToArena(tree, ld.Tasks, nil)
			p.TaskLists = append(p.TaskLists, l)
		}
		tree.Phases = append(tree.Phases, p)
	}
	return tree
}

func addTasksToArena(tree *domain.Tree, dtos []TaskDTO, parentID *string) []string {
	ids := make([]string, 0, len(dtos))
	for _, td := range dtos {
		task := &domain.Task{
			ID:        td.ID,
			Title:     td.Title,
			Status:    td.Status,
			Priority:  td.Priority,
			Assignees: td.Assignees,
			Tags:      td.Tags,
			DueDate:   td.DueDate,
			ParentID:  parentID,
			CreatedAt: td.CreatedAt,
			UpdatedAt: td.UpdatedAt,
		}
		tree.Tasks[task.ID] = task
		id := task.ID
		task.ChildIDs = addTasksToArena(tree, td.Children, &id)
		ids = append(ids, task.ID)
	}
	return ids
}
