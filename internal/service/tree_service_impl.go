package service

import (
	"context"

	"phaseboard/internal/domain"
	"phaseboard/internal/repository"
)

type treeService struct {
	phases repository.PhaseRepo
	lists  repository.TaskListRepo
	tasks  repository.TaskRepo
}

func NewTreeService(phases repository.PhaseRepo, lists repository.TaskListRepo, tasks repository.TaskRepo) TreeService {
	return &treeService{phases: phases, lists: lists, tasks: tasks}
}

func (s *treeService) Load(ctx context.Context) (*domain.Tree, error) {
	return loadTree(ctx, s.phases, s.lists, s.tasks)
}

// loadTree assembles the hierarchy from flat rows. Sibling order comes
// straight from the repos' stored ordering; nothing is re-sorted here.
func loadTree(ctx context.Context, phases repository.PhaseRepo, lists repository.TaskListRepo, tasks repository.TaskRepo) (*domain.Tree, error) {
	tree := domain.NewTree()

	storedPhases, err := phases.List(ctx)
	if err != nil {
		return nil, err
	}
	tree.Phases = storedPhases

	storedLists, err := lists.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byPhase := make(map[string][]*domain.TaskList)
	for _, l := range storedLists {
		byPhase[l.PhaseID] = append(byPhase[l.PhaseID], l)
	}
	for _, p := range tree.Phases {
		p.TaskLists = byPhase[p.ID]
	}

	records, err := tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	rootsByList := make(map[string][]string)
	childrenByParent := make(map[string][]string)
	for _, rec := range records {
		t := rec.Task
		tree.Tasks[t.ID] = &t
		if t.ParentID == nil {
			rootsByList[rec.TaskListID] = append(rootsByList[rec.TaskListID], t.ID)
		} else {
			childrenByParent[*t.ParentID] = append(childrenByParent[*t.ParentID], t.ID)
		}
	}
	for id, t := range tree.Tasks {
		t.ChildIDs = childrenByParent[id]
	}
	for _, p := range tree.Phases {
		for _, l := range p.TaskLists {
			l.TaskIDs = rootsByList[l.ID]
		}
	}
	return tree, nil
}
