package cli

import (
	"phaseboard/internal/domain"
	"phaseboard/internal/gateway"
	"phaseboard/internal/grid"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	Client  BoardClient
	Gateway *gateway.Gateway

	// Tree is the client-side replica every view renders from. The
	// gateway mutates it optimistically; refetches replace it.
	Tree *domain.Tree

	// Expansion survives refetches: it seeds once on the first
	// non-empty tree and is only changed by explicit toggles after.
	Expansion *grid.ExpansionState

	// Terminal dimensions
	Width  int
	Height int
}

// NewSharedState creates shared state over a backend client.
func NewSharedState(client BoardClient) *SharedState {
	return &SharedState{
		Client:    client,
		Gateway:   gateway.New(client),
		Tree:      domain.NewTree(),
		Expansion: grid.NewExpansionState(),
	}
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and status bar
// (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
