package cli

import (
	"go.uber.org/zap"

	"gearguard/internal/api"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	API *api.Client
	Log *zap.Logger

	// Terminal dimensions
	Width  int
	Height int
}

// NewSharedState wires the shared view context. A nil logger is replaced
// with a no-op logger so views can log unconditionally.
func NewSharedState(client *api.Client, log *zap.Logger) *SharedState {
	if log == nil {
		log = zap.NewNop()
	}
	return &SharedState{API: client, Log: log}
}

// ContentHeight returns the available height for view content, accounting
// for the header (2 lines), notice line, and status bar (2 lines).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
