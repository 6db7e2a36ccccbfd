// Package render implements the rendering-surface collaborator as an
// in-memory display state keyed by line identity. Whatever serves the cart
// page reads this state; the authoritative cart is never written.
package render

import (
	"sync"

	"github.com/smallbiznis/storefront/internal/reconcile"
)

// DisplayState is the current set of applied overlays.
type DisplayState struct {
	Lines map[string]reconcile.LineOverlay `json:"lines"`
	Total *reconcile.TotalOverlay          `json:"total,omitempty"`
}

// MemorySurface stores overlays and only mutates when an overlay actually
// changes, making repeated identical applications observable no-ops.
type MemorySurface struct {
	mu        sync.RWMutex
	lines     map[string]reconcile.LineOverlay
	total     *reconcile.TotalOverlay
	mutations int64
}

func NewMemorySurface() *MemorySurface {
	return &MemorySurface{lines: make(map[string]reconcile.LineOverlay)}
}

// ApplyLine sets a line overlay. Re-applying an identical overlay does not
// count as a mutation.
func (s *MemorySurface) ApplyLine(overlay reconcile.LineOverlay) error {
	if overlay.LineKey == "" {
		return reconcile.ErrOverlayTargetNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.lines[overlay.LineKey]; ok && existing == overlay {
		return nil
	}
	s.lines[overlay.LineKey] = overlay
	s.mutations++
	return nil
}

// ApplyTotal sets the total overlay, again only mutating on change.
func (s *MemorySurface) ApplyTotal(overlay reconcile.TotalOverlay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.total != nil && *s.total == overlay {
		return
	}
	copied := overlay
	s.total = &copied
	s.mutations++
}

// ClearLines drops overlays for lines no longer present in the cart.
func (s *MemorySurface) ClearLines(keep map[string]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.lines {
		if _, ok := keep[key]; !ok {
			delete(s.lines, key)
			s.mutations++
		}
	}
	if len(keep) == 0 && s.total != nil {
		s.total = nil
		s.mutations++
	}
}

// Snapshot returns a copy of the display state.
func (s *MemorySurface) Snapshot() DisplayState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines := make(map[string]reconcile.LineOverlay, len(s.lines))
	for key, overlay := range s.lines {
		lines[key] = overlay
	}
	state := DisplayState{Lines: lines}
	if s.total != nil {
		copied := *s.total
		state.Total = &copied
	}
	return state
}

// Mutations reports how many real display writes happened. Tests use this to
// assert overlay idempotence.
func (s *MemorySurface) Mutations() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mutations
}
