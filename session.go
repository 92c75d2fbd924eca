package coltrans

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/stillgbx/coltrans/scene"
)

// Session is the preview snapshot: the world matrices captured when preview
// mode was entered, tagged with the collection they belong to. While a session
// is live it is the unique source of truth for pre-transform state; every
// preview re-application restores from it, never from the already-displaced
// live matrices. At most one session exists at a time.
type Session struct {
	// Collection is the name of the collection the snapshot was captured for.
	Collection string

	roots    []*scene.Object
	baseline map[string]mgl64.Mat4
}

// newSession captures the baseline for every object in the flattened set.
// Pivot resolution needs non-root baselines too; only roots are ever written
// back or restored.
func newSession(collection string, roots []*scene.Object, all scene.ObjectSet) *Session {
	baseline := make(map[string]mgl64.Mat4, len(all))
	for obj := range all {
		baseline[obj.Name] = obj.World
	}

	return &Session{
		Collection: collection,
		roots:      roots,
		baseline:   baseline,
	}
}

// Baseline returns the snapshot matrices keyed by object name.
func (s *Session) Baseline() map[string]mgl64.Mat4 {
	return s.baseline
}

// Roots returns the root objects the snapshot applies to.
func (s *Session) Roots() []*scene.Object {
	return s.roots
}

// Restore writes every root's baseline matrix back onto the live object.
// Matrices are direct copies, so the round trip is exact.
func (s *Session) Restore() {
	for _, obj := range s.roots {
		if m, ok := s.baseline[obj.Name]; ok {
			obj.World = m
		}
	}
}
