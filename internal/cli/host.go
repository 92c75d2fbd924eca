package cli

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/stillgbx/coltrans/pivot"
	"github.com/stillgbx/coltrans/scene"
)

// Host is the in-memory stand-in for the 3D host application: it owns the
// materialized object graph and answers the engine's selection, pivot and
// viewport queries.
type Host struct {
	Collections map[string]*scene.Collection
	Objects     map[string]*scene.Object

	// Selected names the collection selected in the outliner.
	Selected string
	Pivot    pivot.Mode
	Cursor   mgl64.Vec3
	// Active names the active object, empty for none.
	Active string

	redraws int
}

// SelectedCollection returns the selected collection, nil when none.
func (h *Host) SelectedCollection() *scene.Collection {
	if h.Selected == "" {
		return nil
	}
	return h.Collections[h.Selected]
}

func (h *Host) PivotMode() pivot.Mode {
	return h.Pivot
}

func (h *Host) CursorLocation() mgl64.Vec3 {
	return h.Cursor
}

// ActiveObject returns the active object, nil when none.
func (h *Host) ActiveObject() *scene.Object {
	if h.Active == "" {
		return nil
	}
	return h.Objects[h.Active]
}

// RequestRedraw counts redraw requests; the panel redraws on every frame
// anyway, so the count only feeds the status line.
func (h *Host) RequestRedraw() {
	h.redraws++
}

// Redraws returns how many redraws the engine has requested.
func (h *Host) Redraws() int {
	return h.redraws
}
