// Package coltrans applies a composable world-space transform to every root
// object of a selected collection, with a live non-destructive preview that
// can be re-run indefinitely against a fixed baseline.
package coltrans

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/stillgbx/coltrans/pivot"
	"github.com/stillgbx/coltrans/scene"
)

// State represents the engine's preview lifecycle state
type State int

const (
	// StateIdle: no snapshot held, edits touch nothing
	StateIdle State = iota
	// StatePreviewing: a baseline snapshot is live and edits re-apply from it
	StatePreviewing
	// StateCommitting: transient, the durable apply of a commit is running
	StateCommitting
)

var (
	// ErrNoSelection: no collection is currently selected in the host.
	ErrNoSelection = errors.New("no collection selected")
	// ErrEmptyCollection: the selected collection flattens to zero objects.
	ErrEmptyCollection = errors.New("collection contains no objects")
	// ErrNoop: all three deltas are at default, nothing to apply.
	ErrNoop = errors.New("nothing to apply, all values at default")
)

// Selection exposes the host's outliner selection.
type Selection interface {
	// SelectedCollection returns the currently selected collection, nil when none.
	SelectedCollection() *scene.Collection
}

// PivotSettings exposes the host's scene-level pivot state.
type PivotSettings interface {
	PivotMode() pivot.Mode
	CursorLocation() mgl64.Vec3
	// ActiveObject returns the host's active object, nil when none.
	ActiveObject() *scene.Object
}

// UndoSink receives one durable checkpoint per commit, zero for preview and
// reset.
type UndoSink interface {
	Checkpoint(label string)
}

// Baker folds an object's rotation into its geometry data, best-effort.
type Baker interface {
	BakeRotation(obj *scene.Object) error
}

// Viewport is asked to redraw after each batch of matrix writes. The request
// is a side effect, not a correctness requirement.
type Viewport interface {
	RequestRedraw()
}

// Report summarizes a successful commit.
type Report struct {
	Collection string
	RootCount  int
	TotalCount int
	Pivot      pivot.Mode
	// Baked counts the objects whose rotation bake succeeded. Failed bakes
	// are skipped silently and simply not counted.
	Baked int
}

func (r Report) String() string {
	return fmt.Sprintf("transformed %q (%d root object(s), %d total), pivot: %s",
		r.Collection, r.RootCount, r.TotalCount, r.Pivot)
}

// Engine drives the preview/commit lifecycle. Entry points are dispatched
// serially by the host main loop; the engine holds the only live snapshot and
// fully drains it before any durable write.
type Engine struct {
	Selection Selection
	Pivot     PivotSettings
	Undo      UndoSink
	Baker     Baker
	Viewport  Viewport

	Events Events

	delta          Delta
	previewEnabled bool
	bakeOnCommit   bool
	state          State
	session        *Session
}

// NewEngine wires the engine to its host capabilities. Undo, Baker and
// Viewport may be left nil on Engine for hosts without them.
func NewEngine(sel Selection, piv PivotSettings) *Engine {
	return &Engine{
		Selection: sel,
		Pivot:     piv,
		Events:    NewEvents(),
		delta:     DefaultDelta(),
	}
}

// Delta returns the current field values.
func (e *Engine) Delta() Delta {
	return e.delta
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// PreviewEnabled reports whether field edits drive a live preview.
func (e *Engine) PreviewEnabled() bool {
	return e.previewEnabled
}

// BakeOnCommit reports whether commit bakes rotations into geometry.
func (e *Engine) BakeOnCommit() bool {
	return e.bakeOnCommit
}

// SetBakeOnCommit toggles rotation baking on commit.
func (e *Engine) SetBakeOnCommit(enabled bool) {
	e.bakeOnCommit = enabled
}

// SetPreviewEnabled toggles live preview. Turning it off while a session is
// live restores every root to its baseline and discards the snapshot, without
// touching the field values or the undo log.
func (e *Engine) SetPreviewEnabled(enabled bool) {
	defer e.Events.flush()

	e.previewEnabled = enabled
	if !enabled && e.session != nil {
		e.discardSession()
		e.requestRedraw()
	}
}

// EditDelta stores new field values and, while preview is enabled, re-applies
// the transform from the snapshot baseline. Repeated edits are idempotent
// with respect to the baseline: the live matrix after any edit is
// full·baseline, independent of earlier edits.
func (e *Engine) EditDelta(d Delta) error {
	defer e.Events.flush()

	e.delta = d.Clamped()
	if !e.previewEnabled {
		return nil
	}
	return e.applyPreview()
}

func (e *Engine) applyPreview() error {
	col := e.Selection.SelectedCollection()
	if col == nil {
		return ErrNoSelection
	}

	// A snapshot captured for another collection is stale: restore it and
	// start over for the new selection.
	if e.session != nil && e.session.Collection != col.Name {
		e.discardSession()
	}

	all := col.AllObjects()
	roots := scene.Roots(all)
	if len(roots) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyCollection, col.Name)
	}

	if e.session == nil {
		e.session = newSession(col.Name, roots, all)
		e.state = StatePreviewing
		e.Events.emit(PreviewBeginEvent{Collection: col.Name, Roots: len(roots)})
	}

	mode := e.applyTo(e.session.Roots(), all, e.session.Baseline())
	e.Events.emit(PreviewApplyEvent{Collection: col.Name, Pivot: mode})
	e.requestRedraw()
	return nil
}

// Apply finalizes the transform: the only path the host undo log observes,
// and it observes exactly one state transition. With a live session the
// baseline is restored and drained first, so the durable write starts from
// the true pre-preview state; without one this is a plain one-shot apply.
func (e *Engine) Apply() (Report, error) {
	defer e.Events.flush()

	if e.delta.IsDefault() {
		return Report{}, ErrNoop
	}

	col := e.Selection.SelectedCollection()
	if col == nil {
		return Report{}, ErrNoSelection
	}

	all := col.AllObjects()
	roots := scene.Roots(all)
	if len(roots) == 0 {
		return Report{}, fmt.Errorf("%w: %q", ErrEmptyCollection, col.Name)
	}

	// Drain the snapshot before any further matrix write.
	if e.session != nil {
		e.discardSession()
	}

	e.state = StateCommitting
	mode := e.applyTo(roots, all, nil)
	e.requestRedraw()

	baked := 0
	if e.bakeOnCommit && e.Baker != nil {
		for _, obj := range roots {
			if err := e.Baker.BakeRotation(obj); err == nil {
				baked++
			}
		}
	}

	report := Report{
		Collection: col.Name,
		RootCount:  len(roots),
		TotalCount: len(all),
		Pivot:      mode,
		Baked:      baked,
	}

	if e.Undo != nil {
		e.Undo.Checkpoint("Transform " + col.Name)
	}

	e.delta = DefaultDelta()
	e.state = StateIdle
	e.Events.emit(CommitEvent{Report: report})
	return report, nil
}

// Reset restores every root to its baseline, discards the snapshot and puts
// the fields back at default. No undo checkpoint is recorded.
func (e *Engine) Reset() {
	defer e.Events.flush()

	collection := ""
	if e.session != nil {
		collection = e.session.Collection
		e.discardSession()
		e.requestRedraw()
	}

	e.delta = DefaultDelta()
	e.Events.emit(ResetEvent{Collection: collection})
}

// applyTo left-multiplies the combined transform onto each root's baseline
// matrix. A nil baseline map means the objects' current live matrices are the
// baseline. Returns the pivot mode used.
func (e *Engine) applyTo(roots []*scene.Object, all scene.ObjectSet, baseline map[string]mgl64.Mat4) pivot.Mode {
	mode := e.Pivot.PivotMode()
	rs := rotationScale(e.delta)
	ctx := pivot.Context{
		Cursor:   e.Pivot.CursorLocation(),
		Active:   e.Pivot.ActiveObject(),
		Baseline: baseline,
	}

	if mode == pivot.IndividualOrigins {
		// Each root rotates and scales about its own origin; translation
		// stays uniform. Pivots are captured before any write so later
		// writes cannot shift earlier pivots.
		pivots := make([]mgl64.Vec3, len(roots))
		for i, obj := range roots {
			pivots[i] = baselineOf(obj, baseline).Col(3).Vec3()
		}
		for i, obj := range roots {
			full := fullTransform(e.delta.Translation, rs, pivots[i])
			obj.World = full.Mul4(baselineOf(obj, baseline))
		}
		return mode
	}

	p := pivot.Resolve(mode, all, ctx)
	full := fullTransform(e.delta.Translation, rs, p)
	for _, obj := range roots {
		obj.World = full.Mul4(baselineOf(obj, baseline))
	}
	return mode
}

// discardSession restores the baseline and clears the snapshot.
func (e *Engine) discardSession() {
	e.session.Restore()
	e.Events.emit(PreviewEndEvent{Collection: e.session.Collection})
	e.session = nil
	e.state = StateIdle
}

func (e *Engine) requestRedraw() {
	if e.Viewport != nil {
		e.Viewport.RequestRedraw()
	}
}

// baselineOf returns the snapshot matrix for obj when one is held, otherwise
// the object's current live matrix.
func baselineOf(obj *scene.Object, baseline map[string]mgl64.Mat4) mgl64.Mat4 {
	if baseline != nil {
		if m, ok := baseline[obj.Name]; ok {
			return m
		}
	}
	return obj.World
}
