package coltrans

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stillgbx/coltrans/pivot"
	"github.com/stillgbx/coltrans/scene"
)

// fakeHost implements Selection and PivotSettings over a synthetic scene.
type fakeHost struct {
	col    *scene.Collection
	mode   pivot.Mode
	cursor mgl64.Vec3
	active *scene.Object
}

func (h *fakeHost) SelectedCollection() *scene.Collection { return h.col }
func (h *fakeHost) PivotMode() pivot.Mode                 { return h.mode }
func (h *fakeHost) CursorLocation() mgl64.Vec3            { return h.cursor }
func (h *fakeHost) ActiveObject() *scene.Object           { return h.active }

type recordingUndo struct {
	labels []string
}

func (u *recordingUndo) Checkpoint(label string) { u.labels = append(u.labels, label) }

func objectAt(name string, x, y, z float64) *scene.Object {
	obj := scene.NewObject(name)
	obj.World = mgl64.Translate3D(x, y, z)
	return obj
}

// rowScene builds the spec scenario: three roots on the X axis at 0, 2 and 4.
func rowScene() (*fakeHost, [3]*scene.Object) {
	a := objectAt("a", 0, 0, 0)
	b := objectAt("b", 2, 0, 0)
	c := objectAt("c", 4, 0, 0)

	col := scene.NewCollection("row")
	col.AddObject(a)
	col.AddObject(b)
	col.AddObject(c)

	return &fakeHost{col: col}, [3]*scene.Object{a, b, c}
}

func newTestEngine(host *fakeHost) (*Engine, *recordingUndo) {
	undo := &recordingUndo{}
	engine := NewEngine(host, host)
	engine.Undo = undo
	return engine, undo
}

func requireVec3InDelta(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		require.InDelta(t, want[i], got[i], 1e-12)
	}
}

// =============================================================================
// One-shot apply
// =============================================================================

func TestApplyScaleAboutMedian(t *testing.T) {
	host, objects := rowScene()
	engine, undo := newTestEngine(host)

	require.NoError(t, engine.EditDelta(Delta{Scale: mgl64.Vec3{2, 2, 2}}))
	report, err := engine.Apply()
	require.NoError(t, err)

	// Median pivot (2,0,0): scaling by 2 pushes the row outward.
	requireVec3InDelta(t, mgl64.Vec3{-2, 0, 0}, objects[0].Translation())
	requireVec3InDelta(t, mgl64.Vec3{2, 0, 0}, objects[1].Translation())
	requireVec3InDelta(t, mgl64.Vec3{6, 0, 0}, objects[2].Translation())

	assert.Equal(t, 3, report.RootCount)
	assert.Equal(t, 3, report.TotalCount)
	assert.Equal(t, pivot.MedianPoint, report.Pivot)
	assert.Len(t, undo.labels, 1)
	assert.True(t, engine.Delta().IsDefault(), "fields reset after apply")
}

func TestApplyTranslationIgnoresPivot(t *testing.T) {
	for _, mode := range []pivot.Mode{pivot.MedianPoint, pivot.Cursor, pivot.IndividualOrigins} {
		host, objects := rowScene()
		host.mode = mode
		host.cursor = mgl64.Vec3{50, 50, 50}
		engine, _ := newTestEngine(host)

		require.NoError(t, engine.EditDelta(Delta{
			Translation: mgl64.Vec3{1, 2, 3},
			Scale:       mgl64.Vec3{1, 1, 1},
		}))
		_, err := engine.Apply()
		require.NoError(t, err, "mode %v", mode)

		requireVec3InDelta(t, mgl64.Vec3{1, 2, 3}, objects[0].Translation())
		requireVec3InDelta(t, mgl64.Vec3{3, 2, 3}, objects[1].Translation())
		requireVec3InDelta(t, mgl64.Vec3{5, 2, 3}, objects[2].Translation())
	}
}

func TestApplyIndividualOriginsRotationKeepsOrigins(t *testing.T) {
	host, objects := rowScene()
	host.mode = pivot.IndividualOrigins
	engine, _ := newTestEngine(host)

	require.NoError(t, engine.EditDelta(Delta{
		Rotation: mgl64.Vec3{0, 0, math.Pi / 2},
		Scale:    mgl64.Vec3{1, 1, 1},
	}))
	_, err := engine.Apply()
	require.NoError(t, err)

	// Each object rotates about itself: translations stay put.
	requireVec3InDelta(t, mgl64.Vec3{0, 0, 0}, objects[0].Translation())
	requireVec3InDelta(t, mgl64.Vec3{2, 0, 0}, objects[1].Translation())
	requireVec3InDelta(t, mgl64.Vec3{4, 0, 0}, objects[2].Translation())

	// Orientation did update: local X now points along world Y.
	for _, obj := range objects {
		requireVec3InDelta(t, mgl64.Vec3{0, 1, 0}, obj.World.Col(0).Vec3())
	}
}

func TestApplyCursorPivot(t *testing.T) {
	host, objects := rowScene()
	host.mode = pivot.Cursor
	host.cursor = mgl64.Vec3{4, 0, 0}
	engine, _ := newTestEngine(host)

	require.NoError(t, engine.EditDelta(Delta{Scale: mgl64.Vec3{2, 2, 2}}))
	_, err := engine.Apply()
	require.NoError(t, err)

	// Scaling away from the cursor at x=4.
	requireVec3InDelta(t, mgl64.Vec3{-4, 0, 0}, objects[0].Translation())
	requireVec3InDelta(t, mgl64.Vec3{0, 0, 0}, objects[1].Translation())
	requireVec3InDelta(t, mgl64.Vec3{4, 0, 0}, objects[2].Translation())
}

func TestApplyActiveElementFallbackMatchesMedianExactly(t *testing.T) {
	hostActive, objectsActive := rowScene()
	hostActive.mode = pivot.ActiveElement // no active object supplied
	engineActive, _ := newTestEngine(hostActive)

	hostMedian, objectsMedian := rowScene()
	hostMedian.mode = pivot.MedianPoint
	engineMedian, _ := newTestEngine(hostMedian)

	delta := Delta{
		Translation: mgl64.Vec3{0.3, -0.7, 1.1},
		Rotation:    mgl64.Vec3{0.2, 0.4, 0.6},
		Scale:       mgl64.Vec3{1.5, 0.5, 2},
	}

	require.NoError(t, engineActive.EditDelta(delta))
	require.NoError(t, engineMedian.EditDelta(delta))
	_, err := engineActive.Apply()
	require.NoError(t, err)
	_, err = engineMedian.Apply()
	require.NoError(t, err)

	for i := range objectsActive {
		require.Equal(t, objectsMedian[i].World, objectsActive[i].World, "bit-for-bit fallback")
	}
}

func TestApplyWritesRootsOnly(t *testing.T) {
	parent := objectAt("parent", 0, 0, 0)
	child := objectAt("child", 1, 0, 0)
	child.Parent = parent

	col := scene.NewCollection("rig")
	col.AddObject(parent)
	col.AddObject(child)

	host := &fakeHost{col: col}
	engine, _ := newTestEngine(host)

	childBefore := child.World
	require.NoError(t, engine.EditDelta(Delta{Translation: mgl64.Vec3{5, 0, 0}, Scale: mgl64.Vec3{1, 1, 1}}))
	report, err := engine.Apply()
	require.NoError(t, err)

	// The child moves only via host hierarchy propagation, never directly.
	assert.Equal(t, childBefore, child.World)
	assert.Equal(t, 1, report.RootCount)
	assert.Equal(t, 2, report.TotalCount)
}

// =============================================================================
// Error taxonomy
// =============================================================================

func TestApplyNoopRejected(t *testing.T) {
	host, objects := rowScene()
	engine, undo := newTestEngine(host)

	before := [3]mgl64.Mat4{objects[0].World, objects[1].World, objects[2].World}

	_, err := engine.Apply()
	require.ErrorIs(t, err, ErrNoop)

	for i, obj := range objects {
		assert.Equal(t, before[i], obj.World)
	}
	assert.Empty(t, undo.labels)
}

func TestApplyNoSelection(t *testing.T) {
	host := &fakeHost{}
	engine, undo := newTestEngine(host)

	require.NoError(t, engine.EditDelta(Delta{Translation: mgl64.Vec3{1, 0, 0}, Scale: mgl64.Vec3{1, 1, 1}}))
	_, err := engine.Apply()
	require.ErrorIs(t, err, ErrNoSelection)
	assert.Empty(t, undo.labels)
}

func TestApplyEmptyCollection(t *testing.T) {
	empty := scene.NewCollection("empty")
	empty.AddChild(scene.NewCollection("inner"))
	host := &fakeHost{col: empty}
	engine, undo := newTestEngine(host)

	require.NoError(t, engine.EditDelta(Delta{Translation: mgl64.Vec3{1, 0, 0}, Scale: mgl64.Vec3{1, 1, 1}}))
	_, err := engine.Apply()
	require.ErrorIs(t, err, ErrEmptyCollection)
	assert.Empty(t, undo.labels)
}

// =============================================================================
// Preview lifecycle
// =============================================================================

func TestPreviewIdempotentAcrossEdits(t *testing.T) {
	scrubbed, objectsScrubbed := rowScene()
	engineScrubbed, _ := newTestEngine(scrubbed)
	engineScrubbed.SetPreviewEnabled(true)

	direct, objectsDirect := rowScene()
	engineDirect, _ := newTestEngine(direct)
	engineDirect.SetPreviewEnabled(true)

	// Scrub through several intermediate values on one scene.
	for _, x := range []float64{1, 7, -3, 0.5} {
		require.NoError(t, engineScrubbed.EditDelta(Delta{
			Translation: mgl64.Vec3{x, 0, 0},
			Scale:       mgl64.Vec3{1, 1, 1},
		}))
	}
	final := Delta{
		Translation: mgl64.Vec3{0.5, 0, 0},
		Rotation:    mgl64.Vec3{0, 0, 1},
		Scale:       mgl64.Vec3{2, 1, 1},
	}
	require.NoError(t, engineScrubbed.EditDelta(final))

	// A single edit on a fresh scene gives the same matrices bit-for-bit.
	require.NoError(t, engineDirect.EditDelta(final))

	for i := range objectsScrubbed {
		require.Equal(t, objectsDirect[i].World, objectsScrubbed[i].World, "no drift after scrubbing")
	}
}

func TestPreviewPivotStableWhileScrubbing(t *testing.T) {
	host, objects := rowScene()
	engine, _ := newTestEngine(host)
	engine.SetPreviewEnabled(true)

	baseline := [3]mgl64.Mat4{objects[0].World, objects[1].World, objects[2].World}

	// Move everything far away, then scale. A pivot computed from the live
	// matrices would have drifted with the translation; the baseline pivot
	// stays at (2,0,0).
	require.NoError(t, engine.EditDelta(Delta{Translation: mgl64.Vec3{100, 0, 0}, Scale: mgl64.Vec3{1, 1, 1}}))
	require.NoError(t, engine.EditDelta(Delta{Scale: mgl64.Vec3{2, 2, 2}}))

	wantFull := fullTransform(mgl64.Vec3{}, rotationScale(Delta{Scale: mgl64.Vec3{2, 2, 2}}), mgl64.Vec3{2, 0, 0})
	for i, obj := range objects {
		require.Equal(t, wantFull.Mul4(baseline[i]), obj.World)
	}
}

func TestPreviewResetRoundTrip(t *testing.T) {
	host, objects := rowScene()
	engine, undo := newTestEngine(host)
	engine.SetPreviewEnabled(true)

	baseline := [3]mgl64.Mat4{objects[0].World, objects[1].World, objects[2].World}

	for _, d := range []Delta{
		{Translation: mgl64.Vec3{1, 2, 3}, Scale: mgl64.Vec3{1, 1, 1}},
		{Rotation: mgl64.Vec3{1, 0, 0}, Scale: mgl64.Vec3{3, 3, 3}},
	} {
		require.NoError(t, engine.EditDelta(d))
	}
	require.Equal(t, StatePreviewing, engine.State())

	engine.Reset()

	// Bit-for-bit restore: baselines are direct copies.
	for i, obj := range objects {
		require.Equal(t, baseline[i], obj.World)
	}
	assert.Equal(t, StateIdle, engine.State())
	assert.True(t, engine.Delta().IsDefault())
	assert.Empty(t, undo.labels, "reset records no undo step")
}

func TestPreviewToggleOffRestores(t *testing.T) {
	host, objects := rowScene()
	engine, _ := newTestEngine(host)
	engine.SetPreviewEnabled(true)

	baseline := objects[0].World
	edited := Delta{Translation: mgl64.Vec3{9, 9, 9}, Scale: mgl64.Vec3{1, 1, 1}}
	require.NoError(t, engine.EditDelta(edited))

	engine.SetPreviewEnabled(false)

	require.Equal(t, baseline, objects[0].World)
	assert.Equal(t, StateIdle, engine.State())
	// Toggle-off keeps the field values, unlike reset.
	assert.Equal(t, edited, engine.Delta())
}

func TestPreviewCommitAppliesFromBaselineOnce(t *testing.T) {
	host, objects := rowScene()
	engine, undo := newTestEngine(host)
	engine.SetPreviewEnabled(true)

	baseline := [3]mgl64.Mat4{objects[0].World, objects[1].World, objects[2].World}

	// Scrub, then commit with the last values.
	require.NoError(t, engine.EditDelta(Delta{Translation: mgl64.Vec3{42, 0, 0}, Scale: mgl64.Vec3{1, 1, 1}}))
	final := Delta{Translation: mgl64.Vec3{1, 0, 0}, Scale: mgl64.Vec3{1, 1, 1}}
	require.NoError(t, engine.EditDelta(final))

	report, err := engine.Apply()
	require.NoError(t, err)

	wantFull := fullTransform(final.Translation, rotationScale(final), mgl64.Vec3{2, 0, 0})
	for i, obj := range objects {
		require.Equal(t, wantFull.Mul4(baseline[i]), obj.World)
	}
	assert.Equal(t, StateIdle, engine.State())
	assert.Len(t, undo.labels, 1, "exactly one durable checkpoint")
	assert.Equal(t, "row", report.Collection)
}

func TestPreviewCollectionChangeInvalidatesSnapshot(t *testing.T) {
	hostA, objectsA := rowScene()
	engine, _ := newTestEngine(hostA)
	engine.SetPreviewEnabled(true)

	baselineA := objectsA[0].World
	require.NoError(t, engine.EditDelta(Delta{Translation: mgl64.Vec3{10, 0, 0}, Scale: mgl64.Vec3{1, 1, 1}}))
	require.NotEqual(t, baselineA, objectsA[0].World)

	// Selection switches to another collection mid-preview.
	other := objectAt("other", 0, 5, 0)
	colB := scene.NewCollection("other-col")
	colB.AddObject(other)
	hostA.col = colB

	require.NoError(t, engine.EditDelta(Delta{Translation: mgl64.Vec3{1, 0, 0}, Scale: mgl64.Vec3{1, 1, 1}}))

	// The stale preview on the first collection was restored, and the new
	// collection previews from its own baseline.
	require.Equal(t, baselineA, objectsA[0].World)
	requireVec3InDelta(t, mgl64.Vec3{1, 5, 0}, other.Translation())
}

func TestPreviewRepeatedCommitCyclesDoNotDrift(t *testing.T) {
	host, objects := rowScene()
	engine, undo := newTestEngine(host)
	engine.SetPreviewEnabled(true)

	for cycle := 0; cycle < 3; cycle++ {
		require.NoError(t, engine.EditDelta(Delta{Translation: mgl64.Vec3{1, 0, 0}, Scale: mgl64.Vec3{1, 1, 1}}))
		_, err := engine.Apply()
		require.NoError(t, err)
	}

	// Three commits of +1 on X land exactly on +3.
	requireVec3InDelta(t, mgl64.Vec3{3, 0, 0}, objects[0].Translation())
	requireVec3InDelta(t, mgl64.Vec3{5, 0, 0}, objects[1].Translation())
	requireVec3InDelta(t, mgl64.Vec3{7, 0, 0}, objects[2].Translation())
	assert.Len(t, undo.labels, 3)
}

// =============================================================================
// Bake on commit
// =============================================================================

type selectiveBaker struct {
	failFor map[string]bool
	calls   int
}

func (b *selectiveBaker) BakeRotation(obj *scene.Object) error {
	b.calls++
	if b.failFor[obj.Name] {
		return assert.AnError
	}
	return scene.RotationBaker{}.BakeRotation(obj)
}

func TestApplyBakeBestEffort(t *testing.T) {
	cube := objectAt("cube", 0, 0, 0)
	cube.Bounds = scene.BoxCorners(mgl64.Vec3{-1, -1, -1}, mgl64.Vec3{1, 1, 1})
	lamp := objectAt("lamp", 2, 0, 0)

	col := scene.NewCollection("set")
	col.AddObject(cube)
	col.AddObject(lamp)

	host := &fakeHost{col: col}
	engine, undo := newTestEngine(host)
	baker := &selectiveBaker{failFor: map[string]bool{"lamp": true}}
	engine.Baker = baker
	engine.SetBakeOnCommit(true)

	require.NoError(t, engine.EditDelta(Delta{Rotation: mgl64.Vec3{0, 0, 1}, Scale: mgl64.Vec3{1, 1, 1}}))
	report, err := engine.Apply()

	// A failing object is skipped, not counted, and never aborts the commit.
	require.NoError(t, err)
	assert.Equal(t, 2, baker.calls)
	assert.Equal(t, 1, report.Baked)
	assert.Len(t, undo.labels, 1)
}

// =============================================================================
// Events
// =============================================================================

func TestEventsLifecycle(t *testing.T) {
	host, _ := rowScene()
	engine, _ := newTestEngine(host)

	var order []EventType
	for _, et := range []EventType{PREVIEW_BEGIN, PREVIEW_APPLY, PREVIEW_END, COMMIT, RESET} {
		engine.Events.Subscribe(et, func(ev Event) {
			order = append(order, ev.Type())
		})
	}

	engine.SetPreviewEnabled(true)
	require.NoError(t, engine.EditDelta(Delta{Translation: mgl64.Vec3{1, 0, 0}, Scale: mgl64.Vec3{1, 1, 1}})) // BEGIN, APPLY
	require.NoError(t, engine.EditDelta(Delta{Translation: mgl64.Vec3{2, 0, 0}, Scale: mgl64.Vec3{1, 1, 1}})) // APPLY
	_, err := engine.Apply()                                                                                  // END (drain), COMMIT
	require.NoError(t, err)
	engine.Reset() // RESET (no session live)

	assert.Equal(t, []EventType{
		PREVIEW_BEGIN, PREVIEW_APPLY,
		PREVIEW_APPLY,
		PREVIEW_END, COMMIT,
		RESET,
	}, order)
}
