// Package pivot resolves the world-space point rotation and scale are applied
// around, mirroring the host viewport's pivot-point setting.
package pivot

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/stillgbx/coltrans/scene"
)

// Mode selects how the pivot point is computed.
type Mode int

const (
	// MedianPoint averages the origins of every object in the set
	MedianPoint Mode = iota
	// BoundingBoxCenter takes the center of the world-space box enclosing the set
	BoundingBoxCenter
	// Cursor uses the host's 3D cursor position verbatim
	Cursor
	// IndividualOrigins gives each root object its own origin as pivot; it has
	// no single point and is dispatched by the transform engine, not Resolve
	IndividualOrigins
	// ActiveElement uses the active object's origin, median when none is active
	ActiveElement
)

func (m Mode) String() string {
	switch m {
	case MedianPoint:
		return "median"
	case BoundingBoxCenter:
		return "bounds"
	case Cursor:
		return "cursor"
	case IndividualOrigins:
		return "individual"
	case ActiveElement:
		return "active"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps a mode name (as used by CLI flags and scene files) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "median", "median_point", "":
		return MedianPoint, nil
	case "bounds", "bounding_box", "bounding_box_center":
		return BoundingBoxCenter, nil
	case "cursor":
		return Cursor, nil
	case "individual", "individual_origins":
		return IndividualOrigins, nil
	case "active", "active_element":
		return ActiveElement, nil
	default:
		return MedianPoint, fmt.Errorf("unknown pivot mode %q", s)
	}
}

// Context carries the host inputs pivot resolution depends on.
type Context struct {
	// Cursor is the host's 3D cursor position.
	Cursor mgl64.Vec3
	// Active is the host's active object, nil when none.
	Active *scene.Object
	// Baseline maps object names to snapshot world matrices. When non-nil,
	// every position lookup goes through it instead of the objects' live
	// matrices, keeping the pivot anchored while a preview re-runs.
	Baseline map[string]mgl64.Mat4
}

// resolved returns the matrix position math must use for obj.
func (ctx Context) resolved(obj *scene.Object) mgl64.Mat4 {
	if ctx.Baseline != nil {
		if m, ok := ctx.Baseline[obj.Name]; ok {
			return m
		}
	}
	return obj.World
}

// Resolve computes the single pivot point for the given mode over the full
// flattened object set. IndividualOrigins callers must branch before calling;
// passing it here falls back to the median like an unknown mode would.
func Resolve(mode Mode, all scene.ObjectSet, ctx Context) mgl64.Vec3 {
	switch mode {
	case Cursor:
		return ctx.Cursor
	case BoundingBoxCenter:
		return boundingBoxCenter(all, ctx)
	case ActiveElement:
		if ctx.Active != nil {
			return ctx.resolved(ctx.Active).Col(3).Vec3()
		}
		return medianPoint(all, ctx)
	default:
		return medianPoint(all, ctx)
	}
}

// medianPoint averages the resolved origins of every object in the set.
// Empty set resolves to the world origin.
func medianPoint(all scene.ObjectSet, ctx Context) mgl64.Vec3 {
	if len(all) == 0 {
		return mgl64.Vec3{}
	}

	var total mgl64.Vec3
	for obj := range all {
		total = total.Add(ctx.resolved(obj).Col(3).Vec3())
	}
	return total.Mul(1 / float64(len(all)))
}

// boundingBoxCenter accumulates the world-space box of every object in the
// set and returns its midpoint. Empty set resolves to the world origin.
func boundingBoxCenter(all scene.ObjectSet, ctx Context) mgl64.Vec3 {
	box := scene.NewAABB()
	for obj := range all {
		box.ExtendObject(obj, ctx.resolved(obj))
	}
	return box.Center()
}
