package cli

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/stillgbx/coltrans/pivot"
	"github.com/stillgbx/coltrans/scene"
)

// SceneFile is the TOML document the demo host persists scenes in. Rotations
// are stored in degrees, as the panel shows them; the engine works in radians.
type SceneFile struct {
	Settings    SceneSettings     `toml:"settings"`
	Collections []CollectionEntry `toml:"collections"`
	Objects     []ObjectEntry     `toml:"objects"`
}

// SceneSettings mirrors the host's scene-level pivot state.
type SceneSettings struct {
	// Pivot is a pivot mode name accepted by pivot.ParseMode.
	Pivot string `toml:"pivot,omitempty"`
	// Cursor is the 3D cursor position.
	Cursor [3]float64 `toml:"cursor,omitempty"`
	// Active names the active object, empty for none.
	Active string `toml:"active,omitempty"`
	// Selected names the collection selected in the outliner.
	Selected string `toml:"selected,omitempty"`
}

type CollectionEntry struct {
	Name string `toml:"name"`
	// Children names nested collections.
	Children []string `toml:"children,omitempty"`
}

type ObjectEntry struct {
	Name       string     `toml:"name"`
	Collection string     `toml:"collection"`
	Parent     string     `toml:"parent,omitempty"`
	Location   [3]float64 `toml:"location"`
	// Rotation in degrees, XYZ order
	Rotation [3]float64 `toml:"rotation"`
	Scale    [3]float64 `toml:"scale"`
	// Bounding box of the object's geometry in local space. Omit both for
	// objects without geometry (empties, lights, cameras).
	BoundsMin *[3]float64 `toml:"bounds_min,omitempty"`
	BoundsMax *[3]float64 `toml:"bounds_max,omitempty"`
}

// LoadSceneFile parses a TOML scene document from disk.
func LoadSceneFile(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}

	var doc SceneFile
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	return &doc, nil
}

// BuildHost materializes the document into a live object graph wrapped in a
// Host the engine can drive.
func (f *SceneFile) BuildHost() (*Host, error) {
	host := &Host{
		Collections: make(map[string]*scene.Collection),
		Objects:     make(map[string]*scene.Object),
		Cursor:      mgl64.Vec3(f.Settings.Cursor),
		Selected:    f.Settings.Selected,
		Active:      f.Settings.Active,
	}

	mode, err := pivot.ParseMode(f.Settings.Pivot)
	if err != nil {
		return nil, err
	}
	host.Pivot = mode

	for _, entry := range f.Collections {
		host.Collections[entry.Name] = scene.NewCollection(entry.Name)
	}
	for _, entry := range f.Collections {
		col := host.Collections[entry.Name]
		for _, name := range entry.Children {
			child, ok := host.Collections[name]
			if !ok {
				return nil, fmt.Errorf("collection %q: unknown child %q", entry.Name, name)
			}
			col.AddChild(child)
		}
	}

	for _, entry := range f.Objects {
		obj := scene.NewObject(entry.Name)
		obj.World = composeWorld(
			mgl64.Vec3(entry.Location),
			radians(mgl64.Vec3(entry.Rotation)),
			mgl64.Vec3(entry.Scale),
		)
		if entry.BoundsMin != nil && entry.BoundsMax != nil {
			obj.Bounds = scene.BoxCorners(mgl64.Vec3(*entry.BoundsMin), mgl64.Vec3(*entry.BoundsMax))
		}

		col, ok := host.Collections[entry.Collection]
		if !ok {
			return nil, fmt.Errorf("object %q: unknown collection %q", entry.Name, entry.Collection)
		}
		col.AddObject(obj)
		host.Objects[entry.Name] = obj
	}

	// Parent links resolve after every object exists.
	for _, entry := range f.Objects {
		if entry.Parent == "" {
			continue
		}
		parent, ok := host.Objects[entry.Parent]
		if !ok {
			return nil, fmt.Errorf("object %q: unknown parent %q", entry.Name, entry.Parent)
		}
		host.Objects[entry.Name].Parent = parent
	}

	return host, nil
}

// Sync writes the live object matrices back into the document entries,
// decomposing each world matrix into location, rotation and scale.
func (f *SceneFile) Sync(host *Host) {
	for i := range f.Objects {
		obj, ok := host.Objects[f.Objects[i].Name]
		if !ok {
			continue
		}
		loc, rot, sc := decomposeWorld(obj.World)
		f.Objects[i].Location = loc
		f.Objects[i].Rotation = [3]float64(degrees(mgl64.Vec3(rot)))
		f.Objects[i].Scale = sc
	}
	f.Settings.Pivot = host.Pivot.String()
}

// SaveSceneFile writes the document back to disk as TOML.
func SaveSceneFile(path string, doc *SceneFile) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write scene %s: %w", path, err)
	}
	defer out.Close()

	if err := toml.NewEncoder(out).Encode(doc); err != nil {
		return fmt.Errorf("encode scene %s: %w", path, err)
	}
	return nil
}

// composeWorld builds a world matrix from location, XYZ Euler rotation
// (radians) and per-axis scale: T·Rz·Ry·Rx·S.
func composeWorld(loc, rot, sc mgl64.Vec3) mgl64.Mat4 {
	r := mgl64.HomogRotate3DZ(rot.Z()).
		Mul4(mgl64.HomogRotate3DY(rot.Y())).
		Mul4(mgl64.HomogRotate3DX(rot.X()))

	return mgl64.Translate3D(loc.X(), loc.Y(), loc.Z()).
		Mul4(r).
		Mul4(mgl64.Scale3D(sc.X(), sc.Y(), sc.Z()))
}

// decomposeWorld splits a shear-free world matrix back into location, XYZ
// Euler rotation (radians) and per-axis scale.
func decomposeWorld(m mgl64.Mat4) (loc, rot, sc [3]float64) {
	loc = [3]float64{m[12], m[13], m[14]}

	basis := m.Mat3()
	for i := 0; i < 3; i++ {
		sc[i] = basis.Col(i).Len()
	}

	var r mgl64.Mat3
	for i := 0; i < 3; i++ {
		if sc[i] != 0 {
			r.SetCol(i, basis.Col(i).Mul(1/sc[i]))
		}
	}

	// Rz·Ry·Rx convention: r20 = -sin(ry).
	sy := -r.At(2, 0)
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}
	rot[1] = math.Asin(sy)

	if math.Abs(sy) < 1-1e-9 {
		rot[0] = math.Atan2(r.At(2, 1), r.At(2, 2))
		rot[2] = math.Atan2(r.At(1, 0), r.At(0, 0))
	} else {
		// Gimbal lock: fold everything into the X rotation.
		rot[0] = math.Atan2(-r.At(1, 2), r.At(1, 1))
		rot[2] = 0
	}
	return loc, rot, sc
}
