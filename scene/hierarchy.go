package scene

// ObjectSet is an identity set of objects. An object linked under two
// sub-collections still counts once.
type ObjectSet map[*Object]struct{}

// Contains checks set membership.
func (s ObjectSet) Contains(obj *Object) bool {
	_, ok := s[obj]
	return ok
}

// AllObjects recursively unions the collection's direct objects with the
// objects of every nested child collection.
func (c *Collection) AllObjects() ObjectSet {
	set := make(ObjectSet)
	c.collect(set)
	return set
}

func (c *Collection) collect(set ObjectSet) {
	for _, obj := range c.Objects {
		set[obj] = struct{}{}
	}
	for _, child := range c.Children {
		child.collect(set)
	}
}

// Roots filters the set to objects whose parent is nil or not itself a member
// of the set. These are the only objects a transform writes directly; every
// other member follows some root through the host's parent propagation.
// Order follows map iteration and is not stable across runs.
func Roots(set ObjectSet) []*Object {
	roots := make([]*Object, 0, len(set))
	for obj := range set {
		if obj.Parent == nil || !set.Contains(obj.Parent) {
			roots = append(roots, obj)
		}
	}
	return roots
}
