package scene

// Collection is a named, possibly nested set of objects. Read-only to the
// transform tool; mutators exist for hosts that build scenes in memory.
type Collection struct {
	Name string
	// Objects directly linked to this collection
	Objects []*Object
	// Nested child collections
	Children []*Collection
}

// NewCollection creates an empty collection.
func NewCollection(name string) *Collection {
	return &Collection{Name: name}
}

// AddObject links an object to the collection.
func (c *Collection) AddObject(obj *Object) {
	c.Objects = append(c.Objects, obj)
}

// RemoveObject unlinks an object from the collection's direct members.
func (c *Collection) RemoveObject(obj *Object) {
	k := -1
	for i, o := range c.Objects {
		if o == obj {
			k = i
			break
		}
	}

	if k != -1 {
		c.Objects = append(c.Objects[:k], c.Objects[k+1:]...)
	}
}

// AddChild nests a collection under this one.
func (c *Collection) AddChild(child *Collection) {
	c.Children = append(c.Children, child)
}
