package uniform

import (
	"log/slog"

	"github.com/gogpu/shaderlab/internal/logging"
)

// Collection is an ordered set of descriptors. Order reflects first
// occurrence in the scanned source and determines default UI layout.
// Names are not required to be unique; two identically named uniforms are
// independent entries, though value preservation across reloads assumes
// practical uniqueness.
type Collection struct {
	items []Descriptor
}

// NewCollection creates an empty collection.
func NewCollection() *Collection { return &Collection{} }

// Add appends a descriptor, preserving insertion order.
func (c *Collection) Add(d Descriptor) { c.items = append(c.items, d) }

// All returns the descriptors in source order. The slice is shared;
// callers mutate descriptors through it (that is the editing model), but
// must not grow or reorder it.
func (c *Collection) All() []Descriptor { return c.items }

// Len returns the number of descriptors.
func (c *Collection) Len() int { return len(c.items) }

// Empty reports whether the collection has no descriptors.
func (c *Collection) Empty() bool { return len(c.items) == 0 }

// Find returns the first descriptor with the given name.
func (c *Collection) Find(name string) (Descriptor, bool) {
	for _, d := range c.items {
		if d.Common().Name == name {
			return d, true
		}
	}
	return nil, false
}

// Groups returns group names in order of first occurrence. The empty
// string appears if any descriptor is ungrouped.
func (c *Collection) Groups() []string {
	var order []string
	seen := make(map[string]bool)
	for _, d := range c.items {
		g := d.Common().Group
		if !seen[g] {
			seen[g] = true
			order = append(order, g)
		}
	}
	return order
}

// ByGroup returns the descriptors belonging to the given group, in source
// order.
func (c *Collection) ByGroup(group string) []Descriptor {
	var out []Descriptor
	for _, d := range c.items {
		if d.Common().Group == group {
			out = append(out, d)
		}
	}
	return out
}

// ResetDefaults restores every descriptor's value to its default.
func (c *Collection) ResetDefaults() {
	for _, d := range c.items {
		d.Reset()
	}
}

// AdoptValues copies current values from prev into this collection for
// every descriptor whose name exists in prev with the identical kind.
// Descriptors that are new, renamed, or re-typed keep their defaults.
// The value is copied verbatim, even when the new descriptor's bounds
// changed; clamping applies only on the next explicit Set.
func (c *Collection) AdoptValues(prev *Collection) {
	if prev == nil {
		return
	}
	log := logging.Get()
	for _, d := range c.items {
		old, ok := prev.Find(d.Common().Name)
		if !ok {
			continue
		}
		if old.Kind() != d.Kind() {
			log.Debug("uniform kind changed, using default",
				slog.String("component", "uniform"),
				slog.String("name", d.Common().Name),
				slog.String("old", old.Kind().String()),
				slog.String("new", d.Kind().String()))
			continue
		}
		adoptValue(d, old)
		log.Debug("preserved uniform value",
			slog.String("component", "uniform"),
			slog.String("name", d.Common().Name))
	}
}

// adoptValue copies the variant payload value; kinds are known equal.
func adoptValue(dst, src Descriptor) {
	switch d := dst.(type) {
	case *Float:
		d.Value = src.(*Float).Value
	case *Int:
		d.Value = src.(*Int).Value
	case *Bool:
		d.Value = src.(*Bool).Value
	case *Vec2:
		d.Value = src.(*Vec2).Value
	case *Vec3:
		d.Value = src.(*Vec3).Value
	case *Vec4:
		d.Value = src.(*Vec4).Value
	case *Color:
		d.Value = src.(*Color).Value
	case *Dropdown:
		// Dropdown indices must stay within the new options list.
		d.Set(src.(*Dropdown).Value)
	}
}
