package uniform

import (
	"log/slog"

	"github.com/gogpu/shaderlab/internal/logging"
)

// Binder resolves uniform names against a compiled program. The rendering
// subsystem implements it for whatever program handle it holds.
type Binder interface {
	// Lookup returns the binding slot for a uniform name, or ok=false if
	// the compiled program has no such uniform (e.g. it was optimized
	// away).
	Lookup(name string) (slot int, ok bool)
}

// Writer pushes descriptor values into the rendering subsystem, one
// method per variant kind. Implementations receive only slots that were
// resolved by a Binder.
type Writer interface {
	WriteFloat(slot int, v float32)
	WriteInt(slot int, v int)
	WriteBool(slot int, v bool)
	WriteVec2(slot int, v [2]float32)
	WriteVec3(slot int, v [3]float32)
	WriteVec4(slot int, v [4]float32)
}

// ResolveSlots resolves every descriptor's binding slot through b.
// Descriptors the program does not expose get UnboundSlot and are skipped
// by Write.
func (c *Collection) ResolveSlots(b Binder) {
	log := logging.Get()
	for _, d := range c.items {
		base := d.Common()
		slot, ok := b.Lookup(base.Name)
		if !ok {
			base.Slot = UnboundSlot
			log.Debug("uniform not found in program",
				slog.String("component", "uniform"),
				slog.String("name", base.Name))
			continue
		}
		base.Slot = slot
	}
}

// Write pushes every bound descriptor's current value through w. Colors
// write as vec4 when they carry alpha and vec3 otherwise; checkboxes
// write as bools; dropdowns write their selection index as an int.
func (c *Collection) Write(w Writer) {
	for _, d := range c.items {
		slot := d.Common().Slot
		if slot == UnboundSlot {
			continue
		}
		switch u := d.(type) {
		case *Float:
			w.WriteFloat(slot, u.Value)
		case *Int:
			w.WriteInt(slot, u.Value)
		case *Bool:
			w.WriteBool(slot, u.Value)
		case *Vec2:
			w.WriteVec2(slot, u.Value)
		case *Vec3:
			w.WriteVec3(slot, u.Value)
		case *Vec4:
			w.WriteVec4(slot, u.Value)
		case *Color:
			if u.HasAlpha {
				w.WriteVec4(slot, u.Value)
			} else {
				w.WriteVec3(slot, [3]float32{u.Value[0], u.Value[1], u.Value[2]})
			}
		case *Dropdown:
			w.WriteInt(slot, u.Value)
		}
	}
}
