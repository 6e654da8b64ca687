package uniform

import "testing"

// mapBinder resolves slots from a fixed name table.
type mapBinder map[string]int

func (m mapBinder) Lookup(name string) (int, bool) {
	slot, ok := m[name]
	return slot, ok
}

// recordingWriter captures every write keyed by slot.
type recordingWriter struct {
	floats map[int]float32
	ints   map[int]int
	bools  map[int]bool
	vec2s  map[int][2]float32
	vec3s  map[int][3]float32
	vec4s  map[int][4]float32
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{
		floats: map[int]float32{},
		ints:   map[int]int{},
		bools:  map[int]bool{},
		vec2s:  map[int][2]float32{},
		vec3s:  map[int][3]float32{},
		vec4s:  map[int][4]float32{},
	}
}

func (w *recordingWriter) WriteFloat(slot int, v float32)   { w.floats[slot] = v }
func (w *recordingWriter) WriteInt(slot int, v int)         { w.ints[slot] = v }
func (w *recordingWriter) WriteBool(slot int, v bool)       { w.bools[slot] = v }
func (w *recordingWriter) WriteVec2(slot int, v [2]float32) { w.vec2s[slot] = v }
func (w *recordingWriter) WriteVec3(slot int, v [3]float32) { w.vec3s[slot] = v }
func (w *recordingWriter) WriteVec4(slot int, v [4]float32) { w.vec4s[slot] = v }

var _ Binder = mapBinder(nil)
var _ Writer = (*recordingWriter)(nil)

func TestResolveSlots(t *testing.T) {
	c := Scan(`// @slider(default=1)
uniform float uA;
// @slider(default=2)
uniform float uGone;`)

	c.ResolveSlots(mapBinder{"uA": 3})

	if got := c.All()[0].Common().Slot; got != 3 {
		t.Errorf("uA slot = %d, want 3", got)
	}
	if got := c.All()[1].Common().Slot; got != UnboundSlot {
		t.Errorf("uGone slot = %d, want UnboundSlot", got)
	}
}

func TestWrite_DispatchesPerKind(t *testing.T) {
	c := Scan(`// @slider(default=1.5)
uniform float uF;
// @checkbox(default=true)
uniform int uB;
// @color(default=0.5,0.5,0.5)
uniform vec3 uRGB;
// @color(default=0.5,0.5,0.5,0.5)
uniform vec4 uRGBA;
// @dropdown(options=["x","y"], default=1)
uniform int uD;`)

	c.ResolveSlots(mapBinder{"uF": 0, "uB": 1, "uRGB": 2, "uRGBA": 3, "uD": 4})

	w := newRecordingWriter()
	c.Write(w)

	if w.floats[0] != 1.5 {
		t.Errorf("float write = %v, want 1.5", w.floats[0])
	}
	if !w.bools[1] {
		t.Error("bool write = false, want true")
	}
	// An alpha-less color writes three channels.
	if _, ok := w.vec3s[2]; !ok {
		t.Error("vec3 color did not write as vec3")
	}
	if v, ok := w.vec4s[3]; !ok || v[3] != 0.5 {
		t.Errorf("vec4 color write = %v, want alpha 0.5", v)
	}
	if w.ints[4] != 1 {
		t.Errorf("dropdown write = %d, want index 1", w.ints[4])
	}
}

func TestWrite_SkipsUnbound(t *testing.T) {
	c := Scan(`// @slider(default=1)
uniform float uA;`)
	// No ResolveSlots call: slot stays unbound.
	w := newRecordingWriter()
	c.Write(w)
	if len(w.floats) != 0 {
		t.Errorf("unbound descriptor wrote %v, want nothing", w.floats)
	}
}
