// Package uniform models annotated shader uniforms: the typed descriptor
// records built from annotation comments, the scanner that extracts them
// from shader source, and the binding boundary through which a renderer
// resolves slots and pushes values.
package uniform

import (
	"github.com/chewxy/math32"
)

// Kind discriminates the closed set of descriptor variants.
type Kind uint8

const (
	KindFloat Kind = iota
	KindInt
	KindBool
	KindVec2
	KindVec3
	KindVec4
	KindColor
	KindDropdown
)

var kindNames = [...]string{
	KindFloat:    "float",
	KindInt:      "int",
	KindBool:     "bool",
	KindVec2:     "vec2",
	KindVec3:     "vec3",
	KindVec4:     "vec4",
	KindColor:    "color",
	KindDropdown: "dropdown",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ControlKind says which editor widget a descriptor expects.
type ControlKind uint8

const (
	ControlNone ControlKind = iota
	ControlSlider
	ControlCheckbox
	ControlColorPicker
	ControlVec2
	ControlVec3
	ControlVec4
	ControlDropdown
)

// UnboundSlot marks a descriptor not yet resolved against a compiled
// program.
const UnboundSlot = -1

// Base carries the fields shared by every descriptor variant.
type Base struct {
	// Name is the declared identifier, e.g. "uSpeed".
	Name string
	// Display is the derived human-readable name, e.g. "Speed".
	Display string
	// Tooltip is optional hover text for the editor.
	Tooltip string
	// Group is an optional UI grouping key; empty means ungrouped.
	Group string
	// Control selects the editor widget.
	Control ControlKind
	// Slot is the binding slot resolved against a compiled program,
	// UnboundSlot before binding.
	Slot int
}

// Descriptor is one annotated uniform. The concrete type is one of
// *Float, *Int, *Bool, *Vec2, *Vec3, *Vec4, *Color, *Dropdown.
type Descriptor interface {
	Kind() Kind
	// Common returns the shared base fields for mutation in place.
	Common() *Base
	// Reset restores the value to its default.
	Reset()
}

// Float is a float uniform edited as a slider.
//
//	// @slider(min=0.0, max=1.0, default=0.5, step=0.01)
//	uniform float uSpeed;
type Float struct {
	Base
	Value   float32
	Default float32
	Min     float32
	Max     float32
	Step    float32
}

func (u *Float) Kind() Kind    { return KindFloat }
func (u *Float) Common() *Base { return &u.Base }
func (u *Float) Reset()        { u.Value = u.Default }

// Set assigns a value clamped to [Min, Max].
func (u *Float) Set(v float32) { u.Value = math32.Min(math32.Max(v, u.Min), u.Max) }

// Int is an integer uniform edited as a slider.
//
//	// @slider(min=0, max=100, default=50)
//	uniform int uSteps;
type Int struct {
	Base
	Value   int
	Default int
	Min     int
	Max     int
}

func (u *Int) Kind() Kind    { return KindInt }
func (u *Int) Common() *Base { return &u.Base }
func (u *Int) Reset()        { u.Value = u.Default }

// Set assigns a value clamped to [Min, Max].
func (u *Int) Set(v int) { u.Value = min(max(v, u.Min), u.Max) }

// Bool is a boolean uniform edited as a checkbox. Declared as int or bool
// in the shader (GLSL-style sources have no true bool uniforms).
//
//	// @checkbox(default=true)
//	uniform int uEnabled;
type Bool struct {
	Base
	Value   bool
	Default bool
}

func (u *Bool) Kind() Kind    { return KindBool }
func (u *Bool) Common() *Base { return &u.Base }
func (u *Bool) Reset()        { u.Value = u.Default }

// Vec2 is a 2-component vector uniform.
//
//	// @vec2(default=0.5,0.5)
//	uniform vec2 uOffset;
type Vec2 struct {
	Base
	Value   [2]float32
	Default [2]float32
	Min     float32
	Max     float32
	Step    float32
}

func (u *Vec2) Kind() Kind    { return KindVec2 }
func (u *Vec2) Common() *Base { return &u.Base }
func (u *Vec2) Reset()        { u.Value = u.Default }

// Set assigns a value with each component clamped to [Min, Max].
func (u *Vec2) Set(v [2]float32) {
	for i, c := range v {
		u.Value[i] = math32.Min(math32.Max(c, u.Min), u.Max)
	}
}

// Vec3 is a 3-component vector uniform.
//
//	// @vec3(default=1.0,0.0,0.0)
//	uniform vec3 uDirection;
type Vec3 struct {
	Base
	Value   [3]float32
	Default [3]float32
	Min     float32
	Max     float32
	Step    float32
}

func (u *Vec3) Kind() Kind    { return KindVec3 }
func (u *Vec3) Common() *Base { return &u.Base }
func (u *Vec3) Reset()        { u.Value = u.Default }

// Set assigns a value with each component clamped to [Min, Max].
func (u *Vec3) Set(v [3]float32) {
	for i, c := range v {
		u.Value[i] = math32.Min(math32.Max(c, u.Min), u.Max)
	}
}

// Vec4 is a 4-component vector uniform.
//
//	// @vec4(default=1.0,1.0,1.0,1.0)
//	uniform vec4 uParams;
type Vec4 struct {
	Base
	Value   [4]float32
	Default [4]float32
	Min     float32
	Max     float32
	Step    float32
}

func (u *Vec4) Kind() Kind    { return KindVec4 }
func (u *Vec4) Common() *Base { return &u.Base }
func (u *Vec4) Reset()        { u.Value = u.Default }

// Set assigns a value with each component clamped to [Min, Max].
func (u *Vec4) Set(v [4]float32) {
	for i, c := range v {
		u.Value[i] = math32.Min(math32.Max(c, u.Min), u.Max)
	}
}

// Color is a vec3 or vec4 uniform edited with a color picker. The value
// is always stored as RGBA; alpha is fixed at 1 when HasAlpha is false.
//
//	// @color(default=#FF8800)
//	uniform vec3 uTint;
type Color struct {
	Base
	Value    [4]float32
	Default  [4]float32
	HasAlpha bool
}

func (u *Color) Kind() Kind    { return KindColor }
func (u *Color) Common() *Base { return &u.Base }
func (u *Color) Reset()        { u.Value = u.Default }

// Channels returns 4 when the color carries alpha and 3 otherwise.
func (u *Color) Channels() int {
	if u.HasAlpha {
		return 4
	}
	return 3
}

// Dropdown is an integer selection uniform; Value indexes Options.
//
//	// @dropdown(options=["Low","Medium","High"], default=1)
//	uniform int uQuality;
type Dropdown struct {
	Base
	Value   int
	Default int
	Options []string
}

func (u *Dropdown) Kind() Kind    { return KindDropdown }
func (u *Dropdown) Common() *Base { return &u.Base }
func (u *Dropdown) Reset()        { u.Value = u.clamp(u.Default) }

// Set assigns a selection index clamped into [0, len(Options)).
func (u *Dropdown) Set(v int) { u.Value = u.clamp(v) }

func (u *Dropdown) clamp(v int) int {
	if len(u.Options) == 0 {
		return 0
	}
	return min(max(v, 0), len(u.Options)-1)
}
