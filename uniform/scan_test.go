package uniform

import "testing"

const sampleSource = `#version 330 core

// @slider(min=0.0, max=2.0, default=1.0, step=0.1)
uniform float uSpeed;

// @slider(min=1, max=8, default=4)
uniform int uOctaves;

// @color(default=#FF8800)
uniform vec3 uTint;

// @color(default=1.0,0.0,0.0,0.5)
uniform vec4 uOverlay;

// @checkbox(default=true)
uniform int uEnabled;

// @vec2(default=0.5,0.5, min=0, max=1)
uniform vec2 uCenter;

// @vec3(default=1.0,0.0,0.0)
uniform vec3 uDirection;

// @vec4(default=1.0,2.0,3.0)
uniform vec4 uParams;

// @dropdown(options=["Low","Medium","High"], default=1)
uniform int uQuality;

void main() {}
`

func TestScan_AllDirectives(t *testing.T) {
	c := Scan(sampleSource)
	if c.Len() != 9 {
		t.Fatalf("Scan() produced %d descriptors, want 9", c.Len())
	}

	// Source order is preserved.
	wantNames := []string{"uSpeed", "uOctaves", "uTint", "uOverlay", "uEnabled", "uCenter", "uDirection", "uParams", "uQuality"}
	for i, d := range c.All() {
		if d.Common().Name != wantNames[i] {
			t.Errorf("descriptor %d name = %q, want %q", i, d.Common().Name, wantNames[i])
		}
		if d.Common().Slot != UnboundSlot {
			t.Errorf("descriptor %q slot = %d, want UnboundSlot before binding", d.Common().Name, d.Common().Slot)
		}
	}

	speed := c.All()[0].(*Float)
	if speed.Min != 0 || speed.Max != 2 || speed.Default != 1 || speed.Value != 1 || speed.Step != 0.1 {
		t.Errorf("uSpeed = %+v, want min=0 max=2 default=value=1 step=0.1", speed)
	}
	if speed.Common().Display != "Speed" {
		t.Errorf("uSpeed display = %q, want %q", speed.Common().Display, "Speed")
	}

	octaves := c.All()[1].(*Int)
	if octaves.Min != 1 || octaves.Max != 8 || octaves.Value != 4 {
		t.Errorf("uOctaves = %+v, want min=1 max=8 value=4", octaves)
	}

	tint := c.All()[2].(*Color)
	if tint.HasAlpha {
		t.Error("uTint (vec3) should not have alpha")
	}
	if tint.Channels() != 3 {
		t.Errorf("uTint channels = %d, want 3", tint.Channels())
	}
	if tint.Value[3] != 1 {
		t.Errorf("uTint alpha = %v, want padded to 1", tint.Value[3])
	}

	overlay := c.All()[3].(*Color)
	if !overlay.HasAlpha {
		t.Error("uOverlay (vec4) should have alpha")
	}
	if overlay.Value != [4]float32{1, 0, 0, 0.5} {
		t.Errorf("uOverlay value = %v, want [1 0 0 0.5]", overlay.Value)
	}

	enabled := c.All()[4].(*Bool)
	if !enabled.Value {
		t.Error("uEnabled should default to true")
	}

	center := c.All()[5].(*Vec2)
	if center.Value != [2]float32{0.5, 0.5} || center.Min != 0 || center.Max != 1 {
		t.Errorf("uCenter = %+v, want value [0.5 0.5] min=0 max=1", center)
	}

	params := c.All()[7].(*Vec4)
	if params.Value != [4]float32{1, 2, 3, 1} {
		t.Errorf("uParams value = %v, want 3-element default padded with alpha 1", params.Value)
	}

	quality := c.All()[8].(*Dropdown)
	if quality.Value != 1 || len(quality.Options) != 3 || quality.Options[2] != "High" {
		t.Errorf("uQuality = %+v, want value=1 options=[Low Medium High]", quality)
	}
}

func TestScan_SkipsBadAnnotations(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   int
	}{
		{
			name: "unknown directive skipped",
			source: `// @knob(min=0)
uniform float uA;
// @slider(min=0)
uniform float uB;`,
			want: 1,
		},
		{
			name: "slider on unsupported type skipped",
			source: `// @slider(min=0)
uniform vec3 uA;`,
			want: 0,
		},
		{
			name: "color on scalar skipped",
			source: `// @color(default=#FF0000)
uniform float uA;`,
			want: 0,
		},
		{
			name: "checkbox on float skipped",
			source: `// @checkbox(default=true)
uniform float uA;`,
			want: 0,
		},
		{
			name: "vec directive with mismatched type skipped",
			source: `// @vec2(default=1,2)
uniform vec3 uA;`,
			want: 0,
		},
		{
			name: "dropdown without options skipped",
			source: `// @dropdown(default=0)
uniform int uA;`,
			want: 0,
		},
		{
			name: "annotation with no declaration skipped",
			source: `// @slider(min=0)
void main() {}`,
			want: 0,
		},
		{
			name: "malformed params still build with defaults",
			source: `// @slider(min max)
uniform float uA;`,
			want: 1,
		},
		{
			name: "plain comments ignored",
			source: `// just a comment
uniform float uA;`,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Scan(tt.source).Len(); got != tt.want {
				t.Errorf("Scan() produced %d descriptors, want %d", got, tt.want)
			}
		})
	}
}

func TestScan_MalformedParamsUseDefaults(t *testing.T) {
	// The parameter list fails to parse, so every lookup falls back to the
	// documented directive defaults.
	c := Scan("// @slider(min max)\nuniform float uA;")
	if c.Len() != 1 {
		t.Fatalf("Scan() produced %d descriptors, want 1", c.Len())
	}
	u := c.All()[0].(*Float)
	if u.Min != 0 || u.Max != 1 || u.Default != 0 || u.Step != 0.01 {
		t.Errorf("defaults = %+v, want min=0 max=1 default=0 step=0.01", u)
	}
}

func TestScan_BlankLinesBetweenAnnotationAndDeclaration(t *testing.T) {
	c := Scan("// @slider(default=0.5)\n\n\t\n\nuniform float uA;")
	if c.Len() != 1 {
		t.Fatalf("Scan() produced %d descriptors, want 1", c.Len())
	}
}

func TestScan_GroupAndTooltip(t *testing.T) {
	c := Scan(`// @slider(min=0, group="Lighting", tooltip="sun height")
uniform float uSun;`)
	if c.Len() != 1 {
		t.Fatalf("Scan() produced %d descriptors, want 1", c.Len())
	}
	base := c.All()[0].Common()
	if base.Group != "Lighting" {
		t.Errorf("group = %q, want %q", base.Group, "Lighting")
	}
	if base.Tooltip != "sun height" {
		t.Errorf("tooltip = %q, want %q", base.Tooltip, "sun height")
	}
}

func TestScan_WGSLDeclarations(t *testing.T) {
	c := Scan(`// @slider(min=0.0, max=2.0, default=1.0)
@group(0) @binding(0) var<uniform> uSpeed: f32;

// @slider(min=1, max=8, default=4)
@group(0) @binding(1) var<uniform> uOctaves: i32;

// @color(default=#FF8800)
@group(0) @binding(2) var<uniform> uTint: vec3<f32>;

// @vec2(default=0.5,0.5)
@group(0) @binding(3) var<uniform> uCenter: vec2f;
`)
	if c.Len() != 4 {
		t.Fatalf("Scan() produced %d descriptors, want 4", c.Len())
	}

	speed := c.All()[0].(*Float)
	if speed.Value != 1 || speed.Max != 2 {
		t.Errorf("uSpeed = %+v, want value=1 max=2", speed)
	}
	if _, ok := c.All()[1].(*Int); !ok {
		t.Errorf("uOctaves (i32) scanned as %T, want *Int", c.All()[1])
	}
	tint := c.All()[2].(*Color)
	if tint.HasAlpha {
		t.Error("uTint (vec3<f32>) should not have alpha")
	}
	if _, ok := c.All()[3].(*Vec2); !ok {
		t.Errorf("uCenter (vec2f) scanned as %T, want *Vec2", c.All()[3])
	}
}

func TestScan_DuplicateNamesAreIndependent(t *testing.T) {
	c := Scan(`// @slider(default=1)
uniform float uA;
// @slider(default=2)
uniform float uA;`)
	if c.Len() != 2 {
		t.Fatalf("Scan() produced %d descriptors, want 2", c.Len())
	}
	if c.All()[0].(*Float).Value == c.All()[1].(*Float).Value {
		t.Error("duplicate-name descriptors should keep their own defaults")
	}
}

func BenchmarkScan(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		Scan(sampleSource)
	}
}
