package uniform

import "testing"

func TestCollection_AdoptValues_PreservesSameKind(t *testing.T) {
	v1 := Scan(`// @slider(min=0, max=10, default=1)
uniform float uSpeed;`)
	v1.All()[0].(*Float).Set(3.5)

	// v2 redeclares uSpeed as float with different bounds.
	v2 := Scan(`// @slider(min=0, max=1, default=0.5)
uniform float uSpeed;`)
	v2.AdoptValues(v1)

	if got := v2.All()[0].(*Float).Value; got != 3.5 {
		t.Errorf("preserved value = %v, want 3.5 (bounds change must not clamp)", got)
	}
}

func TestCollection_AdoptValues_KindChangeFallsBackToDefault(t *testing.T) {
	v1 := Scan(`// @slider(min=0, max=10, default=1)
uniform float uSpeed;`)
	v1.All()[0].(*Float).Set(3.5)

	// v2 redeclares uSpeed as int.
	v2 := Scan(`// @slider(min=0, max=10, default=2)
uniform int uSpeed;`)
	v2.AdoptValues(v1)

	if got := v2.All()[0].(*Int).Value; got != 2 {
		t.Errorf("re-typed uniform value = %v, want its own default 2", got)
	}
}

func TestCollection_AdoptValues_AllKinds(t *testing.T) {
	src := `// @slider(default=0)
uniform float uF;
// @slider(default=0)
uniform int uI;
// @checkbox(default=false)
uniform int uB;
// @vec2(default=0,0)
uniform vec2 uV2;
// @vec3(default=0,0,0)
uniform vec3 uV3;
// @vec4(default=0,0,0,0)
uniform vec4 uV4;
// @color(default=0,0,0)
uniform vec3 uC;
// @dropdown(options=["a","b","c"], default=0)
uniform int uD;`

	v1 := Scan(src)
	v1.All()[0].(*Float).Value = 1.5
	v1.All()[1].(*Int).Value = 7
	v1.All()[2].(*Bool).Value = true
	v1.All()[3].(*Vec2).Value = [2]float32{1, 2}
	v1.All()[4].(*Vec3).Value = [3]float32{1, 2, 3}
	v1.All()[5].(*Vec4).Value = [4]float32{1, 2, 3, 4}
	v1.All()[6].(*Color).Value = [4]float32{0.5, 0.25, 0.75, 1}
	v1.All()[7].(*Dropdown).Value = 2

	v2 := Scan(src)
	v2.AdoptValues(v1)

	if v2.All()[0].(*Float).Value != 1.5 {
		t.Error("float value not preserved")
	}
	if v2.All()[1].(*Int).Value != 7 {
		t.Error("int value not preserved")
	}
	if !v2.All()[2].(*Bool).Value {
		t.Error("bool value not preserved")
	}
	if v2.All()[3].(*Vec2).Value != [2]float32{1, 2} {
		t.Error("vec2 value not preserved")
	}
	if v2.All()[4].(*Vec3).Value != [3]float32{1, 2, 3} {
		t.Error("vec3 value not preserved")
	}
	if v2.All()[5].(*Vec4).Value != [4]float32{1, 2, 3, 4} {
		t.Error("vec4 value not preserved")
	}
	if v2.All()[6].(*Color).Value != [4]float32{0.5, 0.25, 0.75, 1} {
		t.Error("color value not preserved")
	}
	if v2.All()[7].(*Dropdown).Value != 2 {
		t.Error("dropdown value not preserved")
	}
}

func TestCollection_AdoptValues_DropdownIndexClamped(t *testing.T) {
	v1 := Scan(`// @dropdown(options=["a","b","c"], default=2)
uniform int uD;`)
	// v2 shrinks the options list; the preserved index must stay in range.
	v2 := Scan(`// @dropdown(options=["a","b"], default=0)
uniform int uD;`)
	v2.AdoptValues(v1)

	if got := v2.All()[0].(*Dropdown).Value; got != 1 {
		t.Errorf("dropdown index = %d, want clamped to 1", got)
	}
}

func TestCollection_AdoptValues_NilAndMissing(t *testing.T) {
	c := Scan(`// @slider(default=1)
uniform float uA;`)
	c.AdoptValues(nil) // must not panic

	prev := Scan(`// @slider(default=9)
uniform float uOther;`)
	c.AdoptValues(prev)
	if got := c.All()[0].(*Float).Value; got != 1 {
		t.Errorf("value = %v, want default 1 when name missing from prev", got)
	}
}

func TestCollection_ResetDefaults(t *testing.T) {
	c := Scan(`// @slider(min=0, max=10, default=2)
uniform float uA;
// @checkbox(default=false)
uniform int uB;`)
	c.All()[0].(*Float).Set(9)
	c.All()[1].(*Bool).Value = true

	c.ResetDefaults()

	if got := c.All()[0].(*Float).Value; got != 2 {
		t.Errorf("float after reset = %v, want 2", got)
	}
	if c.All()[1].(*Bool).Value {
		t.Error("bool after reset = true, want false")
	}
}

func TestCollection_Groups(t *testing.T) {
	c := Scan(`// @slider(default=1, group="B")
uniform float uA;
// @slider(default=1)
uniform float uB;
// @slider(default=1, group="A")
uniform float uC;
// @slider(default=1, group="B")
uniform float uD;`)

	groups := c.Groups()
	want := []string{"B", "", "A"}
	if len(groups) != len(want) {
		t.Fatalf("Groups() = %v, want %v", groups, want)
	}
	for i := range want {
		if groups[i] != want[i] {
			t.Errorf("Groups()[%d] = %q, want %q", i, groups[i], want[i])
		}
	}

	if got := c.ByGroup("B"); len(got) != 2 {
		t.Errorf("ByGroup(B) returned %d descriptors, want 2", len(got))
	}
}

func TestCollection_Find(t *testing.T) {
	c := Scan(`// @slider(default=1)
uniform float uA;`)
	if _, ok := c.Find("uA"); !ok {
		t.Error("Find(uA) should succeed")
	}
	if _, ok := c.Find("uMissing"); ok {
		t.Error("Find(uMissing) should fail")
	}
}

func TestFloat_SetClamps(t *testing.T) {
	u := &Float{Min: 0, Max: 1}
	u.Set(2)
	if u.Value != 1 {
		t.Errorf("Set(2) = %v, want clamped to 1", u.Value)
	}
	u.Set(-1)
	if u.Value != 0 {
		t.Errorf("Set(-1) = %v, want clamped to 0", u.Value)
	}
}

func TestDropdown_SetClamps(t *testing.T) {
	u := &Dropdown{Options: []string{"a", "b"}}
	u.Set(5)
	if u.Value != 1 {
		t.Errorf("Set(5) = %d, want 1", u.Value)
	}
	u.Set(-3)
	if u.Value != 0 {
		t.Errorf("Set(-3) = %d, want 0", u.Value)
	}
}
