package uniform

import (
	"log/slog"
	"strings"

	"github.com/chewxy/math32"
	"github.com/gogpu/shaderlab/annot"
	"github.com/gogpu/shaderlab/internal/logging"
)

// Scan extracts annotated uniform descriptors from shader source, in
// source order. The recognized pattern is a line comment
//
//	// @directive(params)
//
// followed, after optional blank lines, by a declaration line
//
//	<qualifier> <type> <identifier>;
//
// or the WGSL equivalent
//
//	@group(0) @binding(1) var<uniform> <identifier>: <type>;
//
// Unknown directives, declared types a directive cannot handle, and
// malformed parameter lists skip that single descriptor with a warning;
// the rest of the source is still scanned.
func Scan(source string) *Collection {
	collection := NewCollection()
	log := logging.Get()

	lines := strings.Split(source, "\n")
	for i := 0; i < len(lines); i++ {
		directive, rawParams, ok := matchAnnotation(lines[i])
		if !ok {
			continue
		}

		// Skip blank lines between the annotation and its declaration.
		j := i + 1
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}
		if j >= len(lines) {
			break
		}
		declType, declName, ok := matchDeclaration(lines[j])
		if !ok {
			log.Warn("annotation without declaration",
				slog.String("component", "uniform"),
				slog.String("directive", "@"+directive))
			continue
		}

		params := annot.Parse(rawParams)
		if d := build(directive, declType, declName, params); d != nil {
			collection.Add(d)
		}
		i = j
	}

	if !collection.Empty() {
		log.Info("scanned annotated uniforms",
			slog.String("component", "uniform"),
			slog.Int("count", collection.Len()))
	}
	return collection
}

// matchAnnotation recognizes `// @name(params)` with the params ending at
// the first ')'.
func matchAnnotation(line string) (name, params string, ok bool) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, "//") {
		return "", "", false
	}
	s = strings.TrimLeft(s, "/")
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "@") {
		return "", "", false
	}
	s = s[1:]

	end := 0
	for end < len(s) && isWordByte(s[end]) {
		end++
	}
	if end == 0 {
		return "", "", false
	}
	name = s[:end]

	rest := strings.TrimSpace(s[end:])
	if !strings.HasPrefix(rest, "(") {
		return "", "", false
	}
	closing := strings.IndexByte(rest, ')')
	if closing < 0 {
		return "", "", false
	}
	return name, rest[1:closing], true
}

// matchDeclaration recognizes GLSL-style `<qualifier> <type> <identifier> ;`
// and WGSL-style `var<uniform> <identifier>: <type>;` declarations, the
// latter with any leading attributes. Anything after the semicolon (e.g.
// a trailing comment) is ignored.
func matchDeclaration(line string) (declType, declName string, ok bool) {
	s := strings.TrimSpace(line)
	if t, n, ok := matchWordDecl(s); ok {
		return t, n, true
	}
	return matchVarDecl(s)
}

func matchWordDecl(s string) (declType, declName string, ok bool) {
	qualifier, s, ok := takeWord(s)
	if !ok || qualifier == "" || qualifier == "var" {
		return "", "", false
	}
	declType, s, ok = takeWord(s)
	if !ok {
		return "", "", false
	}
	declName, s, ok = takeWord(s)
	if !ok {
		return "", "", false
	}
	if !strings.HasPrefix(strings.TrimSpace(s), ";") {
		return "", "", false
	}
	return declType, declName, true
}

func matchVarDecl(s string) (declType, declName string, ok bool) {
	// Drop leading attributes like @group(0) @binding(1).
	for strings.HasPrefix(s, "@") {
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return "", "", false
		}
		s = strings.TrimSpace(s[end+1:])
	}

	word, s, ok := takeWord(s)
	if !ok || word != "var" {
		return "", "", false
	}
	if strings.HasPrefix(s, "<") {
		end := strings.IndexByte(s, '>')
		if end < 0 {
			return "", "", false
		}
		s = s[end+1:]
	}
	declName, s, ok = takeWord(s)
	if !ok {
		return "", "", false
	}
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, ":") {
		return "", "", false
	}
	semi := strings.IndexByte(s, ';')
	if semi < 0 {
		return "", "", false
	}
	return normalizeWGSLType(strings.TrimSpace(s[1:semi])), declName, true
}

// normalizeWGSLType maps WGSL scalar and vector type names onto the
// GLSL names the directive builders dispatch on.
func normalizeWGSLType(t string) string {
	if i := strings.IndexByte(t, '<'); i >= 0 {
		t = t[:i]
	}
	switch t {
	case "f32":
		return "float"
	case "i32", "u32":
		return "int"
	case "vec2f":
		return "vec2"
	case "vec3f":
		return "vec3"
	case "vec4f":
		return "vec4"
	}
	return t
}

func takeWord(s string) (word, rest string, ok bool) {
	s = strings.TrimLeft(s, " \t")
	end := 0
	for end < len(s) && isWordByte(s[end]) {
		end++
	}
	if end == 0 {
		return "", s, false
	}
	return s[:end], s[end:], true
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// build dispatches a directive to its type-specific builder. A nil result
// means the descriptor is skipped.
func build(directive, declType, declName string, params annot.ParamMap) Descriptor {
	switch directive {
	case "slider":
		return buildSlider(declType, declName, params)
	case "color":
		return buildColor(declType, declName, params)
	case "checkbox":
		return buildCheckbox(declType, declName, params)
	case "vec2", "vec3", "vec4":
		return buildVec(directive, declType, declName, params)
	case "dropdown":
		return buildDropdown(declType, declName, params)
	}
	logging.Get().Warn("unknown annotation directive",
		slog.String("component", "uniform"),
		slog.String("directive", "@"+directive),
		slog.String("uniform", declName))
	return nil
}

func newBase(declName string, control ControlKind, params annot.ParamMap) Base {
	return Base{
		Name:    declName,
		Display: DisplayName(declName),
		Tooltip: params.Str("tooltip", ""),
		Group:   params.Str("group", ""),
		Control: control,
		Slot:    UnboundSlot,
	}
}

func buildSlider(declType, declName string, params annot.ParamMap) Descriptor {
	switch declType {
	case "float":
		u := &Float{
			Base:    newBase(declName, ControlSlider, params),
			Min:     float32(params.Number("min", 0)),
			Max:     float32(params.Number("max", 1)),
			Default: float32(params.Number("default", 0)),
			Step:    float32(params.Number("step", 0.01)),
		}
		u.Value = u.Default
		return u
	case "int":
		u := &Int{
			Base:    newBase(declName, ControlSlider, params),
			Min:     int(params.Number("min", 0)),
			Max:     int(params.Number("max", 100)),
			Default: int(params.Number("default", 0)),
		}
		u.Value = u.Default
		return u
	}
	logging.Get().Warn("@slider not supported for declared type",
		slog.String("component", "uniform"),
		slog.String("type", declType),
		slog.String("uniform", declName))
	return nil
}

func buildColor(declType, declName string, params annot.ParamMap) Descriptor {
	if declType != "vec3" && declType != "vec4" {
		logging.Get().Warn("@color requires vec3 or vec4",
			slog.String("component", "uniform"),
			slog.String("type", declType),
			slog.String("uniform", declName))
		return nil
	}

	u := &Color{
		Base:     newBase(declName, ControlColorPicker, params),
		HasAlpha: declType == "vec4",
		Default:  [4]float32{1, 1, 1, 1},
	}
	// A 3-element default on a 4-channel color pads alpha to 1; a
	// 4-element default on a 3-channel color is truncated by HasAlpha.
	if def := params.NumberArray("default"); len(def) >= 3 {
		u.Default = [4]float32{float32(def[0]), float32(def[1]), float32(def[2]), 1}
		if len(def) >= 4 {
			u.Default[3] = float32(def[3])
		}
	}
	u.Value = u.Default
	return u
}

func buildCheckbox(declType, declName string, params annot.ParamMap) Descriptor {
	if declType != "int" && declType != "bool" {
		logging.Get().Warn("@checkbox requires int or bool",
			slog.String("component", "uniform"),
			slog.String("type", declType),
			slog.String("uniform", declName))
		return nil
	}

	u := &Bool{
		Base:    newBase(declName, ControlCheckbox, params),
		Default: params.Bool("default", false),
	}
	u.Value = u.Default
	return u
}

func buildVec(directive, declType, declName string, params annot.ParamMap) Descriptor {
	if declType != directive {
		logging.Get().Warn("vector annotation requires matching declared type",
			slog.String("component", "uniform"),
			slog.String("directive", "@"+directive),
			slog.String("type", declType),
			slog.String("uniform", declName))
		return nil
	}

	minV := float32(params.Number("min", -math32.MaxFloat32))
	maxV := float32(params.Number("max", math32.MaxFloat32))
	step := float32(params.Number("step", 0.01))
	def := params.NumberArray("default")

	switch directive {
	case "vec2":
		u := &Vec2{Base: newBase(declName, ControlVec2, params), Min: minV, Max: maxV, Step: step}
		if len(def) >= 2 {
			u.Default = [2]float32{float32(def[0]), float32(def[1])}
		}
		u.Value = u.Default
		return u
	case "vec3":
		u := &Vec3{Base: newBase(declName, ControlVec3, params), Min: minV, Max: maxV, Step: step}
		if len(def) >= 3 {
			u.Default = [3]float32{float32(def[0]), float32(def[1]), float32(def[2])}
		}
		u.Value = u.Default
		return u
	default:
		u := &Vec4{Base: newBase(declName, ControlVec4, params), Min: minV, Max: maxV, Step: step}
		if len(def) >= 4 {
			u.Default = [4]float32{float32(def[0]), float32(def[1]), float32(def[2]), float32(def[3])}
		} else if len(def) >= 3 {
			// Alpha pads to 1 when only RGB is given.
			u.Default = [4]float32{float32(def[0]), float32(def[1]), float32(def[2]), 1}
		}
		u.Value = u.Default
		return u
	}
}

func buildDropdown(declType, declName string, params annot.ParamMap) Descriptor {
	if declType != "int" {
		logging.Get().Warn("@dropdown requires int",
			slog.String("component", "uniform"),
			slog.String("type", declType),
			slog.String("uniform", declName))
		return nil
	}
	options := params.StringArray("options")
	if len(options) == 0 {
		logging.Get().Warn("@dropdown requires a non-empty options list",
			slog.String("component", "uniform"),
			slog.String("uniform", declName))
		return nil
	}

	u := &Dropdown{
		Base:    newBase(declName, ControlDropdown, params),
		Options: options,
	}
	u.Default = u.clamp(int(params.Number("default", 0)))
	u.Value = u.Default
	return u
}
