package annot

import "strconv"

// ValueKind discriminates the closed set of ParamValue payloads.
type ValueKind uint8

const (
	// ValueNumber is a single float64.
	ValueNumber ValueKind = iota
	// ValueString is a string or bare identifier.
	ValueString
	// ValueNumbers is an ordered list of float64s.
	ValueNumbers
	// ValueStrings is an ordered list of strings.
	ValueStrings
)

// ParamValue is a tagged union over {number, string, number list, string
// list}. No nesting. The zero value is the number 0.
type ParamValue struct {
	kind ValueKind
	num  float64
	str  string
	nums []float64
	strs []string
}

// Number wraps a float64 as a ParamValue.
func Number(v float64) ParamValue { return ParamValue{kind: ValueNumber, num: v} }

// String wraps a string as a ParamValue.
func String(s string) ParamValue { return ParamValue{kind: ValueString, str: s} }

// Numbers wraps an ordered float64 list as a ParamValue.
func Numbers(v []float64) ParamValue { return ParamValue{kind: ValueNumbers, nums: v} }

// Strings wraps an ordered string list as a ParamValue.
func Strings(v []string) ParamValue { return ParamValue{kind: ValueStrings, strs: v} }

// Kind returns the payload discriminator.
func (v ParamValue) Kind() ValueKind { return v.kind }

// ParamMap maps parameter names (case-sensitive) to values. Duplicate
// keys in the source resolve last-write-wins. A missing key always means
// "use the caller's default": the typed accessors below never fail, they
// coerce or fall back.
type ParamMap map[string]ParamValue

// Number returns the value for key coerced to a float64. A string value
// is parsed as a number if possible; anything else yields def.
func (p ParamMap) Number(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch v.kind {
	case ValueNumber:
		return v.num
	case ValueString:
		if f, err := strconv.ParseFloat(v.str, 64); err == nil {
			return f
		}
	}
	return def
}

// Str returns the value for key coerced to a string. A number value is
// formatted; lists yield def.
func (p ParamMap) Str(key, def string) string {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch v.kind {
	case ValueString:
		return v.str
	case ValueNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
	return def
}

// NumberArray returns the value for key as a number list. A scalar number
// becomes a single-element list; anything else yields nil.
func (p ParamMap) NumberArray(key string) []float64 {
	v, ok := p[key]
	if !ok {
		return nil
	}
	switch v.kind {
	case ValueNumbers:
		return v.nums
	case ValueNumber:
		return []float64{v.num}
	}
	return nil
}

// StringArray returns the value for key as a string list. A scalar string
// becomes a single-element list; anything else yields nil.
func (p ParamMap) StringArray(key string) []string {
	v, ok := p[key]
	if !ok {
		return nil
	}
	switch v.kind {
	case ValueStrings:
		return v.strs
	case ValueString:
		return []string{v.str}
	}
	return nil
}

// Bool returns the value for key interpreted as a boolean. Recognized
// (case-insensitively): true/1/yes and false/0/no. Anything else yields
// def.
func (p ParamMap) Bool(key string, def bool) bool {
	switch toLowerASCII(p.Str(key, "")) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return def
}

// toLowerASCII lower-cases ASCII letters only; annotation keywords are
// plain ASCII by construction.
func toLowerASCII(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}
