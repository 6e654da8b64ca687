package naga

import (
	"strconv"
	"strings"
)

// scanBindings extracts uniform variable bindings from WGSL source.
// A line of the form
//
//	@group(0) @binding(2) var<uniform> uSpeed: f32;
//
// maps uSpeed to slot 2. Only the @binding index matters for slot
// resolution; annotated shaders put all their tweakable uniforms in one
// group.
func scanBindings(source string) map[string]int {
	bindings := make(map[string]int)
	for _, line := range strings.Split(source, "\n") {
		s := strings.TrimSpace(line)
		if !strings.HasPrefix(s, "@group") {
			continue
		}
		slot, ok := intAttr(s, "@binding")
		if !ok {
			continue
		}
		name, ok := varName(s)
		if !ok {
			continue
		}
		bindings[name] = slot
	}
	return bindings
}

// intAttr reads the integer argument of attr, e.g. intAttr(s, "@binding")
// on "@binding(3)" yields 3.
func intAttr(line, attr string) (int, bool) {
	i := strings.Index(line, attr+"(")
	if i < 0 {
		return 0, false
	}
	rest := line[i+len(attr)+1:]
	j := strings.IndexByte(rest, ')')
	if j < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest[:j]))
	if err != nil {
		return 0, false
	}
	return n, true
}

// varName returns the identifier declared by the line's var statement,
// skipping an address space qualifier like var<uniform>.
func varName(line string) (string, bool) {
	i := indexWord(line, "var")
	if i < 0 {
		return "", false
	}
	rest := line[i+len("var"):]
	if strings.HasPrefix(rest, "<") {
		j := strings.IndexByte(rest, '>')
		if j < 0 {
			return "", false
		}
		rest = rest[j+1:]
	}
	rest = strings.TrimSpace(rest)

	end := 0
	for end < len(rest) && isWordByte(rest[end]) {
		end++
	}
	if end == 0 {
		return "", false
	}
	return rest[:end], true
}

// indexWord finds word in s at a token boundary (not inside a longer
// identifier).
func indexWord(s, word string) int {
	for from := 0; ; {
		i := strings.Index(s[from:], word)
		if i < 0 {
			return -1
		}
		i += from
		before := i == 0 || !isWordByte(s[i-1])
		afterIdx := i + len(word)
		after := afterIdx >= len(s) || !isWordByte(s[afterIdx])
		if before && after {
			return i
		}
		from = i + 1
	}
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
