package uniform

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser capitalizes word initials without lower-casing the rest, so
// already-capitalized camel-case words survive unchanged.
var titleCaser = cases.Title(language.English, cases.NoLower)

// DisplayName derives a human-readable label from a uniform identifier.
// A leading "u" or "_" prefix is stripped when followed by an uppercase
// letter, camel-case transitions and underscores become spaces, and each
// word is capitalized.
//
//	DisplayName("uMySpeed")     == "My Speed"
//	DisplayName("speed_factor") == "Speed Factor"
func DisplayName(name string) string {
	start := 0
	if len(name) > 1 && (name[0] == 'u' || name[0] == '_') && isUpper(name[1]) {
		start = 1
	}

	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := start; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_':
			b.WriteByte(' ')
		case i > start && isUpper(c) && !isUpper(name[i-1]):
			b.WriteByte(' ')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}

	return titleCaser.String(b.String())
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
