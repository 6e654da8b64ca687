// Package annot parses the parameter lists of shader annotation comments
// such as `@slider(min=0.0, max=1.0, default=0.5)`.
//
// Parsing is two-stage: Lex turns the raw parameter string into a flat
// token stream, and Parse consumes the stream into a ParamMap of typed
// values. Both stages are lossy-but-forgiving: unrecognized characters
// become Invalid tokens, malformed parameter lists degrade to an empty
// map, and callers fall back to per-key defaults through the typed
// accessors (Number, Str, Bool, ...).
package annot

// TokenKind represents the type of token.
type TokenKind uint8

const (
	// TokenIdentifier is a word such as "min", "default" or "true".
	TokenIdentifier TokenKind = iota
	// TokenNumber is a numeric literal such as "0.5", "-10" or "1e-5".
	TokenNumber
	// TokenString is a quoted string with its quotes stripped.
	TokenString
	TokenEquals       // =
	TokenComma        // ,
	TokenParenOpen    // (
	TokenParenClose   // )
	TokenBracketOpen  // [
	TokenBracketClose // ]
	TokenHash         // # (hex colors)
	// TokenEndOfInput terminates every token stream exactly once.
	TokenEndOfInput
	// TokenInvalid is a single unrecognized character.
	TokenInvalid
)

var tokenKindNames = [...]string{
	TokenIdentifier:   "Identifier",
	TokenNumber:       "Number",
	TokenString:       "String",
	TokenEquals:       "Equals",
	TokenComma:        "Comma",
	TokenParenOpen:    "ParenOpen",
	TokenParenClose:   "ParenClose",
	TokenBracketOpen:  "BracketOpen",
	TokenBracketClose: "BracketClose",
	TokenHash:         "Hash",
	TokenEndOfInput:   "EndOfInput",
	TokenInvalid:      "Invalid",
}

// String returns the token kind name for diagnostics.
func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "Unknown"
}

// Token is a single lexeme with its kind and byte offset in the input.
// Tokens are immutable once produced.
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
}
