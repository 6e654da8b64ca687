package annot

// Lex tokenizes an annotation parameter string. The returned stream always
// ends with exactly one TokenEndOfInput. Whitespace is skipped and never
// emitted. Lex never fails: unrecognized characters are emitted as
// TokenInvalid and lexing continues.
func Lex(input string) []Token {
	tokens := make([]Token, 0, 16)
	pos := 0

	for pos < len(input) {
		c := input[pos]

		if isSpace(c) {
			pos++
			continue
		}

		switch c {
		case '=':
			tokens = append(tokens, Token{TokenEquals, "=", pos})
			pos++
			continue
		case ',':
			tokens = append(tokens, Token{TokenComma, ",", pos})
			pos++
			continue
		case '(':
			tokens = append(tokens, Token{TokenParenOpen, "(", pos})
			pos++
			continue
		case ')':
			tokens = append(tokens, Token{TokenParenClose, ")", pos})
			pos++
			continue
		case '[':
			tokens = append(tokens, Token{TokenBracketOpen, "[", pos})
			pos++
			continue
		case ']':
			tokens = append(tokens, Token{TokenBracketClose, "]", pos})
			pos++
			continue
		case '#':
			tokens = append(tokens, Token{TokenHash, "#", pos})
			pos++
			continue
		}

		// Number: a digit, or '-' immediately followed by a digit.
		if isDigit(c) || (c == '-' && pos+1 < len(input) && isDigit(input[pos+1])) {
			tok, next := lexNumber(input, pos)
			tokens = append(tokens, tok)
			pos = next
			continue
		}

		if isAlpha(c) {
			tok, next := lexIdentifier(input, pos)
			tokens = append(tokens, tok)
			pos = next
			continue
		}

		if c == '"' || c == '\'' {
			tok, next := lexString(input, pos)
			tokens = append(tokens, tok)
			pos = next
			continue
		}

		tokens = append(tokens, Token{TokenInvalid, string(c), pos})
		pos++
	}

	return append(tokens, Token{TokenEndOfInput, "", pos})
}

// lexNumber reads an optional '-', digits, an optional fraction, and an
// optional scientific-notation suffix. It does not validate that the
// result converts cleanly; that is deferred to numeric conversion at
// parse time.
func lexNumber(input string, pos int) (Token, int) {
	start := pos

	if input[pos] == '-' {
		pos++
	}
	for pos < len(input) && isDigit(input[pos]) {
		pos++
	}
	if pos < len(input) && input[pos] == '.' {
		pos++
		for pos < len(input) && isDigit(input[pos]) {
			pos++
		}
	}
	if pos < len(input) && (input[pos] == 'e' || input[pos] == 'E') {
		pos++
		if pos < len(input) && (input[pos] == '+' || input[pos] == '-') {
			pos++
		}
		for pos < len(input) && isDigit(input[pos]) {
			pos++
		}
	}

	return Token{TokenNumber, input[start:pos], start}, pos
}

func lexIdentifier(input string, pos int) (Token, int) {
	start := pos
	for pos < len(input) && isAlphaNumeric(input[pos]) {
		pos++
	}
	return Token{TokenIdentifier, input[start:pos], start}, pos
}

// lexString reads a string delimited by matching '"' or '\''. Backslash
// escapes \n \t \\ \" \' are decoded; any other escaped character passes
// through literally. An unterminated string consumes to end of input.
func lexString(input string, pos int) (Token, int) {
	start := pos
	quote := input[pos]
	pos++

	var value []byte
	for pos < len(input) && input[pos] != quote {
		if input[pos] == '\\' && pos+1 < len(input) {
			pos++
			switch input[pos] {
			case 'n':
				value = append(value, '\n')
			case 't':
				value = append(value, '\t')
			default:
				// Covers \\, \", \' and any other escape: literal pass-through.
				value = append(value, input[pos])
			}
			pos++
		} else {
			value = append(value, input[pos])
			pos++
		}
	}
	if pos < len(input) {
		pos++ // closing quote
	}

	return Token{TokenString, string(value), start}, pos
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
