package annot

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gogpu/shaderlab/internal/logging"
)

// Grammar:
//
//	params := param (',' param)*
//	param  := IDENT '=' value
//	value  := number | string | array | '#' hexdigits
//	array  := '[' elements ']' | number (',' number)+
//
// A bare number immediately followed by a comma and another number starts
// an unbracketed array. Arrays hold only numbers or only strings; when
// both appear the string interpretation wins.

// Parse lexes and parses an annotation parameter string. Parse never
// fails: a malformed parameter list (missing '=', dangling brackets) is
// logged and degrades to an empty map, so every lookup falls back to its
// default. Individual malformed values are skipped with a warning.
func Parse(input string) ParamMap {
	return ParseTokens(Lex(input))
}

// ParseTokens parses an already-lexed token stream. See Parse.
func ParseTokens(tokens []Token) ParamMap {
	if len(tokens) == 0 {
		tokens = []Token{{Kind: TokenEndOfInput}}
	}
	p := &parser{tokens: tokens}
	params, err := p.parseParams()
	if err != nil {
		logging.Get().Error("annotation parse error",
			slog.String("component", "annot"),
			slog.Any("error", err))
		return ParamMap{}
	}
	return params
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) current() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EndOfInput
	}
	return p.tokens[p.pos]
}

func (p *parser) peek(offset int) Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *parser) check(kind TokenKind) bool {
	return p.current().Kind == kind
}

func (p *parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *parser) expect(kind TokenKind, msg string) error {
	if p.match(kind) {
		return nil
	}
	return fmt.Errorf("%s (got %q)", msg, p.current().Text)
}

func (p *parser) parseParams() (ParamMap, error) {
	params := ParamMap{}

	for !p.check(TokenEndOfInput) && !p.check(TokenParenClose) {
		if !p.check(TokenIdentifier) {
			logging.Get().Warn("expected parameter name",
				slog.String("component", "annot"),
				slog.String("got", p.current().Text))
			p.advance()
			continue
		}

		key := p.current().Text
		p.advance()

		if err := p.expect(TokenEquals, "expected '=' after parameter name"); err != nil {
			return nil, err
		}

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		params[key] = value

		if p.match(TokenComma) {
			continue
		}
		break
	}

	return params, nil
}

func (p *parser) parseValue() (ParamValue, error) {
	switch {
	case p.check(TokenHash):
		return p.parseHexColor()

	case p.check(TokenString):
		v := p.current().Text
		p.advance()
		return String(v), nil

	case p.check(TokenNumber):
		// Two numbers joined by a comma start an unbracketed array.
		if p.peek(1).Kind == TokenComma && p.peek(2).Kind == TokenNumber {
			return p.parseArray()
		}
		v := p.number(p.current().Text)
		p.advance()
		return Number(v), nil

	case p.check(TokenIdentifier):
		// Bare words like true, false, or enum names.
		v := p.current().Text
		p.advance()
		return String(v), nil

	case p.check(TokenBracketOpen):
		return p.parseArray()
	}

	logging.Get().Warn("unexpected token in value",
		slog.String("component", "annot"),
		slog.String("got", p.current().Text))
	p.advance()
	return String(""), nil
}

// parseArray collects homogeneous elements. The numeric interpretation is
// abandoned as soon as any string or identifier element appears; numbers
// gathered so far are then discarded in favor of the string list.
func (p *parser) parseArray() (ParamValue, error) {
	var numbers []float64
	var strings []string
	numeric := true

	hasBrackets := p.match(TokenBracketOpen)

	for !p.check(TokenEndOfInput) && !p.check(TokenBracketClose) {
		switch {
		case p.check(TokenNumber):
			numbers = append(numbers, p.number(p.current().Text))
			p.advance()
		case p.check(TokenString), p.check(TokenIdentifier):
			numeric = false
			strings = append(strings, p.current().Text)
			p.advance()
		default:
			goto done
		}

		if p.match(TokenComma) {
			continue
		}
		break
	}
done:

	if hasBrackets {
		if err := p.expect(TokenBracketClose, "expected ']' after array"); err != nil {
			return ParamValue{}, err
		}
	}

	if numeric && len(numbers) > 0 {
		return Numbers(numbers), nil
	}
	if len(strings) > 0 {
		return Strings(strings), nil
	}
	return Numbers(nil), nil
}

// parseHexColor reads '#' followed by 6 (RRGGBB) or 8 (RRGGBBAA) hex
// digits into a 4-element numeric array in [0,1]. Alpha defaults to 1
// for the 6-digit form. Any other length warns and yields white.
func (p *parser) parseHexColor() (ParamValue, error) {
	if err := p.expect(TokenHash, "expected '#' for hex color"); err != nil {
		return ParamValue{}, err
	}

	if !p.check(TokenIdentifier) && !p.check(TokenNumber) {
		logging.Get().Error("expected hex digits after '#'",
			slog.String("component", "annot"))
		return Numbers([]float64{1, 1, 1}), nil
	}

	hex := p.current().Text
	p.advance()

	if len(hex) != 6 && len(hex) != 8 {
		logging.Get().Warn("invalid hex color format",
			slog.String("component", "annot"),
			slog.String("value", "#"+hex))
		return Numbers([]float64{1, 1, 1, 1}), nil
	}

	channels := []float64{0, 0, 0, 1}
	for i := 0; i*2 < len(hex); i++ {
		b, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			logging.Get().Warn("invalid hex color digits",
				slog.String("component", "annot"),
				slog.String("value", "#"+hex))
			return Numbers([]float64{1, 1, 1, 1}), nil
		}
		channels[i] = float64(b) / 255.0
	}

	return Numbers(channels), nil
}

// number converts a lexed number token. The lexer accepts a few malformed
// shapes (e.g. a dangling exponent); those warn and read as zero.
func (p *parser) number(text string) float64 {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		logging.Get().Warn("malformed number",
			slog.String("component", "annot"),
			slog.String("value", text))
		return 0
	}
	return f
}
