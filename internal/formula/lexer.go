package formula

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
	tokDot
	tokComma
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

// lex tokenizes a formula. Only identifiers, numeric literals, the four
// arithmetic operators, parentheses, dots and commas are legal input.
func lex(text string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '+':
			toks = append(toks, token{kind: tokPlus, pos: i})
			i++
		case c == '-':
			toks = append(toks, token{kind: tokMinus, pos: i})
			i++
		case c == '*':
			toks = append(toks, token{kind: tokStar, pos: i})
			i++
		case c == '/':
			toks = append(toks, token{kind: tokSlash, pos: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, pos: i})
			i++
		case c == '.':
			// A dot starting a number ("." followed by a digit) is part
			// of the literal; otherwise it is the method-call separator.
			if i+1 < len(text) && isDigit(text[i+1]) {
				tok, n, err := lexNumber(text, i)
				if err != nil {
					return nil, err
				}
				toks = append(toks, tok)
				i = n
			} else {
				toks = append(toks, token{kind: tokDot, pos: i})
				i++
			}
		case c == ',':
			toks = append(toks, token{kind: tokComma, pos: i})
			i++
		case isDigit(c):
			tok, n, err := lexNumber(text, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = n
		case isIdentStart(rune(c)):
			start := i
			for i < len(text) && isIdentPart(rune(text[i])) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: text[start:i], pos: start})
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", c, i)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(text)})
	return toks, nil
}

func lexNumber(text string, start int) (token, int, error) {
	i := start
	for i < len(text) && (isDigit(text[i]) || text[i] == '.') {
		i++
	}
	lit := text[start:i]
	if strings.Count(lit, ".") > 1 {
		return token{}, 0, fmt.Errorf("malformed number %q at position %d", lit, start)
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return token{}, 0, fmt.Errorf("malformed number %q at position %d", lit, start)
	}
	return token{kind: tokNumber, text: lit, num: v, pos: start}, i, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentPart(r rune) bool { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }
