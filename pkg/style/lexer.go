package style

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokSemicolon
	tokIdent
	tokLabel
	tokString
	tokSymbol
	tokInt
	tokFloat
	tokComma
	tokArrow
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokLBrace
	tokRBrace
)

//nolint:gochecknoglobals // Read-only lookup table.
var punctuation = map[tokenKind]string{
	tokSemicolon: ";",
	tokComma:     ",",
	tokArrow:     "=>",
	tokLParen:    "(",
	tokRParen:    ")",
	tokLBracket:  "[",
	tokRBracket:  "]",
	tokLBrace:    "{",
	tokRBrace:    "}",
}

type token struct {
	kind tokenKind
	text string // identifier, label or symbol name
	val  any    // decoded literal for strings and numbers
	pos  Pos
}

// describe renders the token for error messages.
func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokNewline:
		return "end of line"
	case tokIdent:
		return fmt.Sprintf("identifier %q", t.text)
	case tokLabel:
		return fmt.Sprintf("label %q", t.text+":")
	case tokString:
		return "string"
	case tokSymbol:
		return "symbol :" + t.text
	case tokInt, tokFloat:
		return "number"
	default:
		return strconv.Quote(punctuation[t.kind])
	}
}

// lexer splits style source into tokens. Newlines are significant except
// inside brackets and after a token that cannot end a statement.
type lexer struct {
	path  string
	src   []byte
	off   int
	line  int
	col   int
	depth int
	last  tokenKind
}

func newLexer(path string, src []byte) *lexer {
	return &lexer{path: path, src: src, line: 1, col: 1, last: tokNewline}
}

func (l *lexer) pos() Pos {
	return Pos{Path: l.path, Line: l.line, Column: l.col}
}

func (l *lexer) peek(n int) byte {
	if l.off+n >= len(l.src) {
		return 0
	}
	return l.src[l.off+n]
}

func (l *lexer) advance() byte {
	c := l.src[l.off]
	l.off++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *lexer) emit(tok token) token {
	l.last = tok.kind
	return tok
}

func (l *lexer) next() (token, error) {
	for {
		for l.off < len(l.src) && isSpace(l.src[l.off]) {
			l.advance()
		}
		if l.off >= len(l.src) {
			return l.emit(token{kind: tokEOF, pos: l.pos()}), nil
		}

		switch c := l.src[l.off]; {
		case c == '#':
			for l.off < len(l.src) && l.src[l.off] != '\n' {
				l.advance()
			}
		case c == '\\' && (l.peek(1) == '\n' || (l.peek(1) == '\r' && l.peek(2) == '\n')):
			l.advance()
			for l.src[l.off] != '\n' {
				l.advance()
			}
			l.advance()
		case c == '\n':
			pos := l.pos()
			l.advance()
			if l.continues() {
				continue
			}
			return l.emit(token{kind: tokNewline, pos: pos}), nil
		default:
			return l.lexToken()
		}
	}
}

// continues reports whether a newline at this point joins the next line.
func (l *lexer) continues() bool {
	if l.depth > 0 {
		return true
	}
	switch l.last {
	case tokComma, tokArrow, tokLabel:
		return true
	default:
		return false
	}
}

func (l *lexer) lexToken() (token, error) {
	pos := l.pos()
	c := l.src[l.off]

	switch {
	case c == '\'' || c == '"':
		str, err := l.lexString(c)
		if err != nil {
			return token{}, err
		}
		return l.emit(token{kind: tokString, val: str, pos: pos}), nil

	case c == ':':
		next := l.peek(1)
		switch {
		case isIdentStart(next):
			l.advance()
			return l.emit(token{kind: tokSymbol, text: l.lexIdent(), pos: pos}), nil
		case next == '"' || next == '\'':
			l.advance()
			str, err := l.lexString(next)
			if err != nil {
				return token{}, err
			}
			return l.emit(token{kind: tokSymbol, text: str, pos: pos}), nil
		default:
			return token{}, syntaxError(pos, `unexpected ":"`)
		}

	case c == '=' && l.peek(1) == '>':
		l.advance()
		l.advance()
		return l.emit(token{kind: tokArrow, pos: pos}), nil

	case isDigit(c) || ((c == '-' || c == '+') && isDigit(l.peek(1))):
		return l.lexNumber()

	case isIdentStart(c):
		name := l.lexIdent()
		if l.off < len(l.src) && l.src[l.off] == ':' && l.peek(1) != ':' {
			l.advance()
			return l.emit(token{kind: tokLabel, text: name, pos: pos}), nil
		}
		return l.emit(token{kind: tokIdent, text: name, pos: pos}), nil
	}

	kind, ok := punctuationKind(c)
	if !ok {
		return token{}, syntaxError(pos, fmt.Sprintf("unexpected character %q", c))
	}
	l.advance()
	switch kind {
	case tokLParen, tokLBracket, tokLBrace:
		l.depth++
	case tokRParen, tokRBracket, tokRBrace:
		if l.depth > 0 {
			l.depth--
		}
	}
	return l.emit(token{kind: kind, pos: pos}), nil
}

func (l *lexer) lexIdent() string {
	start := l.off
	for l.off < len(l.src) && isIdentPart(l.src[l.off]) {
		l.advance()
	}
	if l.off < len(l.src) && (l.src[l.off] == '?' || l.src[l.off] == '!') {
		l.advance()
	}
	return string(l.src[start:l.off])
}

func (l *lexer) lexNumber() (token, error) {
	pos := l.pos()
	var buf strings.Builder
	isFloat := false

	if c := l.src[l.off]; c == '-' || c == '+' {
		buf.WriteByte(l.advance())
	}
	l.lexDigits(&buf)
	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		isFloat = true
		buf.WriteByte(l.advance())
		l.lexDigits(&buf)
	}
	if e := l.peek(0); (e == 'e' || e == 'E') &&
		(isDigit(l.peek(1)) || ((l.peek(1) == '-' || l.peek(1) == '+') && isDigit(l.peek(2)))) {
		isFloat = true
		buf.WriteByte(l.advance())
		if s := l.peek(0); s == '-' || s == '+' {
			buf.WriteByte(l.advance())
		}
		l.lexDigits(&buf)
	}
	if isIdentPart(l.peek(0)) {
		return token{}, syntaxError(pos, "malformed number")
	}

	text := buf.String()
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token{}, syntaxError(pos, fmt.Sprintf("invalid number %q", text))
		}
		return l.emit(token{kind: tokFloat, val: f, pos: pos}), nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return token{}, syntaxError(pos, fmt.Sprintf("invalid number %q", text))
	}
	return l.emit(token{kind: tokInt, val: n, pos: pos}), nil
}

func (l *lexer) lexDigits(buf *strings.Builder) {
	for l.off < len(l.src) {
		c := l.src[l.off]
		switch {
		case isDigit(c):
			buf.WriteByte(l.advance())
		case c == '_' && isDigit(l.peek(1)):
			l.advance()
		default:
			return
		}
	}
}

// lexString reads a quoted string. Single-quoted strings only unescape
// \' and \\; double-quoted strings support the common escapes and a
// limited form of #{} interpolation.
func (l *lexer) lexString(quote byte) (string, error) {
	start := l.pos()
	l.advance()

	var buf strings.Builder
	for {
		if l.off >= len(l.src) {
			return "", syntaxError(start, "unterminated string")
		}
		c := l.advance()
		switch {
		case c == quote:
			return buf.String(), nil
		case c == '\\':
			if l.off >= len(l.src) {
				return "", syntaxError(start, "unterminated string")
			}
			l.unescape(&buf, quote, l.advance())
		case c == '#' && quote == '"' && l.peek(0) == '{':
			expanded, err := l.lexInterpolation()
			if err != nil {
				return "", err
			}
			buf.WriteString(expanded)
		default:
			buf.WriteByte(c)
		}
	}
}

func (l *lexer) unescape(buf *strings.Builder, quote, esc byte) {
	if quote == '\'' {
		if esc != '\'' && esc != '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(esc)
		return
	}
	switch esc {
	case 'n':
		buf.WriteByte('\n')
	case 't':
		buf.WriteByte('\t')
	case 'r':
		buf.WriteByte('\r')
	case 's':
		buf.WriteByte(' ')
	case '0':
		buf.WriteByte(0)
	default:
		buf.WriteByte(esc)
	}
}

// lexInterpolation expands the directory-of-this-file expressions that
// .mdlrc files commonly use to locate a style file next to them.
func (l *lexer) lexInterpolation() (string, error) {
	pos := l.pos()
	l.advance()

	start := l.off
	for l.off < len(l.src) && l.src[l.off] != '}' && l.src[l.off] != '\n' {
		l.advance()
	}
	if l.off >= len(l.src) || l.src[l.off] != '}' {
		return "", syntaxError(pos, "unterminated interpolation")
	}
	expr := strings.TrimSpace(string(l.src[start:l.off]))
	l.advance()

	switch strings.ReplaceAll(expr, " ", "") {
	case "File.dirname(__FILE__)", "__dir__", "File.dirname(__FILE__).to_s":
		if l.path == "" {
			return ".", nil
		}
		return filepath.Dir(l.path), nil
	default:
		return "", syntaxError(pos, fmt.Sprintf("unsupported interpolation #{%s}", expr))
	}
}

func punctuationKind(c byte) (tokenKind, bool) {
	switch c {
	case ';':
		return tokSemicolon, true
	case ',':
		return tokComma, true
	case '(':
		return tokLParen, true
	case ')':
		return tokRParen, true
	case '[':
		return tokLBracket, true
	case ']':
		return tokRBracket, true
	case '{':
		return tokLBrace, true
	case '}':
		return tokRBrace, true
	default:
		return 0, false
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
