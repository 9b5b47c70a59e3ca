// Package lexer converts snow source text into a token sequence.
package lexer

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/snow/lang/diag"
	"github.com/ardnew/snow/lang/token"
)

// Lex scans src from left to right and returns its tokens, always terminated
// by a single [token.EOF]. On the first unrecognized character it stops and
// returns a LexError positioned at that character and no tokens.
func Lex(src string) ([]token.Token, error) {
	l := lexer{src: src}

	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		l.tokens = append(l.tokens, tok)

		if tok.Type == token.EOF {
			return l.tokens, nil
		}
	}
}

// lexer holds the scanner state.
type lexer struct {
	src    string
	pos    int
	tokens []token.Token
}

// next scans one token, skipping whitespace and comments before it.
func (l *lexer) next() (token.Token, error) {
	l.skipSpaceAndComments()

	start := l.pos

	if l.eof() {
		return l.emit(token.EOF, nil, start), nil
	}

	r := l.peek()

	switch {
	case isIdentStart(r):
		return l.word(), nil

	case isDigit(r), r == '.' && isDigit(l.peekAt(1)):
		return l.number()

	case r == '"':
		return l.quoted()
	}

	l.advance()

	switch r {
	case '+':
		return l.emit(token.Add, nil, start), nil
	case '-':
		return l.emit(token.Sub, nil, start), nil
	case '*':
		return l.emit(token.Mul, nil, start), nil
	case '/':
		return l.emit(token.Div, nil, start), nil
	case '(':
		return l.emit(token.LParen, nil, start), nil
	case ')':
		return l.emit(token.RParen, nil, start), nil
	case '{':
		return l.emit(token.LCurly, nil, start), nil
	case '}':
		return l.emit(token.RCurly, nil, start), nil

	case '<':
		if l.accept('=') {
			return l.emit(token.LtEq, nil, start), nil
		}

		return l.emit(token.Lt, nil, start), nil

	case '>':
		if l.accept('=') {
			return l.emit(token.GtEq, nil, start), nil
		}

		return l.emit(token.Gt, nil, start), nil

	case '=':
		if l.accept('=') {
			return l.emit(token.DbEq, nil, start), nil
		}

		return l.emit(token.Eq, nil, start), nil

	case '!':
		if l.accept('=') {
			return l.emit(token.NotEq, nil, start), nil
		}

	case ':':
		if l.accept('=') {
			return l.emit(token.Walrus, nil, start), nil
		}
	}

	return token.Token{}, invalid(start, r)
}

// word scans an identifier or keyword.
func (l *lexer) word() token.Token {
	start := l.pos

	for !l.eof() && isIdentContinue(l.peek()) {
		l.advance()
	}

	text := l.src[start:l.pos]
	if token.IsKeyword(text) {
		return l.emit(token.Keyword, text, start)
	}

	return l.emit(token.Ident, text, start)
}

// number scans an integer or floating-point literal. A literal containing a
// '.' is a float; "1." and ".5" are both accepted.
func (l *lexer) number() (token.Token, error) {
	start := l.pos
	float := false

	for !l.eof() {
		r := l.peek()

		if r == '.' && !float {
			float = true

			l.advance()

			continue
		}

		if !isDigit(r) {
			break
		}

		l.advance()
	}

	text := l.src[start:l.pos]

	if float {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token.Token{}, diag.Lex(start, "invalid float literal '"+text+"'").
				Wrap(err)
		}

		return l.emit(token.Float, f, start), nil
	}

	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token.Token{}, diag.Lex(start, "integer literal out of range '"+text+"'").
			Wrap(err)
	}

	return l.emit(token.Int, i, start), nil
}

// quoted scans a double-quoted literal with Go escape sequences.
func (l *lexer) quoted() (token.Token, error) {
	start := l.pos

	l.advance() // opening quote

	for !l.eof() {
		r := l.peek()

		switch r {
		case '\\':
			l.advance()

			if !l.eof() {
				l.advance()
			}

			continue

		case '\n':
			return token.Token{}, diag.Lex(start, "unterminated string literal")

		case '"':
			l.advance()

			text, err := strconv.Unquote(l.src[start:l.pos])
			if err != nil {
				return token.Token{}, diag.Lex(start, "invalid string literal").
					Wrap(err)
			}

			return l.emit(token.String, text, start), nil
		}

		l.advance()
	}

	return token.Token{}, diag.Lex(start, "unterminated string literal")
}

func (l *lexer) emit(t token.Type, v any, start int) token.Token {
	return token.Token{
		Type:  t,
		Value: v,
		Span:  token.Span{Start: start, End: l.pos},
	}
}

func (l *lexer) skipSpaceAndComments() {
	for !l.eof() {
		r := l.peek()

		switch {
		case unicode.IsSpace(r):
			l.advance()

		case r == '#':
			if i := strings.IndexByte(l.src[l.pos:], '\n'); i >= 0 {
				l.pos += i + 1
			} else {
				l.pos = len(l.src)
			}

		default:
			return
		}
	}
}

func (l *lexer) eof() bool { return l.pos >= len(l.src) }

func (l *lexer) peek() rune {
	if l.eof() {
		return utf8.RuneError
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])

	return r
}

// peekAt returns the rune n bytes past the current position. It is only used
// to look past single-byte characters.
func (l *lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.src) {
		return utf8.RuneError
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.pos+n:])

	return r
}

func (l *lexer) advance() {
	if l.eof() {
		return
	}

	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
}

func (l *lexer) accept(r rune) bool {
	if l.peek() == r && !l.eof() {
		l.advance()

		return true
	}

	return false
}

func invalid(offset int, r rune) *diag.Error {
	return diag.Lex(offset, "invalid character "+strconv.QuoteRune(r)).
		With(slog.Int("rune", int(r)))
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
