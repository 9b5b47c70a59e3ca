// Package parser builds a snow syntax tree from a token sequence.
//
// The parser is a recursive-descent parser with a single token of lookahead.
// It never backtracks and does not recover: the first unexpected token aborts
// parsing with a SyntaxError positioned at that token.
//
// Grammar, lowest precedence first:
//
//	program  → expr* EOF
//	expr     → "out" expr
//	         | "if" comp block ( "else" block )?
//	         | "loop" block
//	         | "repeat" comp block
//	         | "break"
//	         | comp
//	comp     → additive ( ( "<" | ">" | "<=" | ">=" | "==" | "!=" ) additive )*
//	additive → term ( ( "+" | "-" ) term )*
//	term     → factor ( ( "*" | "/" ) factor )*
//	factor   → "(" expr ")" | INT | FLOAT | STRING
//	         | IDENT "=" expr | IDENT ":=" expr | IDENT
//	block    → "{" expr* "}"
package parser

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ardnew/snow/lang/ast"
	"github.com/ardnew/snow/lang/diag"
	"github.com/ardnew/snow/lang/token"
)

// DefaultMaxDepth bounds how deeply expressions may nest: parentheses,
// statements inside blocks, assignment values and operator chains each add a
// level. Users may modify this before parsing to change the default.
//
//nolint:gochecknoglobals
var DefaultMaxDepth = 10000

// Option configures [Parse].
type Option func(*parser)

// WithMaxDepth sets the nesting limit, overriding [DefaultMaxDepth]. Input
// nested deeper fails with a SyntaxError instead of exhausting the stack.
func WithMaxDepth(depth int) Option {
	return func(p *parser) { p.maxDepth = depth }
}

// Parse builds the statement nodes of a program from tokens, which should be
// terminated by a [token.EOF] as produced by the lexer.
func Parse(tokens []token.Token, opts ...Option) ([]ast.Node, error) {
	p := parser{tokens: tokens, maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(&p)
	}

	nodes := make([]ast.Node, 0)

	for !p.eof() {
		n, err := p.expr()
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, n)
	}

	return nodes, nil
}

// parser holds the parser state.
type parser struct {
	tokens   []token.Token
	pos      int
	depth    int
	maxDepth int
}

// enter descends one nesting level, failing at the current token once the
// limit is exceeded.
func (p *parser) enter() error {
	p.depth++

	if p.depth > p.maxDepth {
		cur := p.current()

		return diag.Syntax(cur.Span.Start, "expression nested too deeply").
			With(slog.Int("max_depth", p.maxDepth))
	}

	return nil
}

// expr parses a statement-level expression.
func (p *parser) expr() (ast.Node, error) {
	defer func(depth int) { p.depth = depth }(p.depth)

	if err := p.enter(); err != nil {
		return nil, err
	}

	cur := p.current()

	if cur.Type == token.Keyword {
		switch cur.Text() {
		case token.KwOut:
			return p.out()
		case token.KwIf:
			return p.ifElse()
		case token.KwLoop:
			return p.loop()
		case token.KwRepeat:
			return p.repeat()
		case token.KwBreak:
			p.advance()

			return &ast.Break{Loc: cur.Span}, nil
		}
	}

	return p.comp()
}

func (p *parser) out() (ast.Node, error) {
	start := p.advance().Span

	child, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &ast.Out{Child: child, Loc: start.Join(child.Span())}, nil
}

func (p *parser) ifElse() (ast.Node, error) {
	start := p.advance().Span

	cond, err := p.comp()
	if err != nil {
		return nil, err
	}

	children, end, err := p.block()
	if err != nil {
		return nil, err
	}

	var elseChildren []ast.Node

	if p.current().Is(token.Keyword, token.KwElse) {
		p.advance()

		elseChildren, end, err = p.block()
		if err != nil {
			return nil, err
		}
	}

	return &ast.If{
		Cond:     cond,
		Children: children,
		Else:     elseChildren,
		Loc:      start.Join(end),
	}, nil
}

func (p *parser) loop() (ast.Node, error) {
	start := p.advance().Span

	children, end, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.Loop{Children: children, Loc: start.Join(end)}, nil
}

func (p *parser) repeat() (ast.Node, error) {
	start := p.advance().Span

	count, err := p.comp()
	if err != nil {
		return nil, err
	}

	children, end, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ast.Repeat{Count: count, Children: children, Loc: start.Join(end)}, nil
}

// block parses "{" expr* "}" and returns the statements along with the span
// of the closing brace. The returned slice is never nil.
func (p *parser) block() ([]ast.Node, token.Span, error) {
	if cur := p.current(); cur.Type != token.LCurly {
		return nil, token.Span{}, unexpected(cur).With(slog.String("expected", "{"))
	}

	p.advance()

	children := make([]ast.Node, 0)

	for p.current().Type != token.RCurly {
		if p.eof() {
			return nil, token.Span{}, diag.Syntax(p.current().Span.Start, "unterminated block, expected '}'").
				With(slog.String("expected", "}"))
		}

		n, err := p.expr()
		if err != nil {
			return nil, token.Span{}, err
		}

		children = append(children, n)
	}

	end := p.advance().Span

	return children, end, nil
}

// comp parses an additive expression optionally followed by a chain of
// comparisons. Each comparison's right operand becomes the next one's left
// operand.
func (p *parser) comp() (ast.Node, error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}

	if !p.current().Type.IsComparison() {
		return left, nil
	}

	chain := &ast.ComparisonChain{}

	for p.current().Type.IsComparison() {
		op := p.advance()

		right, err := p.additive()
		if err != nil {
			return nil, err
		}

		chain.Comparisons = append(chain.Comparisons, &ast.Comparison{
			Left:  left,
			Op:    op,
			Right: right,
		})

		left = right
	}

	return chain, nil
}

func (p *parser) additive() (ast.Node, error) {
	defer func(depth int) { p.depth = depth }(p.depth)

	left, err := p.term()
	if err != nil {
		return nil, err
	}

	// Each operator nests the tree built so far one level deeper.
	for p.current().Type.IsAdditive() {
		if err := p.enter(); err != nil {
			return nil, err
		}

		op := p.advance()

		right, err := p.term()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryOperation{Left: left, Op: op, Right: right}
	}

	return left, nil
}

func (p *parser) term() (ast.Node, error) {
	defer func(depth int) { p.depth = depth }(p.depth)

	left, err := p.factor()
	if err != nil {
		return nil, err
	}

	// Each operator nests the tree built so far one level deeper.
	for p.current().Type.IsMultiplicative() {
		if err := p.enter(); err != nil {
			return nil, err
		}

		op := p.advance()

		right, err := p.factor()
		if err != nil {
			return nil, err
		}

		left = &ast.BinaryOperation{Left: left, Op: op, Right: right}
	}

	return left, nil
}

func (p *parser) factor() (ast.Node, error) {
	cur := p.current()

	switch cur.Type {
	case token.LParen:
		p.advance()

		n, err := p.expr()
		if err != nil {
			return nil, err
		}

		if closing := p.current(); closing.Type != token.RParen {
			return nil, unexpected(closing).With(slog.String("expected", ")"))
		}

		p.advance()

		return n, nil

	case token.Int, token.Float:
		p.advance()

		return &ast.NumberLiteral{Value: cur.Value, Loc: cur.Span}, nil

	case token.String:
		p.advance()

		return &ast.StringLiteral{Value: cur.Text(), Loc: cur.Span}, nil

	case token.Ident:
		p.advance()

		name := cur.Text()

		switch p.current().Type {
		case token.Eq:
			p.advance()

			value, err := p.expr()
			if err != nil {
				return nil, err
			}

			return &ast.VarAssign{Name: name, Value: value, Loc: cur.Span.Join(value.Span())}, nil

		case token.Walrus:
			p.advance()

			value, err := p.expr()
			if err != nil {
				return nil, err
			}

			return &ast.WalrusAssign{Name: name, Value: value, Loc: cur.Span.Join(value.Span())}, nil
		}

		return &ast.VarAccess{Name: name, Loc: cur.Span}, nil
	}

	return nil, unexpected(cur)
}

// current returns the lookahead token. Past the end of the slice it returns a
// synthetic EOF so that a token sequence missing its terminator still ends
// cleanly.
func (p *parser) current() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}

	end := 0
	if n := len(p.tokens); n > 0 {
		end = p.tokens[n-1].Span.End
	}

	return token.Token{Type: token.EOF, Span: token.Span{Start: end, End: end}}
}

// advance consumes and returns the lookahead token.
func (p *parser) advance() token.Token {
	tok := p.current()

	if p.pos < len(p.tokens) {
		p.pos++
	}

	return tok
}

func (p *parser) eof() bool { return p.current().Type == token.EOF }

// unexpected returns a SyntaxError positioned at tok.
func unexpected(tok token.Token) *diag.Error {
	return diag.Syntax(tok.Span.Start, "unexpected "+describe(tok)).
		With(slog.String("token", tok.String()))
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.Keyword:
		return "keyword '" + tok.Text() + "'"
	case token.Ident:
		return "identifier '" + tok.Text() + "'"
	case token.String:
		return "string " + strconv.Quote(tok.Text())
	case token.Int, token.Float:
		return "number " + fmt.Sprint(tok.Value)
	default:
		return "'" + tok.Type.Symbol() + "'"
	}
}
