package style

import "fmt"

// Statement is one parsed line of a style or mdlrc file: a name followed by
// positional arguments and then options.
//
//	rule 'MD013', :line_length => 80, tables: false
type Statement struct {
	Name    string
	Args    []any
	Options []Option
	Pos     Pos
}

// ParseStatements tokenizes and parses src into statements without
// interpreting their names. path is used only for positions and for
// expanding #{File.dirname(__FILE__)} in double-quoted strings.
func ParseStatements(path string, src []byte) ([]Statement, error) {
	prs := &parser{lex: newLexer(path, src)}
	if err := prs.advance(); err != nil {
		return nil, err
	}

	var stmts []Statement
	for {
		for prs.tok.kind == tokNewline || prs.tok.kind == tokSemicolon {
			if err := prs.advance(); err != nil {
				return nil, err
			}
		}
		if prs.tok.kind == tokEOF {
			return stmts, nil
		}

		stmt, err := prs.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) parseStatement() (Statement, error) {
	if p.tok.kind != tokIdent {
		return Statement{}, syntaxError(p.tok.pos, "expected directive name, found "+p.tok.describe())
	}
	stmt := Statement{Name: p.tok.text, Pos: p.tok.pos}
	if err := p.advance(); err != nil {
		return Statement{}, err
	}

	paren := p.tok.kind == tokLParen
	if paren {
		if err := p.advance(); err != nil {
			return Statement{}, err
		}
	}

	if !p.atArgsEnd(paren) {
		if err := p.parseArgs(&stmt, paren); err != nil {
			return Statement{}, err
		}
	}

	if paren {
		if p.tok.kind != tokRParen {
			return Statement{}, syntaxError(p.tok.pos, `expected ")", found `+p.tok.describe())
		}
		if err := p.advance(); err != nil {
			return Statement{}, err
		}
	}

	switch p.tok.kind {
	case tokNewline, tokSemicolon, tokEOF:
		return stmt, nil
	default:
		return Statement{}, syntaxError(p.tok.pos, "unexpected "+p.tok.describe())
	}
}

func (p *parser) atArgsEnd(paren bool) bool {
	if paren {
		return p.tok.kind == tokRParen
	}
	switch p.tok.kind {
	case tokNewline, tokSemicolon, tokEOF:
		return true
	default:
		return false
	}
}

func (p *parser) parseArgs(stmt *Statement, paren bool) error {
	for {
		if p.tok.kind == tokLBrace {
			opts, err := p.parseHash()
			if err != nil {
				return err
			}
			stmt.Options = append(stmt.Options, opts...)
		} else {
			pos := p.tok.pos
			opt, val, err := p.parseOptionOrValue()
			if err != nil {
				return err
			}
			switch {
			case opt != nil:
				stmt.Options = append(stmt.Options, *opt)
			case len(stmt.Options) > 0:
				return syntaxError(pos, "positional argument after options")
			default:
				stmt.Args = append(stmt.Args, val)
			}
		}

		if p.tok.kind != tokComma {
			return nil
		}
		if err := p.advance(); err != nil {
			return err
		}
		if paren && p.tok.kind == tokRParen {
			return nil
		}
	}
}

// parseOptionOrValue parses either `key: value`, `key => value`, or a bare
// value. Exactly one of the first two results is meaningful.
func (p *parser) parseOptionOrValue() (*Option, any, error) {
	if p.tok.kind == tokLabel {
		opt := Option{Key: p.tok.text, Pos: p.tok.pos}
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, nil, err
		}
		opt.Value = val
		return &opt, nil, nil
	}

	pos := p.tok.pos
	val, err := p.parseValue()
	if err != nil {
		return nil, nil, err
	}
	if p.tok.kind != tokArrow {
		return nil, val, nil
	}

	var key string
	switch typed := val.(type) {
	case Symbol:
		key = string(typed)
	case string:
		key = typed
	default:
		return nil, nil, syntaxError(pos, "option key must be a symbol or string")
	}
	if err := p.advance(); err != nil {
		return nil, nil, err
	}
	optVal, err := p.parseValue()
	if err != nil {
		return nil, nil, err
	}
	return &Option{Key: key, Value: optVal, Pos: pos}, nil, nil
}

func (p *parser) parseHash() ([]Option, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	var opts []Option
	for p.tok.kind != tokRBrace {
		pos := p.tok.pos
		opt, _, err := p.parseOptionOrValue()
		if err != nil {
			return nil, err
		}
		if opt == nil {
			return nil, syntaxError(pos, "expected key => value inside braces")
		}
		opts = append(opts, *opt)

		switch p.tok.kind {
		case tokComma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case tokRBrace:
		default:
			return nil, syntaxError(p.tok.pos, `expected "," or "}", found `+p.tok.describe())
		}
	}
	return opts, p.advance()
}

func (p *parser) parseValue() (any, error) {
	tok := p.tok
	switch tok.kind {
	case tokString, tokInt, tokFloat:
		return tok.val, p.advance()
	case tokSymbol:
		return Symbol(tok.text), p.advance()
	case tokIdent:
		var val any
		switch tok.text {
		case "true":
			val = true
		case "false":
			val = false
		case "nil":
			val = nil
		default:
			return nil, syntaxError(tok.pos, fmt.Sprintf("unexpected identifier %q", tok.text))
		}
		return val, p.advance()
	case tokLBracket:
		return p.parseArray()
	default:
		return nil, syntaxError(tok.pos, "expected a value, found "+tok.describe())
	}
}

func (p *parser) parseArray() (any, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	items := []any{}
	for p.tok.kind != tokRBracket {
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, val)

		switch p.tok.kind {
		case tokComma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case tokRBracket:
		default:
			return nil, syntaxError(p.tok.pos, `expected "," or "]", found `+p.tok.describe())
		}
	}
	return items, p.advance()
}
