package formula

import "fmt"

// Grammar:
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/') unary)*
//	unary   := '-' unary | postfix
//	postfix := primary ('.' ident '(' args? ')')*
//	primary := NUMBER | IDENT | '(' expr ')'
//	args    := arg (',' arg)*
//	arg     := '-'? NUMBER
//
// Calls only ever appear after a dot, so a bare identifier can never be
// invoked; there are no functions in scope, only column names.
type node interface{}

type numberNode struct{ value float64 }

type identNode struct{ name string }

type unaryNode struct {
	op      byte
	operand node
}

type binaryNode struct {
	op          byte
	left, right node
}

type callNode struct {
	recv   node
	method string
	args   []float64
}

type parser struct {
	toks []token
	i    int
}

func parse(text string) (node, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("unexpected token at position %d", p.peek().pos)
	}
	return root, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	t := p.peek()
	if t.kind != kind {
		return token{}, fmt.Errorf("expected %s at position %d", what, t.pos)
	}
	return p.next(), nil
}

func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			right, err := p.term()
			if err != nil {
				return nil, err
			}
			left = binaryNode{op: '+', left: left, right: right}
		case tokMinus:
			p.next()
			right, err := p.term()
			if err != nil {
				return nil, err
			}
			left = binaryNode{op: '-', left: left, right: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) term() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokStar:
			p.next()
			right, err := p.unary()
			if err != nil {
				return nil, err
			}
			left = binaryNode{op: '*', left: left, right: right}
		case tokSlash:
			p.next()
			right, err := p.unary()
			if err != nil {
				return nil, err
			}
			left = binaryNode{op: '/', left: left, right: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) unary() (node, error) {
	if p.peek().kind == tokMinus {
		p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: '-', operand: operand}, nil
	}
	return p.postfix()
}

func (p *parser) postfix() (node, error) {
	recv, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokDot {
		p.next()
		name, err := p.expect(tokIdent, "method name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokLParen, "'('"); err != nil {
			return nil, err
		}
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		recv = callNode{recv: recv, method: name.text, args: args}
	}
	return recv, nil
}

func (p *parser) args() ([]float64, error) {
	var args []float64
	if p.peek().kind == tokRParen {
		return args, nil
	}
	for {
		neg := false
		if p.peek().kind == tokMinus {
			p.next()
			neg = true
		}
		t, err := p.expect(tokNumber, "numeric argument")
		if err != nil {
			return nil, err
		}
		v := t.num
		if neg {
			v = -v
		}
		args = append(args, v)
		if p.peek().kind != tokComma {
			return args, nil
		}
		p.next()
	}
}

func (p *parser) primary() (node, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.next()
		return numberNode{value: t.num}, nil
	case tokIdent:
		p.next()
		return identNode{name: t.text}, nil
	case tokLParen:
		p.next()
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, fmt.Errorf("unexpected token at position %d", t.pos)
	}
}
