package parser

import (
	"strings"

	"github.com/roach88/odataq/ast"
)

// Parse turns filter text into a single expression tree. It fails with a
// LexError or SyntaxError; a valid expression followed by leftover tokens is
// a SyntaxError as well.
func Parse(input string) (ast.Node, error) {
	toks, err := Tokenize(input)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != KindEOF {
		return nil, p.errExpected("end of input")
	}
	return expr, nil
}

type parser struct {
	toks []Token
	pos  int
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

func (p *parser) next() Token {
	t := p.toks[p.pos]
	if t.Kind != KindEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(k Kind) (Token, error) {
	if p.peek().Kind != k {
		return Token{}, p.errExpected(k.String())
	}
	return p.next(), nil
}

func (p *parser) errExpected(what string) error {
	found := p.peek()
	desc := found.Kind.String()
	if found.Kind == KindIdent || found.Kind == KindLiteral {
		desc += " '" + found.Text + "'"
	}
	return &SyntaxError{Pos: found.Pos, Expected: what, Found: desc}
}

// parseExpr parses the loosest level of the precedence ladder.
func (p *parser) parseExpr() (ast.Node, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (ast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == KindOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.BoolOp{Op: ast.Or, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (ast.Node, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == KindAnd {
		p.next()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = ast.BoolOp{Op: ast.And, Left: left, Right: right}
	}
	return left, nil
}

var equalityOps = map[Kind]ast.Comparator{
	KindEq: ast.Eq,
	KindNe: ast.Ne,
}

var relationalOps = map[Kind]ast.Comparator{
	KindLt:  ast.Lt,
	KindLe:  ast.Le,
	KindGt:  ast.Gt,
	KindGe:  ast.Ge,
	KindIn:  ast.In,
	KindHas: ast.Has,
}

func (p *parser) parseEquality() (ast.Node, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := equalityOps[p.peek().Kind]
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = ast.Compare{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseRelational() (ast.Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := relationalOps[p.peek().Kind]
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = ast.Compare{Op: op, Left: left, Right: right}
	}
}

var additiveOps = map[Kind]ast.ArithOperator{
	KindAdd: ast.Add,
	KindSub: ast.Sub,
}

var multiplicativeOps = map[Kind]ast.ArithOperator{
	KindMul: ast.Mul,
	KindDiv: ast.Div,
	KindMod: ast.Mod,
}

func (p *parser) parseAdditive() (ast.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := additiveOps[p.peek().Kind]
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.Arithmetic{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseMultiplicative() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := multiplicativeOps[p.peek().Kind]
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.Arithmetic{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (ast.Node, error) {
	switch p.peek().Kind {
	case KindNot:
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.UnaryOp{Op: ast.Not, Operand: operand}, nil
	case KindMinus:
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.UnaryOp{Op: ast.Neg, Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (ast.Node, error) {
	switch p.peek().Kind {
	case KindLiteral:
		t := p.next()
		return ast.Literal{Value: t.Value}, nil
	case KindOpen:
		return p.parseGroupOrList()
	case KindIdent:
		return p.parsePath()
	}
	return nil, p.errExpected("expression")
}

// parseGroupOrList handles both parenthesized expressions and list
// expressions. A single element is a list only with a trailing comma:
// ('a') is a grouped scalar, ('a',) a one-element list.
func (p *parser) parseGroupOrList() (ast.Node, error) {
	if _, err := p.expect(KindOpen); err != nil {
		return nil, err
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	switch p.peek().Kind {
	case KindClose:
		p.next()
		return first, nil
	case KindComma:
		items := []ast.Node{first}
		for p.peek().Kind == KindComma {
			p.next()
			if p.peek().Kind == KindClose {
				break
			}
			item, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if _, err := p.expect(KindClose); err != nil {
			return nil, err
		}
		return ast.ListExpr{Items: items}, nil
	}
	return nil, p.errExpected("',' or ')'")
}

// parsePath handles identifier paths, function calls, and any/all
// quantifiers hanging off a collection path.
func (p *parser) parsePath() (ast.Node, error) {
	name, err := p.expect(KindIdent)
	if err != nil {
		return nil, err
	}

	if p.peek().Kind == KindOpen {
		return p.parseCall(identifierFromToken(name))
	}

	var node ast.Node = identifierFromToken(name)
	for p.peek().Kind == KindSlash {
		p.next()
		switch p.peek().Kind {
		case KindAny, KindAll:
			return p.parseQuantifier(node)
		case KindIdent:
			seg := p.next()
			node = ast.Attribute{Owner: node, Name: seg.Text}
		default:
			return nil, p.errExpected("identifier")
		}
	}
	return node, nil
}

func (p *parser) parseCall(fn ast.Identifier) (ast.Node, error) {
	if _, err := p.expect(KindOpen); err != nil {
		return nil, err
	}

	var args []ast.Node
	if p.peek().Kind != KindClose {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().Kind != KindComma {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(KindClose); err != nil {
		return nil, err
	}
	return ast.Call{Func: fn, Args: args}, nil
}

// parseQuantifier parses the any(...)/all(...) suffix of a collection path.
// The collection expression becomes the first call argument; the lambda, if
// present, the second. all() requires a lambda, any() may omit it.
func (p *parser) parseQuantifier(collection ast.Node) (ast.Node, error) {
	op := p.next() // KindAny or KindAll
	fn := ast.Identifier{Name: strings.ToLower(op.Text)}

	if _, err := p.expect(KindOpen); err != nil {
		return nil, err
	}
	if p.peek().Kind == KindClose {
		if op.Kind == KindAll {
			return nil, p.errExpected("lambda")
		}
		p.next()
		return ast.Call{Func: fn, Args: []ast.Node{collection}}, nil
	}

	variable, err := p.expect(KindIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(KindColon); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(KindClose); err != nil {
		return nil, err
	}

	lambda := ast.Lambda{Variable: variable.Text, Body: body}
	return ast.Call{Func: fn, Args: []ast.Node{collection, lambda}}, nil
}

func identifierFromToken(t Token) ast.Identifier {
	if i := strings.LastIndexByte(t.Text, '.'); i >= 0 {
		return ast.Identifier{Name: t.Text[i+1:], Namespace: t.Text[:i]}
	}
	return ast.Identifier{Name: t.Text}
}
