package visitor

import (
	"fmt"

	"github.com/roach88/odataq/ast"
)

// Transformer rebuilds an expression tree bottom-up. Each field may replace
// one node variant; nil fields keep the default behavior of transforming the
// children and rebuilding the node only when a child actually changed, so
// untouched subtrees are shared with the input. The zero Transformer is the
// identity.
//
// Handlers receive the node with its children already transformed.
type Transformer struct {
	Identifier func(ast.Identifier) (ast.Node, error)
	Attribute  func(ast.Attribute) (ast.Node, error)
	Literal    func(ast.Literal) (ast.Node, error)
	List       func(ast.ListExpr) (ast.Node, error)
	Unary      func(ast.UnaryOp) (ast.Node, error)
	Bool       func(ast.BoolOp) (ast.Node, error)
	Compare    func(ast.Compare) (ast.Node, error)
	Arithmetic func(ast.Arithmetic) (ast.Node, error)
	Call       func(ast.Call) (ast.Node, error)
	Lambda     func(ast.Lambda) (ast.Node, error)
}

// Transform returns the rewritten tree.
func (tr *Transformer) Transform(n ast.Node) (ast.Node, error) {
	rebuilt, err := tr.rebuild(n)
	if err != nil {
		return nil, err
	}
	return tr.dispatch(rebuilt)
}

// rebuild transforms the children of n and reassembles the node. The node
// is returned unchanged when every child came back equal.
func (tr *Transformer) rebuild(n ast.Node) (ast.Node, error) {
	switch t := n.(type) {
	case ast.Identifier, ast.Literal:
		return n, nil
	case ast.Attribute:
		owner, err := tr.Transform(t.Owner)
		if err != nil {
			return nil, err
		}
		if ast.Equal(owner, t.Owner) {
			return t, nil
		}
		return ast.Attribute{Owner: owner, Name: t.Name}, nil
	case ast.ListExpr:
		items, changed, err := tr.transformSlice(t.Items)
		if err != nil {
			return nil, err
		}
		if !changed {
			return t, nil
		}
		return ast.ListExpr{Items: items}, nil
	case ast.UnaryOp:
		operand, err := tr.Transform(t.Operand)
		if err != nil {
			return nil, err
		}
		if ast.Equal(operand, t.Operand) {
			return t, nil
		}
		return ast.UnaryOp{Op: t.Op, Operand: operand}, nil
	case ast.BoolOp:
		left, right, changed, err := tr.transformPair(t.Left, t.Right)
		if err != nil {
			return nil, err
		}
		if !changed {
			return t, nil
		}
		return ast.BoolOp{Op: t.Op, Left: left, Right: right}, nil
	case ast.Compare:
		left, right, changed, err := tr.transformPair(t.Left, t.Right)
		if err != nil {
			return nil, err
		}
		if !changed {
			return t, nil
		}
		return ast.Compare{Op: t.Op, Left: left, Right: right}, nil
	case ast.Arithmetic:
		left, right, changed, err := tr.transformPair(t.Left, t.Right)
		if err != nil {
			return nil, err
		}
		if !changed {
			return t, nil
		}
		return ast.Arithmetic{Op: t.Op, Left: left, Right: right}, nil
	case ast.Call:
		fn, err := tr.Transform(t.Func)
		if err != nil {
			return nil, err
		}
		fnIdent, ok := fn.(ast.Identifier)
		if !ok {
			return nil, fmt.Errorf("visitor: call target transformed to %T, need identifier", fn)
		}
		args, changed, err := tr.transformSlice(t.Args)
		if err != nil {
			return nil, err
		}
		if !changed && fnIdent == t.Func {
			return t, nil
		}
		return ast.Call{Func: fnIdent, Args: args}, nil
	case ast.Lambda:
		body, err := tr.Transform(t.Body)
		if err != nil {
			return nil, err
		}
		if ast.Equal(body, t.Body) {
			return t, nil
		}
		return ast.Lambda{Variable: t.Variable, Body: body}, nil
	}
	return nil, fmt.Errorf("visitor: unknown node %T", n)
}

func (tr *Transformer) transformPair(left, right ast.Node) (ast.Node, ast.Node, bool, error) {
	newLeft, err := tr.Transform(left)
	if err != nil {
		return nil, nil, false, err
	}
	newRight, err := tr.Transform(right)
	if err != nil {
		return nil, nil, false, err
	}
	changed := !ast.Equal(newLeft, left) || !ast.Equal(newRight, right)
	return newLeft, newRight, changed, nil
}

func (tr *Transformer) transformSlice(nodes []ast.Node) ([]ast.Node, bool, error) {
	if len(nodes) == 0 {
		return nodes, false, nil
	}
	out := make([]ast.Node, len(nodes))
	changed := false
	for i, n := range nodes {
		t, err := tr.Transform(n)
		if err != nil {
			return nil, false, err
		}
		out[i] = t
		if !ast.Equal(t, n) {
			changed = true
		}
	}
	if !changed {
		return nodes, false, nil
	}
	return out, true, nil
}

func (tr *Transformer) dispatch(n ast.Node) (ast.Node, error) {
	switch t := n.(type) {
	case ast.Identifier:
		if tr.Identifier != nil {
			return tr.Identifier(t)
		}
	case ast.Attribute:
		if tr.Attribute != nil {
			return tr.Attribute(t)
		}
	case ast.Literal:
		if tr.Literal != nil {
			return tr.Literal(t)
		}
	case ast.ListExpr:
		if tr.List != nil {
			return tr.List(t)
		}
	case ast.UnaryOp:
		if tr.Unary != nil {
			return tr.Unary(t)
		}
	case ast.BoolOp:
		if tr.Bool != nil {
			return tr.Bool(t)
		}
	case ast.Compare:
		if tr.Compare != nil {
			return tr.Compare(t)
		}
	case ast.Arithmetic:
		if tr.Arithmetic != nil {
			return tr.Arithmetic(t)
		}
	case ast.Call:
		if tr.Call != nil {
			return tr.Call(t)
		}
	case ast.Lambda:
		if tr.Lambda != nil {
			return tr.Lambda(t)
		}
	}
	return n, nil
}
