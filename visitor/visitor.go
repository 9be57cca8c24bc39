package visitor

import (
	"fmt"

	"github.com/roach88/odataq/ast"
)

// Visitor folds an expression tree into a T. Each field handles one node
// variant; Visit dispatches to the matching handler and falls through to
// Fallback when the field is nil. Handlers recurse explicitly via Visit,
// so a visitor controls which children it descends into.
type Visitor[T any] struct {
	Identifier func(ast.Identifier) (T, error)
	Attribute  func(ast.Attribute) (T, error)
	Literal    func(ast.Literal) (T, error)
	List       func(ast.ListExpr) (T, error)
	Unary      func(ast.UnaryOp) (T, error)
	Bool       func(ast.BoolOp) (T, error)
	Compare    func(ast.Compare) (T, error)
	Arithmetic func(ast.Arithmetic) (T, error)
	Call       func(ast.Call) (T, error)
	Lambda     func(ast.Lambda) (T, error)

	// Fallback handles any variant whose handler is nil. Without it,
	// unhandled nodes recurse into their children, discarding the child
	// results and returning the zero T.
	Fallback func(ast.Node) (T, error)
}

// Visit dispatches n to its handler.
func (v *Visitor[T]) Visit(n ast.Node) (T, error) {
	var zero T
	switch t := n.(type) {
	case ast.Identifier:
		if v.Identifier != nil {
			return v.Identifier(t)
		}
	case ast.Attribute:
		if v.Attribute != nil {
			return v.Attribute(t)
		}
	case ast.Literal:
		if v.Literal != nil {
			return v.Literal(t)
		}
	case ast.ListExpr:
		if v.List != nil {
			return v.List(t)
		}
	case ast.UnaryOp:
		if v.Unary != nil {
			return v.Unary(t)
		}
	case ast.BoolOp:
		if v.Bool != nil {
			return v.Bool(t)
		}
	case ast.Compare:
		if v.Compare != nil {
			return v.Compare(t)
		}
	case ast.Arithmetic:
		if v.Arithmetic != nil {
			return v.Arithmetic(t)
		}
	case ast.Call:
		if v.Call != nil {
			return v.Call(t)
		}
	case ast.Lambda:
		if v.Lambda != nil {
			return v.Lambda(t)
		}
	default:
		return zero, fmt.Errorf("visitor: unknown node %T", n)
	}
	if v.Fallback != nil {
		return v.Fallback(n)
	}
	for _, child := range Children(n) {
		if _, err := v.Visit(child); err != nil {
			return zero, err
		}
	}
	return zero, nil
}

// Children returns the direct child expressions of n in source order. Leaf
// nodes return nil.
func Children(n ast.Node) []ast.Node {
	switch t := n.(type) {
	case ast.Attribute:
		return []ast.Node{t.Owner}
	case ast.ListExpr:
		return append([]ast.Node(nil), t.Items...)
	case ast.UnaryOp:
		return []ast.Node{t.Operand}
	case ast.BoolOp:
		return []ast.Node{t.Left, t.Right}
	case ast.Compare:
		return []ast.Node{t.Left, t.Right}
	case ast.Arithmetic:
		return []ast.Node{t.Left, t.Right}
	case ast.Call:
		children := []ast.Node{t.Func}
		return append(children, t.Args...)
	case ast.Lambda:
		return []ast.Node{t.Body}
	}
	return nil
}

// Walk calls fn on n and every node below it, in depth-first pre-order.
// Traversal stops at the first error.
func Walk(n ast.Node, fn func(ast.Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, child := range Children(n) {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}
