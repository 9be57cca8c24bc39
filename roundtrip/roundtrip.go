// Package roundtrip renders expression trees back to filter text. Rendering
// inserts only the parentheses the grammar needs, so parsing the output
// yields a tree structurally equal to the input.
package roundtrip

import (
	"fmt"
	"strings"

	"github.com/roach88/odataq/ast"
)

// Operator binding strengths, loosest first. eq/ne bind looser than the
// ordering comparators, matching the parser.
const (
	precOr = iota + 1
	precAnd
	precEquality
	precRelational
	precAddSub
	precMulDiv
	precUnary
	precPrimary
)

// Render returns the filter text for n.
func Render(n ast.Node) (string, error) {
	return render(n)
}

func prec(n ast.Node) int {
	switch t := n.(type) {
	case ast.BoolOp:
		if t.Op == ast.Or {
			return precOr
		}
		return precAnd
	case ast.Compare:
		if t.Op == ast.Eq || t.Op == ast.Ne {
			return precEquality
		}
		return precRelational
	case ast.Arithmetic:
		if t.Op == ast.Add || t.Op == ast.Sub {
			return precAddSub
		}
		return precMulDiv
	case ast.UnaryOp:
		return precUnary
	}
	return precPrimary
}

func render(n ast.Node) (string, error) {
	switch t := n.(type) {
	case ast.Identifier:
		return t.FullName(), nil
	case ast.Attribute:
		owner, err := render(t.Owner)
		if err != nil {
			return "", err
		}
		return owner + "/" + t.Name, nil
	case ast.Literal:
		return renderValue(t.Value), nil
	case ast.ListExpr:
		return renderList(t)
	case ast.UnaryOp:
		return renderUnary(t)
	case ast.BoolOp:
		return renderBinary(n, t.Op.String(), t.Left, t.Right)
	case ast.Compare:
		return renderBinary(n, t.Op.String(), t.Left, t.Right)
	case ast.Arithmetic:
		return renderBinary(n, t.Op.String(), t.Left, t.Right)
	case ast.Call:
		return renderCall(t)
	case ast.Lambda:
		body, err := render(t.Body)
		if err != nil {
			return "", err
		}
		return t.Variable + ": " + body, nil
	}
	return "", fmt.Errorf("roundtrip: unknown node %T", n)
}

// renderChild wraps a child that binds looser than its parent, or equally
// on the right-hand side of a left-associative operator.
func renderChild(n ast.Node, parent int, right bool) (string, error) {
	s, err := render(n)
	if err != nil {
		return "", err
	}
	p := prec(n)
	if p < parent || (right && p == parent) {
		return "(" + s + ")", nil
	}
	return s, nil
}

func renderBinary(parent ast.Node, op string, left, right ast.Node) (string, error) {
	p := prec(parent)
	l, err := renderChild(left, p, false)
	if err != nil {
		return "", err
	}
	r, err := renderChild(right, p, true)
	if err != nil {
		return "", err
	}
	return l + " " + op + " " + r, nil
}

func renderUnary(u ast.UnaryOp) (string, error) {
	operand, err := renderChild(u.Operand, precUnary, false)
	if err != nil {
		return "", err
	}
	if u.Op == ast.Not {
		return "not " + operand, nil
	}
	// A negated number literal would relex as one signed number token, so
	// the operand keeps its parentheses to survive reparsing.
	if lit, ok := u.Operand.(ast.Literal); ok {
		if _, isNum := lit.Value.(ast.Number); isNum {
			return "-(" + operand + ")", nil
		}
	}
	return "-" + operand, nil
}

func renderList(list ast.ListExpr) (string, error) {
	parts := make([]string, len(list.Items))
	for i, item := range list.Items {
		s, err := render(item)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	// A single element needs the trailing comma to stay a list.
	if len(parts) == 1 {
		return "(" + parts[0] + ",)", nil
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}

func renderCall(c ast.Call) (string, error) {
	name := c.Func.FullName()

	// any/all render back to their path-suffix form.
	if (name == "any" || name == "all") && len(c.Args) >= 1 && len(c.Args) <= 2 {
		collection, err := render(c.Args[0])
		if err != nil {
			return "", err
		}
		if len(c.Args) == 1 {
			return collection + "/" + name + "()", nil
		}
		lambda, err := render(c.Args[1])
		if err != nil {
			return "", err
		}
		return collection + "/" + name + "(" + lambda + ")", nil
	}

	parts := make([]string, len(c.Args))
	for i, arg := range c.Args {
		s, err := render(arg)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return name + "(" + strings.Join(parts, ", ") + ")", nil
}

func renderValue(v ast.Value) string {
	switch t := v.(type) {
	case ast.Null:
		return "null"
	case ast.Boolean:
		if t.Val {
			return "true"
		}
		return "false"
	case ast.Number:
		return t.Text
	case ast.String:
		return "'" + strings.ReplaceAll(t.Val, "'", "''") + "'"
	case ast.Date:
		return t.Val
	case ast.Time:
		return t.Val
	case ast.DateTime:
		return t.Val
	case ast.GUID:
		return t.Val
	case ast.Duration:
		return "duration'" + t.Val + "'"
	case ast.Binary:
		return "binary'" + t.Val + "'"
	case ast.Geography:
		return "geography'" + t.Val + "'"
	}
	return ""
}
