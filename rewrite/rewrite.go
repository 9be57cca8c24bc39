// Package rewrite contains ready-made tree rewrites applied between parsing
// and rendering, such as mapping API field aliases onto storage names.
package rewrite

import (
	"fmt"
	"strings"

	"github.com/roach88/odataq/ast"
	"github.com/roach88/odataq/parser"
	"github.com/roach88/odataq/visitor"
)

// AliasRewriter replaces aliased field paths with their target expressions.
// Alias keys are slash-separated paths as they appear in filter text; targets
// are parsed as filter expressions, so an alias can map to a plain field, a
// nested path, or any computed expression.
type AliasRewriter struct {
	targets map[string]ast.Node
}

// NewAliasRewriter parses the alias targets up front and fails on the first
// target that is not a valid filter expression.
func NewAliasRewriter(aliases map[string]string) (*AliasRewriter, error) {
	targets := make(map[string]ast.Node, len(aliases))
	for alias, target := range aliases {
		n, err := parser.Parse(target)
		if err != nil {
			return nil, fmt.Errorf("rewrite: alias %q target: %w", alias, err)
		}
		targets[alias] = n
	}
	return &AliasRewriter{targets: targets}, nil
}

// Rewrite returns the tree with every aliased path replaced by its target.
// Paths are matched before their segments, so with aliases for both "a" and
// "a/b" the path a/b resolves to the "a/b" target. Replacement targets are
// not rewritten again.
func (r *AliasRewriter) Rewrite(n ast.Node) (ast.Node, error) {
	// Whole-path matching has to happen before the segments are rewritten,
	// so paths are resolved top-down here and everything else is handed to
	// the bottom-up transformer.
	if path, ok := ast.Path(n); ok {
		if target, found := r.targets[path]; found {
			return target, nil
		}
		if attr, isAttr := n.(ast.Attribute); isAttr {
			owner, err := r.Rewrite(attr.Owner)
			if err != nil {
				return nil, err
			}
			if ast.Equal(owner, attr.Owner) {
				return attr, nil
			}
			return ast.Attribute{Owner: owner, Name: attr.Name}, nil
		}
		return n, nil
	}

	return r.rewriteNonPath(n)
}

// rewriteNonPath recurses into a node that is not itself a pure field path.
func (r *AliasRewriter) rewriteNonPath(n ast.Node) (ast.Node, error) {
	switch t := n.(type) {
	case ast.Identifier, ast.Literal:
		return n, nil
	case ast.Attribute:
		// Owners of non-path attributes (for example a path hanging off a
		// call result) are still rewritten.
		owner, err := r.Rewrite(t.Owner)
		if err != nil {
			return nil, err
		}
		return ast.Attribute{Owner: owner, Name: t.Name}, nil
	case ast.ListExpr:
		items, err := r.rewriteAll(t.Items)
		if err != nil {
			return nil, err
		}
		return ast.ListExpr{Items: items}, nil
	case ast.UnaryOp:
		operand, err := r.Rewrite(t.Operand)
		if err != nil {
			return nil, err
		}
		return ast.UnaryOp{Op: t.Op, Operand: operand}, nil
	case ast.BoolOp:
		left, err := r.Rewrite(t.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.Rewrite(t.Right)
		if err != nil {
			return nil, err
		}
		return ast.BoolOp{Op: t.Op, Left: left, Right: right}, nil
	case ast.Compare:
		left, err := r.Rewrite(t.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.Rewrite(t.Right)
		if err != nil {
			return nil, err
		}
		return ast.Compare{Op: t.Op, Left: left, Right: right}, nil
	case ast.Arithmetic:
		left, err := r.Rewrite(t.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.Rewrite(t.Right)
		if err != nil {
			return nil, err
		}
		return ast.Arithmetic{Op: t.Op, Left: left, Right: right}, nil
	case ast.Call:
		args, err := r.rewriteAll(t.Args)
		if err != nil {
			return nil, err
		}
		return ast.Call{Func: t.Func, Args: args}, nil
	case ast.Lambda:
		body, err := r.Rewrite(t.Body)
		if err != nil {
			return nil, err
		}
		return ast.Lambda{Variable: t.Variable, Body: body}, nil
	}
	return nil, fmt.Errorf("rewrite: unknown node %T", n)
}

func (r *AliasRewriter) rewriteAll(nodes []ast.Node) ([]ast.Node, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]ast.Node, len(nodes))
	for i, n := range nodes {
		rewritten, err := r.Rewrite(n)
		if err != nil {
			return nil, err
		}
		out[i] = rewritten
	}
	return out, nil
}

// IdentifierStripper drops a leading path segment from attribute paths,
// turning t/name into name. Adapters use it when entering a lambda scope,
// where the bound variable prefixes every path in the body.
type IdentifierStripper struct {
	tr *visitor.Transformer
}

// NewIdentifierStripper returns a stripper for the given leading identifier.
func NewIdentifierStripper(name string) *IdentifierStripper {
	s := &IdentifierStripper{}
	s.tr = &visitor.Transformer{
		Attribute: func(attr ast.Attribute) (ast.Node, error) {
			if owner, ok := attr.Owner.(ast.Identifier); ok &&
				owner.Namespace == "" && owner.Name == name {
				return ast.Identifier{Name: attr.Name}, nil
			}
			return attr, nil
		},
	}
	return s
}

// Strip returns the tree with the leading segment removed from every path
// that starts with it.
func (s *IdentifierStripper) Strip(n ast.Node) (ast.Node, error) {
	return s.tr.Transform(n)
}

// CleanAthenaIdentifier lowercases an identifier and replaces every
// character Athena rejects with an underscore.
func CleanAthenaIdentifier(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
