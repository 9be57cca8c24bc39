package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/odataq/ast"
)

func ident(name string) ast.Identifier {
	return ast.Identifier{Name: name}
}

func integer(text string) ast.Literal {
	return ast.Literal{Value: ast.Number{Text: text, Kind: ast.Integer}}
}

func str(val string) ast.Literal {
	return ast.Literal{Value: ast.String{Val: val}}
}

func TestParseComparisons(t *testing.T) {
	cases := []struct {
		input string
		want  ast.Node
	}{
		{"a eq 1", ast.Compare{Op: ast.Eq, Left: ident("a"), Right: integer("1")}},
		{"a ne 'x'", ast.Compare{Op: ast.Ne, Left: ident("a"), Right: str("x")}},
		{"a lt 1", ast.Compare{Op: ast.Lt, Left: ident("a"), Right: integer("1")}},
		{"a le 1", ast.Compare{Op: ast.Le, Left: ident("a"), Right: integer("1")}},
		{"a gt 1", ast.Compare{Op: ast.Gt, Left: ident("a"), Right: integer("1")}},
		{"a ge 1", ast.Compare{Op: ast.Ge, Left: ident("a"), Right: integer("1")}},
		{"a has 'x'", ast.Compare{Op: ast.Has, Left: ident("a"), Right: str("x")}},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	cases := []struct {
		input string
		want  ast.Node
	}{
		{
			// and binds tighter than or.
			"a eq 1 or b eq 2 and c eq 3",
			ast.BoolOp{
				Op:   ast.Or,
				Left: ast.Compare{Op: ast.Eq, Left: ident("a"), Right: integer("1")},
				Right: ast.BoolOp{
					Op:    ast.And,
					Left:  ast.Compare{Op: ast.Eq, Left: ident("b"), Right: integer("2")},
					Right: ast.Compare{Op: ast.Eq, Left: ident("c"), Right: integer("3")},
				},
			},
		},
		{
			"a eq 1 and b eq 2 or c eq 3",
			ast.BoolOp{
				Op: ast.Or,
				Left: ast.BoolOp{
					Op:    ast.And,
					Left:  ast.Compare{Op: ast.Eq, Left: ident("a"), Right: integer("1")},
					Right: ast.Compare{Op: ast.Eq, Left: ident("b"), Right: integer("2")},
				},
				Right: ast.Compare{Op: ast.Eq, Left: ident("c"), Right: integer("3")},
			},
		},
		{
			// mul binds tighter than add; add tighter than comparison.
			"a add b mul 2 gt 8",
			ast.Compare{
				Op: ast.Gt,
				Left: ast.Arithmetic{
					Op:   ast.Add,
					Left: ident("a"),
					Right: ast.Arithmetic{
						Op:    ast.Mul,
						Left:  ident("b"),
						Right: integer("2"),
					},
				},
				Right: integer("8"),
			},
		},
		{
			// Relational binds tighter than equality.
			"a eq b lt c",
			ast.Compare{
				Op:    ast.Eq,
				Left:  ident("a"),
				Right: ast.Compare{Op: ast.Lt, Left: ident("b"), Right: ident("c")},
			},
		},
		{
			// Parentheses override precedence.
			"(a eq 1 or b eq 2) and c eq 3",
			ast.BoolOp{
				Op: ast.And,
				Left: ast.BoolOp{
					Op:    ast.Or,
					Left:  ast.Compare{Op: ast.Eq, Left: ident("a"), Right: integer("1")},
					Right: ast.Compare{Op: ast.Eq, Left: ident("b"), Right: integer("2")},
				},
				Right: ast.Compare{Op: ast.Eq, Left: ident("c"), Right: integer("3")},
			},
		},
		{
			// not applies to the unary operand only.
			"not a eq 1",
			ast.Compare{
				Op:    ast.Eq,
				Left:  ast.UnaryOp{Op: ast.Not, Operand: ident("a")},
				Right: integer("1"),
			},
		},
		{
			"not (a eq 1)",
			ast.UnaryOp{
				Op:      ast.Not,
				Operand: ast.Compare{Op: ast.Eq, Left: ident("a"), Right: integer("1")},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	got, err := Parse("a sub b sub c")
	require.NoError(t, err)
	want := ast.Arithmetic{
		Op:    ast.Sub,
		Left:  ast.Arithmetic{Op: ast.Sub, Left: ident("a"), Right: ident("b")},
		Right: ident("c"),
	}
	assert.Equal(t, want, got)
}

func TestParseLists(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  ast.Node
	}{
		{
			"multi element",
			"a in ('x', 'y', 'z')",
			ast.Compare{
				Op:   ast.In,
				Left: ident("a"),
				Right: ast.ListExpr{Items: []ast.Node{
					str("x"), str("y"), str("z"),
				}},
			},
		},
		{
			"grouped scalar",
			"a in ('x')",
			ast.Compare{Op: ast.In, Left: ident("a"), Right: str("x")},
		},
		{
			"single element with trailing comma",
			"a in ('x',)",
			ast.Compare{
				Op:    ast.In,
				Left:  ident("a"),
				Right: ast.ListExpr{Items: []ast.Node{str("x")}},
			},
		},
		{
			"trailing comma on multi element",
			"a in (1, 2,)",
			ast.Compare{
				Op:    ast.In,
				Left:  ident("a"),
				Right: ast.ListExpr{Items: []ast.Node{integer("1"), integer("2")}},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParsePaths(t *testing.T) {
	got, err := Parse("author/address/city eq 'Ghent'")
	require.NoError(t, err)
	want := ast.Compare{
		Op: ast.Eq,
		Left: ast.Attribute{
			Owner: ast.Attribute{Owner: ident("author"), Name: "address"},
			Name:  "city",
		},
		Right: str("Ghent"),
	}
	assert.Equal(t, want, got)
}

func TestParseCalls(t *testing.T) {
	cases := []struct {
		input string
		want  ast.Node
	}{
		{
			"contains(name, 'bob')",
			ast.Call{
				Func: ident("contains"),
				Args: []ast.Node{ident("name"), str("bob")},
			},
		},
		{
			"now()",
			ast.Call{Func: ident("now")},
		},
		{
			"substring(name, 1, 2)",
			ast.Call{
				Func: ident("substring"),
				Args: []ast.Node{ident("name"), integer("1"), integer("2")},
			},
		},
		{
			"geo.distance(a, b)",
			ast.Call{
				Func: ast.Identifier{Name: "distance", Namespace: "geo"},
				Args: []ast.Node{ident("a"), ident("b")},
			},
		},
		{
			"year(birth_date) eq 1990",
			ast.Compare{
				Op:    ast.Eq,
				Left:  ast.Call{Func: ident("year"), Args: []ast.Node{ident("birth_date")}},
				Right: integer("1990"),
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseQuantifiers(t *testing.T) {
	cases := []struct {
		input string
		want  ast.Node
	}{
		{
			"tags/any()",
			ast.Call{Func: ident("any"), Args: []ast.Node{ident("tags")}},
		},
		{
			"tags/any(t: t eq 'go')",
			ast.Call{
				Func: ident("any"),
				Args: []ast.Node{
					ident("tags"),
					ast.Lambda{
						Variable: "t",
						Body:     ast.Compare{Op: ast.Eq, Left: ident("t"), Right: str("go")},
					},
				},
			},
		},
		{
			"orders/all(o: o/total gt 100)",
			ast.Call{
				Func: ident("all"),
				Args: []ast.Node{
					ident("orders"),
					ast.Lambda{
						Variable: "o",
						Body: ast.Compare{
							Op:    ast.Gt,
							Left:  ast.Attribute{Owner: ident("o"), Name: "total"},
							Right: integer("100"),
						},
					},
				},
			},
		},
		{
			"author/posts/any(p: p/published eq true)",
			ast.Call{
				Func: ident("any"),
				Args: []ast.Node{
					ast.Attribute{Owner: ident("author"), Name: "posts"},
					ast.Lambda{
						Variable: "p",
						Body: ast.Compare{
							Op:    ast.Eq,
							Left:  ast.Attribute{Owner: ident("p"), Name: "published"},
							Right: ast.Literal{Value: ast.Boolean{Val: true}},
						},
					},
				},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseUnknownFunctionAccepted(t *testing.T) {
	// The parser accepts any call shape; arity and existence checks are
	// left to backends.
	got, err := Parse("frobnicate(a, b, c)")
	require.NoError(t, err)
	call, ok := got.(ast.Call)
	require.True(t, ok)
	assert.Equal(t, "frobnicate", call.Func.Name)
	assert.Len(t, call.Args, 3)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"dangling operator", "a eq"},
		{"unbalanced paren", "(a eq 1"},
		{"leftover tokens", "a eq 1 b"},
		{"missing operand", "and a"},
		{"all without lambda", "tags/all()"},
		{"lambda missing colon", "tags/any(t t eq 1)"},
		{"slash into nothing", "a/"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			require.Error(t, err)
			var synErr *SyntaxError
			assert.ErrorAs(t, err, &synErr)
		})
	}
}

func TestParseNegation(t *testing.T) {
	got, err := Parse("-a lt 0")
	require.NoError(t, err)
	want := ast.Compare{
		Op:    ast.Lt,
		Left:  ast.UnaryOp{Op: ast.Neg, Operand: ident("a")},
		Right: integer("0"),
	}
	assert.Equal(t, want, got)
}
