package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/odataq/ast"
	"github.com/roach88/odataq/parser"
)

func mustParse(t *testing.T, input string) ast.Node {
	t.Helper()
	n, err := parser.Parse(input)
	require.NoError(t, err)
	return n
}

func TestAliasRewriterSimple(t *testing.T) {
	r, err := NewAliasRewriter(map[string]string{
		"name": "display_name",
	})
	require.NoError(t, err)

	got, err := r.Rewrite(mustParse(t, "name eq 'bob'"))
	require.NoError(t, err)
	assert.True(t, ast.Equal(mustParse(t, "display_name eq 'bob'"), got))
}

func TestAliasRewriterPathTarget(t *testing.T) {
	r, err := NewAliasRewriter(map[string]string{
		"city": "author/address/city",
	})
	require.NoError(t, err)

	got, err := r.Rewrite(mustParse(t, "city eq 'Ghent'"))
	require.NoError(t, err)
	assert.True(t, ast.Equal(mustParse(t, "author/address/city eq 'Ghent'"), got))
}

func TestAliasRewriterExpressionTarget(t *testing.T) {
	r, err := NewAliasRewriter(map[string]string{
		"total": "price mul quantity",
	})
	require.NoError(t, err)

	got, err := r.Rewrite(mustParse(t, "total gt 100"))
	require.NoError(t, err)
	assert.True(t, ast.Equal(mustParse(t, "price mul quantity gt 100"), got))
}

func TestAliasRewriterLongestPathWins(t *testing.T) {
	r, err := NewAliasRewriter(map[string]string{
		"a":   "x",
		"a/b": "y",
	})
	require.NoError(t, err)

	got, err := r.Rewrite(mustParse(t, "a/b eq 1 and a eq 2"))
	require.NoError(t, err)
	assert.True(t, ast.Equal(mustParse(t, "y eq 1 and x eq 2"), got))
}

func TestAliasRewriterPartialPathPrefix(t *testing.T) {
	// Only the prefix is aliased; the remaining segments survive.
	r, err := NewAliasRewriter(map[string]string{
		"author": "created_by",
	})
	require.NoError(t, err)

	got, err := r.Rewrite(mustParse(t, "author/name eq 'bob'"))
	require.NoError(t, err)
	assert.True(t, ast.Equal(mustParse(t, "created_by/name eq 'bob'"), got))
}

func TestAliasRewriterInsideCallsAndLambdas(t *testing.T) {
	r, err := NewAliasRewriter(map[string]string{
		"name": "display_name",
		"tags": "labels",
	})
	require.NoError(t, err)

	got, err := r.Rewrite(mustParse(t, "contains(name, 'x') and tags/any(t: t eq name)"))
	require.NoError(t, err)
	want := mustParse(t, "contains(display_name, 'x') and labels/any(t: t eq display_name)")
	assert.True(t, ast.Equal(want, got))
}

func TestAliasRewriterNoMatchIsIdentity(t *testing.T) {
	r, err := NewAliasRewriter(map[string]string{"x": "y"})
	require.NoError(t, err)

	n := mustParse(t, "a eq 1 and b/c in ('p', 'q')")
	got, err := r.Rewrite(n)
	require.NoError(t, err)
	assert.True(t, ast.Equal(n, got))
}

func TestAliasRewriterBadTarget(t *testing.T) {
	_, err := NewAliasRewriter(map[string]string{"x": "eq eq eq"})
	require.Error(t, err)
	var synErr *parser.SyntaxError
	assert.ErrorAs(t, err, &synErr)
}

func TestAliasRewriterTargetsNotRecursed(t *testing.T) {
	// An alias whose target mentions another alias key is substituted
	// verbatim, not chased.
	r, err := NewAliasRewriter(map[string]string{
		"a": "b",
		"b": "c",
	})
	require.NoError(t, err)

	got, err := r.Rewrite(mustParse(t, "a eq 1"))
	require.NoError(t, err)
	assert.True(t, ast.Equal(mustParse(t, "b eq 1"), got))
}

func TestIdentifierStripper(t *testing.T) {
	s := NewIdentifierStripper("t")
	got, err := s.Strip(mustParse(t, "t/name eq 'bob' and t/address/city eq 'Ghent'"))
	require.NoError(t, err)
	want := mustParse(t, "name eq 'bob' and address/city eq 'Ghent'")
	assert.True(t, ast.Equal(want, got))
}

func TestIdentifierStripperLeavesOtherPaths(t *testing.T) {
	s := NewIdentifierStripper("t")
	n := mustParse(t, "other/name eq 'bob' and t eq 1")
	got, err := s.Strip(n)
	require.NoError(t, err)
	assert.True(t, ast.Equal(n, got))
}

func TestCleanAthenaIdentifier(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Name", "name"},
		{"with-dash", "with_dash"},
		{"weird name!", "weird_name_"},
		{"already_ok_42", "already_ok_42"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CleanAthenaIdentifier(tc.in))
	}
}
