// Package odataq parses OData v4 $filter expressions into typed syntax
// trees and renders them as SQL WHERE clauses or back to filter text.
//
// The subpackages hold the moving parts: parser turns text into ast nodes,
// visitor walks and rewrites trees, rewrite maps field aliases, sqlgen
// renders SQL per dialect and roundtrip renders filter text. This package
// ties the common paths together.
package odataq

import (
	"github.com/roach88/odataq/ast"
	"github.com/roach88/odataq/parser"
	"github.com/roach88/odataq/sqlgen"
)

// ParseFilter parses the value of a $filter query option.
func ParseFilter(filter string) (ast.Node, error) {
	return parser.Parse(filter)
}

// ToSQL parses filter and renders it as a SQL boolean expression with
// literals inlined.
func ToSQL(filter string, dialect sqlgen.Dialect, opts ...sqlgen.Option) (string, error) {
	n, err := parser.Parse(filter)
	if err != nil {
		return "", err
	}
	return sqlgen.NewRenderer(dialect, opts...).Where(n)
}

// ToSQLParams parses filter and renders it with ? placeholders, returning
// the parameters in placeholder order.
func ToSQLParams(filter string, dialect sqlgen.Dialect, opts ...sqlgen.Option) (string, []any, error) {
	n, err := parser.Parse(filter)
	if err != nil {
		return "", nil, err
	}
	return sqlgen.NewRenderer(dialect, opts...).WhereParams(n)
}
