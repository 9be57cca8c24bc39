package sqlgen

import (
	"fmt"
	"strings"

	"github.com/roach88/odataq/ast"
	"github.com/roach88/odataq/parser"
)

// Operator binding strengths, loosest first. Children that bind looser than
// their parent get parenthesized.
const (
	precOr = iota + 1
	precAnd
	precNot
	precCompare
	precAddSub
	precMulDiv
	precNeg
	precPrimary
)

// Renderer turns expression trees into SQL fragments for one dialect.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	dialect       Dialect
	tableAlias    string
	parameterized bool
	params        []any
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTableAlias prefixes every identifier with the given table alias.
func WithTableAlias(alias string) Option {
	return func(r *Renderer) { r.tableAlias = alias }
}

// NewRenderer returns a renderer for the dialect.
func NewRenderer(d Dialect, opts ...Option) *Renderer {
	r := &Renderer{dialect: d}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Where renders n as a SQL boolean expression with literals inlined.
func (r *Renderer) Where(n ast.Node) (string, error) {
	r.parameterized = false
	r.params = nil
	return r.render(n)
}

// WhereParams renders n with literal values replaced by ? placeholders and
// returns the parameter list in placeholder order. Null stays inline since
// IS NULL cannot take a parameter, and dialect literal overrides are
// bypassed in favor of the driver's own binding.
func (r *Renderer) WhereParams(n ast.Node) (string, []any, error) {
	r.parameterized = true
	r.params = nil
	sql, err := r.render(n)
	if err != nil {
		return "", nil, err
	}
	return sql, r.params, nil
}

func (r *Renderer) render(n ast.Node) (string, error) {
	switch t := n.(type) {
	case ast.Identifier:
		return r.renderIdentifier(t), nil
	case ast.Attribute:
		path, _ := ast.Path(t)
		return "", unsupported("relationship traversal %s", path)
	case ast.Literal:
		return r.renderLiteral(t.Value)
	case ast.ListExpr:
		return r.renderList(t)
	case ast.UnaryOp:
		return r.renderUnary(t)
	case ast.BoolOp:
		return r.renderBool(t)
	case ast.Compare:
		return r.renderCompare(t)
	case ast.Arithmetic:
		return r.renderArithmetic(t)
	case ast.Call:
		return r.renderCall(t)
	case ast.Lambda:
		return "", unsupported("lambda expression")
	}
	return "", unsupported("node %T", n)
}

// renderChild renders a child expression, wrapping it in parentheses when it
// binds looser than the parent. Right-hand children of equal strength are
// wrapped too, preserving evaluation order of left-associative operators.
func (r *Renderer) renderChild(n ast.Node, parent int, right bool) (string, error) {
	sql, err := r.render(n)
	if err != nil {
		return "", err
	}
	p := prec(n)
	if p < parent || (right && p == parent) {
		return "(" + sql + ")", nil
	}
	return sql, nil
}

func prec(n ast.Node) int {
	switch t := n.(type) {
	case ast.BoolOp:
		if t.Op == ast.Or {
			return precOr
		}
		return precAnd
	case ast.UnaryOp:
		if t.Op == ast.Not {
			return precNot
		}
		return precNeg
	case ast.Compare:
		return precCompare
	case ast.Arithmetic:
		if t.Op == ast.Add || t.Op == ast.Sub {
			return precAddSub
		}
		return precMulDiv
	}
	return precPrimary
}

func (r *Renderer) renderIdentifier(id ast.Identifier) string {
	name := id.FullName()
	if r.dialect.CleanIdentifier != nil {
		name = r.dialect.CleanIdentifier(name)
	}
	quoted := `"` + name + `"`
	if r.tableAlias != "" {
		return `"` + r.tableAlias + `".` + quoted
	}
	return quoted
}

func (r *Renderer) renderList(list ast.ListExpr) (string, error) {
	parts := make([]string, len(list.Items))
	for i, item := range list.Items {
		sql, err := r.render(item)
		if err != nil {
			return "", err
		}
		parts[i] = sql
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}

func (r *Renderer) renderUnary(u ast.UnaryOp) (string, error) {
	switch u.Op {
	case ast.Not:
		operand, err := r.renderChild(u.Operand, precNot, false)
		if err != nil {
			return "", err
		}
		return "NOT " + operand, nil
	case ast.Neg:
		// Wrap nested negations too; -- would start a SQL comment.
		operand, err := r.renderChild(u.Operand, precNeg, true)
		if err != nil {
			return "", err
		}
		return "-" + operand, nil
	}
	return "", unsupported("unary operator %s", u.Op)
}

func (r *Renderer) renderBool(b ast.BoolOp) (string, error) {
	p := prec(b)
	left, err := r.renderChild(b.Left, p, false)
	if err != nil {
		return "", err
	}
	right, err := r.renderChild(b.Right, p, true)
	if err != nil {
		return "", err
	}
	op := "AND"
	if b.Op == ast.Or {
		op = "OR"
	}
	return fmt.Sprintf("%s %s %s", left, op, right), nil
}

var compareSQL = map[ast.Comparator]string{
	ast.Eq: "=",
	ast.Ne: "!=",
	ast.Lt: "<",
	ast.Le: "<=",
	ast.Gt: ">",
	ast.Ge: ">=",
}

func (r *Renderer) renderCompare(c ast.Compare) (string, error) {
	switch c.Op {
	case ast.Has:
		return "", unsupported("has operator")
	case ast.In:
		return r.renderIn(c)
	case ast.Eq, ast.Ne:
		if isNullLiteral(c.Right) {
			return r.renderNullCheck(c.Left, c.Op)
		}
		if isNullLiteral(c.Left) {
			return r.renderNullCheck(c.Right, c.Op)
		}
	}

	left, err := r.renderChild(c.Left, precCompare, false)
	if err != nil {
		return "", err
	}
	right, err := r.renderChild(c.Right, precCompare, true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %s", left, compareSQL[c.Op], right), nil
}

func isNullLiteral(n ast.Node) bool {
	lit, ok := n.(ast.Literal)
	if !ok {
		return false
	}
	_, ok = lit.Value.(ast.Null)
	return ok
}

func (r *Renderer) renderNullCheck(operand ast.Node, op ast.Comparator) (string, error) {
	sql, err := r.renderChild(operand, precCompare, false)
	if err != nil {
		return "", err
	}
	if op == ast.Ne {
		return sql + " IS NOT NULL", nil
	}
	return sql + " IS NULL", nil
}

func (r *Renderer) renderIn(c ast.Compare) (string, error) {
	left, err := r.renderChild(c.Left, precCompare, false)
	if err != nil {
		return "", err
	}

	// A grouped scalar on the right is a one-element membership test.
	var right string
	if list, ok := c.Right.(ast.ListExpr); ok {
		right, err = r.renderList(list)
	} else {
		var sql string
		sql, err = r.render(c.Right)
		right = "(" + sql + ")"
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s IN %s", left, right), nil
}

var arithSQL = map[ast.ArithOperator]string{
	ast.Add: "+",
	ast.Sub: "-",
	ast.Mul: "*",
	ast.Div: "/",
	ast.Mod: "%",
}

func (r *Renderer) renderArithmetic(a ast.Arithmetic) (string, error) {
	p := prec(a)
	left, err := r.renderChild(a.Left, p, false)
	if err != nil {
		return "", err
	}
	right, err := r.renderChild(a.Right, p, true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %s", left, arithSQL[a.Op], right), nil
}

func (r *Renderer) renderCall(c ast.Call) (string, error) {
	name := strings.ToLower(c.Func.FullName())
	if emit, ok := r.dialect.Funcs[name]; ok {
		return emit(r, c.Args)
	}
	if parser.KnownFunction(name) {
		return "", unsupported("function %s in dialect %s", name, r.dialect.Name)
	}
	return "", &UnknownFunctionError{Name: name}
}

func (r *Renderer) renderLiteral(v ast.Value) (string, error) {
	if _, ok := v.(ast.Null); ok {
		return "NULL", nil
	}

	// Parameterized mode never consults the dialect literal override: the
	// driver binds the native value, or the literal is unrenderable.
	if r.parameterized {
		switch t := v.(type) {
		case ast.GUID:
			// Drivers rarely bind uuid.UUID; the canonical string works
			// everywhere.
			r.params = append(r.params, t.Val)
			return "?", nil
		case ast.Duration:
			r.params = append(r.params, t.Days())
			return "?", nil
		case ast.String, ast.Number, ast.Boolean, ast.Date, ast.Time, ast.DateTime:
			r.params = append(r.params, v.Native())
			return "?", nil
		}
		return "", unsupported("%T literal", v)
	}

	if r.dialect.Literal != nil {
		if sql, ok, err := r.dialect.Literal(v); err != nil {
			return "", err
		} else if ok {
			return sql, nil
		}
	}

	switch t := v.(type) {
	case ast.String:
		return quoteString(t.Val), nil
	case ast.Number:
		return t.Text, nil
	case ast.Boolean:
		if t.Val {
			return "TRUE", nil
		}
		return "FALSE", nil
	case ast.Date:
		return "DATE " + quoteString(t.Val), nil
	case ast.Time:
		return "TIME " + quoteString(t.Val), nil
	case ast.DateTime:
		return "TIMESTAMP " + quoteString(t.Val), nil
	case ast.GUID:
		return quoteString(t.Val), nil
	case ast.Duration:
		return durationSQL(t), nil
	}
	return "", unsupported("%T literal", v)
}

// durationSQL renders a duration as a chain of single-unit INTERVAL
// literals. The sign repeats on every component; multi-component chains are
// wrapped so they stay one operand in any surrounding expression.
func durationSQL(d ast.Duration) string {
	sign, years, months, days, hours, minutes, seconds := d.Components()
	if sign == "+" {
		sign = ""
	}

	var parts []string
	add := func(val, unit string) {
		if val != "" {
			parts = append(parts, fmt.Sprintf("INTERVAL '%s%s' %s", sign, val, unit))
		}
	}
	add(years, "YEAR")
	add(months, "MONTH")
	add(days, "DAY")
	add(hours, "HOUR")
	add(minutes, "MINUTE")
	add(seconds, "SECOND")

	switch len(parts) {
	case 0:
		return "INTERVAL '0' DAY"
	case 1:
		return parts[0]
	}
	return "(" + strings.Join(parts, " + ") + ")"
}

// stringParam emits a string either as a placeholder or an inline quoted
// literal, depending on the rendering mode.
func (r *Renderer) stringParam(s string) string {
	if r.parameterized {
		r.params = append(r.params, s)
		return "?"
	}
	return quoteString(s)
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (r *Renderer) renderOne(fn string, args []ast.Node) (string, error) {
	if len(args) != 1 {
		return "", argErr(fn, "takes 1 argument, got %d", len(args))
	}
	return r.render(args[0])
}

func (r *Renderer) renderTwo(fn string, args []ast.Node) (string, string, error) {
	if len(args) != 2 {
		return "", "", argErr(fn, "takes 2 arguments, got %d", len(args))
	}
	a, err := r.render(args[0])
	if err != nil {
		return "", "", err
	}
	b, err := r.render(args[1])
	if err != nil {
		return "", "", err
	}
	return a, b, nil
}

// renderSubstring handles the shared argument plumbing of the substring
// emitters. OData indexes from zero, SQL from one, hence the shift.
func (r *Renderer) renderSubstring(fn string, args []ast.Node, build func(src, from, length string) string) (string, error) {
	if len(args) < 2 || len(args) > 3 {
		return "", argErr(fn, "takes 2 or 3 arguments, got %d", len(args))
	}
	src, err := r.render(args[0])
	if err != nil {
		return "", err
	}
	start, err := r.renderChild(args[1], precAddSub, false)
	if err != nil {
		return "", err
	}
	from := start + " + 1"
	if len(args) == 2 {
		return build(src, from, ""), nil
	}
	length, err := r.render(args[2])
	if err != nil {
		return "", err
	}
	return build(src, from, length), nil
}
