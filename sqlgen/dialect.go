package sqlgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/odataq/ast"
	"github.com/roach88/odataq/rewrite"
)

// FuncEmitter renders one OData function call. Arguments arrive unrendered
// so an emitter can inspect literal values, reorder, or refuse them.
type FuncEmitter func(r *Renderer, args []ast.Node) (string, error)

// Dialect describes how one SQL flavor spells functions, literals, and
// identifiers. Missing pieces fall back to the ANSI baseline behavior built
// into the Renderer.
type Dialect struct {
	Name string

	// Funcs maps lowercased OData function names to emitters. A catalog
	// function absent from the map is unsupported in this dialect.
	Funcs map[string]FuncEmitter

	// Literal may override the spelling of a literal value. Return false
	// to fall back to the default spelling.
	Literal func(v ast.Value) (string, bool, error)

	// CleanIdentifier normalizes an identifier before quoting, for stores
	// that restrict identifier characters.
	CleanIdentifier func(name string) string
}

// ANSI returns the baseline dialect targeting standard SQL.
func ANSI() Dialect {
	return Dialect{Name: "ansi", Funcs: ansiFuncs()}
}

// SQLite returns a dialect for SQLite, overriding the string and date
// functions SQLite spells differently and the literal forms it lacks.
func SQLite() Dialect {
	funcs := ansiFuncs()
	funcs["indexof"] = func(r *Renderer, args []ast.Node) (string, error) {
		a, b, err := r.renderTwo("indexof", args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("INSTR(%s, %s) - 1", a, b), nil
	}
	funcs["length"] = unaryFunc("length", "LENGTH(%s)")
	funcs["substring"] = func(r *Renderer, args []ast.Node) (string, error) {
		return r.renderSubstring("substring", args, func(src, from, length string) string {
			if length == "" {
				return fmt.Sprintf("SUBSTR(%s, %s)", src, from)
			}
			return fmt.Sprintf("SUBSTR(%s, %s, %s)", src, from, length)
		})
	}
	for name, fmtStr := range map[string]string{
		"year":   "%Y",
		"month":  "%m",
		"day":    "%d",
		"hour":   "%H",
		"minute": "%M",
		"second": "%S",
	} {
		part := fmtStr
		fn := name
		funcs[name] = func(r *Renderer, args []ast.Node) (string, error) {
			arg, err := r.renderOne(fn, args)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("CAST(STRFTIME('%s', %s) AS INTEGER)", part, arg), nil
		}
	}
	funcs["date"] = unaryFunc("date", "DATE(%s)")
	funcs["time"] = unaryFunc("time", "TIME(%s)")
	funcs["now"] = nullaryFunc("now", "DATETIME('now')")

	return Dialect{
		Name:  "sqlite",
		Funcs: funcs,
		Literal: func(v ast.Value) (string, bool, error) {
			switch t := v.(type) {
			case ast.Boolean:
				if t.Val {
					return "1", true, nil
				}
				return "0", true, nil
			case ast.Date:
				return fmt.Sprintf("DATE('%s')", t.Val), true, nil
			case ast.DateTime:
				return fmt.Sprintf("DATETIME('%s')", t.Val), true, nil
			case ast.Time:
				return fmt.Sprintf("TIME('%s')", t.Val), true, nil
			case ast.Duration:
				// SQLite has no INTERVAL; the day-count projection keeps
				// durations comparable as plain numbers.
				return strconv.FormatFloat(t.Days(), 'g', -1, 64), true, nil
			}
			return "", false, nil
		},
	}
}

// Athena returns a dialect for AWS Athena (Presto SQL). Identifiers are
// lowercased and stripped to the characters Athena permits.
func Athena() Dialect {
	funcs := ansiFuncs()
	funcs["indexof"] = func(r *Renderer, args []ast.Node) (string, error) {
		a, b, err := r.renderTwo("indexof", args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("STRPOS(%s, %s) - 1", a, b), nil
	}
	funcs["length"] = unaryFunc("length", "LENGTH(%s)")
	funcs["substring"] = func(r *Renderer, args []ast.Node) (string, error) {
		return r.renderSubstring("substring", args, func(src, from, length string) string {
			if length == "" {
				return fmt.Sprintf("SUBSTR(%s, %s)", src, from)
			}
			return fmt.Sprintf("SUBSTR(%s, %s, %s)", src, from, length)
		})
	}

	return Dialect{
		Name:  "athena",
		Funcs: funcs,
		Literal: func(v ast.Value) (string, bool, error) {
			switch t := v.(type) {
			case ast.DateTime:
				return fmt.Sprintf("from_iso8601_timestamp('%s')", t.Val), true, nil
			case ast.Date:
				return fmt.Sprintf("from_iso8601_date('%s')", t.Val), true, nil
			}
			return "", false, nil
		},
		CleanIdentifier: rewrite.CleanAthenaIdentifier,
	}
}

func ansiFuncs() map[string]FuncEmitter {
	return map[string]FuncEmitter{
		"concat": func(r *Renderer, args []ast.Node) (string, error) {
			a, b, err := r.renderTwo("concat", args)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s || %s", a, b), nil
		},
		"contains":   likeFunc("contains", true, true),
		"startswith": likeFunc("startswith", false, true),
		"endswith":   likeFunc("endswith", true, false),
		"indexof": func(r *Renderer, args []ast.Node) (string, error) {
			a, b, err := r.renderTwo("indexof", args)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("POSITION(%s IN %s) - 1", b, a), nil
		},
		"length": unaryFunc("length", "CHAR_LENGTH(%s)"),
		"substring": func(r *Renderer, args []ast.Node) (string, error) {
			return r.renderSubstring("substring", args, func(src, from, length string) string {
				if length == "" {
					return fmt.Sprintf("SUBSTRING(%s FROM %s)", src, from)
				}
				return fmt.Sprintf("SUBSTRING(%s FROM %s FOR %s)", src, from, length)
			})
		},
		"tolower": unaryFunc("tolower", "LOWER(%s)"),
		"toupper": unaryFunc("toupper", "UPPER(%s)"),
		"trim":    unaryFunc("trim", "TRIM(%s)"),

		"year":   extractFunc("year", "YEAR"),
		"month":  extractFunc("month", "MONTH"),
		"day":    extractFunc("day", "DAY"),
		"hour":   extractFunc("hour", "HOUR"),
		"minute": extractFunc("minute", "MINUTE"),
		"second": extractFunc("second", "SECOND"),
		"date":   unaryFunc("date", "CAST(%s AS DATE)"),
		"time":   unaryFunc("time", "CAST(%s AS TIME)"),
		"now":    nullaryFunc("now", "CURRENT_TIMESTAMP"),

		"round":   unaryFunc("round", "ROUND(%s)"),
		"floor":   unaryFunc("floor", "FLOOR(%s)"),
		"ceiling": unaryFunc("ceiling", "CEILING(%s)"),
	}
}

func unaryFunc(name, format string) FuncEmitter {
	return func(r *Renderer, args []ast.Node) (string, error) {
		arg, err := r.renderOne(name, args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(format, arg), nil
	}
}

func nullaryFunc(name, sql string) FuncEmitter {
	return func(r *Renderer, args []ast.Node) (string, error) {
		if len(args) != 0 {
			return "", argErr(name, "takes no arguments, got %d", len(args))
		}
		return sql, nil
	}
}

func extractFunc(name, part string) FuncEmitter {
	return func(r *Renderer, args []ast.Node) (string, error) {
		arg, err := r.renderOne(name, args)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("EXTRACT(%s FROM %s)", part, arg), nil
	}
}

// likeFunc builds contains/startswith/endswith emitters. The needle must be
// a string literal so the LIKE pattern can be escaped.
func likeFunc(name string, prefix, suffix bool) FuncEmitter {
	return func(r *Renderer, args []ast.Node) (string, error) {
		if len(args) != 2 {
			return "", argErr(name, "takes 2 arguments, got %d", len(args))
		}
		haystack, err := r.render(args[0])
		if err != nil {
			return "", err
		}
		lit, ok := args[1].(ast.Literal)
		if !ok {
			return "", argErr(name, "needle must be a string literal")
		}
		str, ok := lit.Value.(ast.String)
		if !ok {
			return "", argErr(name, "needle must be a string literal")
		}

		pattern, escaped := escapeLikePattern(str.Val)
		if prefix {
			pattern = "%" + pattern
		}
		if suffix {
			pattern += "%"
		}

		rhs := r.stringParam(pattern)
		if escaped {
			return fmt.Sprintf("%s LIKE %s ESCAPE '\\'", haystack, rhs), nil
		}
		return fmt.Sprintf("%s LIKE %s", haystack, rhs), nil
	}
}

// escapeLikePattern backslash-escapes LIKE metacharacters and reports
// whether anything needed escaping.
func escapeLikePattern(s string) (string, bool) {
	if !strings.ContainsAny(s, `%_\`) {
		return s, false
	}
	var sb strings.Builder
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String(), true
}
