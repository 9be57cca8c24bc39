package parser

import (
	"fmt"

	"github.com/roach88/odataq/ast"
)

// Kind identifies a token class.
type Kind uint8

const (
	KindEOF Kind = iota
	KindIdent
	KindLiteral

	// Punctuation.
	KindOpen
	KindClose
	KindComma
	KindSlash
	KindColon

	// Keyword operators.
	KindAnd
	KindOr
	KindNot
	KindEq
	KindNe
	KindLt
	KindLe
	KindGt
	KindGe
	KindIn
	KindHas
	KindAdd
	KindSub
	KindMul
	KindDiv
	KindMod
	KindMinus
	KindAny
	KindAll
)

var kindNames = map[Kind]string{
	KindEOF:     "end of input",
	KindIdent:   "identifier",
	KindLiteral: "literal",
	KindOpen:    "'('",
	KindClose:   "')'",
	KindComma:   "','",
	KindSlash:   "'/'",
	KindColon:   "':'",
	KindAnd:     "'and'",
	KindOr:      "'or'",
	KindNot:     "'not'",
	KindEq:      "'eq'",
	KindNe:      "'ne'",
	KindLt:      "'lt'",
	KindLe:      "'le'",
	KindGt:      "'gt'",
	KindGe:      "'ge'",
	KindIn:      "'in'",
	KindHas:     "'has'",
	KindAdd:     "'add'",
	KindSub:     "'sub'",
	KindMul:     "'mul'",
	KindDiv:     "'div'",
	KindMod:     "'mod'",
	KindMinus:   "'-'",
	KindAny:     "'any'",
	KindAll:     "'all'",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// keywords maps lowercased reserved words to their token kinds. true, false
// and null are handled by the scanner directly since they carry a value.
var keywords = map[string]Kind{
	"and": KindAnd,
	"or":  KindOr,
	"not": KindNot,
	"eq":  KindEq,
	"ne":  KindNe,
	"lt":  KindLt,
	"le":  KindLe,
	"gt":  KindGt,
	"ge":  KindGe,
	"in":  KindIn,
	"has": KindHas,
	"add": KindAdd,
	"sub": KindSub,
	"mul": KindMul,
	"div": KindDiv,
	"mod": KindMod,
	"any": KindAny,
	"all": KindAll,
}

// Position locates a token in the source text. Line and Col are 1-based.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token is one lexical unit. Value is set only for KindLiteral tokens.
type Token struct {
	Kind  Kind
	Text  string
	Value ast.Value
	Pos   Position
}
