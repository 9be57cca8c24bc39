package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/odataq/ast"
)

func TestTokenizePunctuationAndKeywords(t *testing.T) {
	toks, err := Tokenize("(a eq 1) and not b")
	require.NoError(t, err)

	kinds := make([]Kind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{
		KindOpen, KindIdent, KindEq, KindLiteral, KindClose,
		KindAnd, KindNot, KindIdent, KindEOF,
	}, kinds)
}

func TestTokenizeKeywordsCaseInsensitive(t *testing.T) {
	toks, err := Tokenize("a EQ 1 AND b Ne 2")
	require.NoError(t, err)
	assert.Equal(t, KindEq, toks[1].Kind)
	assert.Equal(t, KindAnd, toks[3].Kind)
	assert.Equal(t, KindNe, toks[5].Kind)
}

func TestTokenizeLiterals(t *testing.T) {
	cases := []struct {
		input string
		want  ast.Value
	}{
		{"null", ast.Null{}},
		{"true", ast.Boolean{Val: true}},
		{"FALSE", ast.Boolean{Val: false}},
		{"42", ast.Number{Text: "42", Kind: ast.Integer}},
		{"-7", ast.Number{Text: "-7", Kind: ast.Integer}},
		{"+7", ast.Number{Text: "+7", Kind: ast.Integer}},
		{"4.2", ast.Number{Text: "4.2", Kind: ast.Decimal}},
		{"1e10", ast.Number{Text: "1e10", Kind: ast.Float}},
		{"-1.5E-3", ast.Number{Text: "-1.5E-3", Kind: ast.Float}},
		{"'hello'", ast.String{Val: "hello"}},
		{"'it''s'", ast.String{Val: "it's"}},
		{"''", ast.String{Val: ""}},
		{"2020-01-01", ast.Date{Val: "2020-01-01"}},
		{"2020-01-01T12:00:00", ast.DateTime{Val: "2020-01-01T12:00:00"}},
		{"2020-01-01T12:00:00.123Z", ast.DateTime{Val: "2020-01-01T12:00:00.123Z"}},
		{"2020-01-01T12:00:00+02:00", ast.DateTime{Val: "2020-01-01T12:00:00+02:00"}},
		{"14:30:00", ast.Time{Val: "14:30:00"}},
		{"a7af27e6-f5a0-11e9-9649-0a252982fadf", ast.GUID{Val: "a7af27e6-f5a0-11e9-9649-0a252982fadf"}},
		{"duration'P1DT2H'", ast.Duration{Val: "P1DT2H"}},
		{"duration'p1dt2h'", ast.Duration{Val: "P1DT2H"}},
		{"binary'aGVsbG8='", ast.Binary{Val: "aGVsbG8="}},
		{"geography'SRID=4326;POINT(1 2)'", ast.Geography{Val: "SRID=4326;POINT(1 2)"}},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			toks, err := Tokenize(tc.input)
			require.NoError(t, err)
			require.Len(t, toks, 2)
			assert.Equal(t, KindLiteral, toks[0].Kind)
			assert.Equal(t, tc.want, toks[0].Value)
		})
	}
}

func TestTokenizeIdentifiers(t *testing.T) {
	toks, err := Tokenize("geo.distance(location, geography'POINT(1 2)')")
	require.NoError(t, err)
	assert.Equal(t, KindIdent, toks[0].Kind)
	assert.Equal(t, "geo.distance", toks[0].Text)
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"unterminated string", "'abc"},
		{"stray character", "a eq #"},
		{"bare plus", "+ 1"},
		{"bad duration", "duration'P1H'"},
		{"bad binary", "binary'not base64!'"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Tokenize(tc.input)
			require.Error(t, err)
			var lexErr *LexError
			assert.ErrorAs(t, err, &lexErr)
		})
	}
}

func TestTokenizePositions(t *testing.T) {
	toks, err := Tokenize("a eq\n  1")
	require.NoError(t, err)
	assert.Equal(t, Position{Line: 1, Col: 1}, toks[0].Pos)
	assert.Equal(t, Position{Line: 1, Col: 3}, toks[1].Pos)
	assert.Equal(t, Position{Line: 2, Col: 3}, toks[2].Pos)
}

func TestTokenizeNumberVsDate(t *testing.T) {
	// A bare year stays a number; a full date becomes a Date literal.
	toks, err := Tokenize("2020")
	require.NoError(t, err)
	assert.Equal(t, ast.Number{Text: "2020", Kind: ast.Integer}, toks[0].Value)

	toks, err = Tokenize("2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, ast.Date{Val: "2020-01-01"}, toks[0].Value)
}
