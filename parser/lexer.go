package parser

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/odataq/ast"
)

// Lexical shapes for the typed literals whose spellings overlap plain
// numbers and identifiers. These are tried in order, longest first, before
// the generic number and word rules.
var (
	guidRE = regexp.MustCompile(
		`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	dateTimeRE = regexp.MustCompile(
		`^[1-9]\d{3}-(?:0\d|1[0-2])-(?:[0-2]\d|3[01])T(?:[01]\d|2[0-3]):[0-5]\d(?::[0-5]\d(?:\.\d{1,12})?)?(?:Z|[+-](?:[01]\d|2[0-3]):[0-5]\d)?`)
	dateRE = regexp.MustCompile(
		`^[1-9]\d{3}-(?:0\d|1[0-2])-(?:[0-2]\d|3[01])`)
	timeRE = regexp.MustCompile(
		`^(?:[01]\d|2[0-3]):[0-5]\d(?::[0-5]\d(?:\.\d{1,12})?)?`)
	base64urlRE = regexp.MustCompile(`^[A-Za-z0-9_-]*={0,2}$`)
)

// Lexer scans filter text into tokens. Create one with NewLexer and call
// Next until it returns a KindEOF token; after that Next keeps returning
// EOF. Keywords and literal prefixes are matched case-insensitively.
type Lexer struct {
	input string
	pos   int
	line  int
	col   int
}

// NewLexer returns a lexer over input positioned at line 1, column 1.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// Tokenize scans the whole input eagerly. The returned slice ends with a
// KindEOF token.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var toks []Token
	for {
		t, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.Kind == KindEOF {
			return toks, nil
		}
	}
}

// Next returns the next token.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()

	pos := l.position()
	if l.pos >= len(l.input) {
		return Token{Kind: KindEOF, Pos: pos}, nil
	}

	c := l.input[l.pos]
	switch c {
	case '(':
		return l.punct(KindOpen, pos), nil
	case ')':
		return l.punct(KindClose, pos), nil
	case ',':
		return l.punct(KindComma, pos), nil
	case '/':
		return l.punct(KindSlash, pos), nil
	case ':':
		return l.punct(KindColon, pos), nil
	case '\'':
		return l.scanString(pos)
	}

	if c == '+' || c == '-' {
		if l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1]) {
			return l.scanNumber(pos), nil
		}
		if c == '-' {
			l.advance(1)
			return Token{Kind: KindMinus, Text: "-", Pos: pos}, nil
		}
		return Token{}, l.errorf(pos, "unexpected character %q", c)
	}

	rest := l.input[l.pos:]

	if isDigit(c) || isHexLetter(c) {
		if m := guidRE.FindString(rest); m != "" {
			if _, err := uuid.Parse(m); err == nil {
				l.advance(len(m))
				return Token{Kind: KindLiteral, Text: m, Value: ast.GUID{Val: m}, Pos: pos}, nil
			}
		}
	}

	if isDigit(c) {
		if m := dateTimeRE.FindString(rest); m != "" {
			l.advance(len(m))
			return Token{Kind: KindLiteral, Text: m, Value: ast.DateTime{Val: m}, Pos: pos}, nil
		}
		if m := dateRE.FindString(rest); m != "" {
			l.advance(len(m))
			return Token{Kind: KindLiteral, Text: m, Value: ast.Date{Val: m}, Pos: pos}, nil
		}
		if m := timeRE.FindString(rest); m != "" {
			l.advance(len(m))
			return Token{Kind: KindLiteral, Text: m, Value: ast.Time{Val: m}, Pos: pos}, nil
		}
		return l.scanNumber(pos), nil
	}

	if isIdentStart(c) {
		return l.scanWord(pos)
	}

	return Token{}, l.errorf(pos, "unexpected character %q", c)
}

func (l *Lexer) punct(k Kind, pos Position) Token {
	text := l.input[l.pos : l.pos+1]
	l.advance(1)
	return Token{Kind: k, Text: text, Pos: pos}
}

// scanString consumes a single-quoted string. A quote inside the string is
// written as two quotes.
func (l *Lexer) scanString(pos Position) (Token, error) {
	l.advance(1) // opening quote

	var sb strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\'' {
			if l.pos+1 < len(l.input) && l.input[l.pos+1] == '\'' {
				sb.WriteByte('\'')
				l.advance(2)
				continue
			}
			l.advance(1)
			val := sb.String()
			return Token{Kind: KindLiteral, Text: val, Value: ast.String{Val: val}, Pos: pos}, nil
		}
		sb.WriteByte(c)
		l.advance(1)
	}
	return Token{}, l.errorf(pos, "unterminated string literal")
}

func (l *Lexer) scanNumber(pos Position) Token {
	start := l.pos
	if c := l.input[l.pos]; c == '+' || c == '-' {
		l.advance(1)
	}
	l.takeDigits()

	kind := ast.Integer
	if l.pos < len(l.input) && l.input[l.pos] == '.' &&
		l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1]) {
		l.advance(1)
		l.takeDigits()
		kind = ast.Decimal
	}
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		// Consume the exponent only when digits actually follow.
		probe := l.pos + 1
		if probe < len(l.input) && (l.input[probe] == '+' || l.input[probe] == '-') {
			probe++
		}
		if probe < len(l.input) && isDigit(l.input[probe]) {
			l.advance(probe - l.pos)
			l.takeDigits()
			kind = ast.Float
		}
	}

	text := l.input[start:l.pos]
	return Token{Kind: KindLiteral, Text: text, Value: ast.Number{Text: text, Kind: kind}, Pos: pos}
}

// scanWord consumes an identifier-shaped word and classifies it as a
// keyword, a boolean/null literal, a prefixed typed literal such as
// duration'P1D', or a plain identifier.
func (l *Lexer) scanWord(pos Position) (Token, error) {
	start := l.pos
	l.advance(1)
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if isIdentPart(c) {
			l.advance(1)
			continue
		}
		// Dotted namespace qualification: a single dot between word chars.
		if c == '.' && l.pos+1 < len(l.input) && isIdentPart(l.input[l.pos+1]) {
			l.advance(1)
			continue
		}
		break
	}
	word := l.input[start:l.pos]
	lower := strings.ToLower(word)

	if l.pos < len(l.input) && l.input[l.pos] == '\'' {
		switch lower {
		case "duration", "binary", "geography":
			return l.scanPrefixedLiteral(lower, pos)
		}
	}

	switch lower {
	case "true":
		return Token{Kind: KindLiteral, Text: word, Value: ast.Boolean{Val: true}, Pos: pos}, nil
	case "false":
		return Token{Kind: KindLiteral, Text: word, Value: ast.Boolean{Val: false}, Pos: pos}, nil
	case "null":
		return Token{Kind: KindLiteral, Text: word, Value: ast.Null{}, Pos: pos}, nil
	}
	if k, ok := keywords[lower]; ok {
		return Token{Kind: k, Text: word, Pos: pos}, nil
	}
	return Token{Kind: KindIdent, Text: word, Pos: pos}, nil
}

func (l *Lexer) scanPrefixedLiteral(prefix string, pos Position) (Token, error) {
	payload, err := l.scanString(l.position())
	if err != nil {
		return Token{}, err
	}

	text := prefix + "'" + payload.Text + "'"
	switch prefix {
	case "duration":
		d, err := ast.NewDuration(payload.Text)
		if err != nil {
			return Token{}, l.errorf(pos, "%s", err)
		}
		return Token{Kind: KindLiteral, Text: text, Value: d, Pos: pos}, nil
	case "binary":
		if !base64urlRE.MatchString(payload.Text) {
			return Token{}, l.errorf(pos, "invalid binary literal %q", payload.Text)
		}
		enc := base64.RawURLEncoding
		if strings.HasSuffix(payload.Text, "=") {
			enc = base64.URLEncoding
		}
		if _, err := enc.DecodeString(payload.Text); err != nil {
			return Token{}, l.errorf(pos, "invalid binary literal %q", payload.Text)
		}
		return Token{Kind: KindLiteral, Text: text, Value: ast.Binary{Val: payload.Text}, Pos: pos}, nil
	default: // geography
		return Token{Kind: KindLiteral, Text: text, Value: ast.Geography{Val: payload.Text}, Pos: pos}, nil
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.advance(1)
		default:
			return
		}
	}
}

func (l *Lexer) takeDigits() {
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.advance(1)
	}
}

// advance moves forward n bytes, keeping line/column counters in step.
func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *Lexer) position() Position {
	return Position{Line: l.line, Col: l.col}
}

func (l *Lexer) errorf(pos Position, format string, args ...any) error {
	return &LexError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexLetter(c byte) bool {
	return (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
