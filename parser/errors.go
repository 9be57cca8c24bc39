package parser

import "fmt"

// LexError reports an unrecognized character or a malformed typed literal.
type LexError struct {
	Pos     Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %s: %s", e.Pos, e.Message)
}

// SyntaxError reports a token stream that does not match the grammar,
// including leftover tokens after a complete expression.
type SyntaxError struct {
	Pos      Position
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: expected %s, found %s", e.Pos, e.Expected, e.Found)
}
