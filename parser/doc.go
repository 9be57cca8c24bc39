// Package parser turns OData $filter text into an expression tree.
//
// Lexing and parsing are split the usual way: a hand-written scanner emits
// typed tokens with 1-based line/column positions, and a recursive-descent
// parser consumes them following the OData operator precedence ladder
// (loosest to tightest):
//
//	or < and < eq,ne < lt,le,gt,ge,has,in < add,sub < mul,div,mod < not,- < primary
//
// All binary operators associate left to right. Parenthesized single-element
// lists need a trailing comma to distinguish them from grouped expressions:
// ('a') is the string 'a', ('a',) is a one-element list.
//
// Both stages fail fast with positioned errors (LexError, SyntaxError) and
// never return a partial tree.
package parser
