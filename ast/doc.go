// Package ast defines the node model for parsed OData filter expressions.
//
// An expression is a tree of Node values produced by the parser. The node
// set is closed: Node is a sealed interface using the marker method pattern,
// so only types in this package implement it and consumers can write
// exhaustive type switches.
//
// Nodes are plain value types and are never mutated after construction.
// Passes that change a tree build new nodes and may freely reuse unchanged
// subtrees. Identifier/Attribute chains and Literal nodes contain no slices,
// so they are Go-comparable and usable as map keys; for whole trees use
// Equal.
//
// Literal payloads live in a second sealed union, Value, which preserves the
// source text of each literal and exposes a native Go projection via
// Native().
package ast
