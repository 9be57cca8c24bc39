// Package visitor walks and rebuilds expression trees.
//
// Visitor folds a tree into a value of any type, dispatching on the node
// variant; unset handlers fall through to Fallback. Transformer rebuilds a
// tree bottom-up, reusing subtrees its handlers leave untouched, which makes
// the zero-value Transformer the identity transform.
package visitor
