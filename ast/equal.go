package ast

// Equal reports whether two trees are structurally equal. Node identity is
// irrelevant: two independently built trees with the same shape and the same
// literal values compare equal.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case Identifier:
		y, ok := b.(Identifier)
		return ok && x == y
	case Attribute:
		y, ok := b.(Attribute)
		return ok && x.Name == y.Name && Equal(x.Owner, y.Owner)
	case Literal:
		y, ok := b.(Literal)
		return ok && x.Value == y.Value
	case ListExpr:
		y, ok := b.(ListExpr)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case UnaryOp:
		y, ok := b.(UnaryOp)
		return ok && x.Op == y.Op && Equal(x.Operand, y.Operand)
	case BoolOp:
		y, ok := b.(BoolOp)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case Compare:
		y, ok := b.(Compare)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case Arithmetic:
		y, ok := b.(Arithmetic)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case Call:
		y, ok := b.(Call)
		if !ok || x.Func != y.Func || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case Lambda:
		y, ok := b.(Lambda)
		return ok && x.Variable == y.Variable && Equal(x.Body, y.Body)
	case nil:
		return b == nil
	}
	return false
}
