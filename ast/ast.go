package ast

// Node is a sealed interface representing one expression-tree variant.
// Only types in this package implement it.
type Node interface {
	node()
}

// Identifier is a bare name, optionally qualified with a dotted namespace
// such as the "geo" in geo.distance.
type Identifier struct {
	Name      string
	Namespace string
}

func (Identifier) node() {}

// FullName returns the dotted name including the namespace prefix.
func (i Identifier) FullName() string {
	if i.Namespace == "" {
		return i.Name
	}
	return i.Namespace + "." + i.Name
}

// Attribute is one step of a slash-separated property path. Paths are
// left-associative: a/b/c is Attribute{Attribute{Identifier{a}, b}, c}.
// Owner is always an Identifier or another Attribute.
type Attribute struct {
	Owner Node
	Name  string
}

func (Attribute) node() {}

// Literal wraps a typed literal value.
type Literal struct {
	Value Value
}

func (Literal) node() {}

// ListExpr is an ordered, possibly heterogeneous list of expressions, as in
// the right-hand side of an "in" comparison.
type ListExpr struct {
	Items []Node
}

func (ListExpr) node() {}

// UnaryOperator enumerates the unary operators.
type UnaryOperator uint8

const (
	Not UnaryOperator = iota
	Neg
)

func (op UnaryOperator) String() string {
	switch op {
	case Not:
		return "not"
	case Neg:
		return "-"
	}
	return "unknown"
}

// UnaryOp applies a unary operator to a single operand.
type UnaryOp struct {
	Op      UnaryOperator
	Operand Node
}

func (UnaryOp) node() {}

// BoolOperator enumerates the boolean connectives.
type BoolOperator uint8

const (
	And BoolOperator = iota
	Or
)

func (op BoolOperator) String() string {
	switch op {
	case And:
		return "and"
	case Or:
		return "or"
	}
	return "unknown"
}

// BoolOp combines two boolean expressions. Chains built from surface text
// are left-associative.
type BoolOp struct {
	Op    BoolOperator
	Left  Node
	Right Node
}

func (BoolOp) node() {}

// Comparator enumerates the comparison operators.
type Comparator uint8

const (
	Eq Comparator = iota
	Ne
	Lt
	Le
	Gt
	Ge
	In
	Has
)

func (op Comparator) String() string {
	switch op {
	case Eq:
		return "eq"
	case Ne:
		return "ne"
	case Lt:
		return "lt"
	case Le:
		return "le"
	case Gt:
		return "gt"
	case Ge:
		return "ge"
	case In:
		return "in"
	case Has:
		return "has"
	}
	return "unknown"
}

// Compare is a comparison between two expressions.
type Compare struct {
	Op    Comparator
	Left  Node
	Right Node
}

func (Compare) node() {}

// ArithOperator enumerates the arithmetic operators.
type ArithOperator uint8

const (
	Add ArithOperator = iota
	Sub
	Mul
	Div
	Mod
)

func (op ArithOperator) String() string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	case Mod:
		return "mod"
	}
	return "unknown"
}

// Arithmetic is an arithmetic operation on two expressions.
type Arithmetic struct {
	Op    ArithOperator
	Left  Node
	Right Node
}

func (Arithmetic) node() {}

// Call is a function application. The parser does not check the function
// name or arity; backends decide what they can render.
//
// Quantified expressions over collections are represented as calls too:
// tags/any(t: t eq 'go') becomes Call{any, [<tags expr>, Lambda{t, body}]}.
type Call struct {
	Func Identifier
	Args []Node
}

func (Call) node() {}

// Lambda is the bound-variable sub-expression of an any/all call. Variable
// is a pure naming scope valid only inside Body; there is no captured
// environment.
type Lambda struct {
	Variable string
	Body     Node
}

func (Lambda) node() {}

// Path returns the slash-joined path string of an Identifier or Attribute
// chain, e.g. "author/name". The second return is false for any other node
// shape.
func Path(n Node) (string, bool) {
	switch v := n.(type) {
	case Identifier:
		return v.FullName(), true
	case Attribute:
		owner, ok := Path(v.Owner)
		if !ok {
			return "", false
		}
		return owner + "/" + v.Name, true
	}
	return "", false
}
