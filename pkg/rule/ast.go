package rule

// Kind is the value category of an expression.
type Kind int

const (
	// KindBool is a boolean-valued expression.
	KindBool Kind = iota
	// KindNumber is an unsigned 32-bit integer expression.
	KindNumber
)

func (k Kind) String() string {
	if k == KindNumber {
		return "number"
	}

	return "boolean"
}

// Names of the variables bound by the surrounding shader.
const (
	VarIsAlive      = "is_alive"
	VarNumNeighbors = "num_neighbors"
)

// Variables lists the identifiers a rule may reference, with their kinds.
var Variables = map[string]Kind{
	VarIsAlive:      KindBool,
	VarNumNeighbors: KindNumber,
}

// Node is a node of the rule AST.
type Node interface {
	// Kind reports the value category the node produces.
	Kind() Kind
	// Pos reports where the node starts in the rule text.
	Pos() Position

	node()
}

// CompareOp is a numeric comparison operator.
type CompareOp int

const (
	OpEq CompareOp = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

func (op CompareOp) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	}

	return "?"
}

// LogicOp is a boolean binary operator.
type LogicOp int

const (
	OpAnd LogicOp = iota
	OpOr
)

func (op LogicOp) String() string {
	if op == OpOr {
		return "or"
	}

	return "and"
}

type (
	// BoolLiteral is `true` or `false`.
	BoolLiteral struct {
		Start Position
		Value bool
	}

	// NumberLiteral is an unsigned integer literal.
	NumberLiteral struct {
		Start Position
		Value uint32
	}

	// Variable references one of [Variables].
	Variable struct {
		Name  string
		Start Position
	}

	// Comparison compares two numeric operands.
	Comparison struct {
		Left  Node
		Right Node
		Start Position
		Op    CompareOp
	}

	// BinaryLogic combines two boolean operands.
	BinaryLogic struct {
		Left  Node
		Right Node
		Start Position
		Op    LogicOp
	}

	// Not negates a boolean operand.
	Not struct {
		Operand Node
		Start   Position
	}

	// Conditional selects Then or Else depending on Cond.
	Conditional struct {
		Cond  Node
		Then  Node
		Else  Node
		Start Position
	}
)

func (*BoolLiteral) Kind() Kind   { return KindBool }
func (*NumberLiteral) Kind() Kind { return KindNumber }
func (*Comparison) Kind() Kind    { return KindBool }
func (*BinaryLogic) Kind() Kind   { return KindBool }
func (*Not) Kind() Kind           { return KindBool }
func (*Conditional) Kind() Kind   { return KindBool }

func (v *Variable) Kind() Kind {
	return Variables[v.Name]
}

func (n *BoolLiteral) Pos() Position   { return n.Start }
func (n *NumberLiteral) Pos() Position { return n.Start }
func (n *Variable) Pos() Position      { return n.Start }
func (n *Comparison) Pos() Position    { return n.Start }
func (n *BinaryLogic) Pos() Position   { return n.Start }
func (n *Not) Pos() Position           { return n.Start }
func (n *Conditional) Pos() Position   { return n.Start }

func (*BoolLiteral) node()   {}
func (*NumberLiteral) node() {}
func (*Variable) node()      {}
func (*Comparison) node()    {}
func (*BinaryLogic) node()   {}
func (*Not) node()           {}
func (*Conditional) node()   {}
