package grammar

// OpKind is the operator of a binary expression node.
type OpKind int8

// Operators over expression operands. OpEnd terminates a chain of nodes,
// OpConcat is implicit juxtaposition, OpAlternate is '|', OpZeroOrMore is
// the postfix '*'.
const (
	OpEnd OpKind = iota
	OpAlternate
	OpConcat
	OpZeroOrMore
)

func (op OpKind) String() string {
	switch op {
	case OpEnd:
		return "end"
	case OpAlternate:
		return "|"
	case OpConcat:
		return "&"
	case OpZeroOrMore:
		return "*"
	}
	return "?"
}

// OperandKind tags an Operand reference.
type OperandKind int8

// Operand tags. An operand either nests another expression node, references
// a non-terminal, references a terminal in the byte pool, or is absent.
const (
	OperandAbsent OperandKind = iota
	OperandExpr
	OperandNonTerm
	OperandTerm
)

// Operand is a tagged reference to the content of one side of an expression
// node. Ref is an expression node index, a non-terminal index or a terminal
// pool offset, depending on Kind; for OperandAbsent it carries no meaning.
type Operand struct {
	Kind OperandKind
	Ref  int
}

// NoOperand is the absent operand.
var NoOperand = Operand{Kind: OperandAbsent, Ref: -1}

// ExprOperand references a nested expression node.
func ExprOperand(index int) Operand {
	return Operand{Kind: OperandExpr, Ref: index}
}

// NonTermOperand references an entry of the non-terminal table.
func NonTermOperand(index int) Operand {
	return Operand{Kind: OperandNonTerm, Ref: index}
}

// TermOperand references a terminal by its byte pool offset.
func TermOperand(offset int) Operand {
	return Operand{Kind: OperandTerm, Ref: offset}
}

// IsAbsent is true for the absent operand.
func (o Operand) IsAbsent() bool {
	return o.Kind == OperandAbsent
}

// ExprNode is a binary expression tree node. An absent Right occurs only on
// nodes with operator OpEnd or OpZeroOrMore, but an OpZeroOrMore node may
// carry a right continuation when the starred unit is starred again. Left is
// never absent in a finished tree.
type ExprNode struct {
	Op    OpKind
	Left  Operand
	Right Operand
}
