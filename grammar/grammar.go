package grammar

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Config carries the capacity bounds for one grammar instance. All bounds
// are hard limits: exceeding one fails the allocation with a CapacityError.
type Config struct {
	MaxNonTerms  int // entries in the non-terminal table
	MaxExprNodes int // entries in the expression node table
	MaxTermBytes int // cumulative size of the terminal byte pool
	MaxNameLen   int // length of a non-terminal name
	MaxLineLen   int // length of one input line (enforced by the parser)
}

// DefaultConfig returns the standard capacity bounds.
func DefaultConfig() Config {
	return Config{
		MaxNonTerms:  256,
		MaxExprNodes: 4 * 256, // an average of 4 nested expressions per non-terminal
		MaxTermBytes: 8192,
		MaxNameLen:   64,
		MaxLineLen:   1024,
	}
}

// CapacityError is returned when an arena bound of a Config is reached.
type CapacityError struct {
	Arena string // which arena ran out
	Limit int    // the configured bound
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s arena exceeds capacity of %d", e.Arena, e.Limit)
}

// NonTerminal is one entry of the non-terminal table. Expr references the
// root node of the defining expression and is valid only when Complete is
// true. A non-terminal that has been referenced in a rule body before its
// own definition line appeared exists as an incomplete placeholder.
type NonTerminal struct {
	Name     string
	Expr     int
	Complete bool
	Index    int
}

// Grammar owns the three arenas filled during a parse. Exported slices are
// the result tables handed to table consumers; consumers must treat them as
// read-only.
type Grammar struct {
	NonTerms []NonTerminal
	Exprs    []ExprNode
	Terms    []byte
	cfg      Config
}

// NewGrammar creates an empty grammar with the given capacity bounds.
// Arenas are owned per instance, so independent parses never share state.
func NewGrammar(cfg Config) *Grammar {
	return &Grammar{
		NonTerms: make([]NonTerminal, 0, cfg.MaxNonTerms),
		Exprs:    make([]ExprNode, 0, cfg.MaxExprNodes),
		Terms:    make([]byte, 0, cfg.MaxTermBytes),
		cfg:      cfg,
	}
}

// Config returns the capacity bounds this grammar was created with.
func (g *Grammar) Config() Config {
	return g.cfg
}

// NonTermCount returns the number of distinct non-terminals, complete or not.
func (g *Grammar) NonTermCount() int {
	return len(g.NonTerms)
}

// AllocNonTerm appends a new non-terminal entry, initially incomplete, and
// returns its index.
func (g *Grammar) AllocNonTerm(name string) (int, error) {
	if len(g.NonTerms) >= g.cfg.MaxNonTerms {
		return -1, &CapacityError{Arena: "non-terminal", Limit: g.cfg.MaxNonTerms}
	}
	index := len(g.NonTerms)
	g.NonTerms = append(g.NonTerms, NonTerminal{
		Name:  name,
		Expr:  -1,
		Index: index,
	})
	tracer().Debugf("non-terminal %q gets index %d", name, index)
	return index, nil
}

// LookupNonTerm finds a non-terminal by exact name match, including
// incomplete placeholders. The table is small and append-only, a linear
// scan is fine.
func (g *Grammar) LookupNonTerm(name string) (int, bool) {
	for i := range g.NonTerms {
		if g.NonTerms[i].Name == name {
			return i, true
		}
	}
	return -1, false
}

// AllocExpr appends a zeroed expression node and returns its index. The
// backing array is preallocated to the configured bound, so pointers into
// the arena stay valid across allocations.
func (g *Grammar) AllocExpr() (int, error) {
	if len(g.Exprs) >= g.cfg.MaxExprNodes {
		return -1, &CapacityError{Arena: "expression", Limit: g.cfg.MaxExprNodes}
	}
	index := len(g.Exprs)
	g.Exprs = append(g.Exprs, ExprNode{Left: NoOperand, Right: NoOperand})
	return index, nil
}

// ReclaimLastExpr releases the most recently allocated expression node. The
// parser allocates one node speculatively after the last real node of every
// definition body and trims it here; this is the only reclamation there is.
func (g *Grammar) ReclaimLastExpr() {
	if len(g.Exprs) == 0 {
		return
	}
	g.Exprs = g.Exprs[:len(g.Exprs)-1]
}

// AppendTerm copies decoded terminal bytes into the pool, null-terminated,
// and returns the offset of the first byte.
func (g *Grammar) AppendTerm(text []byte) (int, error) {
	if len(g.Terms)+len(text)+1 > g.cfg.MaxTermBytes {
		return -1, &CapacityError{Arena: "terminal", Limit: g.cfg.MaxTermBytes}
	}
	offset := len(g.Terms)
	g.Terms = append(g.Terms, text...)
	g.Terms = append(g.Terms, 0)
	return offset, nil
}

// Term reads the null-terminated terminal at the given pool offset.
func (g *Grammar) Term(offset int) string {
	if offset < 0 || offset >= len(g.Terms) {
		return ""
	}
	end := offset
	for end < len(g.Terms) && g.Terms[end] != 0 {
		end++
	}
	return string(g.Terms[offset:end])
}

// SortedNames returns all non-terminal names in lexical order.
func (g *Grammar) SortedNames() []string {
	set := treeset.NewWith(utils.StringComparator)
	for i := range g.NonTerms {
		set.Add(g.NonTerms[i].Name)
	}
	names := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		names = append(names, v.(string))
	}
	return names
}

// ExprString renders the expression tree rooted at a node index as a
// parenthesized term, e.g. "(a & ((b*) & (c)))". Intended for debugging
// and test assertions.
func (g *Grammar) ExprString(index int) string {
	var b strings.Builder
	g.writeExpr(&b, index)
	return b.String()
}

func (g *Grammar) writeExpr(b *strings.Builder, index int) {
	if index < 0 || index >= len(g.Exprs) {
		return
	}
	node := g.Exprs[index]
	b.WriteString("(")
	g.writeOperand(b, node.Left)
	switch node.Op {
	case OpAlternate:
		b.WriteString(" | ")
	case OpConcat:
		b.WriteString(" & ")
	case OpZeroOrMore:
		b.WriteString("*")
	}
	// starred nodes usually have no right side, but a doubly starred unit
	// chains on
	g.writeOperand(b, node.Right)
	b.WriteString(")")
}

func (g *Grammar) writeOperand(b *strings.Builder, op Operand) {
	switch op.Kind {
	case OperandExpr:
		g.writeExpr(b, op.Ref)
	case OperandNonTerm:
		b.WriteString("$")
		b.WriteString(g.NonTerms[op.Ref].Name)
	case OperandTerm:
		b.WriteString(g.Term(op.Ref))
	}
}

// Dump is a debugging helper, listing the non-terminal table.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %d non-terminals ----------------", len(g.NonTerms))
	for i := range g.NonTerms {
		nt := &g.NonTerms[i]
		if nt.Complete {
			tracer().Debugf("%3d: $%s = %s", nt.Index, nt.Name, g.ExprString(nt.Expr))
		} else {
			tracer().Debugf("%3d: $%s (incomplete)", nt.Index, nt.Name)
		}
	}
	tracer().Debugf("-------------------------------------")
}
