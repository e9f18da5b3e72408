package ruledef

import (
	"github.com/rexlang/rexlang/grammar"
)

// parseBody consumes the operand/operator stream of one definition body and
// assembles it into a binary expression tree. Returns the index of the root
// node.
//
// The tree is built as a right-leaning chain: each node takes the operand as
// its left side and the operator as its kind, and its right side points at
// the node for the rest of the body. The postfix '*' does not fit that
// scheme, because a zero-or-more node has no right side; it is handled by a
// splice. Example: (a b* c) becomes (a & ((b*) & (c))), where the starred
// node is the left operand of a freshly allocated wrapper node, and the
// predecessor's right side is redirected at the wrapper.
//
// One node is always allocated speculatively after the last real node of the
// body; it is reclaimed once the operand lexer signals the end of the line.
func (p *Parser) parseBody() (int, error) {
	curIdx, err := p.g.AllocExpr()
	if err != nil {
		return -1, capacityError(p.lineno, p.pos, err)
	}
	root := curIdx
	prevIdx := curIdx

	for {
		ref, found, err := p.lexOperand()
		if err != nil {
			return -1, err
		}
		if !found {
			break
		}
		op := p.lexOperator()
		cur := &p.g.Exprs[curIdx]
		cur.Op = op
		cur.Left = ref

		if op == grammar.OpZeroOrMore {
			// The starred node is a self-contained unit with no right side.
			// Wrap it: a new node takes the starred unit as its left operand
			// and the operator after the star as its kind, then stands in
			// for the plain chain link the predecessor expected.
			cur.Right = grammar.NoOperand
			wrapIdx, err := p.g.AllocExpr()
			if err != nil {
				return -1, capacityError(p.lineno, p.pos, err)
			}
			wrap := &p.g.Exprs[wrapIdx]
			wrap.Op = p.lexOperator()
			wrap.Left = grammar.ExprOperand(curIdx)
			if prevIdx == curIdx {
				// The body's very first operand is starred, so there is no
				// predecessor to redirect. The wrapper becomes the root;
				// writing through the aliased predecessor instead would tie
				// the starred node and its wrapper into a cycle.
				root = wrapIdx
			} else {
				p.g.Exprs[prevIdx].Right = grammar.ExprOperand(wrapIdx)
			}
			curIdx = wrapIdx
		}

		nextIdx, err := p.g.AllocExpr()
		if err != nil {
			return -1, capacityError(p.lineno, p.pos, err)
		}
		p.g.Exprs[curIdx].Right = grammar.ExprOperand(nextIdx)
		prevIdx = curIdx
		curIdx = nextIdx
	}

	// A trailing '|' leaves the last node with a binary operator and
	// nothing to its right.
	last := &p.g.Exprs[prevIdx]
	if last.Op != grammar.OpEnd && last.Op != grammar.OpZeroOrMore {
		return -1, operatorOperandError(p.lineno, p.pos)
	}
	// Give back the speculative trailing node and detach it from the last
	// real node of the body.
	p.g.ReclaimLastExpr()
	last.Right = grammar.NoOperand
	return root, nil
}
