package ruledef

import (
	"github.com/rexlang/rexlang/grammar"
)

// escapeChar introduces an escape sequence inside literal tokens.
const escapeChar = '@'

// lexOperand extracts the next operand of the current line: a non-terminal
// reference or a terminal literal. It reports found=false at the end of the
// line, which terminates the body normally.
func (p *Parser) lexOperand() (op grammar.Operand, found bool, err error) {
	p.skipSpace()
	if p.atEnd() {
		return grammar.NoOperand, false, nil
	}
	if c := p.line[p.pos]; c == '|' || c == '*' {
		return grammar.NoOperand, false, operatorOperandError(p.lineno, p.pos)
	}
	start := p.pos
	for !p.atEnd() && !isSpace(p.line[p.pos]) {
		p.pos++
	}
	// A trailing unescaped '*' belongs to the operator stream, not the
	// token: back the cursor up one column so "term*" lexes like "term *".
	if p.line[p.pos-1] == '*' && p.line[p.pos-2] != escapeChar {
		p.pos--
	}
	token := p.line[start:p.pos]

	if token[0] == '$' {
		index, err := p.resolveReference(token[1:])
		if err != nil {
			return grammar.NoOperand, false, err
		}
		return grammar.NonTermOperand(index), true, nil
	}
	decoded, err := p.decodeEscapes(token, start)
	if err != nil {
		return grammar.NoOperand, false, err
	}
	offset, err := p.g.AppendTerm(decoded)
	if err != nil {
		return grammar.NoOperand, false, capacityError(p.lineno, p.pos, err)
	}
	return grammar.TermOperand(offset), true, nil
}

// resolveReference looks up a referenced non-terminal by name, allocating an
// incomplete placeholder if the name has not been seen yet. This is the
// forward-reference mechanism: the placeholder keeps its index when its own
// definition line shows up later.
func (p *Parser) resolveReference(name string) (int, error) {
	if len(name) == 0 {
		return -1, emptyNameError(p.lineno, p.pos)
	}
	if max := p.g.Config().MaxNameLen; len(name) > max {
		return -1, nameTooLongError(p.lineno, p.pos, name, max)
	}
	if index, found := p.g.LookupNonTerm(name); found {
		return index, nil
	}
	index, err := p.g.AllocNonTerm(name)
	if err != nil {
		return -1, capacityError(p.lineno, p.pos, err)
	}
	tracer().Debugf("line %d: forward reference to $%s", p.lineno, name)
	return index, nil
}

// decodeEscapes copies a literal token, decoding '@' escape sequences:
// @_ yields a space, @@ @| @* @$ yield the escaped character. An unknown
// sequence is copied verbatim after reporting a warning; an escape character
// as the last byte of the token is fatal.
func (p *Parser) decodeEscapes(token string, startCol int) ([]byte, error) {
	out := make([]byte, 0, len(token))
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c != escapeChar {
			out = append(out, c)
			continue
		}
		if i == len(token)-1 {
			return nil, incompleteEscapeError(p.lineno, p.pos)
		}
		i++
		switch token[i] {
		case '_':
			out = append(out, ' ')
		case '@', '|', '*', '$':
			out = append(out, token[i])
		default:
			p.warn(invalidEscapeWarning(p.lineno, startCol+i))
			out = append(out, token[i])
		}
	}
	return out, nil
}

// lexOperator extracts the operator following an operand. At the end of the
// line it returns OpEnd; if the cursor sits on the start of another operand,
// concatenation is implied and nothing is consumed.
func (p *Parser) lexOperator() grammar.OpKind {
	p.skipSpace()
	if p.atEnd() {
		return grammar.OpEnd
	}
	switch p.line[p.pos] {
	case '|':
		p.pos++
		return grammar.OpAlternate
	case '*':
		p.pos++
		return grammar.OpZeroOrMore
	}
	return grammar.OpConcat
}
