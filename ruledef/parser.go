package ruledef

import (
	"bufio"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/rexlang/rexlang"
	"github.com/rexlang/rexlang/grammar"
)

// Parser parses rule definition lines into a grammar. Each Parser owns its
// own grammar instance and position counters, so independent parses can run
// concurrently. Lines may be fed all at once with Parse or one at a time
// with ParseLine; both accumulate into the same grammar.
type Parser struct {
	g        *grammar.Grammar
	warnings *arraylist.List
	line     string // text of the current line
	lineno   int    // 1-based line counter
	pos      int    // cursor within line; doubles as the 0-based column
}

// NewParser creates a parser with a fresh grammar, bounded by cfg.
func NewParser(cfg grammar.Config) *Parser {
	return &Parser{
		g:        grammar.NewGrammar(cfg),
		warnings: arraylist.New(),
	}
}

// Parse reads rule definitions from r with default capacity bounds.
func Parse(r io.Reader) (*grammar.Grammar, error) {
	return NewParser(grammar.DefaultConfig()).Parse(r)
}

// ParseString parses rule definitions given as a string.
func ParseString(input string) (*grammar.Grammar, error) {
	return Parse(strings.NewReader(input))
}

// Grammar returns the grammar this parser fills.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.g
}

// Warnings returns the warnings collected so far, in input order.
func (p *Parser) Warnings() []*rexlang.Error {
	ws := make([]*rexlang.Error, 0, p.warnings.Size())
	it := p.warnings.Iterator()
	for it.Next() {
		ws = append(ws, it.Value().(*rexlang.Error))
	}
	return ws
}

// Parse consumes r line by line. The first fatal error stops the run and is
// returned; the grammar is not usable afterwards.
func (p *Parser) Parse(r io.Reader) (*grammar.Grammar, error) {
	maxline := p.g.Config().MaxLineLen
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, maxline+1), maxline+1)
	for scanner.Scan() {
		if err := p.ParseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		if err == bufio.ErrTooLong {
			return nil, capacityError(p.lineno+1, 0,
				&grammar.CapacityError{Arena: "input line", Limit: maxline})
		}
		return nil, err
	}
	return p.g, nil
}

// ParseLine parses a single rule definition line. Blank lines and comment
// lines are accepted and ignored.
func (p *Parser) ParseLine(line string) error {
	if len(line) > p.g.Config().MaxLineLen {
		return capacityError(p.lineno+1, 0,
			&grammar.CapacityError{Arena: "input line", Limit: p.g.Config().MaxLineLen})
	}
	p.lineno++
	p.pos = 0
	p.line = line
	return p.parseLine()
}

// parseLine divides a rule into its components: header, then body. The
// non-terminal opened by the header is marked complete once its body tree
// is built.
func (p *Parser) parseLine() error {
	p.skipSpace()
	if p.atEnd() {
		return nil
	}
	if p.line[p.pos] == '!' { // comment
		return nil
	}
	index, err := p.parseHeader()
	if err != nil {
		return err
	}
	root, err := p.parseBody()
	if err != nil {
		return err
	}
	nt := &p.g.NonTerms[index]
	nt.Expr = root
	nt.Complete = true
	tracer().Debugf("line %d: completed $%s = %s", p.lineno, nt.Name, p.g.ExprString(root))
	return nil
}

// parseHeader parses the '$Name := ' prefix of a line and resolves the name
// against the non-terminal table. It consumes through the end of the ':='
// introducer plus any following whitespace.
func (p *Parser) parseHeader() (int, error) {
	if p.line[p.pos] != '$' {
		return -1, markerError(p.lineno, p.pos, p.line[p.pos:])
	}
	p.pos++
	start := p.pos
	for !p.atEnd() && !isSpace(p.line[p.pos]) {
		p.pos++
	}
	name := p.line[start:p.pos]
	if len(name) == 0 {
		return -1, emptyNameError(p.lineno, p.pos)
	}
	if max := p.g.Config().MaxNameLen; len(name) > max {
		return -1, nameTooLongError(p.lineno, p.pos, name, max)
	}
	if p.atEnd() {
		return -1, missingAssignmentError(p.lineno, p.pos)
	}
	tracer().Debugf("line %d: found non-terminal >>%s<<", p.lineno, name)
	p.skipSpace()
	if p.pos+1 >= len(p.line) || p.line[p.pos] != ':' || p.line[p.pos+1] != '=' {
		return -1, missingAssignmentError(p.lineno, p.pos)
	}
	p.pos += 2
	index, found := p.g.LookupNonTerm(name)
	if found {
		if p.g.NonTerms[index].Complete {
			return -1, duplicateDefError(p.lineno, p.pos, name)
		}
		// forward-referenced placeholder, reuse its slot and index
	} else {
		var err error
		if index, err = p.g.AllocNonTerm(name); err != nil {
			return -1, capacityError(p.lineno, p.pos, err)
		}
	}
	p.skipSpace()
	if p.atEnd() {
		return -1, missingBodyError(p.lineno, p.pos)
	}
	return index, nil
}

// --- Cursor helpers ---------------------------------------------------------

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.line)
}

func (p *Parser) skipSpace() {
	for !p.atEnd() && isSpace(p.line[p.pos]) {
		p.pos++
	}
}

func (p *Parser) warn(w *rexlang.Error) {
	tracer().Infof("warning %v", w)
	p.warnings.Add(w)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\v', '\f', '\r':
		return true
	}
	return false
}
