package ruledef

import (
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/rexlang/rexlang"
	"github.com/rexlang/rexlang/grammar"
)

func parseOK(t *testing.T, input string) *grammar.Grammar {
	t.Helper()
	g, err := ParseString(input)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return g
}

// rootString parses input and renders the expression tree of the named
// non-terminal.
func rootString(t *testing.T, input, name string) string {
	t.Helper()
	g := parseOK(t, input)
	index, found := g.LookupNonTerm(name)
	if !found {
		t.Fatalf("non-terminal %q not in table", name)
	}
	nt := g.NonTerms[index]
	if !nt.Complete {
		t.Fatalf("non-terminal %q is not complete", name)
	}
	return g.ExprString(nt.Expr)
}

func checkErrorCode(t *testing.T, samples []string, code int) {
	t.Helper()
	for index, src := range samples {
		errPrefix := "input #" + strconv.Itoa(index)
		_, e := ParseString(src)
		if e == nil {
			t.Error(errPrefix + ": error expected, got success")
			continue
		}
		pe, is := e.(*rexlang.Error)
		if !is {
			t.Error(errPrefix + ": *rexlang.Error expected, got \"" + e.Error() + "\"")
			continue
		}
		if pe.Code != code {
			t.Errorf("%s: expected error code %d, got %d (%s)", errPrefix, code, pe.Code, pe.Message)
		}
	}
}

// --- Tree shapes ------------------------------------------------------------

func TestSingleTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rexlang.ruledef")
	defer teardown()
	//
	g := parseOK(t, "$A := x")
	if g.NonTermCount() != 1 {
		t.Fatalf("%d non-terminals, want 1", g.NonTermCount())
	}
	nt := g.NonTerms[0]
	if nt.Name != "A" || !nt.Complete {
		t.Fatalf("table entry = %+v", nt)
	}
	root := g.Exprs[nt.Expr]
	if root.Op != grammar.OpEnd {
		t.Errorf("root operator = %v, want end", root.Op)
	}
	if root.Left.Kind != grammar.OperandTerm || g.Term(root.Left.Ref) != "x" {
		t.Errorf("root left operand = %+v", root.Left)
	}
	if !root.Right.IsAbsent() {
		t.Errorf("root right operand = %+v, want absent", root.Right)
	}
}

func TestConcat(t *testing.T) {
	if s := rootString(t, "$A := x y", "A"); s != "(x & (y))" {
		t.Errorf("tree = %s", s)
	}
}

func TestAlternate(t *testing.T) {
	if s := rootString(t, "$A := x | y", "A"); s != "(x | (y))" {
		t.Errorf("tree = %s", s)
	}
}

func TestLongChain(t *testing.T) {
	if s := rootString(t, "$A := a b c", "A"); s != "(a & (b & (c)))" {
		t.Errorf("tree = %s", s)
	}
}

// Regression for a starred first operand: the wrapper node becomes the
// definition root, and the starred node must not end up referencing its own
// wrapper. ExprString recurses through every reachable node, so this test
// also proves the tree is acyclic.
func TestStarFirstOperand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rexlang.ruledef")
	defer teardown()
	//
	g := parseOK(t, "$A := x* y")
	root := g.Exprs[g.NonTerms[0].Expr]
	if root.Op != grammar.OpConcat {
		t.Fatalf("root operator = %v, want the splice wrapper's concat", root.Op)
	}
	if root.Left.Kind != grammar.OperandExpr {
		t.Fatalf("root left operand = %+v, want a nested starred unit", root.Left)
	}
	starred := g.Exprs[root.Left.Ref]
	if starred.Op != grammar.OpZeroOrMore {
		t.Errorf("nested operator = %v, want *", starred.Op)
	}
	if !starred.Right.IsAbsent() {
		t.Errorf("starred unit right operand = %+v, want absent", starred.Right)
	}
	if s := g.ExprString(g.NonTerms[0].Expr); s != "((x*) & (y))" {
		t.Errorf("tree = %s", s)
	}
}

func TestStarMidChain(t *testing.T) {
	if s := rootString(t, "$A := a b* c", "A"); s != "(a & ((b*) & (c)))" {
		t.Errorf("tree = %s", s)
	}
}

func TestStarAtEnd(t *testing.T) {
	if s := rootString(t, "$A := a b*", "A"); s != "(a & ((b*)))" {
		t.Errorf("tree = %s", s)
	}
}

// "term*" and "term *" must produce identical trees.
func TestSpaceSeparatedStar(t *testing.T) {
	joined := rootString(t, "$A := x* y", "A")
	spaced := rootString(t, "$A := x * y", "A")
	if joined != spaced {
		t.Errorf("trees differ: %s vs %s", joined, spaced)
	}
}

func TestStarAfterAlternate(t *testing.T) {
	if s := rootString(t, "$A := x* | y", "A"); s != "((x*) | (y))" {
		t.Errorf("tree = %s", s)
	}
}

// A starred unit can itself be starred; the wrapper node keeps its
// continuation, so y must survive into the tree.
func TestDoubleStar(t *testing.T) {
	if s := rootString(t, "$A := x* * y", "A"); s != "((x*)*(y))" {
		t.Errorf("tree = %s", s)
	}
}

func TestReferenceOperand(t *testing.T) {
	if s := rootString(t, "$B := z\n$A := $B x", "A"); s != "($B & (x))" {
		t.Errorf("tree = %s", s)
	}
}

// --- Forward references -----------------------------------------------------

func TestForwardReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rexlang.ruledef")
	defer teardown()
	//
	g := parseOK(t, "$A := $B\n$B := z")
	if g.NonTermCount() != 2 {
		t.Fatalf("%d non-terminals, want 2", g.NonTermCount())
	}
	aIdx, _ := g.LookupNonTerm("A")
	bIdx, _ := g.LookupNonTerm("B")
	rootA := g.Exprs[g.NonTerms[aIdx].Expr]
	if rootA.Left.Kind != grammar.OperandNonTerm || rootA.Left.Ref != bIdx {
		t.Errorf("reference in A resolves to %+v, want index %d", rootA.Left, bIdx)
	}
	if !g.NonTerms[bIdx].Complete {
		t.Error("B not complete after its definition line")
	}
}

func TestUnresolvedForwardReference(t *testing.T) {
	g := parseOK(t, "$A := $B")
	bIdx, found := g.LookupNonTerm("B")
	if !found {
		t.Fatal("placeholder for B missing")
	}
	if g.NonTerms[bIdx].Complete {
		t.Error("B must stay incomplete without a definition line")
	}
}

func TestMutualReference(t *testing.T) {
	g := parseOK(t, "$A := x $B\n$B := y $A")
	for _, name := range []string{"A", "B"} {
		index, _ := g.LookupNonTerm(name)
		if !g.NonTerms[index].Complete {
			t.Errorf("%s not complete", name)
		}
	}
}

// --- Escapes ----------------------------------------------------------------

func TestEscapeDecoding(t *testing.T) {
	g := parseOK(t, "$A := a@_b")
	root := g.Exprs[g.NonTerms[0].Expr]
	if text := g.Term(root.Left.Ref); text != "a b" {
		t.Errorf("decoded terminal = %q, want \"a b\"", text)
	}
}

func TestEscapedStarTerminal(t *testing.T) {
	g := parseOK(t, "$A := a@*")
	root := g.Exprs[g.NonTerms[0].Expr]
	if root.Op != grammar.OpEnd {
		t.Errorf("root operator = %v, want end", root.Op)
	}
	if text := g.Term(root.Left.Ref); text != "a*" {
		t.Errorf("decoded terminal = %q, want \"a*\"", text)
	}
}

func TestInvalidEscapeRecovers(t *testing.T) {
	p := NewParser(grammar.DefaultConfig())
	if err := p.ParseLine("$A := a@xb"); err != nil {
		t.Fatalf("warning must not stop the parse: %v", err)
	}
	g := p.Grammar()
	root := g.Exprs[g.NonTerms[0].Expr]
	if text := g.Term(root.Left.Ref); text != "axb" {
		t.Errorf("decoded terminal = %q, want \"axb\"", text)
	}
	ws := p.Warnings()
	if len(ws) != 1 || ws[0].Code != InvalidEscapeWarning {
		t.Fatalf("warnings = %v", ws)
	}
	if ws[0].Line != 1 {
		t.Errorf("warning line = %d, want 1", ws[0].Line)
	}
}

// --- Line handling ----------------------------------------------------------

func TestCommentsAndBlankLines(t *testing.T) {
	g := parseOK(t, "! a comment\n\n   \n  ! indented comment\n$A := x\n")
	if g.NonTermCount() != 1 {
		t.Errorf("%d non-terminals, want 1", g.NonTermCount())
	}
}

func TestDiagnosticPosition(t *testing.T) {
	_, err := ParseString("$A := x\n$ := y")
	pe, is := err.(*rexlang.Error)
	if !is {
		t.Fatalf("expected *rexlang.Error, got %v", err)
	}
	if pe.Line != 2 {
		t.Errorf("error line = %d, want 2", pe.Line)
	}
}

// --- Error scenarios --------------------------------------------------------

func TestMissingMarker(t *testing.T) {
	checkErrorCode(t, []string{
		"x := y",
		"A := x",
	}, MissingNonTermMarkerError)
}

func TestEmptyName(t *testing.T) {
	checkErrorCode(t, []string{
		"$ := x",
		"$A := $",
	}, EmptyNameError)
}

func TestNameTooLong(t *testing.T) {
	name := ""
	for i := 0; i < 65; i++ {
		name += "n"
	}
	checkErrorCode(t, []string{
		"$" + name + " := x",
		"$A := $" + name,
	}, NameTooLongError)
}

func TestMissingAssignment(t *testing.T) {
	checkErrorCode(t, []string{
		"$A",
		"$A x",
		"$A = x",
		"$A :- x",
		"$A :",
	}, MissingAssignmentError)
}

func TestMissingBody(t *testing.T) {
	checkErrorCode(t, []string{
		"$A :=",
		"$A :=   ",
	}, MissingBodyError)
}

func TestDuplicateDefinition(t *testing.T) {
	checkErrorCode(t, []string{
		"$A := x\n$A := y",
		"$A := x\n$B := z\n$A := y",
	}, DuplicateDefinitionError)
}

func TestOperatorWithoutOperand(t *testing.T) {
	checkErrorCode(t, []string{
		"$A := | x",
		"$A := * x",
		"$A := x | | y",
		"$A := x |",
		"$A := x* |",
		"$A := x y |",
	}, OperatorWithoutOperandError)
}

func TestIncompleteEscape(t *testing.T) {
	checkErrorCode(t, []string{
		"$A := ab@",
	}, IncompleteEscapeError)
}

// --- Capacity scenarios -----------------------------------------------------

func capacityParser(mutate func(*grammar.Config)) *Parser {
	cfg := grammar.DefaultConfig()
	mutate(&cfg)
	return NewParser(cfg)
}

func expectCapacity(t *testing.T, p *Parser, input string) {
	t.Helper()
	_, err := p.Parse(strings.NewReader(input))
	if rexlang.ErrorCode(err) != CapacityExceededError {
		t.Errorf("expected CapacityExceededError, got %v", err)
	}
}

func TestNonTermCapacity(t *testing.T) {
	p := capacityParser(func(cfg *grammar.Config) { cfg.MaxNonTerms = 2 })
	expectCapacity(t, p, "$A := x\n$B := y\n$C := z")
}

func TestExprNodeCapacity(t *testing.T) {
	p := capacityParser(func(cfg *grammar.Config) { cfg.MaxExprNodes = 3 })
	expectCapacity(t, p, "$A := a b c d e f")
}

func TestTermPoolCapacity(t *testing.T) {
	p := capacityParser(func(cfg *grammar.Config) { cfg.MaxTermBytes = 8 })
	expectCapacity(t, p, "$A := abcdefgh ijklmnop")
}

func TestLineLengthCapacity(t *testing.T) {
	p := capacityParser(func(cfg *grammar.Config) { cfg.MaxLineLen = 16 })
	expectCapacity(t, p, "$A := aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
}

// --- Idempotence ------------------------------------------------------------

const sampleRules = `
! digits
$Digit := 0 | 1 | 2
$Number := $Digit $Digit*
$Spaced := a@_b $Number
`

func TestIdempotence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rexlang.ruledef")
	defer teardown()
	//
	g1 := parseOK(t, sampleRules)
	g2 := parseOK(t, sampleRules)
	h1, err := g1.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	h2, err := g2.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Errorf("two parses of the same input differ: %s vs %s", h1, h2)
	}
	a1, _ := g1.LookupNonTerm("Number")
	a2, _ := g2.LookupNonTerm("Number")
	if a1 != a2 {
		t.Errorf("name to index assignment differs: %d vs %d", a1, a2)
	}
}
