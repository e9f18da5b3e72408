package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/rexlang/rexlang/grammar"
	"github.com/rexlang/rexlang/ruledef"
)

// tracer traces with key 'rexlang.rexc'.
func tracer() tracing.Trace {
	return tracing.Select("rexlang.rexc")
}

// main reads a rule definition file (or stdin) and prints the resulting
// tables: the non-terminal listing, one expression tree per complete
// non-terminal, and optionally a structural fingerprint. A fatal parse
// error prints a line:column diagnostic and exits non-zero.
//
// Usage is
//
//	rexc [-trace Level] [-hash] [-i] [<file>]
//
// With -i, rexc starts an interactive session instead: rule lines are
// entered at a prompt and accumulate into one grammar.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	printHash := flag.Bool("hash", false, "Print a structural fingerprint of the tables")
	interactive := flag.Bool("i", false, "Interactive mode")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))

	if *interactive {
		repl()
		return
	}

	in := os.Stdin
	if name := flag.Arg(0); name != "" {
		f, err := os.Open(name)
		if err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(2)
		}
		defer f.Close()
		in = f
	}

	parser := ruledef.NewParser(grammar.DefaultConfig())
	g, err := parser.Parse(in)
	reportWarnings(parser)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error %s\n", err.Error())
		os.Exit(1)
	}
	g.Dump() // only visible in debug mode
	printTables(g, *printHash)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func reportWarnings(parser *ruledef.Parser) {
	for _, w := range parser.Warnings() {
		fmt.Fprintf(os.Stderr, "Warning %s\n", w.Error())
	}
}

func printTables(g *grammar.Grammar, printHash bool) {
	pterm.Info.Println(fmt.Sprintf("%d non-terminals", g.NonTermCount()))
	for _, name := range g.SortedNames() {
		index, _ := g.LookupNonTerm(name)
		nt := g.NonTerms[index]
		if !nt.Complete {
			pterm.Error.Println(fmt.Sprintf("$%s [%d] is never defined", name, index))
			continue
		}
		printExprTree(g, index)
	}
	if printHash {
		hash, err := g.Fingerprint()
		if err != nil {
			pterm.Error.Println(err.Error())
			return
		}
		pterm.Info.Println(hash)
	}
}

// printExprTree renders the expression tree of a non-terminal on the
// terminal.
func printExprTree(g *grammar.Grammar, index int) {
	nt := g.NonTerms[index]
	pterm.Println(fmt.Sprintf("$%s [%d]", nt.Name, nt.Index))
	ll := leveledExpr(g, nt.Expr, pterm.LeveledList{}, 0)
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

func leveledExpr(g *grammar.Grammar, index int, ll pterm.LeveledList, level int) pterm.LeveledList {
	node := g.Exprs[index]
	ll = append(ll, pterm.LeveledListItem{
		Level: level,
		Text:  node.Op.String(),
	})
	ll = leveledOperand(g, node.Left, ll, level+1)
	if !node.Right.IsAbsent() {
		ll = leveledOperand(g, node.Right, ll, level+1)
	}
	return ll
}

func leveledOperand(g *grammar.Grammar, op grammar.Operand, ll pterm.LeveledList, level int) pterm.LeveledList {
	switch op.Kind {
	case grammar.OperandExpr:
		ll = leveledExpr(g, op.Ref, ll, level)
	case grammar.OperandNonTerm:
		ll = append(ll, pterm.LeveledListItem{
			Level: level,
			Text:  "$" + g.NonTerms[op.Ref].Name,
		})
	case grammar.OperandTerm:
		ll = append(ll, pterm.LeveledListItem{
			Level: level,
			Text:  fmt.Sprintf("%q", g.Term(op.Ref)),
		})
	}
	return ll
}
