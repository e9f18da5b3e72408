package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/rexlang/rexlang/grammar"
	"github.com/rexlang/rexlang/ruledef"
)

// repl runs an interactive session. Every entered line is parsed as one rule
// definition into the session grammar; a parse error is printed and the
// session continues, since each line is an independent submission. Commands
// start with ':'.
func repl() {
	pterm.Info.Println("rexc interactive mode, :help for commands, <ctrl>D quits")
	rl, err := readline.New("rex> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	parser := ruledef.NewParser(grammar.DefaultConfig())
	warned := 0
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := command(parser, line); quit {
				break
			}
			continue
		}
		if err := parser.ParseLine(line); err != nil {
			pterm.Error.Println(err.Error())
		}
		for _, w := range parser.Warnings()[warned:] {
			pterm.Error.Println("warning " + w.Error())
		}
		warned = len(parser.Warnings())
	}
	println("Good bye!")
}

func command(parser *ruledef.Parser, line string) bool {
	g := parser.Grammar()
	args := strings.Fields(line)
	switch args[0] {
	case ":quit", ":q":
		return true
	case ":dump":
		printTables(g, false)
	case ":hash":
		hash, err := g.Fingerprint()
		if err != nil {
			pterm.Error.Println(err.Error())
			break
		}
		pterm.Info.Println(hash)
	case ":tree":
		if len(args) != 2 {
			pterm.Error.Println("usage: :tree <name>")
			break
		}
		name := strings.TrimPrefix(args[1], "$")
		index, found := g.LookupNonTerm(name)
		if !found {
			pterm.Error.Println("unknown non-terminal: " + name)
			break
		}
		if !g.NonTerms[index].Complete {
			pterm.Error.Println("$" + name + " is not defined yet")
			break
		}
		printExprTree(g, index)
	case ":help":
		pterm.Info.Println("$Name := body   define a rule")
		pterm.Info.Println(":tree <name>    print the expression tree of a rule")
		pterm.Info.Println(":dump           print all tables")
		pterm.Info.Println(":hash           print the table fingerprint")
		pterm.Info.Println(":quit           leave")
	default:
		pterm.Error.Println("unknown command: " + args[0])
	}
	return false
}
