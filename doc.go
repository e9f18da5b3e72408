/*
Package rexlang is the front end of a regex-grammar compiler.

rexlang reads a textual specification of named grammar rules (non-terminals
defined as regular expressions over terminals and other non-terminals) and
produces index-addressed tables for a downstream automaton builder.
Package structure is as follows:

■ grammar: Package grammar holds the storage arenas and the result tables
produced by a parse: non-terminal records, binary expression nodes and the
shared terminal byte pool, all addressed by stable integer handles.

■ ruledef: Package ruledef parses rule definition text, one rule per line,
into a grammar.Grammar. It contains the line driver, the header parser, the
operand/operator lexer and the expression tree builder.

■ cmd/rexc: A command line front end that parses a rule file (or stdin, or an
interactive session) and prints the resulting tables and expression trees.

The base package contains data types which are used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package rexlang
