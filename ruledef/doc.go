/*
Package ruledef parses rule definition text into grammar tables.

The input format is one rule per line:

	$Name := operand (op operand)*

An operand is either a reference to a non-terminal ($RefName) or a literal
terminal token. Operators are '|' for alternation, a postfix '*' for zero or
more, and implicit juxtaposition for concatenation. Literal tokens may use
the escape character '@': @_ decodes to a space, @@ @| @* @$ decode to the
escaped character itself. Lines that are blank or start with '!' are skipped.

Non-terminals may be referenced before they are defined; a forward reference
allocates an incomplete placeholder which the later definition line completes
in place, so indices stay stable.

A fatal parse error stops the run and is returned as a *rexlang.Error with a
package error code and the line:column position. Warnings do not stop the
parse and are collected on the Parser.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package ruledef

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rexlang.ruledef'.
func tracer() tracing.Trace {
	return tracing.Select("rexlang.ruledef")
}
