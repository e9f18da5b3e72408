/*
Package grammar holds the storage arenas and result tables of a rule parse.

A Grammar owns three append-only arenas: the non-terminal table, the
expression node table and the terminal byte pool. Entries are addressed by
stable integer indices (respectively byte offsets), never by pointer, so the
tables can be handed to a downstream automaton builder as plain slices.
Capacities are fixed up front by a Config; nothing is ever freed, except
that the single most recently allocated expression node may be reclaimed
(the parser allocates one node speculatively per definition body).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rexlang.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("rexlang.grammar")
}
