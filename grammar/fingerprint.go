package grammar

import (
	"github.com/cnf/structhash"
)

// tables is the hashable snapshot of a grammar: exactly the three result
// tables, without configuration.
type tables struct {
	NonTerms []NonTerminal
	Exprs    []ExprNode
	Terms    []byte
}

// Fingerprint returns a version-tagged structural hash over the three result
// tables. Two parses of the same input yield the same fingerprint, which
// makes idempotence cheap to assert.
func (g *Grammar) Fingerprint() (string, error) {
	return structhash.Hash(tables{
		NonTerms: g.NonTerms,
		Exprs:    g.Exprs,
		Terms:    g.Terms,
	}, 1)
}
