package scorer

import (
	"github.com/fenlei-ai/fenlei/internal/normalize"
	"github.com/fenlei-ai/fenlei/internal/refdata"
)

// NameExact identifies the exact-match scorer in results and config.
const NameExact = "exact"

// ExactMatch looks the input up verbatim (after whitespace and case
// normalization) against the reference table. A hit is authoritative:
// confidence 1.0. A miss casts no vote.
type ExactMatch struct {
	table *refdata.Table
}

// NewExactMatch builds the exact-match scorer over the reference table.
func NewExactMatch(table *refdata.Table) *ExactMatch {
	return &ExactMatch{table: table}
}

func (s *ExactMatch) Name() string { return NameExact }

func (s *ExactMatch) Score(v normalize.Variants) []Vote {
	if v.Empty() {
		return nil
	}
	cat, ok := s.table.Lookup(v.Cleaned)
	if !ok {
		return nil
	}
	return []Vote{{Category: cat, Confidence: 1.0}}
}
