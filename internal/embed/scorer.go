package embed

import (
	"fmt"
	"log"

	"github.com/fenlei-ai/fenlei/internal/normalize"
	"github.com/fenlei-ai/fenlei/internal/refdata"
	"github.com/fenlei-ai/fenlei/internal/scorer"
)

// NameEmbed identifies the embedding similarity scorer.
const NameEmbed = "embed"

type refVector struct {
	entry refdata.Entry
	vec   []float32
}

// Scorer votes by cosine similarity between the input embedding and
// precomputed reference-entry embeddings. Confidence maps cosine from
// [-1,1] to [0,1]. Ties break like the n-gram scorer: shortest
// reference name, then lexicographic order.
type Scorer struct {
	enc  *Encoder
	refs []refVector
}

// NewScorer embeds every reference entry once. An embedding failure for
// any entry is a configuration error: a bundle that cannot encode its
// own reference data must not half-participate in voting.
func NewScorer(enc *Encoder, table *refdata.Table) (*Scorer, error) {
	refs := make([]refVector, 0, table.Len())
	for _, e := range table.Entries() {
		vec, err := enc.Embed(e.Name)
		if err != nil {
			return nil, fmt.Errorf("embed reference %q: %w", e.Name, err)
		}
		refs = append(refs, refVector{entry: e, vec: vec})
	}
	return &Scorer{enc: enc, refs: refs}, nil
}

func (s *Scorer) Name() string { return NameEmbed }

func (s *Scorer) Score(v normalize.Variants) []scorer.Vote {
	if v.Empty() {
		return nil
	}
	vec, err := s.enc.Embed(v.Cleaned)
	if err != nil {
		// Inference failures degrade to abstention; the lexical
		// ensemble still produces a result.
		log.Printf("embed scorer: %v", err)
		return nil
	}

	best := -1
	bestCos := -2.0
	for i, r := range s.refs {
		cos := Cosine(vec, r.vec)
		if best < 0 || cos > bestCos || (cos == bestCos && closerTie(r.entry, s.refs[best].entry)) {
			best = i
			bestCos = cos
		}
	}
	if best < 0 {
		return nil
	}
	conf := (bestCos + 1) / 2
	if conf < 0 {
		conf = 0
	} else if conf > 1 {
		conf = 1
	}
	return []scorer.Vote{{Category: s.refs[best].entry.Category, Confidence: conf}}
}

func closerTie(a, b refdata.Entry) bool {
	if len(a.Name) != len(b.Name) {
		return len(a.Name) < len(b.Name)
	}
	return a.Name < b.Name
}
