package scorer

import (
	"github.com/fenlei-ai/fenlei/internal/normalize"
	"github.com/fenlei-ai/fenlei/internal/refdata"
)

// NameNgram identifies the n-gram similarity scorer.
const NameNgram = "ngram"

// Ngram scores the input by character bigram+trigram overlap (Dice
// coefficient) against every reference entry and votes for the best
// entry's category. Ties break deterministically: shortest reference
// name first, then lexicographic byte order.
type Ngram struct {
	entries []ngramEntry
}

type ngramEntry struct {
	entry refdata.Entry
	grams map[string]struct{}
}

// NewNgram precomputes n-gram profiles for the reference entries.
func NewNgram(table *refdata.Table) *Ngram {
	src := table.Entries()
	entries := make([]ngramEntry, 0, len(src))
	for _, e := range src {
		entries = append(entries, ngramEntry{
			entry: e,
			grams: profile(normalize.Key(e.Name)),
		})
	}
	return &Ngram{entries: entries}
}

func (s *Ngram) Name() string { return NameNgram }

func (s *Ngram) Score(v normalize.Variants) []Vote {
	e, score, ok := s.best(v)
	if !ok {
		return nil
	}
	return []Vote{{Category: e.Category, Confidence: score}}
}

// BestMatch exposes the winning reference entry for reporting.
func (s *Ngram) BestMatch(text string) (refdata.Entry, float64, bool) {
	return s.best(normalize.Text(text))
}

func (s *Ngram) best(v normalize.Variants) (refdata.Entry, float64, bool) {
	if v.Empty() {
		return refdata.Entry{}, 0, false
	}
	input := profile(normalize.Key(v.Cleaned))
	if len(input) == 0 {
		return refdata.Entry{}, 0, false
	}

	best := -1
	bestScore := 0.0
	for i, e := range s.entries {
		score := dice(input, e.grams)
		if score <= 0 {
			continue
		}
		if best < 0 || score > bestScore || (score == bestScore && closerTie(e.entry, s.entries[best].entry)) {
			best = i
			bestScore = score
		}
	}
	if best < 0 {
		return refdata.Entry{}, 0, false
	}
	return s.entries[best].entry, bestScore, true
}

func closerTie(a, b refdata.Entry) bool {
	if len(a.Name) != len(b.Name) {
		return len(a.Name) < len(b.Name)
	}
	return a.Name < b.Name
}

// profile collects the character bigrams and trigrams of s, rune-aware.
func profile(s string) map[string]struct{} {
	runes := []rune(s)
	out := make(map[string]struct{})
	for n := 2; n <= 3; n++ {
		for i := 0; i+n <= len(runes); i++ {
			out[string(runes[i:i+n])] = struct{}{}
		}
	}
	// Single-rune inputs still deserve a profile.
	if len(out) == 0 && len(runes) > 0 {
		out[s] = struct{}{}
	}
	return out
}

// dice is the Dice coefficient over two n-gram sets: 2|A∩B| / (|A|+|B|).
func dice(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	shared := 0
	for g := range small {
		if _, ok := large[g]; ok {
			shared++
		}
	}
	return 2 * float64(shared) / float64(len(a)+len(b))
}
