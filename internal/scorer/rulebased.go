package scorer

import (
	"github.com/fenlei-ai/fenlei/internal/category"
	"github.com/fenlei-ai/fenlei/internal/normalize"
	"github.com/fenlei-ai/fenlei/internal/reserved"
	"github.com/fenlei-ai/fenlei/internal/rules"
)

// NameRules identifies the rule-based scorer.
const NameRules = "rules"

const boostFactor = 1.5

// RuleBased evaluates the compiled rule set against the input. Any
// exclusion pattern match vetoes a category outright, regardless of
// indicator matches. Matching rules within one category collapse to the
// strongest vote; across categories every matching rule votes.
type RuleBased struct {
	set       *rules.Set
	extractor *reserved.Extractor
}

// NewRuleBased builds the rule-based scorer. The extractor may be nil,
// in which case reserved-phrase boost and veto lists are inert.
func NewRuleBased(set *rules.Set, extractor *reserved.Extractor) *RuleBased {
	return &RuleBased{set: set, extractor: extractor}
}

func (s *RuleBased) Name() string { return NameRules }

func (s *RuleBased) Score(v normalize.Variants) []Vote {
	if v.Empty() {
		return nil
	}

	var phrases []string
	if s.extractor != nil {
		phrases = s.extractor.Extract(v.Cleaned)
	}

	excluded := make(map[category.Category]bool)
	best := make(map[category.Category]float64)
	var order []category.Category

	for i := range s.set.Rules() {
		r := &s.set.Rules()[i]
		if r.Excluded(v) {
			excluded[r.Category] = true
			continue
		}
		if !r.Indicated(v) {
			continue
		}
		if r.VetoedBy(phrases) {
			continue
		}
		conf := r.Weight
		if r.BoostedBy(phrases) {
			conf = min(conf*boostFactor, 1.0)
		}
		if _, seen := best[r.Category]; !seen {
			order = append(order, r.Category)
		}
		if conf > best[r.Category] {
			best[r.Category] = conf
		}
	}

	votes := make([]Vote, 0, len(order))
	for _, cat := range order {
		if excluded[cat] {
			continue
		}
		votes = append(votes, Vote{Category: cat, Confidence: best[cat]})
	}
	return votes
}
