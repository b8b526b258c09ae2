package ensemble

import (
	"sort"

	"github.com/fenlei-ai/fenlei/internal/category"
	"github.com/fenlei-ai/fenlei/internal/normalize"
	"github.com/fenlei-ai/fenlei/internal/scorer"
)

// Member is one scorer in the ensemble with its voting weight.
// Precedence for exact ties follows member order: earlier members win.
type Member struct {
	Scorer scorer.Scorer
	Weight float64
}

// Score is one category's aggregate standing in a result.
type Score struct {
	Category category.Category `json:"category"`
	Value    float64           `json:"score"`
}

// Result is the outcome of a single classification call.
type Result struct {
	Input      string            `json:"input"`
	Category   category.Category `json:"category"`
	Confidence float64           `json:"confidence"`
	Ranked     []Score           `json:"ranked,omitempty"`
}

// Classifier combines scorer votes by weighted voting. It is stateless
// across calls: the same input always yields the same result.
type Classifier struct {
	members []Member
}

// New builds a classifier over the given members. Member order defines
// tie precedence, so callers register ExactMatch before RuleBased
// before Ngram.
func New(members ...Member) *Classifier {
	return &Classifier{members: members}
}

// Classify scores text and returns the winning category, confidence,
// and up to topK ranked (category, score) pairs; topK <= 0 returns all
// categories that received votes. Empty or whitespace-only input yields
// Unknown with confidence 0.
func (c *Classifier) Classify(text string, topK int) Result {
	res := Result{Input: text, Category: category.Unknown}

	v := normalize.Text(text)
	if v.Empty() {
		return res
	}

	type standing struct {
		score      float64
		precedence int // lowest member index that voted for it
	}
	totals := make(map[category.Category]*standing)
	var order []category.Category
	votedWeight := 0.0

	for idx, m := range c.members {
		votes := m.Scorer.Score(v)
		if len(votes) == 0 {
			continue
		}
		votedWeight += m.Weight
		for _, vote := range votes {
			st, ok := totals[vote.Category]
			if !ok {
				st = &standing{precedence: idx}
				totals[vote.Category] = st
				order = append(order, vote.Category)
			}
			st.score += vote.Confidence * m.Weight
			if idx < st.precedence {
				st.precedence = idx
			}
		}
	}

	if len(order) == 0 {
		return res
	}

	// Deterministic ranking: score desc, then scorer precedence, then
	// label order for full reproducibility.
	sort.SliceStable(order, func(i, j int) bool {
		a, b := totals[order[i]], totals[order[j]]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.precedence != b.precedence {
			return a.precedence < b.precedence
		}
		return order[i] < order[j]
	})

	winner := order[0]
	res.Category = winner
	if votedWeight > 0 {
		res.Confidence = clamp01(totals[winner].score / votedWeight)
	}

	n := len(order)
	if topK > 0 && topK < n {
		n = topK
	}
	res.Ranked = make([]Score, 0, n)
	for _, cat := range order[:n] {
		res.Ranked = append(res.Ranked, Score{Category: cat, Value: totals[cat].score})
	}
	return res
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
