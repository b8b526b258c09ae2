package scorer

import (
	"github.com/fenlei-ai/fenlei/internal/category"
	"github.com/fenlei-ai/fenlei/internal/normalize"
)

// Vote is one scorer's opinion about one category.
type Vote struct {
	Category   category.Category
	Confidence float64 // in [0,1]
}

// Scorer scores a normalized input against the category set. A scorer
// that has no opinion returns no votes; it never votes Unknown.
type Scorer interface {
	Name() string
	Score(v normalize.Variants) []Vote
}
