package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fenlei-ai/fenlei/internal/category"
	"github.com/fenlei-ai/fenlei/internal/normalize"
)

// Rule ties a category to its indicator and exclusion evidence. A rule
// votes for its category when any strong indicator substring or pattern
// matches; any exclusion pattern match vetoes the vote outright.
type Rule struct {
	ID       string
	Category category.Category
	Strong   []string // strong-indicator substrings
	Patterns []string // regex sources, counted as strong indicators
	Exclude  []string // exclusion regex sources, absolute veto
	Boost    []string // reserved phrases that raise the vote
	Veto     []string // reserved phrases that suppress the vote
	Weight   float64

	patterns []*regexp.Regexp
	excludes []*regexp.Regexp
}

// Set is a compiled, immutable rule collection.
type Set struct {
	rules []Rule
}

// Compile builds a Set from rule definitions. Invalid patterns compile
// to a match-nothing regex so one bad built-in cannot take down the
// whole set; Validate catches them for user-supplied files.
func Compile(defs []Rule) *Set {
	out := make([]Rule, len(defs))
	copy(out, defs)
	for i := range out {
		out[i].patterns = compileAll(out[i].Patterns)
		out[i].excludes = compileAll(out[i].Exclude)
	}
	return &Set{rules: out}
}

// Default returns the built-in rule set, compiled.
func Default() *Set {
	return Compile(Defs())
}

// Rules returns the compiled rules. Callers must not modify them.
func (s *Set) Rules() []Rule {
	return s.rules
}

// Excluded reports whether any exclusion pattern matches any variant of
// the input. Exclusion precedence is absolute.
func (r *Rule) Excluded(v normalize.Variants) bool {
	for _, re := range r.excludes {
		for _, text := range v.All() {
			if re.MatchString(text) {
				return true
			}
		}
	}
	return false
}

// Indicated reports whether any strong indicator substring or pattern
// matches any variant of the input.
func (r *Rule) Indicated(v normalize.Variants) bool {
	for _, kw := range r.Strong {
		needle := strings.ToLower(kw)
		for _, text := range v.All() {
			if strings.Contains(strings.ToLower(text), needle) {
				return true
			}
		}
	}
	for _, re := range r.patterns {
		for _, text := range v.All() {
			if re.MatchString(text) {
				return true
			}
		}
	}
	return false
}

// BoostedBy reports whether any extracted reserved phrase is in the
// rule's boost list.
func (r *Rule) BoostedBy(phrases []string) bool {
	return containsAny(r.Boost, phrases)
}

// VetoedBy reports whether any extracted reserved phrase is in the
// rule's veto list.
func (r *Rule) VetoedBy(phrases []string) bool {
	return containsAny(r.Veto, phrases)
}

func containsAny(list, phrases []string) bool {
	if len(list) == 0 || len(phrases) == 0 {
		return false
	}
	for _, p := range phrases {
		for _, l := range list {
			if p == l {
				return true
			}
		}
	}
	return false
}

func compileAll(sources []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(sources))
	for _, src := range sources {
		re, err := regexp.Compile(src)
		if err != nil {
			re = regexp.MustCompile(`a^`) // matches nothing
		}
		out = append(out, re)
	}
	return out
}

// Validate checks rule definitions the way user-supplied files are
// checked: every pattern must compile, weights must be in (0,1], and
// categories must come from the closed set.
func Validate(defs []Rule) error {
	ids := make(map[string]struct{}, len(defs))
	for _, r := range defs {
		if strings.TrimSpace(r.ID) == "" {
			return fmt.Errorf("rule for %s has no id", r.Category)
		}
		if _, dup := ids[r.ID]; dup {
			return fmt.Errorf("duplicate rule id %q", r.ID)
		}
		ids[r.ID] = struct{}{}
		if !category.Valid(r.Category) || r.Category == category.Unknown {
			return fmt.Errorf("rule %s: invalid category %q", r.ID, r.Category)
		}
		if r.Weight <= 0 || r.Weight > 1 {
			return fmt.Errorf("rule %s: weight must be in (0,1], got %v", r.ID, r.Weight)
		}
		if len(r.Strong) == 0 && len(r.Patterns) == 0 {
			return fmt.Errorf("rule %s: no indicators", r.ID)
		}
		for _, src := range append(append([]string{}, r.Patterns...), r.Exclude...) {
			if _, err := regexp.Compile(src); err != nil {
				return fmt.Errorf("rule %s: pattern %q: %w", r.ID, src, err)
			}
		}
	}
	return nil
}
