package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fenlei-ai/fenlei/internal/category"
)

type fileRule struct {
	ID       string   `yaml:"id"`
	Category string   `yaml:"category"`
	Strong   []string `yaml:"strong"`
	Patterns []string `yaml:"patterns"`
	Exclude  []string `yaml:"exclude"`
	Boost    []string `yaml:"boost"`
	Veto     []string `yaml:"veto"`
	Weight   float64  `yaml:"weight"`
}

// LoadFile reads rule definitions from a YAML file and merges them over
// the built-ins: a file rule whose id matches a built-in replaces it,
// anything else is appended. Invalid patterns in a user file are a
// configuration error, unlike built-ins.
func LoadFile(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	var wrapper struct {
		Rules []fileRule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	if len(wrapper.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s has no rules entries", path)
	}

	loaded := make([]Rule, 0, len(wrapper.Rules))
	for _, fr := range wrapper.Rules {
		cat, ok := category.Parse(fr.Category)
		if !ok {
			return nil, fmt.Errorf("rules file %s: rule %q: unknown category %q", path, fr.ID, fr.Category)
		}
		loaded = append(loaded, Rule{
			ID:       fr.ID,
			Category: cat,
			Strong:   fr.Strong,
			Patterns: fr.Patterns,
			Exclude:  fr.Exclude,
			Boost:    fr.Boost,
			Veto:     fr.Veto,
			Weight:   fr.Weight,
		})
	}
	merged := Merge(Defs(), loaded)
	if err := Validate(merged); err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return Compile(merged), nil
}

// Merge overlays the overrides onto base by rule id.
func Merge(base, overrides []Rule) []Rule {
	out := make([]Rule, len(base))
	copy(out, base)
	for _, o := range overrides {
		replaced := false
		for i := range out {
			if out[i].ID == o.ID {
				out[i] = o
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, o)
		}
	}
	return out
}
