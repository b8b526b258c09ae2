package ensemble

import (
	"fmt"

	"github.com/fenlei-ai/fenlei/internal/config"
	"github.com/fenlei-ai/fenlei/internal/embed"
	"github.com/fenlei-ai/fenlei/internal/refdata"
	"github.com/fenlei-ai/fenlei/internal/reserved"
	"github.com/fenlei-ai/fenlei/internal/rules"
	"github.com/fenlei-ai/fenlei/internal/scorer"
)

// Build assembles the full classifier from configuration: reference
// table, rule set, reserved words, the three lexical scorers, and the
// optional embedding scorer. Any load failure is a configuration error
// surfaced before the first classification.
func Build(cfg *config.Config) (*Classifier, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	table, err := refdata.Load(cfg.Reference)
	if err != nil {
		return nil, err
	}

	ruleSet := rules.Default()
	if cfg.Rules != "" {
		ruleSet, err = rules.LoadFile(cfg.Rules)
		if err != nil {
			return nil, err
		}
	}

	extractor := reserved.Default()
	if cfg.Reserved != "" {
		extractor, err = reserved.LoadFile(cfg.Reserved)
		if err != nil {
			return nil, err
		}
	}

	// Member order defines tie precedence.
	members := []Member{
		{Scorer: scorer.NewExactMatch(table), Weight: cfg.Scorers.Exact},
		{Scorer: scorer.NewRuleBased(ruleSet, extractor), Weight: cfg.Scorers.Rules},
		{Scorer: scorer.NewNgram(table), Weight: cfg.Scorers.Ngram},
	}

	if cfg.Embed.BundleDir != "" {
		enc, err := embed.LoadEncoder(cfg.Embed.BundleDir, cfg.Embed.SeqLen)
		if err != nil {
			return nil, fmt.Errorf("embed bundle: %w", err)
		}
		es, err := embed.NewScorer(enc, table)
		if err != nil {
			return nil, fmt.Errorf("embed bundle: %w", err)
		}
		members = append(members, Member{Scorer: es, Weight: cfg.Embed.Weight})
	}

	return New(members...), nil
}
