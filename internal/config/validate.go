package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the loaded config for required fields and sane values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if strings.TrimSpace(cfg.Reference) == "" {
		return errors.New("reference must point to the reference CSV")
	}

	if cfg.TopK < 0 {
		return fmt.Errorf("top_k must not be negative, got %d", cfg.TopK)
	}

	for name, w := range map[string]float64{
		"scorers.exact": cfg.Scorers.Exact,
		"scorers.rules": cfg.Scorers.Rules,
		"scorers.ngram": cfg.Scorers.Ngram,
	} {
		if w <= 0 {
			return fmt.Errorf("%s weight must be positive, got %v", name, w)
		}
	}

	if cfg.Embed.BundleDir != "" {
		if cfg.Embed.Weight <= 0 {
			return fmt.Errorf("embed.weight must be positive, got %v", cfg.Embed.Weight)
		}
		if cfg.Embed.SeqLen <= 0 {
			return fmt.Errorf("embed.seq_len must be positive, got %d", cfg.Embed.SeqLen)
		}
	}

	return nil
}
