package main

import (
	"testing"

	"github.com/fenlei-ai/fenlei/internal/config"
)

func TestApplyOverrides(t *testing.T) {
	cases := []struct {
		name      string
		reference string
		topK      int
		topKSet   bool
		wantRef   string
		wantTopK  int
	}{
		{"no flags", "", 0, false, "cfg.csv", 5},
		{"reference override", "cli.csv", 0, false, "cli.csv", 5},
		{"topk override", "", 3, true, "cfg.csv", 3},
		{"explicit zero topk", "", 0, true, "cfg.csv", 0},
	}
	for _, tc := range cases {
		cfg := &config.Config{Reference: "cfg.csv", TopK: 5}
		applyOverrides(cfg, tc.reference, tc.topK, tc.topKSet)
		if cfg.Reference != tc.wantRef || cfg.TopK != tc.wantTopK {
			t.Fatalf("%s: got (%s, %d), want (%s, %d)",
				tc.name, cfg.Reference, cfg.TopK, tc.wantRef, tc.wantTopK)
		}
	}
}
