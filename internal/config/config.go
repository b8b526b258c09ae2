package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds fenlei configuration.
type Config struct {
	Reference string        `yaml:"reference"` // path to reference CSV (required)
	Rules     string        `yaml:"rules"`     // optional rules YAML override
	Reserved  string        `yaml:"reserved"`  // optional reserved-words YAML override
	TopK      int           `yaml:"top_k"`     // default ranked-list bound, 0 = all
	Scorers   ScorersConfig `yaml:"scorers"`
	Embed     EmbedConfig   `yaml:"embed"`
}

// ScorersConfig carries the per-scorer voting weights.
type ScorersConfig struct {
	Exact float64 `yaml:"exact"`
	Rules float64 `yaml:"rules"`
	Ngram float64 `yaml:"ngram"`
}

// EmbedConfig controls the optional ONNX embedding scorer. The scorer
// stays disabled until a bundle dir is configured.
type EmbedConfig struct {
	BundleDir string  `yaml:"bundle_dir"`
	SeqLen    int     `yaml:"seq_len"`
	Weight    float64 `yaml:"weight"`
}

// Load reads configuration from a YAML file. Unmarshaling happens over
// a default-initialized config, so keys absent from the file keep their
// defaults while explicit values — including zeros — survive for
// Validate to judge.
// If the file doesn't exist, it returns a default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Scorers: ScorersConfig{
			Exact: 1.0,
			Rules: 0.8,
			Ngram: 0.6,
		},
		Embed: EmbedConfig{
			Weight: 0.7,
			SeqLen: 64,
		},
	}
}
