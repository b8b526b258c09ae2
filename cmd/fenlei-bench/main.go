package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/fenlei-ai/fenlei/internal/category"
	"github.com/fenlei-ai/fenlei/internal/config"
	"github.com/fenlei-ai/fenlei/internal/ensemble"
	"github.com/fenlei-ai/fenlei/internal/refdata"
)

func main() {
	cfgPath := flag.String("config", "fenlei.yaml", "path to config yaml")
	casesPath := flag.String("cases", "", "labeled CSV of test cases (required)")
	flag.Parse()

	if *casesPath == "" {
		log.Fatalf("cases flag is required")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	clf, err := ensemble.Build(cfg)
	if err != nil {
		log.Fatalf("build classifier: %v", err)
	}

	cases, err := refdata.Load(*casesPath)
	if err != nil {
		log.Fatalf("load cases: %v", err)
	}

	type tally struct{ hits, total int }
	perCategory := make(map[category.Category]*tally)
	overall := tally{}
	durations := make([]time.Duration, 0, cases.Len())

	for _, c := range cases.Entries() {
		start := time.Now()
		res := clf.Classify(c.Name, 1)
		durations = append(durations, time.Since(start))

		t := perCategory[c.Category]
		if t == nil {
			t = &tally{}
			perCategory[c.Category] = t
		}
		t.total++
		overall.total++
		if res.Category == c.Category {
			t.hits++
			overall.hits++
		}
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	var total time.Duration
	for _, d := range durations {
		total += d
	}
	avg := float64(total.Microseconds()) / 1000.0 / float64(len(durations))
	p50 := float64(durations[len(durations)/2].Microseconds()) / 1000.0
	p95 := float64(durations[int(float64(len(durations))*0.95)].Microseconds()) / 1000.0

	fmt.Printf("bench: n=%d hit_rate=%.4f avg_ms=%.3f p50_ms=%.3f p95_ms=%.3f\n",
		overall.total,
		float64(overall.hits)/float64(overall.total),
		avg,
		p50,
		p95,
	)
	for _, cat := range category.All() {
		t := perCategory[cat]
		if t == nil || t.total == 0 {
			continue
		}
		fmt.Printf("  %s: %d/%d = %.4f\n", cat, t.hits, t.total, float64(t.hits)/float64(t.total))
	}
}
