package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fenlei-ai/fenlei/internal/config"
	"github.com/fenlei-ai/fenlei/internal/ensemble"
)

func main() {
	configPath := flag.String("config", "fenlei.yaml", "path to fenlei config file")
	reference := flag.String("reference", "", "reference CSV path (overrides config)")
	text := flag.String("text", "", "single asset name to classify")
	batch := flag.String("batch", "", "file with one asset name per line")
	topK := flag.Int("topk", 0, "ranked list size, 0 shows all voted categories")
	interactive := flag.Bool("interactive", false, "read asset names from stdin")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	applyOverrides(cfg, *reference, *topK, flagWasSet("topk"))

	clf, err := ensemble.Build(cfg)
	if err != nil {
		log.Fatalf("build classifier: %v", err)
	}

	switch {
	case *text != "":
		printResult(clf.Classify(*text, cfg.TopK))
	case *batch != "":
		if err := classifyFile(clf, *batch, cfg.TopK); err != nil {
			log.Fatalf("batch: %v", err)
		}
	case *interactive:
		runInteractive(clf, cfg.TopK)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// applyOverrides layers command-line values over the loaded config. An
// explicit -topk wins even at 0, which means "all voted categories".
func applyOverrides(cfg *config.Config, reference string, topK int, topKSet bool) {
	if reference != "" {
		cfg.Reference = reference
	}
	if topKSet {
		cfg.TopK = topK
	}
}

func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func classifyFile(clf *ensemble.Classifier, path string, topK int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		printResult(clf.Classify(line, topK))
	}
	return sc.Err()
}

func runInteractive(clf *ensemble.Classifier, topK int) {
	fmt.Println("enter asset names, one per line (Ctrl-D to exit)")
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		printResult(clf.Classify(line, topK))
	}
}

func printResult(res ensemble.Result) {
	fmt.Printf("%s\t%s\t%.3f\n", res.Input, res.Category, res.Confidence)
	for i, s := range res.Ranked {
		fmt.Printf("  %d. %s\t%.4f\n", i+1, s.Category, s.Value)
	}
}
