package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reWhitespace   = regexp.MustCompile(`\s+`)
	reBrackets     = regexp.MustCompile(`[(（][^)）]*[)）]`)
	reBracketInner = regexp.MustCompile(`[(（]([^)）]*)[)）]`)
)

// Variants holds the precomputed normalized forms of one input string.
// Scorers match against these instead of re-normalizing per rule.
type Variants struct {
	Original       string
	Cleaned        string // trimmed, internal whitespace collapsed
	NoBrackets     string // bracketed segments removed (ASCII and full-width)
	BracketContent string // first bracketed segment, if any
	Lower          string
	NoSpaces       string
}

// Text computes all normalized variants of the input once.
func Text(input string) Variants {
	original := input
	cleaned := strings.TrimSpace(reWhitespace.ReplaceAllString(input, " "))

	noBrackets := strings.TrimSpace(reBrackets.ReplaceAllString(cleaned, ""))
	bracketContent := ""
	if m := reBracketInner.FindStringSubmatch(cleaned); m != nil {
		bracketContent = strings.TrimSpace(m[1])
	}

	return Variants{
		Original:       original,
		Cleaned:        cleaned,
		NoBrackets:     noBrackets,
		BracketContent: bracketContent,
		Lower:          strings.ToLower(cleaned),
		NoSpaces:       strings.ReplaceAll(cleaned, " ", ""),
	}
}

// Empty reports whether the input had no content after normalization.
func (v Variants) Empty() bool {
	return v.Cleaned == ""
}

// All returns the non-empty variant strings in matching order.
func (v Variants) All() []string {
	out := make([]string, 0, 4)
	for _, s := range []string{v.Cleaned, v.NoBrackets, v.BracketContent, v.Lower} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Key returns the lookup form used for exact matching: lowercased with
// all whitespace removed.
func Key(input string) string {
	cleaned := strings.TrimSpace(reWhitespace.ReplaceAllString(input, " "))
	return strings.ToLower(strings.ReplaceAll(cleaned, " ", ""))
}

// Split breaks text into tokens, keeping CJK runs and ASCII word runs
// separate so "MySQL資料庫" yields ["MySQL", "資料庫"].
func Split(text string) []string {
	var tokens []string
	var cur strings.Builder
	var curCJK bool

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsSpace(r) || unicode.IsPunct(r):
			flush()
		case unicode.Is(unicode.Han, r):
			if !curCJK {
				flush()
			}
			curCJK = true
			cur.WriteRune(r)
		default:
			if curCJK {
				flush()
			}
			curCJK = false
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}
