package ensemble

import (
	"reflect"
	"strings"
	"testing"

	"github.com/fenlei-ai/fenlei/internal/category"
	"github.com/fenlei-ai/fenlei/internal/normalize"
	"github.com/fenlei-ai/fenlei/internal/refdata"
	"github.com/fenlei-ai/fenlei/internal/reserved"
	"github.com/fenlei-ai/fenlei/internal/rules"
	"github.com/fenlei-ai/fenlei/internal/scorer"
)

const refCSV = `資產名稱,資產類別
Windows 作業系統,軟體
客戶資料檔案,資料
防火牆設備,硬體
機房,實體
外部人員,人員
網路服務,服務
`

func testClassifier(t *testing.T) *Classifier {
	t.Helper()
	table, err := refdata.Parse(strings.NewReader(refCSV))
	if err != nil {
		t.Fatalf("parse reference data: %v", err)
	}
	return New(
		Member{Scorer: scorer.NewExactMatch(table), Weight: 1.0},
		Member{Scorer: scorer.NewRuleBased(rules.Default(), reserved.Default()), Weight: 0.8},
		Member{Scorer: scorer.NewNgram(table), Weight: 0.6},
	)
}

func TestClassifyScenarios(t *testing.T) {
	c := testClassifier(t)
	cases := []struct {
		input string
		want  category.Category
	}{
		{"作業文件", category.Data},
		{"電子紀錄", category.Data},
		{"可攜式儲存媒體", category.Physical},
		{"資料庫管理系統", category.Software},
		{"外部人員", category.Personnel},
		{"網路服務", category.Service},
		{"防火牆設備", category.Hardware},
		{"完全無關的東西", category.Unknown},
	}
	for _, tc := range cases {
		res := c.Classify(tc.input, 0)
		if res.Category != tc.want {
			t.Fatalf("Classify(%q) = %s (%.3f), want %s; ranked %v",
				tc.input, res.Category, res.Confidence, tc.want, res.Ranked)
		}
		if res.Confidence < 0 || res.Confidence > 1 {
			t.Fatalf("Classify(%q) confidence %v out of range", tc.input, res.Confidence)
		}
	}
}

func TestClassifyExactMatchAuthoritative(t *testing.T) {
	c := testClassifier(t)
	res := c.Classify("Windows 作業系統", 0)
	if res.Category != category.Software {
		t.Fatalf("expected 軟體, got %s", res.Category)
	}
	if res.Confidence != 1.0 {
		t.Fatalf("known reference name should score 1.0, got %v", res.Confidence)
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	c := testClassifier(t)
	for _, input := range []string{"", "   ", "\t\n"} {
		res := c.Classify(input, 0)
		if res.Category != category.Unknown || res.Confidence != 0 {
			t.Fatalf("Classify(%q) = %s (%v), want unknown at 0", input, res.Category, res.Confidence)
		}
		if len(res.Ranked) != 0 {
			t.Fatalf("Classify(%q) returned rankings %v", input, res.Ranked)
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := testClassifier(t)
	first := c.Classify("備份資料檔案", 0)
	for i := 0; i < 5; i++ {
		again := c.Classify("備份資料檔案", 0)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed: %+v vs %+v", i, first, again)
		}
	}
}

type stubScorer struct {
	name  string
	votes []scorer.Vote
}

func (s *stubScorer) Name() string                          { return s.name }
func (s *stubScorer) Score(normalize.Variants) []scorer.Vote { return s.votes }

func TestTieBreaksByMemberOrder(t *testing.T) {
	c := New(
		Member{Scorer: &stubScorer{name: "a", votes: []scorer.Vote{{Category: category.Hardware, Confidence: 0.8}}}, Weight: 0.5},
		Member{Scorer: &stubScorer{name: "b", votes: []scorer.Vote{{Category: category.Service, Confidence: 0.8}}}, Weight: 0.5},
	)
	res := c.Classify("x", 0)
	if res.Category != category.Hardware {
		t.Fatalf("equal scores should break to the earlier member, got %s", res.Category)
	}
}

func TestTieBreaksByLabel(t *testing.T) {
	c := New(
		Member{Scorer: &stubScorer{name: "a", votes: []scorer.Vote{
			{Category: category.Service, Confidence: 0.5},
			{Category: category.Physical, Confidence: 0.5},
		}}, Weight: 1.0},
	)
	res := c.Classify("x", 0)
	if res.Category != category.Physical {
		t.Fatalf("same-member tie should break by label order, got %s", res.Category)
	}
}

func TestConfidenceIgnoresAbstainers(t *testing.T) {
	c := New(
		Member{Scorer: &stubScorer{name: "a", votes: []scorer.Vote{{Category: category.Data, Confidence: 0.5}}}, Weight: 1.0},
		Member{Scorer: &stubScorer{name: "b"}, Weight: 1.0},
	)
	res := c.Classify("x", 0)
	if res.Confidence != 0.5 {
		t.Fatalf("abstaining member must not dilute confidence, got %v", res.Confidence)
	}
}

func TestRankedTopK(t *testing.T) {
	c := New(
		Member{Scorer: &stubScorer{name: "a", votes: []scorer.Vote{
			{Category: category.Data, Confidence: 0.9},
			{Category: category.Software, Confidence: 0.6},
			{Category: category.Service, Confidence: 0.3},
		}}, Weight: 1.0},
	)

	res := c.Classify("x", 2)
	if len(res.Ranked) != 2 {
		t.Fatalf("topK=2 returned %d rankings", len(res.Ranked))
	}
	if res.Ranked[0].Category != category.Data || res.Ranked[1].Category != category.Software {
		t.Fatalf("unexpected ranking order: %v", res.Ranked)
	}

	all := c.Classify("x", 0)
	if len(all.Ranked) != 3 {
		t.Fatalf("topK=0 should return every voted category, got %v", all.Ranked)
	}
	for i := 1; i < len(all.Ranked); i++ {
		if all.Ranked[i].Value > all.Ranked[i-1].Value {
			t.Fatalf("rankings not sorted: %v", all.Ranked)
		}
	}
}
