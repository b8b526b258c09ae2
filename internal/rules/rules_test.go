package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fenlei-ai/fenlei/internal/category"
	"github.com/fenlei-ai/fenlei/internal/normalize"
)

func findRule(t *testing.T, s *Set, id string) *Rule {
	t.Helper()
	rs := s.Rules()
	for i := range rs {
		if rs[i].ID == id {
			return &rs[i]
		}
	}
	t.Fatalf("rule %q not found", id)
	return nil
}

func TestDefaultValid(t *testing.T) {
	if err := Validate(Defs()); err != nil {
		t.Fatalf("built-in rules failed validation: %v", err)
	}
	if n := len(Default().Rules()); n == 0 {
		t.Fatalf("no compiled rules")
	}
}

func TestIndicated(t *testing.T) {
	s := Default()
	cases := []struct {
		rule  string
		input string
		want  bool
	}{
		{"software_primary", "人事管理系統", true},
		{"software_primary", "MySQL", true}, // case-insensitive pattern
		{"software_primary", "辦公室", false},
		{"hardware_primary", "網路設備", true},
		{"data_primary", "作業文件", true},
		{"personnel_primary", "外部人員", true},
		{"personnel_support", "內部使用者", true}, // pattern (內部|外部).*(人|者)
		{"service_primary", "雲端服務", true},
	}
	for _, tc := range cases {
		r := findRule(t, s, tc.rule)
		if got := r.Indicated(normalize.Text(tc.input)); got != tc.want {
			t.Fatalf("%s.Indicated(%q) = %v, want %v", tc.rule, tc.input, got, tc.want)
		}
	}
}

func TestExcluded(t *testing.T) {
	s := Default()
	cases := []struct {
		rule  string
		input string
		want  bool
	}{
		// exclusion outranks any indicator match on the same input
		{"data_primary", "客戶資料庫", true},
		{"data_primary", "客戶資料", false},
		{"personnel_primary", "人員名冊文件", true},
		{"software_primary", "防火牆設備", true},
		{"hardware_support", "可攜式儲存媒體", true},
	}
	for _, tc := range cases {
		r := findRule(t, s, tc.rule)
		v := normalize.Text(tc.input)
		if got := r.Excluded(v); got != tc.want {
			t.Fatalf("%s.Excluded(%q) = %v, want %v", tc.rule, tc.input, got, tc.want)
		}
	}
}

func TestBoostAndVeto(t *testing.T) {
	s := Default()
	sw := findRule(t, s, "software_primary")
	if !sw.BoostedBy([]string{"資料庫管理系統"}) {
		t.Fatalf("expected boost for 資料庫管理系統")
	}
	if sw.BoostedBy([]string{"機房"}) {
		t.Fatalf("unexpected boost for 機房")
	}
	if !sw.VetoedBy([]string{"防火牆設備"}) {
		t.Fatalf("expected veto for 防火牆設備")
	}
	if sw.VetoedBy(nil) {
		t.Fatalf("veto against empty phrase list")
	}
}

func TestCompileBadBuiltinPattern(t *testing.T) {
	s := Compile([]Rule{{
		ID:       "broken",
		Category: category.Data,
		Patterns: []string{`([`},
		Weight:   0.5,
	}})
	r := findRule(t, s, "broken")
	if r.Indicated(normalize.Text("([")) {
		t.Fatalf("invalid pattern must match nothing")
	}
}

func TestValidateErrors(t *testing.T) {
	good := Rule{ID: "ok", Category: category.Data, Strong: []string{"資料"}, Weight: 0.5}
	cases := []struct {
		name string
		defs []Rule
		want string
	}{
		{"empty id", []Rule{{Category: category.Data, Strong: []string{"x"}, Weight: 0.5}}, "no id"},
		{"duplicate id", []Rule{good, good}, "duplicate rule id"},
		{"bad category", []Rule{{ID: "r", Category: "機密", Strong: []string{"x"}, Weight: 0.5}}, "invalid category"},
		{"unknown category", []Rule{{ID: "r", Category: category.Unknown, Strong: []string{"x"}, Weight: 0.5}}, "invalid category"},
		{"zero weight", []Rule{{ID: "r", Category: category.Data, Strong: []string{"x"}}}, "weight"},
		{"weight above one", []Rule{{ID: "r", Category: category.Data, Strong: []string{"x"}, Weight: 1.2}}, "weight"},
		{"no indicators", []Rule{{ID: "r", Category: category.Data, Weight: 0.5}}, "no indicators"},
		{"bad pattern", []Rule{{ID: "r", Category: category.Data, Patterns: []string{`([`}, Weight: 0.5}}, "pattern"},
		{"bad exclude", []Rule{{ID: "r", Category: category.Data, Strong: []string{"x"}, Exclude: []string{`([`}, Weight: 0.5}}, "pattern"},
	}
	for _, tc := range cases {
		err := Validate(tc.defs)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestMerge(t *testing.T) {
	base := Defs()
	override := Rule{
		ID:       "software_primary",
		Category: category.Software,
		Strong:   []string{"客製系統"},
		Weight:   0.7,
	}
	extra := Rule{
		ID:       "custom_rule",
		Category: category.Service,
		Strong:   []string{"維運"},
		Weight:   0.3,
	}
	merged := Merge(base, []Rule{override, extra})
	if len(merged) != len(base)+1 {
		t.Fatalf("merged length %d, want %d", len(merged), len(base)+1)
	}
	for _, r := range merged {
		if r.ID == "software_primary" && r.Weight != 0.7 {
			t.Fatalf("override not applied, weight %v", r.Weight)
		}
	}
	if merged[len(merged)-1].ID != "custom_rule" {
		t.Fatalf("new rule not appended")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `rules:
  - id: custom_rule
    category: 服務
    strong: [維運]
    weight: 0.3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := findRule(t, s, "custom_rule")
	if r.Category != category.Service || r.Weight != 0.3 {
		t.Fatalf("loaded rule mismatch: %+v", r)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("rules:\n  - id: r\n    category: 機密\n    strong: [x]\n    weight: 0.5\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Fatalf("expected error for unknown category")
	}

	badre := filepath.Join(dir, "badre.yaml")
	if err := os.WriteFile(badre, []byte("rules:\n  - id: r\n    category: 資料\n    patterns: ['([']\n    weight: 0.5\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadFile(badre); err == nil {
		t.Fatalf("expected error for invalid pattern")
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
