package reserved

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Extractor finds reserved domain phrases in asset names. Compound
// phrases match longest-first so "資料庫管理系統" is never split into
// "資料庫" + "管理系統".
type Extractor struct {
	phrases []string // sorted longest first
}

// New builds an extractor over the given phrase list. Duplicates and
// blank entries are dropped.
func New(phrases []string) *Extractor {
	seen := make(map[string]struct{}, len(phrases))
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return &Extractor{phrases: out}
}

// Default returns an extractor loaded with the built-in phrase list.
func Default() *Extractor {
	return New(defaultPhrases())
}

// LoadFile reads a phrase list from a YAML file of the form:
//
//	reserved_words:
//	  - 資料庫管理系統
//	  - 防火牆設備
func LoadFile(path string) (*Extractor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reserved words: %w", err)
	}
	var wrapper struct {
		ReservedWords []string `yaml:"reserved_words"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("parse reserved words %s: %w", path, err)
	}
	if len(wrapper.ReservedWords) == 0 {
		return nil, fmt.Errorf("reserved words file %s has no reserved_words entries", path)
	}
	return New(wrapper.ReservedWords), nil
}

// Extract returns the reserved phrases present in text, longest first.
// Each region of the input is consumed by at most one phrase.
func (e *Extractor) Extract(text string) []string {
	if text == "" {
		return nil
	}
	var found []string
	remaining := text
	for _, phrase := range e.phrases {
		if !strings.Contains(remaining, phrase) {
			continue
		}
		found = append(found, phrase)
		remaining = strings.ReplaceAll(remaining, phrase, "\x00")
	}
	return found
}

// Phrases returns the known phrase list, longest first.
func (e *Extractor) Phrases() []string {
	out := make([]string, len(e.phrases))
	copy(out, e.phrases)
	return out
}

func defaultPhrases() []string {
	return []string{
		// compound technical phrases
		"資料庫管理系統", "備份管理系統", "監控管理系統", "網路防火牆",
		"可攜式儲存媒體", "資料庫", "作業系統", "管理系統", "儲存媒體",
		"應用程式", "伺服器", "虛擬機",

		// equipment
		"防火牆設備", "網路設備", "儲存設備", "安全設備", "監控設備", "防火牆",

		// documents
		"作業文件", "電子紀錄", "程序文件", "技術文件", "操作手冊",

		// people
		"內部人員", "外部人員", "承辦人", "管理員", "使用者",

		// services
		"網路服務", "應用服務", "資料服務", "雲端服務",

		// facilities
		"資料中心", "辦公室", "會議室", "機房",

		// vendor and protocol names kept whole
		"SQL Server", "MySQL", "Oracle", "Windows", "Linux", "VMware",
		"Docker", "API", "SOP", "ERP", "CRM",
	}
}
