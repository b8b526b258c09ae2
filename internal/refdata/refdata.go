package refdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fenlei-ai/fenlei/internal/category"
	"github.com/fenlei-ai/fenlei/internal/normalize"
)

const (
	colName     = "資產名稱"
	colCategory = "資產類別"
)

// Entry is one known asset name and its ground-truth category.
type Entry struct {
	Name     string
	Category category.Category
}

// Table is the immutable reference mapping loaded once at startup.
type Table struct {
	entries []Entry
	byKey   map[string]category.Category
}

// Load reads the reference CSV (columns 資產名稱, 資產類別, UTF-8 with
// header). Any structural problem is a configuration error reported
// before classification starts.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference data: %w", err)
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse reference data %s: %w", path, err)
	}
	return t, nil
}

// Parse reads reference entries from r. Exposed separately so tests and
// callers with embedded data can skip the filesystem.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	nameIdx, catIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.TrimPrefix(col, "\uFEFF")) {
		case colName:
			nameIdx = i
		case colCategory:
			catIdx = i
		}
	}
	if nameIdx < 0 || catIdx < 0 {
		return nil, fmt.Errorf("header must contain %s and %s columns", colName, colCategory)
	}

	t := &Table{byKey: make(map[string]category.Category)}
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		name := strings.TrimSpace(record[nameIdx])
		if name == "" {
			continue
		}
		cat, ok := category.Parse(record[catIdx])
		if !ok || cat == category.Unknown {
			// ground truth must name a real category; "unknown" is the
			// classifier's abstention label, never a reference label
			return nil, fmt.Errorf("line %d: unknown category %q for %q", line, record[catIdx], name)
		}
		key := normalize.Key(name)
		if _, dup := t.byKey[key]; dup {
			continue // first entry wins
		}
		t.byKey[key] = cat
		t.entries = append(t.entries, Entry{Name: name, Category: cat})
	}

	if len(t.entries) == 0 {
		return nil, fmt.Errorf("reference data is empty")
	}
	return t, nil
}

// Lookup returns the category mapped to the normalized form of name.
func (t *Table) Lookup(name string) (category.Category, bool) {
	c, ok := t.byKey[normalize.Key(name)]
	return c, ok
}

// Entries returns the reference entries in load order. Callers must not
// modify the returned slice.
func (t *Table) Entries() []Entry {
	return t.entries
}

// Len reports the number of reference entries.
func (t *Table) Len() int {
	return len(t.entries)
}
