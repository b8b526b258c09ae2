package category

import "strings"

// Category is one of the closed set of asset categories.
type Category string

const (
	Data      Category = "資料"
	Software  Category = "軟體"
	Hardware  Category = "硬體"
	Physical  Category = "實體"
	Personnel Category = "人員"
	Service   Category = "服務"

	// Unknown marks inputs no scorer could place. It is an explicit
	// result, never a silent default.
	Unknown Category = "unknown"
)

var all = []Category{Data, Software, Hardware, Physical, Personnel, Service}

// All returns the closed category set, excluding Unknown.
func All() []Category {
	out := make([]Category, len(all))
	copy(out, all)
	return out
}

// Valid reports whether c is a member of the closed set or Unknown.
func Valid(c Category) bool {
	if c == Unknown {
		return true
	}
	for _, known := range all {
		if c == known {
			return true
		}
	}
	return false
}

// Parse maps a raw label to a Category. Unrecognized labels map to
// Unknown with ok=false.
func Parse(s string) (Category, bool) {
	c := Category(strings.TrimSpace(s))
	if c == "" || c == Unknown {
		return Unknown, c == Unknown
	}
	for _, known := range all {
		if c == known {
			return known, true
		}
	}
	return Unknown, false
}
