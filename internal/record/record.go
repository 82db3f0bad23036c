// Package record defines the generic record type sift filters and loads
// datasets of records from JSON, YAML, and TOML files.
package record

import (
	"fmt"
	"sort"
	"strings"
)

// Record is one item of a dataset: a decoded JSON object, YAML mapping, or
// TOML table.
type Record map[string]any

// Get resolves a dotted path such as "author.name" through nested maps.
// The second result is false when any segment is missing or a non-map value
// is traversed.
func (r Record) Get(path string) (any, bool) {
	var cur any = map[string]any(r)
	for _, key := range strings.Split(path, ".") {
		switch m := cur.(type) {
		case map[string]any:
			v, ok := m[key]
			if !ok {
				return nil, false
			}
			cur = v
		case Record:
			v, ok := m[key]
			if !ok {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, true
}

// Keys returns the top-level keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders the record on one line as "k=v" pairs in key order.
func (r Record) String() string {
	parts := make([]string, 0, len(r))
	for _, k := range r.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%v", k, r[k]))
	}
	return strings.Join(parts, " ")
}

// Columns returns the union of top-level keys across records, sorted.
func Columns(records []Record) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, r := range records {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	return cols
}
