package listing

import (
	"sort"
	"strings"
)

// AllCategories is the sentinel category that disables the category stage
const AllCategories = "all"

// Record is anything the list engine can filter. Field returns the named
// property and whether it is present.
type Record interface {
	Field(name string) (interface{}, bool)
}

// Keyed records expose a stable identifier for rendering keys
type Keyed interface {
	Key() string
}

// Deprecatable records take part in the deprecated stage
type Deprecatable interface {
	IsDeprecated() bool
}

// Query describes one filtering pass
type Query struct {
	Category       string   // AllCategories or a tag
	Key            string   // name of the filter dimension field
	Search         string   // case-insensitive substring, empty skips the stage
	SearchFields   []string // fields inspected by the search stage
	ShowDeprecated bool
}

// DefaultSearchFields are used when a Query has none
var DefaultSearchFields = []string{"title", "description"}

// FilterValues flattens the array field named key across items and returns
// the sorted set of unique values
func FilterValues[T Record](items []T, key string) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		for _, v := range stringsOf(item, key) {
			seen[v] = struct{}{}
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Apply runs the category, search and deprecated stages and returns the
// items that survive all three, preserving input order
func Apply[T Record](items []T, q Query) []T {
	fields := q.SearchFields
	if len(fields) == 0 {
		fields = DefaultSearchFields
	}
	term := strings.ToLower(q.Search)

	result := make([]T, 0, len(items))
	for _, item := range items {
		if !MatchesCategory(item, q.Key, q.Category) {
			continue
		}
		if term != "" && !matchesSearch(item, fields, term) {
			continue
		}
		if !q.ShowDeprecated && isDeprecated(item) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// MatchesCategory reports whether item's key field contains category. A
// scalar field must equal it exactly; a missing or mistyped field never matches.
func MatchesCategory(item Record, key, category string) bool {
	if category == AllCategories {
		return true
	}
	value, ok := item.Field(key)
	if !ok {
		return false
	}
	switch v := value.(type) {
	case []string:
		for _, s := range v {
			if s == category {
				return true
			}
		}
		return false
	case []interface{}:
		for _, e := range v {
			if s, ok := e.(string); ok && s == category {
				return true
			}
		}
		return false
	case string:
		return v == category
	default:
		return false
	}
}

// MatchesSearch reports whether any of fields contains term, case-insensitively
func MatchesSearch(item Record, fields []string, term string) bool {
	if term == "" {
		return true
	}
	return matchesSearch(item, fields, strings.ToLower(term))
}

func matchesSearch(item Record, fields []string, lowerTerm string) bool {
	for _, field := range fields {
		value, ok := item.Field(field)
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			if strings.Contains(strings.ToLower(v), lowerTerm) {
				return true
			}
		case []string:
			for _, s := range v {
				if strings.Contains(strings.ToLower(s), lowerTerm) {
					return true
				}
			}
		case []interface{}:
			for _, e := range v {
				if s, ok := e.(string); ok && strings.Contains(strings.ToLower(s), lowerTerm) {
					return true
				}
			}
		}
	}
	return false
}

func isDeprecated(item Record) bool {
	if d, ok := item.(Deprecatable); ok {
		return d.IsDeprecated()
	}
	if value, ok := item.Field("deprecated"); ok {
		return NormalizeDeprecated(value)
	}
	return false
}

// NormalizeDeprecated accepts a bool or the strings "true"/"false" in any
// case. Every other value, including nil and padded strings, is false.
func NormalizeDeprecated(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}

// stringsOf returns the string elements of an array field
func stringsOf(item Record, key string) []string {
	value, ok := item.Field(key)
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
