// Package facet derives filter facets from content collections and filters
// collections by a selected facet.
//
// Every function in this package is pure: it reads its arguments, never
// mutates them and keeps no state between calls.
package facet

import (
	"cmp"
	"slices"
)

// Selection is the caller's current facet choice: either All or one concrete
// facet value. The zero value is All.
type Selection struct {
	value    string
	concrete bool
}

// All selects every item in a collection.
var All = Selection{}

// Value selects the items carrying facet value v.
func Value(v string) Selection {
	return Selection{value: v, concrete: true}
}

// IsAll reports whether s is the All selection.
func (s Selection) IsAll() bool { return !s.concrete }

// Value returns the selected facet value, or "" for All.
func (s Selection) Value() string { return s.value }

func (s Selection) String() string {
	if !s.concrete {
		return "all"
	}
	return s.value
}

// Entry is one distinct facet value and the number of items carrying it.
type Entry struct {
	Value string
	Count int
}

// Summary is the derived facet view of a collection.
type Summary struct {
	// Total is the size of the unfiltered collection.
	Total   int
	Entries []Entry
}

// Count returns the number of items carrying v, or 0 when v is not a facet of
// the summarized collection.
func (s Summary) Count(v string) int {
	for _, e := range s.Entries {
		if e.Value == v {
			return e.Count
		}
	}
	return 0
}

// Has reports whether v is a facet of the summarized collection.
func (s Summary) Has(v string) bool {
	return s.Count(v) > 0
}

// Values returns the facet values in summary order.
func (s Summary) Values() []string {
	out := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		out[i] = e.Value
	}
	return out
}

// Derive computes the facet summary of items. An item counts once per
// distinct value it carries, so the sum of counts may exceed Total when the
// extractor is multi-valued.
func Derive[T any](items []T, ex Extractor[T], opts ...Option) Summary {
	o := options{order: Lexical}
	for _, opt := range opts {
		opt(&o)
	}

	counts := make(map[string]int)
	for _, item := range items {
		ex.each(item, func(v string) {
			counts[v]++
		})
	}

	entries := make([]Entry, 0, len(counts))
	for v, n := range counts {
		entries = append(entries, Entry{Value: v, Count: n})
	}
	// Map iteration order is random; the final value tie-break keeps the
	// result identical across calls for any order policy.
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := o.order(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})

	return Summary{Total: len(items), Entries: entries}
}

// Filter returns the items matching sel in their original order. All returns
// items itself. A value carried by no item yields an empty, non-nil slice.
func Filter[T any](items []T, ex Extractor[T], sel Selection) []T {
	if sel.IsAll() {
		return items
	}
	out := make([]T, 0)
	for _, item := range items {
		if ex.matches(item, sel.value) {
			out = append(out, item)
		}
	}
	return out
}
