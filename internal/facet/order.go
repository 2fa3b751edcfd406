package facet

import (
	"cmp"
	"fmt"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Order compares two summary entries. Derive breaks ties by value, so an
// Order only needs to express its primary key.
type Order func(a, b Entry) int

// Option configures Derive.
type Option func(*options)

type options struct {
	order Order
}

// WithOrder sets the ordering policy of the derived entries.
func WithOrder(o Order) Option {
	return func(opts *options) {
		if o != nil {
			opts.order = o
		}
	}
}

// Lexical orders entries by ascending byte-wise value. It is the default.
func Lexical(a, b Entry) int {
	return cmp.Compare(a.Value, b.Value)
}

// ByCount orders entries by descending count.
func ByCount(a, b Entry) int {
	return cmp.Compare(b.Count, a.Count)
}

// Collated orders entries by value using the collation rules of tag, ignoring
// case differences.
func Collated(tag language.Tag) Order {
	var mu sync.Mutex
	c := collate.New(tag, collate.IgnoreCase)
	return func(a, b Entry) int {
		// A Collator reuses internal buffers between comparisons.
		mu.Lock()
		defer mu.Unlock()
		return c.CompareString(a.Value, b.Value)
	}
}

// ParseOrder resolves an ordering policy by name: "lexical", "count" or
// "collated". The collated order uses tag.
func ParseOrder(name string, tag language.Tag) (Order, error) {
	switch name {
	case "", "lexical":
		return Lexical, nil
	case "count":
		return ByCount, nil
	case "collated":
		return Collated(tag), nil
	}
	return nil, fmt.Errorf("unknown facet order %q", name)
}
