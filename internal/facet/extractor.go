package facet

import "slices"

// Extractor maps one item to its facet value or values. It is built with
// Scalar or Sequence, which fixes whether items carry one value or many.
type Extractor[T any] struct {
	scalar   func(T) (string, bool)
	sequence func(T) []string
}

// Scalar builds an extractor for a single-valued facet field. fn reports
// false when the item has no value; such items contribute no facet and match
// no concrete selection.
func Scalar[T any](fn func(T) (string, bool)) Extractor[T] {
	return Extractor[T]{scalar: fn}
}

// Sequence builds an extractor for a multi-valued facet field. A nil result
// is treated as an empty sequence. Repeated values within one item count as
// a single match.
func Sequence[T any](fn func(T) []string) Extractor[T] {
	return Extractor[T]{sequence: fn}
}

// Values returns the distinct facet values of item in first-seen order.
func (e Extractor[T]) Values(item T) []string {
	var out []string
	e.each(item, func(v string) {
		out = append(out, v)
	})
	return out
}

// each calls fn once per distinct value carried by item.
func (e Extractor[T]) each(item T, fn func(string)) {
	switch {
	case e.scalar != nil:
		if v, ok := e.scalar(item); ok {
			fn(v)
		}
	case e.sequence != nil:
		vals := e.sequence(item)
		for i, v := range vals {
			if slices.Contains(vals[:i], v) {
				continue
			}
			fn(v)
		}
	}
}

func (e Extractor[T]) matches(item T, want string) bool {
	switch {
	case e.scalar != nil:
		v, ok := e.scalar(item)
		return ok && v == want
	case e.sequence != nil:
		return slices.Contains(e.sequence(item), want)
	}
	return false
}
