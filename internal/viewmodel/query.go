package viewmodel

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// query describes one filtered view: search over some fields, conjunctive
// predicates, then a stable ordering.
type query[T any] struct {
	search  string
	fields  func(*T) []string
	filters []func(*T) bool
	compare func(a, b *T) int
}

// project never mutates items; the result is a fresh slice.
func project[T any](items []T, q query[T]) []T {
	needle := fold(q.search)
	out := make([]T, 0, len(items))
	for i := range items {
		it := &items[i]
		if needle != "" && !containsAny(q.fields(it), needle) {
			continue
		}
		if !matchAll(it, q.filters) {
			continue
		}
		out = append(out, *it)
	}
	if q.compare != nil {
		slices.SortStableFunc(out, func(a, b T) int { return q.compare(&a, &b) })
	}
	return out
}

func matchAll[T any](it *T, filters []func(*T) bool) bool {
	for _, f := range filters {
		if !f(it) {
			return false
		}
	}
	return true
}

func containsAny(fields []string, needle string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(fold(f), needle) {
			return true
		}
	}
	return false
}

// fold applies full Unicode case folding. A Caser is stateful so one is built per call.
func fold(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}

// A Collator keeps scratch buffers, so calls are serialized.
var (
	collatorMu sync.Mutex
	collator   = collate.New(language.French, collate.IgnoreCase)
)

// compareNames orders by each pair of keys in turn, the way a French reader
// alphabetizes: case ignored, accented letters next to their base letter.
func compareNames(pairs ...[2]string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	for _, p := range pairs {
		if c := collator.CompareString(p[0], p[1]); c != 0 {
			return c
		}
	}
	return 0
}

func opt(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func sameID(want *int64, got *int64) bool {
	return want == nil || (got != nil && *got == *want)
}

func byID(a, b int64) int {
	return cmp.Compare(a, b)
}
