// Package tally counts occurrences of string keys.
//
// A Tally remembers the order in which keys were first seen, so that
// MostCommon breaks ties deterministically.
package tally

import (
	"cmp"
	"slices"
)

// Item is a key with its count.
type Item struct {
	Key   string
	Count int
}

// Tally is a frequency counter. The zero value is ready to use.
type Tally struct {
	counts map[string]int
	order  []string
	total  int
}

// New returns a tally of items.
func New(items ...string) *Tally {
	t := &Tally{}
	for _, it := range items {
		t.Add(it, 1)
	}
	return t
}

// Add adds n occurrences of key. Non-positive n is ignored.
func (t *Tally) Add(key string, n int) {
	if n <= 0 {
		return
	}
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key] += n
	t.total += n
}

// Count returns the number of occurrences of key.
func (t *Tally) Count(key string) int { return t.counts[key] }

// Total returns the sum of all counts.
func (t *Tally) Total() int { return t.total }

// Len returns the number of distinct keys.
func (t *Tally) Len() int { return len(t.order) }

// Keys returns the keys in first-seen order.
func (t *Tally) Keys() []string { return slices.Clone(t.order) }

// Percentage returns the share of key in the total as a fraction in [0, 1].
func (t *Tally) Percentage(key string) float64 {
	if t.total == 0 {
		return 0
	}
	return float64(t.counts[key]) / float64(t.total)
}

// MostCommon returns the n most common items, highest count first. Equal
// counts keep first-seen order. n <= 0 returns all items.
func (t *Tally) MostCommon(n int) []Item {
	items := make([]Item, len(t.order))
	for i, k := range t.order {
		items[i] = Item{Key: k, Count: t.counts[k]}
	}
	slices.SortStableFunc(items, func(a, b Item) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if n > 0 && n < len(items) {
		items = items[:n]
	}
	return items
}
