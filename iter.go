package keyed

import "iter"

// Iter yields (key, record) pairs in backing-sequence order.
//
// Keys are projected at yield time, so the sequence reflects any field
// mutation that happened since the sequence was obtained. The returned
// sequence can be ranged over any number of times; each range starts
// from the beginning of the backing sequence.
func (c *Collection[ENT, K]) Iter() iter.Seq2[K, *ENT] {
	return func(yield func(K, *ENT) bool) {
		for _, ent := range c.ents {
			if !yield(c.acc.Lookup(ent), ent) {
				return
			}
		}
	}
}

// Keys yields the current key of every record in backing-sequence order.
func (c *Collection[ENT, K]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, ent := range c.ents {
			if !yield(c.acc.Lookup(ent)) {
				return
			}
		}
	}
}

// Values yields the records themselves in backing-sequence order.
func (c *Collection[ENT, K]) Values() iter.Seq[*ENT] {
	return func(yield func(*ENT) bool) {
		for _, ent := range c.ents {
			if !yield(ent) {
				return
			}
		}
	}
}

// ForEach calls fn once per record in backing-sequence order,
// with the record's current key.
func (c *Collection[ENT, K]) ForEach(fn func(key K, ent *ENT)) {
	for key, ent := range c.Iter() {
		fn(key, ent)
	}
}
