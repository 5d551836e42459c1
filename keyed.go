// Package keyed provides Collection, an ordered in-memory container that
// indexes records by the current value of a designated key field.
//
// The key of a record is derived from the record at the moment of each query,
// and is never cached. Mutating the designated field through any reference to
// the record therefore re-keys it implicitly, without an explicit re-index
// call. Lookup is a linear scan over the backing sequence; this is the
// accepted cost of keeping keys live under external mutation.
//
// A Collection is not safe for concurrent mutation.
// If it is shared between goroutines, guard it with a lock on the caller side.
package keyed

import (
	"go.llib.dev/keyed/keyedfield"
)

// Collection is an ordered sequence of records (ENT),
// indexed by the current value of their designated key field (K).
//
// Records are held by pointer and never copied: record identity is pointer
// identity, and field mutations made through any reference to a record are
// visible through the collection.
//
// The backing sequence is the sole storage; at most one record should hold
// any given key at a time. Add enforces this through its upsert behavior,
// but a key collision introduced by mutating a record's field outside the
// collection cannot be observed, and the first matching record in backing
// order wins any subsequent lookup.
type Collection[ENT any, K comparable] struct {
	ents  []*ENT
	field string
	acc   keyedfield.Accessor[ENT, K]
}

// New creates a Collection over the given records,
// keyed by the field with the given name.
//
// The records become the backing sequence as-is, by reference, and no key
// uniqueness validation takes place. A field name that does not resolve on
// ENT is not an error: every record then projects the zero key,
// and lookups miss silently.
func New[ENT any, K comparable](field string, ents ...*ENT) *Collection[ENT, K] {
	acc, err := keyedfield.ByName[ENT, K](field)
	if err != nil {
		acc = nil
	}
	return &Collection[ENT, K]{ents: ents, field: field, acc: acc}
}

// NewByAccessor creates a Collection whose keys are reached through the given
// accessor function instead of a reflected field name.
func NewByAccessor[ENT any, K comparable](acc keyedfield.Accessor[ENT, K], ents ...*ENT) *Collection[ENT, K] {
	return &Collection[ENT, K]{ents: ents, acc: acc}
}

// KeyField returns the designated field name the collection keys by.
// It is empty when the collection was created with NewByAccessor.
func (c *Collection[ENT, K]) KeyField() string { return c.field }

// Len returns the number of records in the backing sequence.
func (c *Collection[ENT, K]) Len() int { return len(c.ents) }

// Lookup returns the first record whose current key equals the given key.
func (c *Collection[ENT, K]) Lookup(key K) (*ENT, bool) {
	for _, ent := range c.ents {
		if c.acc.Lookup(ent) == key {
			return ent, true
		}
	}
	return nil, false
}

// Get returns the record stored under the given key, or nil when absent.
func (c *Collection[ENT, K]) Get(key K) *ENT {
	ent, _ := c.Lookup(key)
	return ent
}

// HasKey reports whether any record's designated field currently equals the given key.
func (c *Collection[ENT, K]) HasKey(key K) bool {
	_, ok := c.Lookup(key)
	return ok
}

// HasRecord reports whether the exact record is stored in the collection.
// The match is identity, not key equality: a structurally equal copy
// of a stored record is not a member.
func (c *Collection[ENT, K]) HasRecord(ent *ENT) bool {
	for _, got := range c.ents {
		if got == ent {
			return true
		}
	}
	return false
}

// Add upserts records by key.
//
// For each record: when the same record is already stored, nothing happens;
// else when a different record currently holds an equal key, that record is
// replaced at its position in the sequence; otherwise the record is appended.
// Add returns the collection itself to allow chaining.
func (c *Collection[ENT, K]) Add(ents ...*ENT) *Collection[ENT, K] {
	for _, ent := range ents {
		c.add(ent)
	}
	return c
}

func (c *Collection[ENT, K]) add(ent *ENT) {
	var (
		key = c.acc.Lookup(ent)
		at  = -1
	)
	for i, got := range c.ents {
		if got == ent {
			return
		}
		if at == -1 && c.acc.Lookup(got) == key {
			at = i
		}
	}
	if at != -1 {
		c.ents[at] = ent
		return
	}
	c.ents = append(c.ents, ent)
}

// DeleteKey removes the first record whose current key equals the given key,
// and returns the removed record. The order of the remaining records is kept.
func (c *Collection[ENT, K]) DeleteKey(key K) (*ENT, bool) {
	for i, ent := range c.ents {
		if c.acc.Lookup(ent) == key {
			c.removeAt(i)
			return ent, true
		}
	}
	return nil, false
}

// DeleteRecord removes the given record from the collection,
// and returns the key value the record held at the time of removal.
// The order of the remaining records is kept.
func (c *Collection[ENT, K]) DeleteRecord(ent *ENT) (K, bool) {
	for i, got := range c.ents {
		if got == ent {
			key := c.acc.Lookup(ent)
			c.removeAt(i)
			return key, true
		}
	}
	var zero K
	return zero, false
}

func (c *Collection[ENT, K]) removeAt(i int) {
	c.ents = append(c.ents[:i], c.ents[i+1:]...)
}

// Clear discards every record. The designated field name is kept.
func (c *Collection[ENT, K]) Clear() { c.ents = nil }

// ToSlice returns the records in backing-sequence order.
func (c *Collection[ENT, K]) ToSlice() []*ENT {
	return append([]*ENT(nil), c.ents...)
}
