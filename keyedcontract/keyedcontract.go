// Package keyedcontract specifies the behavior of the keyed.Collection
// container as a reusable testing suite.
package keyedcontract

import (
	"fmt"
	"iter"
	"testing"

	"go.llib.dev/frameless/pkg/iterkit"
	"go.llib.dev/frameless/pkg/iterkit/iterkitcontract"
	"go.llib.dev/frameless/pkg/reflectkit"
	"go.llib.dev/frameless/pkg/zerokit"
	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/frameless/port/option"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/random"

	"go.llib.dev/keyed"
	"go.llib.dev/keyed/keyedfield"
)

// Collection returns the behavioral contract of a keyed.Collection.
//
// The Config.MakeEnt function is expected to produce records whose keys are
// unique within a single test run, the same way a caller of keyed.New is
// responsible for supplying unique keyed records.
func Collection[ENT any, K comparable](make contract.Make[*keyed.Collection[ENT, K]], opts ...Option[ENT, K]) contract.Contract {
	s := testcase.NewSpec(nil)
	c := option.ToConfig(opts)

	s.Test("smoke", func(t *testcase.T) {
		var (
			col = make(t)
			exp []*ENT
		)
		t.Random.Repeat(3, 7, func() {
			ent := c.makeEnt(t)
			col.Add(ent)
			exp = append(exp, ent)
		})
		assert.Equal(t, len(exp), col.Len())
		acc := c.accessor(t)
		for _, ent := range exp {
			got, ok := col.Lookup(acc.Lookup(ent))
			assert.True(t, ok)
			assert.True(t, got == ent, "lookup was expected to yield the stored record itself")
			assert.True(t, col.HasRecord(ent))
		}
		assert.Equal(t, exp, col.ToSlice(), "insertion order was expected")
		for _, ent := range exp {
			_, ok := col.DeleteRecord(ent)
			assert.True(t, ok)
		}
		assert.Equal(t, 0, col.Len())
	})

	s.Test("keys are derived from the record at query time", func(t *testcase.T) {
		var (
			col = make(t)
			acc = c.accessor(t)
			ent = c.makeEnt(t)
		)
		col.Add(ent)
		oldKey := acc.Lookup(ent)
		newKey := random.Unique(func() K { return c.makeKey(t) }, iterkit.Collect(col.Keys())...)
		assert.NoError(t, acc.Set(ent, newKey))

		got, ok := col.Lookup(newKey)
		assert.True(t, ok)
		assert.True(t, got == ent)
		_, ok = col.Lookup(oldKey)
		assert.False(t, ok, "the old key was expected to be gone along with the field mutation")
	})

	s.Test("record membership is identity based, not structural", func(t *testcase.T) {
		var (
			col = make(t)
			acc = c.accessor(t)
			ent = c.makeEnt(t)
		)
		col.Add(ent)
		copied := *ent
		assert.True(t, col.HasRecord(ent))
		assert.False(t, col.HasRecord(&copied))
		assert.True(t, col.HasKey(acc.Lookup(&copied)), "the copy still carries a stored key value")
	})

	s.Test("adding a record with a colliding key replaces the holder in place", func(t *testcase.T) {
		var (
			col = make(t)
			acc = c.accessor(t)
			a   = c.makeEnt(t)
			b   = c.makeEnt(t)
			d   = c.makeEnt(t)
			e   = c.makeEnt(t)
		)
		col.Add(a, b, d)
		assert.NoError(t, acc.Set(e, acc.Lookup(b)))
		col.Add(e)
		assert.Equal(t, 3, col.Len())
		vs := col.ToSlice()
		assert.True(t, vs[0] == a)
		assert.True(t, vs[1] == e, "the colliding record was expected at the replaced record's position")
		assert.True(t, vs[2] == d)
		assert.False(t, col.HasRecord(b))
	})

	s.Test("re-adding a stored record leaves the collection unchanged", func(t *testcase.T) {
		var (
			col = make(t)
			ent = c.makeEnt(t)
		)
		col.Add(ent)
		exp := col.ToSlice()
		col.Add(ent)
		assert.Equal(t, exp, col.ToSlice())
	})

	s.Test("delete by key yields the record, delete by record yields its key", func(t *testcase.T) {
		var (
			col = make(t)
			acc = c.accessor(t)
			a   = c.makeEnt(t)
			b   = c.makeEnt(t)
		)
		col.Add(a, b)

		got, ok := col.DeleteKey(acc.Lookup(a))
		assert.True(t, ok)
		assert.True(t, got == a)

		key, ok := col.DeleteRecord(b)
		assert.True(t, ok)
		assert.Equal(t, acc.Lookup(b), key)

		assert.Equal(t, 0, col.Len())
	})

	s.Test("deleting an absent key or record reports a miss and keeps the collection intact", func(t *testcase.T) {
		var (
			col = make(t)
			acc = c.accessor(t)
			ent = c.makeEnt(t)
		)
		col.Add(ent)
		exp := col.ToSlice()

		absKey := random.Unique(func() K { return c.makeKey(t) }, acc.Lookup(ent))
		_, ok := col.DeleteKey(absKey)
		assert.False(t, ok)
		_, ok = col.DeleteRecord(c.makeEnt(t))
		assert.False(t, ok)

		assert.Equal(t, exp, col.ToSlice())
	})

	s.Test("iteration keeps backing-sequence order across key mutation", func(t *testcase.T) {
		var (
			col = make(t)
			acc = c.accessor(t)
			exp []*ENT
		)
		t.Random.Repeat(3, 7, func() {
			ent := c.makeEnt(t)
			col.Add(ent)
			exp = append(exp, ent)
		})
		target := t.Random.SliceElement(exp).(*ENT)
		newKey := random.Unique(func() K { return c.makeKey(t) }, iterkit.Collect(col.Keys())...)
		assert.NoError(t, acc.Set(target, newKey))

		assert.Equal(t, exp, iterkit.Collect(col.Values()), "record order was expected to survive the key mutation")
		for i, key := range iterkit.Collect(col.Keys()) {
			assert.Equal(t, acc.Lookup(exp[i]), key)
		}
	})

	s.Describe("#Keys", iterkitcontract.IterSeq(func(tb testing.TB) iter.Seq[K] {
		t := testcase.ToT(&tb)
		col := make(t)
		t.Random.Repeat(3, 7, func() {
			col.Add(c.makeEnt(t))
		})
		return col.Keys()
	}).Spec)

	s.Describe("#Values", iterkitcontract.IterSeq(func(tb testing.TB) iter.Seq[*ENT] {
		t := testcase.ToT(&tb)
		col := make(t)
		t.Random.Repeat(3, 7, func() {
			col.Add(c.makeEnt(t))
		})
		return col.Values()
	}).Spec)

	entName := reflectkit.TypeOf[ENT]().String()
	keyName := reflectkit.TypeOf[K]().String()
	return s.AsSuite(fmt.Sprintf("keyed.Collection[%s, %s]", entName, keyName))
}

type Option[ENT any, K comparable] interface {
	option.Option[Config[ENT, K]]
}

type Config[ENT any, K comparable] struct {
	// MakeEnt creates a record whose key is unique within the test run.
	MakeEnt func(testing.TB) *ENT
	// MakeKey creates a key value of the designated field's type.
	MakeKey func(testing.TB) K
	// Accessor reaches the designated key field of ENT.
	//
	// default: the ENT type's "ID" field
	Accessor keyedfield.Accessor[ENT, K]
}

var _ Option[any, string] = Config[any, string]{}

func (c Config[ENT, K]) Configure(o *Config[ENT, K]) {
	o.MakeEnt = zerokit.Coalesce(c.MakeEnt, o.MakeEnt)
	o.MakeKey = zerokit.Coalesce(c.MakeKey, o.MakeKey)
	o.Accessor = zerokit.Coalesce(c.Accessor, o.Accessor)
}

func (c Config[ENT, K]) makeEnt(tb testing.TB) *ENT {
	if c.MakeEnt == nil {
		tb.Fatal("keyedcontract: Config.MakeEnt is required")
	}
	return c.MakeEnt(tb)
}

func (c Config[ENT, K]) makeKey(tb testing.TB) K {
	if c.MakeKey == nil {
		tb.Fatal("keyedcontract: Config.MakeKey is required")
	}
	return c.MakeKey(tb)
}

func (c Config[ENT, K]) accessor(tb testing.TB) keyedfield.Accessor[ENT, K] {
	if c.Accessor != nil {
		return c.Accessor
	}
	acc, err := keyedfield.ByName[ENT, K]("ID")
	if err != nil {
		tb.Fatalf("keyedcontract: Config.Accessor is required when %T has no ID field", *new(ENT))
	}
	return acc
}
