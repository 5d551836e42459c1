package keyedfield_test

import (
	"testing"

	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/random"

	"go.llib.dev/keyed/keyedfield"
)

type Entity struct {
	UserID int `ext:"uid"`
	Name   string
}

func TestByName(t *testing.T) {
	rnd := random.New(random.CryptoSeed{})

	t.Run("resolves by exact field name", func(t *testing.T) {
		acc, err := keyedfield.ByName[Entity, int]("UserID")
		assert.NoError(t, err)

		ent := &Entity{UserID: rnd.Int()}
		assert.Equal(t, ent.UserID, acc.Lookup(ent))
	})

	t.Run("resolves by ext tag", func(t *testing.T) {
		acc, err := keyedfield.ByName[Entity, int]("uid")
		assert.NoError(t, err)

		ent := &Entity{UserID: rnd.Int()}
		assert.Equal(t, ent.UserID, acc.Lookup(ent))
	})

	t.Run("falls back to a case-insensitive name match", func(t *testing.T) {
		acc, err := keyedfield.ByName[Entity, string]("name")
		assert.NoError(t, err)

		ent := &Entity{Name: rnd.String()}
		assert.Equal(t, ent.Name, acc.Lookup(ent))
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := keyedfield.ByName[Entity, int]("Bogus")
		assert.ErrorIs(t, err, keyedfield.ErrFieldNotFound)
	})

	t.Run("field type differs from the key type", func(t *testing.T) {
		_, err := keyedfield.ByName[Entity, string]("UserID")
		assert.ErrorIs(t, err, keyedfield.ErrTypeMismatch)
	})

	t.Run("non-struct record type", func(t *testing.T) {
		_, err := keyedfield.ByName[int, int]("ID")
		assert.ErrorIs(t, err, keyedfield.ErrFieldNotFound)
	})
}

func TestAccessor_Lookup(t *testing.T) {
	rnd := random.New(random.CryptoSeed{})

	t.Run("func accessor projects the live field value", func(t *testing.T) {
		acc := keyedfield.Accessor[Entity, int](func(e *Entity) *int { return &e.UserID })

		ent := &Entity{UserID: rnd.Int()}
		assert.Equal(t, ent.UserID, acc.Lookup(ent))

		ent.UserID = rnd.Int()
		assert.Equal(t, ent.UserID, acc.Lookup(ent), "projection was expected to follow the mutation")
	})

	t.Run("nil accessor projects the zero key", func(t *testing.T) {
		var acc keyedfield.Accessor[Entity, int]
		assert.Equal(t, 0, acc.Lookup(&Entity{UserID: rnd.Int()}))
	})

	t.Run("nil record projects the zero key", func(t *testing.T) {
		acc := keyedfield.Accessor[Entity, int](func(e *Entity) *int { return &e.UserID })
		assert.Equal(t, 0, acc.Lookup(nil))
	})
}

func TestAccessor_Set(t *testing.T) {
	rnd := random.New(random.CryptoSeed{})

	t.Run("writes through to the designated field", func(t *testing.T) {
		acc, err := keyedfield.ByName[Entity, int]("UserID")
		assert.NoError(t, err)

		var (
			ent = &Entity{}
			exp = rnd.Int()
		)
		assert.NoError(t, acc.Set(ent, exp))
		assert.Equal(t, exp, ent.UserID)
		assert.Equal(t, exp, acc.Lookup(ent))
	})

	t.Run("nil record is an error", func(t *testing.T) {
		acc, err := keyedfield.ByName[Entity, int]("UserID")
		assert.NoError(t, err)
		assert.Error(t, acc.Set(nil, rnd.Int()))
	})

	t.Run("nil accessor is an error", func(t *testing.T) {
		var acc keyedfield.Accessor[Entity, int]
		assert.ErrorIs(t, acc.Set(&Entity{}, rnd.Int()), keyedfield.ErrFieldNotFound)
	})
}
