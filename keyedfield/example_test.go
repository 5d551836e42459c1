package keyedfield_test

import (
	"go.llib.dev/keyed/keyedfield"
)

func ExampleByName() {
	acc, err := keyedfield.ByName[Entity, int]("UserID")
	if err != nil {
		panic(err)
	}

	ent := &Entity{UserID: 42}
	acc.Lookup(ent) // 42

	ent.UserID = 7
	acc.Lookup(ent) // 7, the key follows the live field value
}

func ExampleAccessor() {
	acc := keyedfield.Accessor[Entity, string](func(e *Entity) *string { return &e.Name })

	ent := &Entity{Name: "Ahmed"}
	acc.Lookup(ent) // "Ahmed"

	_ = acc.Set(ent, "Sara")
	acc.Lookup(ent) // "Sara"
}
