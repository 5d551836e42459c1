// Package keyedfield provides access to the designated key field of a record type.
//
// A record's key is never stored separately from the record: it is read from
// the record's field at the moment of a query, so mutating the field through
// any reference to the record implicitly re-keys it everywhere the accessor
// is being used.
package keyedfield

import (
	"fmt"
	"reflect"
	"strings"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/reflectkit"
	"go.llib.dev/frameless/pkg/synckit"
)

const (
	// ErrFieldNotFound is returned when the designated field name
	// cannot be resolved on the record type.
	ErrFieldNotFound errorkit.Error = "keyedfield: field not found"
	// ErrTypeMismatch is returned when the designated field exists on the
	// record type, but its type is not the expected key type.
	ErrTypeMismatch errorkit.Error = "keyedfield: field type mismatch"
)

// Accessor describes how to reach the designated key field in an ENT type.
// The returned pointer is used both to project the current key value
// and to assign a new one.
//
// Example implementation:
//
//	keyedfield.Accessor[User, int](func(u *User) *int { return &u.ID })
//
// A nil Accessor projects the zero key for every record. This mirrors how a
// mistyped field name behaves: lookups silently miss rather than fail.
type Accessor[ENT any, K comparable] func(*ENT) *K

// ByName resolves an Accessor for the given field name on ENT.
//
// Resolution order: exact field name match, a field tagged `ext:"<name>"`,
// then a case-insensitive field name match. The resolution is cached per
// (type, name) pair, so repeated constructions stay cheap.
func ByName[ENT any, K comparable](name string) (Accessor[ENT, K], error) {
	T := reflectkit.TypeOf[ENT]()
	res := resolutions.GetOrInit(fieldID{Type: T, Name: name}, func() resolution {
		return resolveField(T, name)
	})
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Type != reflectkit.TypeOf[K]() {
		return nil, ErrTypeMismatch.F("%s.%s is %s, not %s",
			T.String(), name, res.Type.String(), reflectkit.TypeOf[K]().String())
	}
	index := res.Index
	return func(ent *ENT) *K {
		return reflect.ValueOf(ent).Elem().Field(index).Addr().Interface().(*K)
	}, nil
}

// Lookup projects the current key of the given record.
//
// A nil accessor, a nil record or an unreachable field all project the zero
// key instead of failing, since an absent key field is a caller mistake that
// the collection tolerates by design.
func (fn Accessor[ENT, K]) Lookup(ent *ENT) K {
	var zero K
	if fn == nil || ent == nil {
		return zero
	}
	ptr := fn(ent)
	if ptr == nil {
		return zero
	}
	return *ptr
}

// Set assigns a new key value to the record's designated field.
func (fn Accessor[ENT, K]) Set(ent *ENT, key K) error {
	if ent == nil {
		return fmt.Errorf("nil %T given to keyedfield.Accessor.Set", ent)
	}
	if fn == nil {
		return ErrFieldNotFound
	}
	ptr := fn(ent)
	if ptr == nil {
		return ErrFieldNotFound
	}
	*ptr = key
	return nil
}

type fieldID struct {
	Type reflect.Type
	Name string
}

type resolution struct {
	Index int
	Type  reflect.Type
	Err   error
}

var resolutions synckit.Map[fieldID, resolution]

func resolveField(T reflect.Type, name string) resolution {
	if T.Kind() != reflect.Struct {
		return resolution{Err: ErrFieldNotFound.F("%s is not a struct type", T.String())}
	}
	if sf, ok := T.FieldByName(name); ok && len(sf.Index) == 1 && sf.IsExported() {
		return resolution{Index: sf.Index[0], Type: sf.Type}
	}
	for i := 0; i < T.NumField(); i++ {
		tag := T.Field(i).Tag.Get("ext")
		if tag != "" && strings.EqualFold(tag, name) && T.Field(i).IsExported() {
			return resolution{Index: i, Type: T.Field(i).Type}
		}
	}
	for i := 0; i < T.NumField(); i++ {
		if strings.EqualFold(T.Field(i).Name, name) && T.Field(i).IsExported() {
			return resolution{Index: i, Type: T.Field(i).Type}
		}
	}
	return resolution{Err: ErrFieldNotFound.F("%s has no %q field", T.String(), name)}
}
