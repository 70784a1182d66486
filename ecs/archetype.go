package ecs

import (
	"hash/fnv"
	"reflect"
	"slices"
	"strings"
	"weak"

	"github.com/kamstrup/intmap"
)

// Archetype stores every entity that has exactly one set of component types.
type Archetype struct {
	id     uint32
	types  []reflect.Type
	stores []componentStore
	refs   *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:     id,
		types:  types,
		stores: make([]componentStore, len(types)),
		refs:   intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}
	for i, t := range types {
		factory := registry.factory(t)
		if factory == nil {
			panic("component type " + t.String() + " not registered")
		}
		a.stores[i] = factory()
	}
	return a
}

// ID returns the archetype's hash of its component types.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types, sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.stores) == 0 {
		return 0
	}
	return a.stores[0].Len()
}

// HasComponent reports whether the archetype carries t.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return slices.Contains(a.types, t)
}

func (a *Archetype) column(t reflect.Type) int {
	return slices.Index(a.types, t)
}

// spawn appends one value per column. components must hold exactly the
// archetype's types, in any order.
func (a *Archetype) spawn(components []any) uint32 {
	if len(components) != len(a.types) {
		panic("component count does not match archetype")
	}
	index := -1
	for _, c := range components {
		col := a.column(componentType(c))
		if col < 0 {
			panic("component " + componentType(c).String() + " not in archetype")
		}
		index = a.stores[col].Append(c)
	}
	return uint32(index)
}

// GetComponent returns a pointer to the component of type t in slot index,
// or nil if the slot is empty or the type absent.
func (a *Archetype) GetComponent(index uint32, t reflect.Type) any {
	col := a.column(t)
	if col < 0 {
		return nil
	}
	return a.stores[col].Get(int(index))
}

// delete empties slot index and invalidates any EntityRef pointing at it.
func (a *Archetype) delete(index uint32) {
	id := NewEntityId(a.id, index)
	if wp, ok := a.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}
	for _, s := range a.stores {
		s.Delete(int(index))
	}
}

// Iter yields every live entity in the archetype.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.stores) == 0 {
			return
		}
		for index := range a.stores[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}

func componentType(c any) reflect.Type {
	t := reflect.TypeOf(c)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return t
}

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(typeKey(a), typeKey(b))
	})
}

func typeKey(t reflect.Type) string {
	return t.PkgPath() + "." + t.String()
}

// hashTypes derives an archetype ID from a sorted type list. Zero is
// reserved so that a zero EntityId never names a live entity.
func hashTypes(types []reflect.Type) uint32 {
	h := fnv.New32a()
	for _, t := range types {
		h.Write([]byte(typeKey(t)))
		h.Write([]byte{0})
	}
	if sum := h.Sum32(); sum != 0 {
		return sum
	}
	return 1
}
