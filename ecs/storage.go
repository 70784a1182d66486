package ecs

import (
	"reflect"
	"unsafe"
	"weak"
)

// Storage owns every archetype and singleton of one ECS world.
type Storage struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry
	singletons map[reflect.Type]*singletonEntry

	// layoutVersion changes whenever an archetype is created, so cached
	// queries know to rescan.
	layoutVersion uint64
}

type singletonEntry struct {
	value   reflect.Value // *T
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty storage using registry for component columns.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry the storage was built with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Archetypes yields every archetype currently allocated.
func (s *Storage) Archetypes() func(yield func(*Archetype) bool) {
	return func(yield func(*Archetype) bool) {
		for _, a := range s.archetypes {
			if !yield(a) {
				return
			}
		}
	}
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypes(types)
	a, ok := s.archetypes[id]
	if !ok {
		a = newArchetype(id, types, s.registry)
		s.archetypes[id] = a
		s.layoutVersion++
	}
	return a
}

// Spawn creates an entity from the given component values (or pointers to
// them) and returns its ID.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}
	types := make([]reflect.Type, len(components))
	for i, c := range components {
		types[i] = componentType(c)
	}
	sortTypes(types)
	a := s.archetypeFor(types)
	return NewEntityId(a.id, a.spawn(components))
}

// Delete removes the entity and invalidates its refs. Unknown IDs are ignored.
func (s *Storage) Delete(id EntityId) {
	if a, ok := s.archetypes[id.ArchetypeId()]; ok {
		a.delete(id.Index())
	}
}

// Exists reports whether id names a live entity.
func (s *Storage) Exists(id EntityId) bool {
	a, ok := s.archetypes[id.ArchetypeId()]
	if !ok || len(a.stores) == 0 {
		return false
	}
	return a.stores[0].Has(int(id.Index()))
}

// GetComponent returns a pointer to the entity's component of type t, or nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	a, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return a.GetComponent(id.Index(), t)
}

// HasComponent reports whether the entity's archetype carries t.
func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	a, ok := s.archetypes[id.ArchetypeId()]
	return ok && a.HasComponent(t)
}

// AddComponent attaches component to the entity and returns its new ID. If
// the entity already has a component of that type, the value is replaced in
// place and the ID is unchanged.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	old, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !old.stores[0].Has(int(id.Index())) {
		return 0
	}

	t := componentType(component)
	if existing := old.GetComponent(id.Index(), t); existing != nil {
		v := reflect.ValueOf(component)
		if v.Kind() == reflect.Pointer {
			v = v.Elem()
		}
		reflect.ValueOf(existing).Elem().Set(v)
		return id
	}

	types := make([]reflect.Type, 0, len(old.types)+1)
	types = append(types, old.types...)
	types = append(types, t)
	sortTypes(types)

	values := make([]any, 0, len(types))
	for _, ot := range old.types {
		values = append(values, old.GetComponent(id.Index(), ot))
	}
	values = append(values, component)

	return s.move(id, old, s.archetypeFor(types), values)
}

// RemoveComponent detaches the component of type t and returns the entity's
// new ID. Removing the last component deletes the entity and returns zero.
func (s *Storage) RemoveComponent(id EntityId, t reflect.Type) EntityId {
	old, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !old.HasComponent(t) || !old.stores[0].Has(int(id.Index())) {
		return id
	}

	types := make([]reflect.Type, 0, len(old.types)-1)
	values := make([]any, 0, len(old.types)-1)
	for _, ot := range old.types {
		if ot == t {
			continue
		}
		types = append(types, ot)
		values = append(values, old.GetComponent(id.Index(), ot))
	}

	if len(types) == 0 {
		old.delete(id.Index())
		return 0
	}
	return s.move(id, old, s.archetypeFor(types), values)
}

// move copies values into dst, carries any live EntityRef along, then frees
// the old slot.
func (s *Storage) move(id EntityId, src, dst *Archetype, values []any) EntityId {
	newId := NewEntityId(dst.id, dst.spawn(values))

	if wp, ok := src.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = dst
			dst.refs.Put(newId, wp)
		}
		src.refs.Del(id)
	}

	src.delete(id.Index())
	return newId
}

// CreateEntityRef returns the shared ref for id, creating it if needed.
// Returns nil if the entity does not exist.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	if !s.Exists(id) {
		return nil
	}
	a := s.archetypes[id.ArchetypeId()]

	if wp, ok := a.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			return ref
		}
		a.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: a}
	a.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the current ID behind ref.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Valid() {
		return 0, false
	}
	return ref.Id, true
}

// AddSingleton stores value as the single instance of its type. An existing
// instance is overwritten in place so outstanding pointers stay valid.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	t := v.Type()

	if entry, ok := s.singletons[t]; ok {
		entry.value.Elem().Set(v)
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(v)
	s.singletons[t] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// ComponentReader is anything that can look up a component by entity.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	c, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return c
}
