package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// Query iterates entities matching the struct type T. Each pointer field of
// T names a required component; a named pointer field tagged `ecs:"optional"`
// may be nil. An EntityId field receives the entity's ID.
//
// Results are cached: Execute rebuilds the cache and Iter/All replay it. The
// Scheduler calls Execute before each system that owns the query runs.
type Query[T any] struct {
	storage *Storage
	layout  *queryLayout

	archetypes    []*Archetype
	layoutVersion uint64
	scanned       bool

	ids   []EntityId
	items []T
	ready bool
}

type queryField struct {
	offset   uintptr
	typ      reflect.Type
	optional bool
	entityId bool
}

type queryLayout struct {
	fields []queryField
}

var entityIdType = reflect.TypeFor[EntityId]()

func buildQueryLayout[T any]() *queryLayout {
	st := reflect.TypeFor[T]()
	if st.Kind() != reflect.Struct {
		panic("query type parameter must be a struct")
	}

	layout := &queryLayout{}
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if f.Type == entityIdType {
			layout.fields = append(layout.fields, queryField{offset: f.Offset, entityId: true})
			continue
		}
		if f.Type.Kind() != reflect.Pointer {
			panic("query field " + f.Name + " must be a pointer or ecs.EntityId")
		}

		optional := false
		if tag := f.Tag.Get("ecs"); tag != "" {
			if tag != "optional" || f.Anonymous {
				panic("invalid ecs tag on query field " + f.Name + ": " + tag)
			}
			optional = true
		}
		layout.fields = append(layout.fields, queryField{
			offset:   f.Offset,
			typ:      f.Type.Elem(),
			optional: optional,
		})
	}
	return layout
}

func (l *queryLayout) matches(a *Archetype) bool {
	for _, f := range l.fields {
		if f.entityId || f.optional {
			continue
		}
		if !a.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// fill writes the entity's component pointers into dst. It returns false if
// a required component is missing.
func (l *queryLayout) fill(dst unsafe.Pointer, a *Archetype, index uint32) bool {
	for _, f := range l.fields {
		field := unsafe.Add(dst, f.offset)
		if f.entityId {
			*(*EntityId)(field) = NewEntityId(a.id, index)
			continue
		}
		c := a.GetComponent(index, f.typ)
		if c == nil {
			if !f.optional {
				return false
			}
			*(*unsafe.Pointer)(field) = nil
			continue
		}
		*(*unsafe.Pointer)(field) = reflect.ValueOf(c).UnsafePointer()
	}
	return true
}

// NewQuery creates a query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and drops any cached results.
func (q *Query[T]) Init(storage *Storage) {
	q.storage = storage
	q.layout = buildQueryLayout[T]()
	q.archetypes = nil
	q.scanned = false
	q.ready = false
}

func (q *Query[T]) matchingArchetypes() []*Archetype {
	if q.scanned && q.layoutVersion == q.storage.layoutVersion {
		return q.archetypes
	}
	q.archetypes = q.archetypes[:0]
	for _, a := range q.storage.archetypes {
		if q.layout.matches(a) {
			q.archetypes = append(q.archetypes, a)
		}
	}
	q.layoutVersion = q.storage.layoutVersion
	q.scanned = true
	return q.archetypes
}

// Execute rebuilds the cached entity list from the current storage.
func (q *Query[T]) Execute() {
	q.ids = q.ids[:0]
	q.items = q.items[:0]

	var item T
	ptr := unsafe.Pointer(&item)
	for _, a := range q.matchingArchetypes() {
		for id := range a.Iter() {
			if !q.layout.fill(ptr, a, id.Index()) {
				continue
			}
			q.ids = append(q.ids, id)
			q.items = append(q.items, item)
		}
	}
	q.ready = true
}

// Len returns the number of cached results.
func (q *Query[T]) Len() int {
	return len(q.items)
}

// Iter yields the cached results. It panics if Execute has never run.
func (q *Query[T]) Iter() iter.Seq[T] {
	if !q.ready {
		panic("Query.Iter() called before Query.Execute()")
	}
	return func(yield func(T) bool) {
		for i := range q.items {
			if !yield(q.items[i]) {
				return
			}
		}
	}
}

// All yields the cached results with their entity IDs.
func (q *Query[T]) All() iter.Seq2[EntityId, T] {
	if !q.ready {
		panic("Query.All() called before Query.Execute()")
	}
	return func(yield func(EntityId, T) bool) {
		for i := range q.items {
			if !yield(q.ids[i], q.items[i]) {
				return
			}
		}
	}
}

// Get fills a result for a single entity straight from storage, bypassing
// the cache. ok is false if the entity is gone or lacks a required component.
func (q *Query[T]) Get(id EntityId) (item T, ok bool) {
	a, found := q.storage.archetypes[id.ArchetypeId()]
	if !found || !q.layout.matches(a) || len(a.stores) == 0 || !a.stores[0].Has(int(id.Index())) {
		return item, false
	}
	ok = q.layout.fill(unsafe.Pointer(&item), a, id.Index())
	return item, ok
}
