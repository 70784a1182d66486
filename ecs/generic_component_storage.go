package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry maps component types to storage factories. Every type
// must be registered before an entity carrying it can be spawned.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStore
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStore),
	}
}

// RegisterComponent makes T usable as a component in storages built from r.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentStore {
		return &blockStore[T]{}
	}
}

func (r *ComponentRegistry) factory(t reflect.Type) func() componentStore {
	return r.factories[t]
}

// componentStore is the type-erased column of one component type inside an
// archetype. Slot indices are shared by every column of the archetype.
type componentStore interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

const blockSize = 64

// blockStore keeps components in fixed-size blocks allocated on the heap, so
// a pointer handed out by Get stays valid while other slots are appended.
type blockStore[T any] struct {
	blocks []*[blockSize]T
	filled []*[blockSize]bool
	free   []int
	next   int
	live   int
}

func (s *blockStore[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		panic("component of type " + reflect.TypeOf(item).String() +
			" appended to storage of " + reflect.TypeFor[T]().String())
	}

	var index int
	if n := len(s.free); n > 0 {
		index = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		index = s.next
		s.next++
		if index/blockSize >= len(s.blocks) {
			s.blocks = append(s.blocks, new([blockSize]T))
			s.filled = append(s.filled, new([blockSize]bool))
		}
	}

	s.blocks[index/blockSize][index%blockSize] = value
	s.filled[index/blockSize][index%blockSize] = true
	s.live++
	return index
}

func (s *blockStore[T]) Delete(index int) {
	if !s.Has(index) {
		return
	}
	var zero T
	s.blocks[index/blockSize][index%blockSize] = zero
	s.filled[index/blockSize][index%blockSize] = false
	s.free = append(s.free, index)
	s.live--
}

func (s *blockStore[T]) Get(index int) any {
	if !s.Has(index) {
		return nil
	}
	return &s.blocks[index/blockSize][index%blockSize]
}

func (s *blockStore[T]) Has(index int) bool {
	if index < 0 || index >= s.next {
		return false
	}
	return s.filled[index/blockSize][index%blockSize]
}

func (s *blockStore[T]) Len() int {
	return s.live
}

func (s *blockStore[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < s.next; i++ {
			if !s.filled[i/blockSize][i%blockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
