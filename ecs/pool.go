package ecs

import "reflect"

const (
	poolBlockSize   = 64
	defaultPoolSize = 100
)

// iPool is the type-erased view of a Pool that the Registry keeps in its
// pool table. Concrete access goes through the generic accessors, which
// recover the *Pool[T] with a type assertion.
type iPool interface {
	Size() int
	Resize(n int)
	Clear()
	Type() reflect.Type
	getAny(index int) any
}

// Pool is densely packed storage for a single component type, indexed by
// entity id. Values live in fixed-size blocks so pointers returned by Get stay
// valid when the pool grows.
//
// A pool does not know whether the value at an index is meaningful. Presence
// is tracked by the owning entity's Signature.
type Pool[T any] struct {
	blocks []*[poolBlockSize]T
	size   int
}

// NewPool creates a pool with at least size slots.
func NewPool[T any](size int) *Pool[T] {
	p := &Pool[T]{}
	p.Resize(size)
	return p
}

// Size returns the number of addressable slots.
func (p *Pool[T]) Size() int {
	return p.size
}

// IsEmpty reports whether the pool has no slots.
func (p *Pool[T]) IsEmpty() bool {
	return p.size == 0
}

// Resize grows the pool to at least n slots. New slots hold the zero value.
// Resize never shrinks a pool.
func (p *Pool[T]) Resize(n int) {
	if n <= p.size {
		return
	}
	for len(p.blocks)*poolBlockSize < n {
		p.blocks = append(p.blocks, new([poolBlockSize]T))
	}
	p.size = n
}

// Clear drops every slot.
func (p *Pool[T]) Clear() {
	p.blocks = nil
	p.size = 0
}

// Set stores value at index. The caller must have resized the pool first;
// an out of range index panics.
func (p *Pool[T]) Set(index int, value T) {
	*p.Get(index) = value
}

// Get returns a pointer to the value at index. An out of range index panics.
func (p *Pool[T]) Get(index int) *T {
	if index < 0 || index >= p.size {
		panic("ecs: pool index out of range")
	}
	return &p.blocks[index/poolBlockSize][index%poolBlockSize]
}

// Type returns the component type stored in the pool.
func (p *Pool[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

func (p *Pool[T]) getAny(index int) any {
	return p.Get(index)
}
