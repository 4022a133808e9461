package ecs_test

import (
	"testing"

	"github.com/plus3/chopper/ecs"
	"github.com/stretchr/testify/assert"
)

func TestPoolResize(t *testing.T) {
	pool := ecs.NewPool[Position](10)
	assert.Equal(t, 10, pool.Size())
	assert.False(t, pool.IsEmpty())

	pool.Resize(5)
	assert.Equal(t, 10, pool.Size(), "resize never shrinks")

	pool.Resize(200)
	assert.Equal(t, 200, pool.Size())
	assert.Equal(t, Position{}, *pool.Get(199), "new slots hold the zero value")

	pool.Clear()
	assert.True(t, pool.IsEmpty())
}

func TestPoolSetGet(t *testing.T) {
	pool := ecs.NewPool[Position](4)
	pool.Set(3, Position{X: 1, Y: 2})

	got := pool.Get(3)
	assert.Equal(t, Position{X: 1, Y: 2}, *got)

	got.X = 10
	assert.Equal(t, 10.0, pool.Get(3).X, "Get returns a mutable reference")
}

func TestPoolPointersSurviveGrowth(t *testing.T) {
	pool := ecs.NewPool[Velocity](1)
	pool.Set(0, Velocity{DX: 3})
	ptr := pool.Get(0)

	pool.Resize(1000)
	ptr.DX = 7

	assert.Equal(t, 7.0, pool.Get(0).DX)
}

func TestComponentPointerSurvivesPoolGrowth(t *testing.T) {
	r := newTestRegistry()
	first := r.CreateEntity()
	ecs.AddComponent(first, Velocity{DX: 1})
	held := ecs.GetComponent[Velocity](first)

	for range 200 {
		ecs.AddComponent(r.CreateEntity(), Velocity{})
	}
	held.DX = 9

	assert.Equal(t, 9.0, ecs.GetComponent[Velocity](first).DX)
}

func TestPoolOutOfRangePanics(t *testing.T) {
	pool := ecs.NewPool[Score](2)
	assert.Panics(t, func() { pool.Get(2) })
	assert.Panics(t, func() { pool.Set(-1, Score(1)) })
}
