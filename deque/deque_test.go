package deque

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect[T any](d Deque[T]) []T {
	var out []T
	d.Traverse(func(_ int, item T) {
		out = append(out, item)
	})
	return out
}

func TestNewArrDequeRoundsCapacity(t *testing.T) {
	assert.Equal(t, 8, NewArrDeque[int](5).Cap())
	assert.Equal(t, 16, NewArrDeque[int](16).Cap())
	assert.Equal(t, 8, NewArrDeque[int](0).Cap())
}

func TestArrDeque_Funcs(t *testing.T) {
	d := NewArrDeque[int](8)
	assert.True(t, d.IsEmpty())

	d.AddFirst(2)
	d.AddFirst(1)
	d.AddLast(3)
	assert.Equal(t, 3, d.Size())
	assert.Equal(t, []int{1, 2, 3}, collect[int](d))
	assert.Equal(t, 1, d.Get(0))
	assert.Equal(t, 3, d.Get(2))

	assert.Equal(t, 3, d.RemoveLast())
	assert.Equal(t, 1, d.RemoveFirst())
	assert.Equal(t, []int{2}, collect[int](d))
}

func TestArrDeque_WrapsAround(t *testing.T) {
	d := NewArrDeque[int](8)
	for i := 0; i < 20; i++ {
		if d.IsFull() {
			d.RemoveLast()
		}
		d.AddFirst(i)
	}
	assert.True(t, d.IsFull())
	assert.Equal(t, []int{19, 18, 17, 16, 15, 14, 13, 12}, collect[int](d))

	d.Clear()
	assert.True(t, d.IsEmpty())
	d.AddLast(7)
	assert.Equal(t, []int{7}, collect[int](d))
}

func TestArrDeque_Panics(t *testing.T) {
	d := NewArrDeque[string](1)
	assert.Panics(t, func() { d.RemoveFirst() })
	assert.Panics(t, func() { d.RemoveLast() })
	assert.Panics(t, func() { d.Get(0) })
	for i := 0; i < d.Cap(); i++ {
		d.AddLast("x")
	}
	assert.Panics(t, func() { d.AddFirst("y") })
	assert.Panics(t, func() { d.AddLast("y") })
}

func BenchmarkArrDeque_AddFirst(b *testing.B) {
	d := NewArrDeque[int](4000)
	for i := 0; i < b.N; i++ {
		d.AddFirst(1000)
		d.RemoveFirst()
	}
}

func BenchmarkArrDeque_RemoveLast(b *testing.B) {
	d := NewArrDeque[int](4000)
	for i := 0; i < b.N; i++ {
		d.AddLast(1000)
		d.RemoveLast()
	}
}
