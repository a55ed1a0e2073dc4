package deque

// 数组大小基数
const base = 8

// ArrDeque is a fixed-capacity ring buffer. Adding to a full deque panics;
// callers evict first.
type ArrDeque[T any] struct {
	arr   []T
	start int // 头部元素下标
	size  int
}

var _ Deque[int] = (*ArrDeque[int])(nil)

// 工厂方法，容量向上取整到 base 的倍数
func NewArrDeque[T any](capacity int) *ArrDeque[T] {
	if capacity < 1 {
		capacity = 1
	}
	if remainder := capacity % base; remainder != 0 {
		capacity = capacity - remainder + base
	}
	return &ArrDeque[T]{arr: make([]T, capacity)}
}

func (ad *ArrDeque[T]) Size() int {
	return ad.size
}

func (ad *ArrDeque[T]) Cap() int {
	return len(ad.arr)
}

func (ad *ArrDeque[T]) IsFull() bool {
	return ad.size == len(ad.arr)
}

func (ad *ArrDeque[T]) IsEmpty() bool {
	return ad.size == 0
}

func (ad *ArrDeque[T]) index(i int) int {
	return (ad.start + i) % len(ad.arr)
}

func (ad *ArrDeque[T]) Get(i int) T {
	if i < 0 || i >= ad.size {
		panic("index out of length")
	}
	return ad.arr[ad.index(i)]
}

func (ad *ArrDeque[T]) Traverse(f func(i int, item T)) {
	for i := 0; i < ad.size; i++ {
		f(i, ad.arr[ad.index(i)])
	}
}

func (ad *ArrDeque[T]) AddFirst(item T) {
	if ad.IsFull() {
		panic("deque is full")
	}
	ad.start = (ad.start - 1 + len(ad.arr)) % len(ad.arr)
	ad.arr[ad.start] = item
	ad.size++
}

func (ad *ArrDeque[T]) AddLast(item T) {
	if ad.IsFull() {
		panic("deque is full")
	}
	ad.arr[ad.index(ad.size)] = item
	ad.size++
}

func (ad *ArrDeque[T]) RemoveFirst() T {
	if ad.IsEmpty() {
		panic("deque is empty")
	}
	var zero T
	item := ad.arr[ad.start]
	ad.arr[ad.start] = zero
	ad.start = (ad.start + 1) % len(ad.arr)
	ad.size--
	return item
}

func (ad *ArrDeque[T]) RemoveLast() T {
	if ad.IsEmpty() {
		panic("deque is empty")
	}
	var zero T
	last := ad.index(ad.size - 1)
	item := ad.arr[last]
	ad.arr[last] = zero
	ad.size--
	return item
}

// Clear drops every element and keeps the capacity.
func (ad *ArrDeque[T]) Clear() {
	var zero T
	for i := range ad.arr {
		ad.arr[i] = zero
	}
	ad.start, ad.size = 0, 0
}
