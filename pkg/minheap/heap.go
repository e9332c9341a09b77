package minheap

import (
	"errors"
	"reflect"
)

const defaultCapacity = 16

var (
	// ErrEmpty is returned by ExtractMin and Peek on an empty heap.
	ErrEmpty = errors.New("heap is empty")
	// ErrNilItem is returned when inserting a nil pointer, interface, map,
	// slice, func or chan.
	ErrNilItem = errors.New("cannot insert nil item")
)

// Heap is an array-backed binary min-heap ordered by a caller-supplied less
// function. It has no decrease-key; callers re-insert with a new key and skip
// superseded entries on extraction.
type Heap[T any] struct {
	items   []T
	less    func(a, b T) bool
	nilable bool
}

// New creates an empty heap with room for capacity items before the first
// resize. A capacity below 1 selects the default of 16.
func New[T any](less func(a, b T) bool, capacity int) *Heap[T] {
	if capacity < 1 {
		capacity = defaultCapacity
	}
	return &Heap[T]{
		items:   make([]T, 0, capacity),
		less:    less,
		nilable: nilable[T](),
	}
}

// FromSlice builds a heap from a copy of items using bottom-up heapify in O(n).
func FromSlice[T any](items []T, less func(a, b T) bool) (*Heap[T], error) {
	h := &Heap[T]{
		items:   make([]T, len(items), max(2*len(items), defaultCapacity)),
		less:    less,
		nilable: nilable[T](),
	}
	if h.nilable {
		for _, it := range items {
			if reflect.ValueOf(&it).Elem().IsNil() {
				return nil, ErrNilItem
			}
		}
	}
	copy(h.items, items)
	for i := len(h.items)/2 - 1; i >= 0; i-- {
		h.siftDown(i)
	}
	return h, nil
}

// Size returns the number of items in the heap.
func (h *Heap[T]) Size() int { return len(h.items) }

// IsEmpty reports whether the heap holds no items.
func (h *Heap[T]) IsEmpty() bool { return len(h.items) == 0 }

// Insert adds item in O(log n). The backing array doubles when full.
func (h *Heap[T]) Insert(item T) error {
	if h.nilable && reflect.ValueOf(&item).Elem().IsNil() {
		return ErrNilItem
	}
	if len(h.items) == cap(h.items) {
		h.grow()
	}
	h.items = append(h.items, item)
	h.siftUp(len(h.items) - 1)
	return nil
}

// ExtractMin removes and returns the minimum item.
func (h *Heap[T]) ExtractMin() (T, error) {
	var zero T
	n := len(h.items)
	if n == 0 {
		return zero, ErrEmpty
	}
	top := h.items[0]
	h.items[0] = h.items[n-1]
	h.items[n-1] = zero // drop the reference for the GC
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return top, nil
}

// Peek returns the minimum item without removing it.
func (h *Heap[T]) Peek() (T, error) {
	if len(h.items) == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return h.items[0], nil
}

// Reset empties the heap but keeps its backing array.
func (h *Heap[T]) Reset() {
	clear(h.items)
	h.items = h.items[:0]
}

// Sorted returns the items in ascending order. The heap is left untouched.
func (h *Heap[T]) Sorted() []T {
	tmp := &Heap[T]{items: make([]T, len(h.items)), less: h.less, nilable: h.nilable}
	copy(tmp.items, h.items)
	out := make([]T, 0, len(h.items))
	for !tmp.IsEmpty() {
		it, _ := tmp.ExtractMin()
		out = append(out, it)
	}
	return out
}

func (h *Heap[T]) grow() {
	items := make([]T, len(h.items), max(2*cap(h.items), defaultCapacity))
	copy(items, h.items)
	h.items = items
}

// siftUp uses hole-sift: the floating item is written once at its final slot.
func (h *Heap[T]) siftUp(i int) {
	item := h.items[i]
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(item, h.items[parent]) {
			break
		}
		h.items[i] = h.items[parent]
		i = parent
	}
	h.items[i] = item
}

func (h *Heap[T]) siftDown(i int) {
	n := len(h.items)
	item := h.items[i]
	for {
		child := 2*i + 1
		if child >= n {
			break
		}
		if right := child + 1; right < n && h.less(h.items[right], h.items[child]) {
			child = right
		}
		if !h.less(h.items[child], item) {
			break
		}
		h.items[i] = h.items[child]
		i = child
	}
	h.items[i] = item
}

// nilable reports whether values of T can be nil. Checked once per heap so
// value types pay nothing on Insert.
func nilable[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
