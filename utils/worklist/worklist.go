package worklist

// Worklist is a FIFO queue of pending work items. Duplicate items are
// permitted; an item added twice is processed twice.
type Worklist[T any] struct {
	list []T
}

// Start worklist execution with a preloaded queue and an iteration
// function. The iteration function exposes the next element and a function with
// which to add more elements to the worklist.
func StartV[T any](start []T, do func(next T, add func(el T))) {
	W := Empty[T]()
	for _, e := range start {
		W.Add(e)
	}

	W.Process(do)
}

func Empty[T any]() Worklist[T] {
	return Worklist[T]{}
}

// GetNext pops the oldest element. Returns the zero value on an empty worklist.
func (w *Worklist[T]) GetNext() (ret T) {
	if len(w.list) == 0 {
		return
	}
	ret = w.list[0]
	w.list = w.list[1:]
	return
}

func (w *Worklist[T]) IsEmpty() bool {
	return len(w.list) == 0
}

// Len is the number of pending elements.
func (w *Worklist[T]) Len() int {
	return len(w.list)
}

func (w *Worklist[T]) Add(el T) {
	w.list = append(w.list, el)
}

// Process pops elements in FIFO order until the worklist is empty.
func (w *Worklist[T]) Process(do func(next T, add func(element T))) {
	for !w.IsEmpty() {
		do(w.GetNext(), w.Add)
	}
}
