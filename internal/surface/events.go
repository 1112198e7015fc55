package surface

import "sync"

// Events holds resize and pointer listeners for a host. Listeners run in
// registration order, outside the lock.
type Events struct {
	mu      sync.Mutex
	next    int
	resize  []resizeListener
	pointer []pointerListener
}

type resizeListener struct {
	id int
	fn func()
}

type pointerListener struct {
	id int
	fn func(x, y float64)
}

func (e *Events) OnResize(fn func()) (remove func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.next++
	id := e.next
	e.resize = append(e.resize, resizeListener{id: id, fn: fn})
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, l := range e.resize {
			if l.id == id {
				e.resize = append(e.resize[:i:i], e.resize[i+1:]...)
				return
			}
		}
	}
}

func (e *Events) OnPointerMove(fn func(x, y float64)) (remove func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.next++
	id := e.next
	e.pointer = append(e.pointer, pointerListener{id: id, fn: fn})
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, l := range e.pointer {
			if l.id == id {
				e.pointer = append(e.pointer[:i:i], e.pointer[i+1:]...)
				return
			}
		}
	}
}

func (e *Events) EmitResize() {
	e.mu.Lock()
	ls := append([]resizeListener(nil), e.resize...)
	e.mu.Unlock()

	for _, l := range ls {
		l.fn()
	}
}

func (e *Events) EmitPointer(x, y float64) {
	e.mu.Lock()
	ls := append([]pointerListener(nil), e.pointer...)
	e.mu.Unlock()

	for _, l := range ls {
		l.fn(x, y)
	}
}

// Listeners reports how many resize and pointer listeners are attached.
func (e *Events) Listeners() (resize, pointer int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.resize), len(e.pointer)
}
