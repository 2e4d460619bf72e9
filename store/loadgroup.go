package store

import "sync"

// loadGroup suppresses duplicate whole-collection loads: a call issued while
// a load for the same key is already in flight joins that load instead of
// running a second overlapping enumeration.
type loadGroup[T any] struct {
	mu    sync.Mutex
	calls map[string]*loadCall[T]
}

type loadCall[T any] struct {
	done    chan struct{}
	results []T
	err     error
}

func (g *loadGroup[T]) do(key string, fn func() ([]T, error)) ([]T, error) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*loadCall[T])
	}
	if call, ok := g.calls[key]; ok {
		g.mu.Unlock()
		<-call.done
		return call.results, call.err
	}
	call := &loadCall[T]{done: make(chan struct{})}
	g.calls[key] = call
	g.mu.Unlock()

	call.results, call.err = fn()

	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()
	close(call.done)

	return call.results, call.err
}
