// State slots carry values from one frame to the next.
//
// Every position in the tree (identified by its Id) may store one value per
// frame. A value stored during frame N is readable only during frame N+1:
// reads go to the previous frame's cache, writes to the current one, and the
// two are swapped when a frame completes.
//
// Example usage:
//
//	func (c Counter) Layout(ctx *loom.Context) (loom.LayoutNode, bool) {
//	    n, _ := loom.LoadState[int](ctx)
//	    if _, clicked := loom.Message[Clicked](ctx); clicked {
//	        n++
//	    }
//	    loom.StoreState(ctx, n)
//	    ...
//	}
package loom

import (
	"github.com/grindlemire/go-loom/internal/fault"
)

// stateEntry is a value tagged with the frame that wrote it.
type stateEntry struct {
	frame uint64
	value any
}

// stateCache is the double-buffered per-Id state store.
type stateCache struct {
	prev map[Id]stateEntry // written by the frame just completed
	cur  map[Id]stateEntry // being written by the running frame
}

func newStateCache() stateCache {
	return stateCache{
		prev: make(map[Id]stateEntry),
		cur:  make(map[Id]stateEntry),
	}
}

func (s *stateCache) load(id Id, frame uint64) (any, bool) {
	e, ok := s.prev[id]
	if !ok {
		return nil, false
	}
	if e.frame+1 != frame {
		fault.Panic(fault.StaleSlot, "state for %s was written in frame %d, read in frame %d", id, e.frame, frame)
	}
	return e.value, true
}

func (s *stateCache) store(id Id, frame uint64, v any) {
	s.cur[id] = stateEntry{frame: frame, value: v}
}

// swap makes the current frame's writes readable by the next frame. Values
// not re-stored during the frame are dropped.
func (s *stateCache) swap() {
	clear(s.prev)
	s.prev, s.cur = s.cur, s.prev
}

// reset drops everything, used when a frame aborts.
func (s *stateCache) reset() {
	clear(s.prev)
	clear(s.cur)
}

// LoadState returns the value stored at ctx's Id during the previous frame.
// It panics if the stored value is not a T.
func LoadState[T any](ctx *Context) (T, bool) {
	var zero T
	d := ctx.live()
	v, ok := d.frame.window.state.load(d.id, d.frame.number)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		fault.Panic(fault.TypeMismatch, "state for %s holds %T, not %T", d.id, v, zero)
	}
	return t, true
}

// StoreState stores v at ctx's Id for the next frame. A second store in the
// same frame replaces the first.
func StoreState[T any](ctx *Context, v T) {
	d := ctx.live()
	d.frame.window.state.store(d.id, d.frame.number, v)
}
