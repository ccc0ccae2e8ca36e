package loom

import (
	"fmt"
	"testing"
)

// newTestWindow returns a window with default options, failing the test on
// error.
func newTestWindow(t *testing.T, opts ...WindowOption) *Window {
	t.Helper()
	w, err := NewWindow(opts...)
	if err != nil {
		t.Fatalf("NewWindow() error = %v", err)
	}
	return w
}

// expectFatal runs fn and fails unless it panics with a FatalError of code.
func expectFatal(t *testing.T, code FatalCode, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected %s panic, got none", code)
		}
		fe := RecoverFatal(r)
		if fe.Code != code {
			t.Fatalf("panic code = %s, want %s (%s)", fe.Code, code, fe.Message)
		}
	}()
	fn()
}

// fixed is a generator that yields a layout of a fixed area, drawing a quad
// over the region it is given.
type fixed struct {
	name string
	area Area
	log  *[]string
}

func (f fixed) Generate(ctx *Context) {
	if f.log != nil {
		*f.log = append(*f.log, "run:"+f.name)
	}
	ctx.Yield(NewLayoutNode(f.area, func(r Region, cmds *Commands) {
		cmds.Quad(r.Sized(f.area), ANSIColor(uint8(f.area.Width)))
	}))
}

func size(w, h int) fixed {
	return fixed{area: NewArea(w, h)}
}

// collector is a socket that records what it was fed and resolves to the
// per-axis maximum of its children, or to the empty result with none.
type collector struct {
	capacity Capacity
	got      []Area
	closes   int
	empty    int
}

func (c *collector) Capacity() Capacity { return c.capacity }

func (c *collector) Accept(child LayoutNode) {
	c.got = append(c.got, child.MinArea)
}

func (c *collector) Close(ctx *Context) (LayoutNode, bool) {
	c.closes++
	if len(c.got) == 0 {
		c.empty++
		return LayoutNode{}, false
	}
	var m Area
	for _, a := range c.got {
		m = m.Max(a)
	}
	return NewLayoutNode(m, nil), true
}

// recorder is a filter that logs every hook call and passes the node on.
type recorder struct {
	name string
	log  *[]string
}

func (r recorder) FilterGenerator(_ *Context, g Generator, next func(Generator)) {
	*r.log = append(*r.log, fmt.Sprintf("%s:%s", r.name, label(g)))
	next(g)
}

func (r recorder) FilterSocket(_ *Context, s Socket, next func(Socket)) {
	*r.log = append(*r.log, r.name+":socket")
	next(s)
}

func label(g Generator) string {
	if f, ok := g.(fixed); ok {
		return f.name
	}
	return fmt.Sprintf("%T", g)
}
