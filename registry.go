package loom

import (
	"github.com/grindlemire/go-loom/internal/arena"
	"github.com/grindlemire/go-loom/internal/fault"
	"github.com/grindlemire/go-loom/internal/queue"
)

// Component is a value laid out through its type's Renderer. Components are
// placed in the tree with Mount and stored in a per-frame slot vector shared
// by all values of the same type.
type Component interface {
	Layout(ctx *Context) (LayoutNode, bool)
}

// Renderer owns the slot vector of one component type for one frame.
//
// The allocate method is unexported: renderers are either BasicRenderer or
// embed one, so every store goes through a checked conversion.
type Renderer interface {
	// TypeID returns the component type this renderer stores.
	TypeID() TypeId

	// Len returns the number of slots allocated this frame.
	Len() int

	// Layout takes the value out of slot index and lays it out. A slot can
	// only be laid out once.
	Layout(index int, ctx *Context) (LayoutNode, bool)

	allocate(v any) int
}

// RendererFactory builds a fresh Renderer at the start of each frame that
// uses its type.
type RendererFactory func() Renderer

type slot[T any] struct {
	value T
	full  bool
}

// BasicRenderer stores component values of type T by value and lays each
// one out by calling its Layout method. Custom renderers embed it and
// override Layout.
type BasicRenderer[T Component] struct {
	slots []slot[T]
}

// NewBasicRenderer creates an empty BasicRenderer.
func NewBasicRenderer[T Component]() *BasicRenderer[T] {
	return &BasicRenderer[T]{}
}

// BasicFactory returns a factory producing BasicRenderers for T.
func BasicFactory[T Component]() RendererFactory {
	return func() Renderer { return NewBasicRenderer[T]() }
}

// TypeID returns the TypeId of T.
func (r *BasicRenderer[T]) TypeID() TypeId {
	return TypeIDOf[T]()
}

// Len returns the number of slots allocated this frame.
func (r *BasicRenderer[T]) Len() int {
	return len(r.slots)
}

func (r *BasicRenderer[T]) store(v T) int {
	r.slots = append(r.slots, slot[T]{value: v, full: true})
	return len(r.slots) - 1
}

func (r *BasicRenderer[T]) allocate(v any) int {
	t, ok := v.(T)
	if !ok {
		fault.Panic(fault.TypeMismatch, "%T stored in renderer for %s", v, r.TypeID())
	}
	return r.store(t)
}

// Take empties slot index and returns its value. It panics if the slot does
// not exist or was already taken.
func (r *BasicRenderer[T]) Take(index int) T {
	if index < 0 || index >= len(r.slots) {
		fault.Panic(fault.SlotConsumed, "slot %d of %s does not exist", index, r.TypeID())
	}
	s := &r.slots[index]
	if !s.full {
		fault.Panic(fault.SlotConsumed, "slot %d of %s already laid out", index, r.TypeID())
	}
	v := s.value
	*s = slot[T]{}
	return v
}

// Layout takes slot index and calls its Layout method.
func (r *BasicRenderer[T]) Layout(index int, ctx *Context) (LayoutNode, bool) {
	v := r.Take(index)
	return v.Layout(ctx)
}

type typedStore[T any] interface {
	store(v T) int
}

// Registry maps component TypeIds to renderer factories. It lives on the
// Window and is only changed by explicit registration between frames.
type Registry struct {
	factories map[TypeId]RendererFactory
}

func newRegistry() *Registry {
	return &Registry{factories: make(map[TypeId]RendererFactory)}
}

func (r *Registry) register(id TypeId, factory RendererFactory) {
	if id == 0 {
		fault.Panic(fault.UnregisteredType, "cannot register the zero TypeId")
	}
	if factory == nil {
		panic("loom: nil renderer factory")
	}
	if _, exists := r.factories[id]; exists {
		fault.Panic(fault.DuplicateType, "%s registered twice", id)
	}
	r.factories[id] = factory
}

// Registered reports whether id has a factory.
func (r *Registry) Registered(id TypeId) bool {
	_, ok := r.factories[id]
	return ok
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.factories)
}

// Register binds T to factory on w. Registering a type twice panics.
func Register[T Component](w *Window, factory RendererFactory) {
	w.registry.register(TypeIDOf[T](), factory)
}

// RegisterBasic binds T to a BasicRenderer.
func RegisterBasic[T Component](w *Window) {
	Register[T](w, BasicFactory[T]())
}

// RegisterType binds a raw TypeId to factory. Mount still verifies that the
// renderer the factory builds stores the type being mounted.
func (w *Window) RegisterType(id TypeId, factory RendererFactory) {
	w.registry.register(id, factory)
}

// rendererFor returns this frame's renderer for id, building it on first use.
func (f *frameState) rendererFor(id TypeId) Renderer {
	if r, ok := f.renderers[id]; ok {
		return r
	}
	factory, ok := f.window.registry.factories[id]
	if !ok {
		fault.Panic(fault.UnregisteredType, "%s has no registered renderer", id)
	}
	r := factory()
	if r == nil {
		panic("loom: renderer factory for " + id.String() + " returned nil")
	}
	f.renderers[id] = r
	return r
}

// componentGenerator lays out one stored component when its node runs.
type componentGenerator struct {
	renderer Renderer
	index    int
}

func (g *componentGenerator) Generate(ctx *Context) {
	if layout, ok := g.renderer.Layout(g.index, ctx); ok {
		ctx.Yield(layout)
	}
}

// Mount stores v in its type's renderer and returns a generator node that
// lays it out when reached. The renderer must have been registered for T;
// a renderer whose TypeID differs from T's is rejected before anything is
// stored.
func Mount[T Component](ctx *Context, id Id, v T) *Node {
	expected := TypeIDOf[T]()
	f := ctx.live().frame
	r := f.rendererFor(expected)
	if got := r.TypeID(); got != expected {
		fault.Panic(fault.TypeMismatch, "renderer registered for %s stores %s", expected, got)
	}

	var index int
	if ts, ok := r.(typedStore[T]); ok {
		index = ts.store(v)
	} else {
		index = r.allocate(v)
	}

	g, node := arena.AllocPair(f.arena,
		componentGenerator{renderer: r, index: index},
		Node{kind: kindGenerator, id: id, children: queue.New[*Node](f.arena)},
	)
	node.gen = g
	return node
}
