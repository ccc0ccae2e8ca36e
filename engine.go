package loom

import (
	"github.com/charmbracelet/log"

	"github.com/grindlemire/go-loom/internal/arena"
	"github.com/grindlemire/go-loom/internal/debug"
	"github.com/grindlemire/go-loom/internal/fault"
	"github.com/grindlemire/go-loom/internal/queue"
)

// filterContext is an open filter: the filter and the siblings to resume
// once its subtree is exhausted. Inner filters of a socket have no siblings;
// they close with the socket.
type filterContext struct {
	filter   Filter
	siblings Children
}

// socketContext is a socket mid-fill.
type socketContext struct {
	id       Id
	socket   Socket
	offered  Area // area offered to the socket itself, used for Close
	childMax Area // area offered to its children
	siblings Children
	accepted int

	// filters[innerBase:filterBase] are the socket's inner filters. Filters
	// above filterBase were opened inside the socket's scope.
	innerBase  int
	filterBase int
}

// engine resolves one description tree with three stacks instead of native
// recursion: roots (nodes ready in the current branch), filters and sockets.
// A paused socket is nothing more than its context sitting on the sockets
// stack while its children are processed.
type engine struct {
	frame   *frameState
	maxArea Area
	base    int
	mirror  bool // also write steps to the LOOM_DEBUG file

	roots   Children
	filters []filterContext
	sockets []*socketContext
}

func newEngine(f *frameState, maxArea Area, base int) *engine {
	return &engine{
		frame:   f,
		maxArea: maxArea,
		base:    base,
		mirror:  debug.Enabled(),
		roots:   queue.New[*Node](f.arena),
	}
}

// depth counts open contexts, including those of enclosing evaluations.
func (e *engine) depth() int {
	return e.base + len(e.sockets) + len(e.filters)
}

func (e *engine) checkDepth() {
	if limit := e.frame.window.maxDepth; e.depth() > limit {
		fault.Panic(fault.DepthExceeded, "%d open sockets and filters exceeds the limit of %d", e.depth(), limit)
	}
}

// currentMax is the area offered to nodes in the current branch.
func (e *engine) currentMax() Area {
	if n := len(e.sockets); n > 0 {
		return e.sockets[n-1].childMax
	}
	return e.maxArea
}

// ownFilters is the index of the lowest filter that may be closed by
// exhausting the current branch.
func (e *engine) ownFilters() int {
	if n := len(e.sockets); n > 0 {
		return e.sockets[n-1].filterBase
	}
	return 0
}

func (e *engine) run(root *Node) (LayoutNode, bool) {
	e.roots.PushBack(root)

	for {
		n, ok := e.roots.PopFront()
		if !ok {
			// Branch exhausted: resume the innermost open scope.
			if len(e.filters) > e.ownFilters() {
				e.popFilter()
				continue
			}
			if len(e.sockets) > 0 {
				e.closeSocket()
				continue
			}
			e.frame.log.Debug("tree exhausted without a layout", "depth", e.depth())
			if e.mirror {
				debug.With("tree exhausted without a layout", "frame", e.frame.number)
			}
			return LayoutNode{}, false
		}

		e.frame.spend()

		switch n.kind {
		case kindLeaf:
			if len(e.sockets) == 0 {
				return n.layout, true
			}
			e.accept(n.layout)
		case kindFilter:
			if n.children.Empty() {
				continue
			}
			e.filters = append(e.filters, filterContext{filter: n.filter, siblings: e.roots.Take()})
			e.checkDepth()
			e.roots = n.children.Take()
		case kindGenerator:
			e.dispatchGenerator(n)
		case kindSocket:
			e.dispatchSocket(n)
		}
	}
}

func (e *engine) trace(msg string, n *Node, keyvals ...any) {
	e.traceID(msg, n.id, n.kind, keyvals...)
}

// traceID logs an engine step on the window logger at debug level and
// mirrors it to the LOOM_DEBUG file when that is enabled.
func (e *engine) traceID(msg string, id Id, kind nodeKind, keyvals ...any) {
	if !e.mirror && e.frame.log.GetLevel() > log.DebugLevel {
		return
	}
	kv := append([]any{"id", id, "kind", kind.String(), "depth", e.depth()}, keyvals...)
	e.frame.log.Debug(msg, kv...)
	if e.mirror {
		debug.With(msg, append([]any{"frame", e.frame.number}, kv...)...)
	}
}

func (e *engine) popFilter() {
	top := len(e.filters) - 1
	if top < e.ownFilters() {
		fault.Panic(fault.StackUnderflow, "no filter open in the current scope")
	}
	fc := e.filters[top]
	e.filters[top] = filterContext{}
	e.filters = e.filters[:top]
	e.roots = fc.siblings
}

// dispatchGenerator runs n through the open filters, innermost first, and
// finally directly. Output is spliced in front of the remaining siblings.
func (e *engine) dispatchGenerator(n *Node) {
	ctx := e.frame.newContext(e, n.id, e.currentMax(), n)
	e.trace("generate", n)
	e.generate(ctx, n.gen, len(e.filters))
	if dropped := n.children.Len(); dropped > 0 {
		e.frame.log.Debug("generator left children unconsumed", "id", n.id, "dropped", dropped)
		n.children.Take()
	}
	e.roots.Prepend(&ctx.live().out)
}

func (e *engine) generate(ctx *Context, g Generator, level int) {
	if level == 0 {
		g.Generate(ctx)
		return
	}
	f := e.filters[level-1].filter
	f.FilterGenerator(ctx, g, func(next Generator) {
		e.generate(ctx, next, level-1)
	})
}

// dispatchSocket runs n through the open filters, innermost first. If the
// chain lets a socket through, it opens with n's children.
func (e *engine) dispatchSocket(n *Node) {
	ctx := e.frame.newContext(e, n.id, e.currentMax(), n)

	var opened Socket
	e.filterSocket(ctx, n.socket, len(e.filters), func(s Socket) {
		if opened == nil {
			opened = s
		}
	})

	d := ctx.live()
	e.roots.Prepend(&d.out)
	if opened != nil {
		e.openSocket(n, opened, d.maxArea)
	}
}

func (e *engine) filterSocket(ctx *Context, s Socket, level int, open func(Socket)) {
	if level == 0 {
		open(s)
		return
	}
	f := e.filters[level-1].filter
	f.FilterSocket(ctx, s, func(next Socket) {
		e.filterSocket(ctx, next, level-1, open)
	})
}

func (e *engine) openSocket(n *Node, s Socket, offered Area) {
	childMax := offered
	if c, ok := s.(Constrainer); ok {
		childMax = c.ChildArea(offered)
	}

	sc := arena.Alloc(e.frame.arena, socketContext{
		id:        n.id,
		socket:    s,
		offered:   offered,
		childMax:  childMax,
		siblings:  e.roots.Take(),
		innerBase: len(e.filters),
	})
	for _, f := range n.inner {
		e.filters = append(e.filters, filterContext{filter: f, siblings: queue.New[*Node](e.frame.arena)})
	}
	sc.filterBase = len(e.filters)
	e.sockets = append(e.sockets, sc)
	e.checkDepth()

	e.trace("socket open", n, "children", n.children.Len())

	if s.Capacity().Full(0) {
		e.discard(n.children.Len(), sc)
		n.children.Take()
		return
	}
	e.roots = n.children.Take()
}

// accept feeds a resolved child to the innermost open socket. Capacity is
// checked as each child arrives: a socket that fills up stops processing
// its scope and closes next.
func (e *engine) accept(child LayoutNode) {
	sc := e.sockets[len(e.sockets)-1]
	sc.socket.Accept(child)
	sc.accepted++

	if sc.socket.Capacity().Full(sc.accepted) {
		e.discard(e.roots.Len(), sc)
		e.roots.Take()
		for i := sc.filterBase; i < len(e.filters); i++ {
			e.filters[i] = filterContext{}
		}
		e.filters = e.filters[:sc.filterBase]
	}
}

func (e *engine) discard(pending int, sc *socketContext) {
	if pending > 0 {
		e.frame.log.Debug("socket full, dropping pending children", "id", sc.id, "dropped", pending, "accepted", sc.accepted)
	}
}

// closeSocket pops the innermost socket, restores its siblings and places
// the socket's result (and anything its Close emitted) in front of them.
func (e *engine) closeSocket() {
	top := len(e.sockets) - 1
	if top < 0 {
		fault.Panic(fault.StackUnderflow, "no socket open")
	}
	sc := e.sockets[top]
	e.sockets[top] = nil
	e.sockets = e.sockets[:top]

	for i := sc.innerBase; i < len(e.filters); i++ {
		e.filters[i] = filterContext{}
	}
	e.filters = e.filters[:sc.innerBase]
	e.roots = sc.siblings

	ctx := e.frame.newContext(e, sc.id, sc.offered, nil)
	layout, ok := sc.socket.Close(ctx)
	e.traceID("socket close", sc.id, kindSocket, "accepted", sc.accepted, "empty", !ok)

	front := queue.New[*Node](e.frame.arena)
	if ok {
		front.PushBack(ctx.Leaf(layout))
	}
	front.Append(&ctx.live().out)
	e.roots.Prepend(&front)
}
