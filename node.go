package loom

import "github.com/grindlemire/go-loom/internal/queue"

// Generator produces child nodes when run. It emits them through the
// Context: further Generators, Sockets, Filters, or resolved layouts.
type Generator interface {
	Generate(ctx *Context)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx *Context)

// Generate calls f(ctx).
func (f GeneratorFunc) Generate(ctx *Context) {
	f(ctx)
}

// Socket collects the layouts of its children and resolves to a layout of
// its own. Accept is called once per resolved child, in declaration order,
// until Capacity is reached. Close is called exactly once, after the last
// child; returning false is the explicit empty result and is not an error.
type Socket interface {
	Capacity() Capacity
	Accept(child LayoutNode)
	Close(ctx *Context) (LayoutNode, bool)
}

// Constrainer is implemented by sockets that offer their children less
// room than they were offered themselves (borders, padding).
type Constrainer interface {
	ChildArea(max Area) Area
}

// Filter interposes on the Generators and Sockets dispatched inside its
// scope. A hook passes the node on by calling next; not calling next refuses
// it. Hooks may emit replacement nodes through ctx, and those nodes are
// filtered in turn.
//
// When several filters are open, the innermost one is consulted first and
// its next reaches the one outside it.
type Filter interface {
	FilterGenerator(ctx *Context, g Generator, next func(Generator))
	FilterSocket(ctx *Context, s Socket, next func(Socket))
}

// GeneratorFilter adapts a generator hook into a Filter that passes sockets
// through unchanged.
type GeneratorFilter func(ctx *Context, g Generator, next func(Generator))

// FilterGenerator calls f.
func (f GeneratorFilter) FilterGenerator(ctx *Context, g Generator, next func(Generator)) {
	f(ctx, g, next)
}

// FilterSocket passes s on.
func (f GeneratorFilter) FilterSocket(_ *Context, s Socket, next func(Socket)) {
	next(s)
}

// Capacity is the number of children a socket accepts.
type Capacity int

const (
	// Unlimited accepts any number of children.
	Unlimited Capacity = -1
	// One accepts exactly one child.
	One Capacity = 1
)

// Upto returns a capacity of n children.
func Upto(n int) Capacity {
	if n < 0 {
		return Unlimited
	}
	return Capacity(n)
}

// Full reports whether a socket that accepted n children can take no more.
func (c Capacity) Full(n int) bool {
	return c >= 0 && n >= int(c)
}

// RenderFunc draws a resolved subtree into the region it was given.
type RenderFunc func(r Region, cmds *Commands)

// LayoutNode is a resolved subtree: the minimum area it needs and a deferred
// render procedure.
type LayoutNode struct {
	MinArea Area
	render  RenderFunc
}

// NewLayoutNode creates a LayoutNode. fn may be nil for invisible spacers.
func NewLayoutNode(minArea Area, fn RenderFunc) LayoutNode {
	return LayoutNode{MinArea: minArea, render: fn}
}

// Render draws the node into r.
func (n LayoutNode) Render(r Region, cmds *Commands) {
	if n.render != nil {
		n.render(r, cmds)
	}
}

// Children is an arena-backed queue of pending child nodes.
type Children = queue.Queue[*Node]

type nodeKind uint8

const (
	kindGenerator nodeKind = iota
	kindFilter
	kindSocket
	kindLeaf
)

func (k nodeKind) String() string {
	switch k {
	case kindGenerator:
		return "generator"
	case kindFilter:
		return "filter"
	case kindSocket:
		return "socket"
	case kindLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Node is one element of the description tree: a Generator, Filter or Socket
// with the children queued for it, or a resolved layout on its way to the
// enclosing socket. Nodes are allocated from the frame arena through a
// Context and are only valid during the frame that created them.
type Node struct {
	kind     nodeKind
	id       Id
	gen      Generator
	filter   Filter
	socket   Socket
	inner    []Filter
	layout   LayoutNode
	children Children
}

// ID returns the node's Id. Filter and leaf nodes carry the Id of the
// context that created them.
func (n *Node) ID() Id {
	return n.id
}

// Kind returns "generator", "filter", "socket" or "leaf".
func (n *Node) Kind() string {
	return n.kind.String()
}

// Add queues more children on the node and returns it.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.children.PushBack(c)
		}
	}
	return n
}

// Adopt moves every node in children onto the node's queue and returns it.
func (n *Node) Adopt(children *Children) *Node {
	n.children.Append(children)
	return n
}

// WithFilters declares filters applied to every node inside this socket's
// scope. It panics on non-socket nodes.
func (n *Node) WithFilters(filters ...Filter) *Node {
	if n.kind != kindSocket {
		panic("loom: WithFilters called on a " + n.kind.String() + " node")
	}
	n.inner = append(n.inner, filters...)
	return n
}
