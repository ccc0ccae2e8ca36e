package loom

import (
	"github.com/charmbracelet/log"

	"github.com/grindlemire/go-loom/internal/arena"
	"github.com/grindlemire/go-loom/internal/fault"
	"github.com/grindlemire/go-loom/internal/queue"
)

// Context is handed to generators, socket closes, filter hooks and component
// layouts. It carries the current Id and the maximum area offered at this
// point of the tree, and collects the nodes the callee emits.
//
// A Context is only valid during the call it was passed to. Using one after
// its frame ended panics with ErrStaleHandle, including from inside a later
// frame.
type Context struct {
	ref arena.Ref[contextData]
}

// contextData lives in the frame arena. The Context itself is a small heap
// value so its epoch tag outlives the arena slot it points at.
type contextData struct {
	frame   *frameState
	eng     *engine
	id      Id
	maxArea Area
	node    *Node
	out     Children
}

func (f *frameState) newContext(e *engine, id Id, maxArea Area, node *Node) *Context {
	return &Context{ref: arena.Make(f.arena, contextData{
		frame:   f,
		eng:     e,
		id:      id,
		maxArea: maxArea,
		node:    node,
		out:     queue.New[*Node](f.arena),
	})}
}

// live returns c's data, or panics if the frame c was made for has ended.
func (c *Context) live() *contextData {
	if !c.ref.Valid() {
		fault.Panic(fault.StaleHandle, "context used after its frame ended")
	}
	return c.ref.Get()
}

// ID returns the Id of the node being processed.
func (c *Context) ID() Id {
	return c.live().id
}

// Child derives a child Id from the current one.
func (c *Context) Child(name string) Id {
	return c.live().id.Child(name)
}

// MaxArea returns the largest area the enclosing socket offers.
func (c *Context) MaxArea() Area {
	return c.live().maxArea
}

// Frame returns the number of the frame being evaluated. The first frame of
// a Window is 1.
func (c *Context) Frame() uint64 {
	return c.live().frame.number
}

// Logger returns the window's logger.
func (c *Context) Logger() *log.Logger {
	return c.live().frame.log
}

// Children takes the pending children queued on the node being processed.
// A second call returns an empty queue.
func (c *Context) Children() Children {
	d := c.live()
	if d.node == nil {
		return queue.New[*Node](d.frame.arena)
	}
	return d.node.children.Take()
}

// NewChildren returns an empty child queue allocated from the frame arena.
func (c *Context) NewChildren() Children {
	return queue.New[*Node](c.live().frame.arena)
}

func (c *Context) newNode(n Node, children []*Node) *Node {
	a := c.live().frame.arena
	n.children = queue.New[*Node](a)
	node := arena.Alloc(a, n)
	return node.Add(children...)
}

// Generator creates a generator node. It is not queued until emitted.
func (c *Context) Generator(id Id, g Generator, children ...*Node) *Node {
	return c.newNode(Node{kind: kindGenerator, id: id, gen: g}, children)
}

// Socket creates a socket node whose children fill it.
func (c *Context) Socket(id Id, s Socket, children ...*Node) *Node {
	return c.newNode(Node{kind: kindSocket, id: id, socket: s}, children)
}

// Filter creates a filter node scoped over children.
func (c *Context) Filter(f Filter, children ...*Node) *Node {
	return c.newNode(Node{kind: kindFilter, id: c.live().id, filter: f}, children)
}

// Leaf wraps a resolved layout as a node.
func (c *Context) Leaf(n LayoutNode) *Node {
	return c.newNode(Node{kind: kindLeaf, id: c.live().id, layout: n}, nil)
}

// Emit queues nodes as output of the current call, in order.
func (c *Context) Emit(nodes ...*Node) {
	d := c.live()
	for _, n := range nodes {
		if n != nil {
			d.out.PushBack(n)
		}
	}
}

// EmitAll moves every node of children into the output.
func (c *Context) EmitAll(children *Children) {
	c.live().out.Append(children)
}

// Yield emits a resolved layout.
func (c *Context) Yield(n LayoutNode) {
	leaf := c.Leaf(n)
	c.live().out.PushBack(leaf)
}

// Resolve evaluates g in a nested evaluation bounded by maxArea and returns
// its layout. Filters open around the caller do not apply inside. Nested
// evaluations count against the window's depth and node budgets.
func (c *Context) Resolve(id Id, g Generator, maxArea Area) (LayoutNode, bool) {
	d := c.live()
	sub := newEngine(d.frame, maxArea, d.eng.depth()+1)
	sub.checkDepth()
	root := c.Generator(id, g)
	return sub.run(root)
}

// RegisterFilter activates f around the root of the next frame.
func (c *Context) RegisterFilter(f Filter) {
	c.live().frame.window.registerFilter(f, false)
}

// RegisterLateFilter activates f around the root of the next frame, outside
// every filter registered with RegisterFilter.
func (c *Context) RegisterLateFilter(f Filter) {
	c.live().frame.window.registerFilter(f, true)
}

// Send queues msg for target. It is delivered on the next frame.
func (c *Context) Send(target Id, msg any) {
	f := c.live().frame
	f.window.mail.send(f.number+1, target, msg)
}
