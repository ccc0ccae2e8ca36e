package loom

import (
	"io"
	"time"
	"unsafe"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/grindlemire/go-loom/internal/arena"
	"github.com/grindlemire/go-loom/internal/fault"
)

const (
	// DefaultMaxDepth bounds open sockets and filters (including nested
	// evaluations) in one frame.
	DefaultMaxDepth = 256

	// DefaultMaxNodes bounds the number of nodes dispatched in one frame.
	DefaultMaxNodes = 1 << 20

	// MinArenaBlockSize is the smallest arena block that holds every value
	// the engine allocates per frame. A mounted component's generator and
	// node share one slot.
	MinArenaBlockSize = int(max(
		unsafe.Sizeof(componentGenerator{})+unsafe.Sizeof(Node{}),
		unsafe.Sizeof(socketContext{}),
		unsafe.Sizeof(contextData{}),
	))
)

// Window is the long-lived owner of everything that survives between frames:
// the component registry, the double-buffered state and message caches, and
// filters registered for the next frame. Each call to Run evaluates one
// frame with a fresh arena and fresh evaluator stacks.
//
// A Window is not safe for concurrent use.
type Window struct {
	id     uuid.UUID
	logger *log.Logger

	registry *Registry
	arena    *arena.Arena
	state    stateCache
	mail     mailbox

	frame   uint64
	running bool
	last    Frame

	nextFilters []Filter
	nextLate    []Filter

	// Configuration (set via options)
	blockSize int
	maxDepth  int
	maxNodes  int
}

// Frame is the outcome of one Window.Run.
type Frame struct {
	// Number is the frame counter, starting at 1.
	Number uint64

	// MinArea is the minimum area the resolved tree requires.
	MinArea Area

	// Commands are the draw commands of the frame. When the build failed
	// they are the last successful frame's commands.
	Commands *Commands

	// OK is false when the tree resolved to nothing.
	OK bool

	// Elapsed is the wall time spent evaluating and rendering.
	Elapsed time.Duration
}

// NewWindow creates a window. Options are applied in order.
func NewWindow(opts ...WindowOption) (*Window, error) {
	w := &Window{
		id:       uuid.New(),
		registry: newRegistry(),
		state:    newStateCache(),
		mail:     newMailbox(),
		maxDepth: DefaultMaxDepth,
		maxNodes: DefaultMaxNodes,
		last:     Frame{Commands: &Commands{}},
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	if w.logger == nil {
		w.logger = log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
	}
	w.logger = w.logger.With("window", w.id.String()[:8])
	w.arena = arena.New(w.blockSize)
	return w, nil
}

// ID returns the window's instance id.
func (w *Window) ID() uuid.UUID {
	return w.id
}

// Registry returns the component registry.
func (w *Window) Registry() *Registry {
	return w.registry
}

// FrameNumber returns the number of the last frame run.
func (w *Window) FrameNumber() uint64 {
	return w.frame
}

// Last returns the last successful frame.
func (w *Window) Last() Frame {
	return w.last
}

// Post queues msg for target, delivered on the next frame. Input handling
// uses it to turn hits on a frame's Commands into messages.
func (w *Window) Post(target Id, msg any) {
	w.mail.send(w.frame+1, target, msg)
}

func (w *Window) registerFilter(f Filter, late bool) {
	if late {
		w.nextLate = append(w.nextLate, f)
		return
	}
	w.nextFilters = append(w.nextFilters, f)
}

// frameState is everything owned by one running frame.
type frameState struct {
	window    *Window
	arena     *arena.Arena
	number    uint64
	area      Area
	renderers map[TypeId]Renderer
	nodes     int
	log       *log.Logger
}

// spend counts one dispatched node against the frame budget.
func (f *frameState) spend() {
	f.nodes++
	if f.nodes > f.window.maxNodes {
		fault.Panic(fault.BudgetExceeded, "frame %d dispatched more than %d nodes", f.number, f.window.maxNodes)
	}
}

// Run evaluates root within area and renders the result into the region
// (0, 0, area). Filters registered during the previous frame wrap root.
//
// If the tree resolves to nothing the returned Frame has OK false and carries
// the previous successful frame's commands. Contract violations panic; the
// window stays usable afterwards but state and messages from before the
// failed frame are dropped.
func (w *Window) Run(root Generator, area Area) Frame {
	if w.running {
		fault.Panic(fault.Reentrant, "Window.Run called during frame %d", w.frame)
	}
	w.running = true
	w.frame++
	start := time.Now()

	f := &frameState{
		window:    w,
		arena:     w.arena,
		number:    w.frame,
		area:      area,
		renderers: make(map[TypeId]Renderer),
		log:       w.logger.With("frame", w.frame),
	}
	filters, late := w.nextFilters, w.nextLate
	w.nextFilters, w.nextLate = nil, nil
	w.mail.deliver()

	completed := false
	defer func() {
		if !completed {
			w.state.reset()
			w.mail = newMailbox()
		}
		w.arena.Clear()
		w.running = false
	}()

	eng := newEngine(f, area, 0)
	ctx := f.newContext(eng, RootID, area, nil)
	top := ctx.Generator(RootID, root)
	for _, flt := range filters {
		top = ctx.Filter(flt, top)
	}
	for _, flt := range late {
		top = ctx.Filter(flt, top)
	}

	layout, ok := eng.run(top)

	out := Frame{Number: w.frame, OK: ok}
	if ok {
		out.MinArea = layout.MinArea
		out.Commands = Render(layout, RegionOf(area))
	} else {
		f.log.Warn("frame resolved to nothing, keeping previous output", "previous", w.last.Number)
		out.Commands = w.last.Commands
	}

	w.state.swap()
	completed = true
	out.Elapsed = time.Since(start)
	if ok {
		w.last = out
	}

	f.log.Debug("frame done",
		"ok", ok,
		"min", out.MinArea,
		"nodes", f.nodes,
		"commands", out.Commands.Len(),
		"arena", w.arena.Used(),
		"arena_peak", w.arena.Peak(),
		"blocks", w.arena.Blocks(),
		"elapsed", out.Elapsed,
	)
	return out
}
