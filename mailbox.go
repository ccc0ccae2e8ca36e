package loom

import (
	"github.com/grindlemire/go-loom/internal/fault"
)

// envelope holds the messages addressed to one Id, tagged with the frame
// they are deliverable in.
type envelope struct {
	frame uint64
	msgs  []any
}

// mailbox collects messages sent during frame N (or posted by input handling
// between frames) and delivers them as the inbound set of frame N+1.
type mailbox struct {
	inbound  map[Id]*envelope
	outgoing map[Id]*envelope
}

func newMailbox() mailbox {
	return mailbox{
		inbound:  make(map[Id]*envelope),
		outgoing: make(map[Id]*envelope),
	}
}

func (m *mailbox) send(frame uint64, target Id, msg any) {
	env, ok := m.outgoing[target]
	if !ok {
		env = &envelope{frame: frame}
		m.outgoing[target] = env
	}
	env.msgs = append(env.msgs, msg)
}

// deliver makes everything sent so far the inbound set.
func (m *mailbox) deliver() {
	clear(m.inbound)
	m.inbound, m.outgoing = m.outgoing, m.inbound
}

func (m *mailbox) read(target Id, frame uint64) []any {
	env, ok := m.inbound[target]
	if !ok {
		return nil
	}
	if env.frame != frame {
		fault.Panic(fault.StaleSlot, "messages for %s were addressed to frame %d, read in frame %d", target, env.frame, frame)
	}
	return env.msgs
}

// pending returns the number of Ids with outgoing messages.
func (m *mailbox) pending() int {
	return len(m.outgoing)
}

// Messages returns every message delivered to ctx's Id this frame.
func Messages(ctx *Context) []any {
	d := ctx.live()
	return d.frame.window.mail.read(d.id, d.frame.number)
}

// Message returns the first message of type T delivered to ctx's Id this
// frame.
func Message[T any](ctx *Context) (T, bool) {
	for _, m := range Messages(ctx) {
		if t, ok := m.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
