// Package arena implements a per-frame bump allocator.
//
// Values are written into chained fixed-size blocks and are never freed
// individually. Clear releases every allocation at once by rewinding the
// blocks (which are retained for the next frame) and bumping the arena epoch.
//
// Blocks are typed slices rather than raw bytes so the garbage collector can
// still see pointers stored inside arena values. Each Go type gets its own
// chain of blocks; the block size is a byte budget shared by all chains.
//
// An Arena is not safe for concurrent use.
package arena

import (
	"reflect"
	"unsafe"

	"github.com/grindlemire/go-loom/internal/fault"
)

// DefaultBlockSize is the byte budget of one block.
const DefaultBlockSize = 16 << 10

// Arena is a bump allocator over chained fixed-size blocks.
type Arena struct {
	blockSize int
	epoch     uint64
	chains    map[reflect.Type]resetter
	order     []resetter // chains in creation order, for deterministic Clear
	used      uintptr
	peak      uintptr
	blocks    int
}

type resetter interface {
	reset()
}

// New creates an arena whose blocks hold blockSize bytes.
// A non-positive blockSize selects DefaultBlockSize.
func New(blockSize int) *Arena {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Arena{
		blockSize: blockSize,
		chains:    make(map[reflect.Type]resetter),
	}
}

// BlockSize returns the byte budget of one block.
func (a *Arena) BlockSize() int {
	return a.blockSize
}

// Epoch returns the number of times the arena has been cleared.
// Handles minted in an earlier epoch are invalid.
func (a *Arena) Epoch() uint64 {
	return a.epoch
}

// Used returns the number of bytes allocated since the last Clear.
func (a *Arena) Used() uintptr {
	return a.used
}

// Peak returns the high-water mark of Used across clears.
func (a *Arena) Peak() uintptr {
	if a.used > a.peak {
		return a.used
	}
	return a.peak
}

// Blocks returns the number of blocks owned by the arena, across all chains.
func (a *Arena) Blocks() int {
	return a.blocks
}

// Clear releases every allocation. Blocks are kept for reuse and their used
// slots are zeroed so the values they referenced can be collected.
//
// The caller must not use any pointer obtained from Alloc after Clear; Ref
// handles detect this through the epoch.
func (a *Arena) Clear() {
	if a.used > a.peak {
		a.peak = a.used
	}
	for _, c := range a.order {
		c.reset()
	}
	a.used = 0
	a.epoch++
}

type chain[T any] struct {
	blocks   [][]T
	current  int
	next     int
	perBlock int
}

func (c *chain[T]) reset() {
	for i := 0; i <= c.current && i < len(c.blocks); i++ {
		n := len(c.blocks[i])
		if i == c.current {
			n = c.next
		}
		clear(c.blocks[i][:n])
	}
	c.current = 0
	c.next = 0
}

func chainFor[T any](a *Arena) *chain[T] {
	typ := reflect.TypeFor[T]()
	if c, ok := a.chains[typ]; ok {
		return c.(*chain[T])
	}

	var zero T
	size := int(unsafe.Sizeof(zero))
	if size > a.blockSize {
		fault.Panic(fault.BlockOverflow, "%s is %d bytes, larger than the %d byte block", typ, size, a.blockSize)
	}
	perBlock := a.blockSize
	if size > 0 {
		perBlock = a.blockSize / size
	}

	c := &chain[T]{perBlock: perBlock}
	a.chains[typ] = c
	a.order = append(a.order, c)
	return c
}

// Alloc writes v into the next free slot and returns a pointer to it.
// When the current block is full a new block is chained (or a retained one
// reused). The pointer is valid until the next Clear.
func Alloc[T any](a *Arena, v T) *T {
	c := chainFor[T](a)

	if len(c.blocks) == 0 || c.next == c.perBlock {
		if len(c.blocks) > 0 {
			c.current++
		}
		if c.current == len(c.blocks) {
			c.blocks = append(c.blocks, make([]T, c.perBlock))
			a.blocks++
		}
		c.next = 0
	}

	slot := &c.blocks[c.current][c.next]
	*slot = v
	c.next++
	a.used += unsafe.Sizeof(v)
	return slot
}

// pair co-locates an outer value with an object it owns.
type pair[A, B any] struct {
	outer A
	inner B
}

// AllocPair writes outer and inner into a single slot and returns pointers to
// both. It is an optimization for values that always travel together.
func AllocPair[A, B any](a *Arena, outer A, inner B) (*A, *B) {
	p := Alloc(a, pair[A, B]{outer: outer, inner: inner})
	return &p.outer, &p.inner
}

// Ref is an epoch-tagged handle to an arena value. Get fails loudly once the
// arena has been cleared, instead of handing out a recycled slot.
type Ref[T any] struct {
	ptr   *T
	arena *Arena
	epoch uint64
}

// Make allocates v and returns an epoch-tagged handle to it.
func Make[T any](a *Arena, v T) Ref[T] {
	return Ref[T]{ptr: Alloc(a, v), arena: a, epoch: a.epoch}
}

// Valid reports whether the handle still refers to a live allocation.
func (r Ref[T]) Valid() bool {
	return r.arena != nil && r.arena.epoch == r.epoch
}

// Get returns the referenced value. It panics if the arena was cleared after
// the handle was made.
func (r Ref[T]) Get() *T {
	if r.arena == nil {
		fault.Panic(fault.StaleHandle, "zero arena handle")
	}
	if r.arena.epoch != r.epoch {
		fault.Panic(fault.StaleHandle, "handle from epoch %d used in epoch %d", r.epoch, r.arena.epoch)
	}
	return r.ptr
}
