package loom

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Id identifies a position in the description tree. Ids are derived by
// hashing a parent Id with a local key, so the same position produces the
// same Id every frame and per-position state survives between frames.
type Id uint64

// RootID is the Id of the root generator of every frame.
const RootID Id = 0x6c6f6f6d2f726f6f

const (
	keyString byte = 's'
	keyIndex  byte = 'i'
)

// Child derives the Id of a child identified by name.
func (id Id) Child(name string) Id {
	var buf [9]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(id))
	buf[8] = keyString

	var d xxhash.Digest
	d.Reset()
	d.Write(buf[:])
	d.WriteString(name)
	return Id(d.Sum64())
}

// Index derives the Id of a child identified by position.
func (id Id) Index(i int) Id {
	var buf [17]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(id))
	buf[8] = keyIndex
	binary.LittleEndian.PutUint64(buf[9:], uint64(i))
	return Id(xxhash.Sum64(buf[:]))
}

// String formats the Id as fixed-width hex.
func (id Id) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}
