package loom

import (
	"reflect"
	"sync"
)

// TypeId is a compact identifier for a concrete component type. Two values
// may share a renderer slot vector only if their TypeIds are equal.
//
// The zero TypeId is never assigned.
type TypeId uint32

var typeIDs struct {
	mu     sync.Mutex
	byType map[reflect.Type]TypeId
	names  []string
}

// TypeIDOf returns the TypeId of T, assigning one on first use. Ids are
// stable for the life of the process.
func TypeIDOf[T any]() TypeId {
	return typeIDFor(reflect.TypeFor[T]())
}

func typeIDFor(t reflect.Type) TypeId {
	typeIDs.mu.Lock()
	defer typeIDs.mu.Unlock()

	if typeIDs.byType == nil {
		typeIDs.byType = make(map[reflect.Type]TypeId)
		typeIDs.names = []string{"<invalid>"}
	}
	if id, ok := typeIDs.byType[t]; ok {
		return id
	}
	id := TypeId(len(typeIDs.names))
	typeIDs.byType[t] = id
	typeIDs.names = append(typeIDs.names, t.String())
	return id
}

// String returns the Go type name the id was assigned to.
func (t TypeId) String() string {
	typeIDs.mu.Lock()
	defer typeIDs.mu.Unlock()
	if int(t) < len(typeIDs.names) && t != 0 {
		return typeIDs.names[t]
	}
	return "<invalid>"
}
