package loom

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// WindowOption is a functional option for configuring a Window.
type WindowOption func(*Window) error

// WithLogger routes the window's logging to logger. By default nothing below
// warn level is logged and output is discarded.
func WithLogger(logger *log.Logger) WindowOption {
	return func(w *Window) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		w.logger = logger
		return nil
	}
}

// WithArenaBlockSize sets the size in bytes of each arena block.
// Default is 16 KiB. The size must be at least MinArenaBlockSize.
func WithArenaBlockSize(size int) WindowOption {
	return func(w *Window) error {
		if size < MinArenaBlockSize {
			return fmt.Errorf("arena block size must be at least %d bytes, got %d", MinArenaBlockSize, size)
		}
		w.blockSize = size
		return nil
	}
}

// WithMaxDepth limits how many sockets and filters may be open at once,
// counting nested Resolve calls. Default is 256.
func WithMaxDepth(depth int) WindowOption {
	return func(w *Window) error {
		if depth < 1 {
			return fmt.Errorf("max depth must be at least 1")
		}
		w.maxDepth = depth
		return nil
	}
}

// WithMaxNodes limits how many nodes a single frame may dispatch.
// Default is 1<<20.
func WithMaxNodes(n int) WindowOption {
	return func(w *Window) error {
		if n < 1 {
			return fmt.Errorf("max nodes must be at least 1")
		}
		w.maxNodes = n
		return nil
	}
}

// WithID fixes the window's instance id instead of generating one.
func WithID(id uuid.UUID) WindowOption {
	return func(w *Window) error {
		if id == uuid.Nil {
			return fmt.Errorf("window id cannot be the nil uuid")
		}
		w.id = id
		return nil
	}
}
