package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// EnvVar names the environment variable holding the debug log path.
const EnvVar = "LOOM_DEBUG"

var (
	mu      sync.Mutex
	logFile *os.File
	logger  *log.Logger
	loaded  bool
)

// Init opens path for appending and routes debug logging to it.
// If path is empty, uses "debug.log" in the current directory.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked(path)
}

// initLocked does the actual init work. Caller must hold mu.
func initLocked(path string) error {
	if path == "" {
		path = "debug.log"
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logger = newFileLogger(f)
	loaded = true
	return nil
}

func newFileLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           log.DebugLevel,
		Prefix:          "loom",
	})
}

// Close closes the debug log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	logger = nil
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

// Enabled reports whether debug logging is active. The environment is only
// consulted on first use.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return loadLocked() != nil
}

func loadLocked() *log.Logger {
	if !loaded {
		loaded = true
		if path := os.Getenv(EnvVar); path != "" {
			if err := initLocked(path); err != nil {
				fmt.Fprintf(os.Stderr, "loom: %v\n", err)
			}
		}
	}
	return logger
}

// Log writes a formatted message to the debug log.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if l := loadLocked(); l != nil {
		l.Debugf(format, args...)
	}
}

// With writes msg with structured key/value pairs to the debug log.
func With(msg string, keyvals ...any) {
	mu.Lock()
	defer mu.Unlock()

	if l := loadLocked(); l != nil {
		l.Debug(msg, keyvals...)
	}
}
