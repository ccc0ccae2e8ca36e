// Package cli implements the loom command-line interface.
//
// # Commands
//
//   - render: evaluate the demo scene for a number of frames and print the
//     resulting draw commands as a table
//   - inspect: step through frames interactively, moving a pointer and
//     clicking hit regions to watch messages and state flow between frames
//   - version: print build information
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context and handed to the window.
package cli
