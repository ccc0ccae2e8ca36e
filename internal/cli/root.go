package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/grindlemire/go-loom"
	"github.com/grindlemire/go-loom/internal/config"
	"github.com/grindlemire/go-loom/widget"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. Values are
// usually injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// options are the persistent flags shared by every command.
type options struct {
	verbose    bool
	configPath string
}

// Execute runs the loom CLI.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree writing output to out and logs to
// errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "loom",
		Short:        "loom evaluates layout trees frame by frame",
		Long:         `loom drives the layout engine over a demo scene, printing the draw commands each frame produces or stepping through frames interactively.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(errOut, level)))
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetVersionTemplate(fmt.Sprintf("loom %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a loom.toml file")

	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newInspectCmd(opts))
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			printKeyValue(w, "version", orUnknown(version))
			printKeyValue(w, "commit", orUnknown(commit))
			printKeyValue(w, "built", orUnknown(date))
		},
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// loadConfig reads the --config file, or returns the defaults.
func (o *options) loadConfig() (config.Config, error) {
	if o.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(o.configPath)
}

// newWindow builds a window from cfg with the widgets registered. The
// command logger is used unless --verbose is off and the config asks for a
// different level.
func newWindow(ctx context.Context, cfg config.Config, verbose bool) (*loom.Window, error) {
	logger := loggerFromContext(ctx).With()
	opts := cfg.Options(logger)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	w, err := loom.NewWindow(opts...)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	widget.Register(w)
	return w, nil
}
