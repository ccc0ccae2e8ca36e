package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/grindlemire/go-loom"
	"github.com/grindlemire/go-loom/widget"
)

func newRenderCmd(opts *options) *cobra.Command {
	var (
		frames int
		clicks []string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Evaluate the demo scene and print its draw commands",
		Long: `Render runs the demo scene for --frames frames and prints the commands of the last one.

Each --click x,y is applied after the frame with the same position in the list,
so --frames 3 --click 2,2 --click 2,2 clicks twice and shows the third frame.`,
		Example: `  loom render
  loom render --frames 3 --click 3,2 --click 3,2
  loom render --config loom.toml -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames < 1 {
				return fmt.Errorf("--frames must be at least 1")
			}
			points, err := parsePoints(clicks)
			if err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			w, err := newWindow(cmd.Context(), cfg, opts.verbose)
			if err != nil {
				return err
			}

			frame, err := runFrames(w, demoScene{}, cfg.Area(), frames, points)
			if err != nil {
				return err
			}
			printFrame(cmd.OutOrStdout(), frame)
			return nil
		},
	}

	cmd.Flags().IntVarP(&frames, "frames", "n", 1, "number of frames to evaluate")
	cmd.Flags().StringArrayVar(&clicks, "click", nil, "click at x,y after a frame (repeatable)")
	return cmd
}

// runFrames evaluates root n times, clicking points[i] after frame i. A
// contract violation ends the run with an error instead of a crash.
func runFrames(w *loom.Window, root loom.Generator, area loom.Area, n int, points []loom.Point) (frame loom.Frame, err error) {
	defer func() {
		if fe := loom.RecoverFatal(recover()); fe != nil {
			err = fmt.Errorf("frame %d aborted: %w", w.FrameNumber(), fe)
		}
	}()

	for i := 0; i < n; i++ {
		frame = w.Run(root, area)
		if i < len(points) {
			widget.Click(w, frame, points[i].X, points[i].Y)
		}
	}
	return frame, nil
}

func parsePoints(raw []string) ([]loom.Point, error) {
	points := make([]loom.Point, 0, len(raw))
	for _, s := range raw {
		xs, ys, ok := strings.Cut(s, ",")
		if !ok {
			return nil, fmt.Errorf("invalid point %q: expected x,y", s)
		}
		x, err := strconv.Atoi(strings.TrimSpace(xs))
		if err != nil {
			return nil, fmt.Errorf("invalid point %q: %w", s, err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(ys))
		if err != nil {
			return nil, fmt.Errorf("invalid point %q: %w", s, err)
		}
		points = append(points, loom.Point{X: x, Y: y})
	}
	return points, nil
}

func printFrame(w io.Writer, f loom.Frame) {
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("Frame %d", f.Number)))
	printKeyValue(w, "min area", formatArea(f.MinArea))
	printKeyValue(w, "commands", strconv.Itoa(f.Commands.Len()))
	printKeyValue(w, "elapsed", f.Elapsed.String())
	if f.OK {
		printStatus(w, true, "resolved")
	} else {
		printStatus(w, false, "nothing to render, showing the previous frame")
	}
	fmt.Fprintln(w, commandTable(f.Commands, -1))
}

// headerRow is the row index lipgloss/table passes for the header.
const headerRow = -1

// commandTable renders cmds as a table. The row at highlight, if any, is
// drawn in the title style.
func commandTable(cmds *loom.Commands, highlight int) string {
	rows := make([][]string, 0, cmds.Len())
	for i, c := range cmds.All() {
		detail := swatch(c.Color)
		if c.Kind == loom.CommandHit {
			detail = styleNumber.Render(c.Target.String())
		}
		rows = append(rows, []string{strconv.Itoa(i), c.Kind.String(), formatRegion(c.Region), detail})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Kind", "Region", "Color / Target").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == headerRow:
				return styleHeader
			case row == highlight:
				return styleCell.Inherit(styleTitle)
			default:
				return styleCell
			}
		}).
		String()
}
