package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/grindlemire/go-loom"
	"github.com/grindlemire/go-loom/widget"
)

func newInspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Step through frames of the demo scene interactively",
		Long: `Inspect evaluates the demo scene one frame at a time. Move the pointer over the
frame, click hit regions, and step to watch messages and state arrive a frame later.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			w, err := newWindow(cmd.Context(), cfg, opts.verbose)
			if err != nil {
				return err
			}

			p := tea.NewProgram(newInspectModel(w, demoScene{}, cfg.Area()),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("inspector: %w", err)
			}
			return final.(inspectModel).err
		},
	}
}

// inspectModel is the bubbletea model of the frame stepper.
type inspectModel struct {
	window *loom.Window
	root   loom.Generator
	area   loom.Area
	frame  loom.Frame
	cursor loom.Point
	clicks int
	event  string
	err    error
}

func newInspectModel(w *loom.Window, root loom.Generator, area loom.Area) inspectModel {
	m := inspectModel{window: w, root: root, area: area}
	m.step()
	return m
}

// step evaluates one frame.
func (m *inspectModel) step() {
	f, err := runFrames(m.window, m.root, m.area, 1, nil)
	if err != nil {
		m.err = err
		return
	}
	m.frame = f
}

func (m *inspectModel) move(dx, dy int) {
	m.cursor.X = min(max(m.cursor.X+dx, 0), max(m.area.Width-1, 0))
	m.cursor.Y = min(max(m.cursor.Y+dy, 0), max(m.area.Height-1, 0))
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.move(0, -1)
	case "down", "j":
		m.move(0, 1)
	case "left", "h":
		m.move(-1, 0)
	case "right", "l":
		m.move(1, 0)
	case "enter", " ":
		if id, hit := widget.Click(m.window, m.frame, m.cursor.X, m.cursor.Y); hit {
			m.clicks++
			m.event = fmt.Sprintf("clicked %s at %d,%d", id, m.cursor.X, m.cursor.Y)
		} else {
			m.event = fmt.Sprintf("no hit region at %d,%d", m.cursor.X, m.cursor.Y)
		}
		m.step()
	case "n":
		m.event = "stepped"
		m.step()
	case "+", "=":
		m.area.Width++
		m.event = "widened to " + formatArea(m.area)
		m.step()
	case "-":
		if m.area.Width > 1 {
			m.area.Width--
			m.move(0, 0)
		}
		m.event = "narrowed to " + formatArea(m.area)
		m.step()
	}
	if m.err != nil {
		return m, tea.Quit
	}
	return m, nil
}

// hovered returns the index of the topmost command under the cursor.
func (m inspectModel) hovered() int {
	for i := m.frame.Commands.Len() - 1; i >= 0; i-- {
		if m.frame.Commands.At(i).Region.Contains(m.cursor.X, m.cursor.Y) {
			return i
		}
	}
	return -1
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(fmt.Sprintf("Frame %d", m.frame.Number)))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("arrows/hjkl move  ⏎ click  n step  +/- width  q quit"))
	b.WriteString("\n\n")

	printKeyValue(&b, "area", formatArea(m.area))
	printKeyValue(&b, "min area", formatArea(m.frame.MinArea))
	printKeyValue(&b, "pointer", styleNumber.Render(iconPointer)+fmt.Sprintf(" %d,%d", m.cursor.X, m.cursor.Y))
	printKeyValue(&b, "clicks", fmt.Sprint(m.clicks))
	if m.event != "" {
		printKeyValue(&b, "last", m.event)
	}
	if !m.frame.OK {
		printStatus(&b, false, "nothing to render, showing the previous frame")
	}

	b.WriteString(commandTable(m.frame.Commands, m.hovered()))
	b.WriteString("\n")
	return b.String()
}
