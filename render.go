package loom

import (
	"fmt"
	"iter"
)

// CommandKind distinguishes draw commands.
type CommandKind uint8

const (
	// CommandQuad fills a region with a color.
	CommandQuad CommandKind = iota
	// CommandHit marks a region as clickable on behalf of an Id.
	CommandHit
)

func (k CommandKind) String() string {
	switch k {
	case CommandQuad:
		return "quad"
	case CommandHit:
		return "hit"
	default:
		return "unknown"
	}
}

// Command is one entry of a frame's output.
type Command struct {
	Kind   CommandKind
	Region Region
	Color  Color // CommandQuad only
	Target Id    // CommandHit only
}

func (c Command) String() string {
	r := c.Region
	switch c.Kind {
	case CommandQuad:
		return fmt.Sprintf("quad (%d,%d %dx%d) %s", r.X, r.Y, r.Width, r.Height, c.Color)
	default:
		return fmt.Sprintf("hit (%d,%d %dx%d) %s", r.X, r.Y, r.Width, r.Height, c.Target)
	}
}

// Commands is the ordered output of a rendered frame. Later commands draw on
// top of earlier ones.
type Commands struct {
	list []Command
}

// Quad appends a filled rectangle. Empty regions are skipped.
func (c *Commands) Quad(r Region, color Color) {
	if r.IsEmpty() {
		return
	}
	c.list = append(c.list, Command{Kind: CommandQuad, Region: r, Color: color})
}

// Hit appends a clickable rectangle owned by target. Empty regions are
// skipped.
func (c *Commands) Hit(r Region, target Id) {
	if r.IsEmpty() {
		return
	}
	c.list = append(c.list, Command{Kind: CommandHit, Region: r, Target: target})
}

// HitAt returns the owner of the topmost hit region containing (x, y).
func (c *Commands) HitAt(x, y int) (Id, bool) {
	if c == nil {
		return 0, false
	}
	for i := len(c.list) - 1; i >= 0; i-- {
		cmd := c.list[i]
		if cmd.Kind == CommandHit && cmd.Region.Contains(x, y) {
			return cmd.Target, true
		}
	}
	return 0, false
}

// Len returns the number of commands.
func (c *Commands) Len() int {
	if c == nil {
		return 0
	}
	return len(c.list)
}

// At returns command i.
func (c *Commands) At(i int) Command {
	return c.list[i]
}

// All iterates over the commands in draw order.
func (c *Commands) All() iter.Seq2[int, Command] {
	return func(yield func(int, Command) bool) {
		if c == nil {
			return
		}
		for i, cmd := range c.list {
			if !yield(i, cmd) {
				return
			}
		}
	}
}

// Render draws n into a fresh command list over r.
func Render(n LayoutNode, r Region) *Commands {
	cmds := &Commands{}
	n.Render(r, cmds)
	return cmds
}
