package cli

import (
	"github.com/grindlemire/go-loom"
	"github.com/grindlemire/go-loom/widget"
)

var (
	sceneBorder     = loom.MustHexColor("#3a3a3a")
	sceneBackground = loom.MustHexColor("#1c1c1c")
	sceneButton     = loom.ANSIColor(36)
	scenePressed    = loom.ANSIColor(220)
	sceneBar        = loom.ANSIColor(35)
	sceneReset      = loom.ANSIColor(167)
)

// Ids of the interactive parts of the demo scene.
var (
	sceneIncrement = loom.RootID.Child("increment")
	sceneClear     = loom.RootID.Child("clear")
	sceneCounter   = loom.RootID.Child("counter")
)

// demoScene is a bordered column with two buttons and a bar whose width
// counts clicks on the first button. The second button resets the count.
type demoScene struct{}

func (demoScene) Generate(ctx *loom.Context) {
	buttons := widget.Stack(ctx, ctx.Child("buttons"), widget.Row, 2,
		loom.Mount(ctx, sceneIncrement, widget.Button{
			Size: loom.NewArea(8, 3), Color: sceneButton, Pressed: scenePressed, Notify: sceneCounter,
		}),
		loom.Mount(ctx, sceneClear, widget.Button{
			Size: loom.NewArea(8, 3), Color: sceneReset, Pressed: scenePressed, Notify: sceneCounter,
		}),
	)
	body := widget.PanelWith(ctx, ctx.Child("body"), sceneBackground,
		widget.Stack(ctx, ctx.Child("rows"), widget.Column, 1,
			buttons,
			ctx.Generator(sceneCounter, counterBar{}),
		),
	)
	ctx.Emit(widget.Bordered(ctx, ctx.Child("frame"), 1, sceneBorder, body))
}

// counterBar draws a bar one cell wide per click it has been told about.
type counterBar struct{}

func (counterBar) Generate(ctx *loom.Context) {
	n, _ := loom.LoadState[int](ctx)
	for _, m := range loom.Messages(ctx) {
		if c, ok := m.(widget.Clicked); ok {
			switch c.From {
			case sceneIncrement:
				n++
			case sceneClear:
				n = 0
			}
		}
	}
	loom.StoreState(ctx, n)

	// A row gives the fill exactly its own width instead of the full line.
	width := min(n+1, max(ctx.MaxArea().Width, 1))
	ctx.Emit(widget.Stack(ctx, ctx.Child("row"), widget.Row, 0,
		loom.Mount(ctx, ctx.Child("bar"), widget.Fill{Size: loom.NewArea(width, 1), Color: sceneBar}),
	))
}
