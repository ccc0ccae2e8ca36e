package loom

import (
	"reflect"
	"testing"
)

func TestEngine_SingleChildSocket(t *testing.T) {
	w := newTestWindow(t)
	sock := &collector{capacity: One}

	root := GeneratorFunc(func(ctx *Context) {
		ctx.Emit(ctx.Socket(ctx.Child("socket"), sock,
			ctx.Generator(ctx.Child("leaf"), size(100, 50)),
		))
	})

	frame := w.Run(root, NewArea(800, 600))
	if !frame.OK {
		t.Fatal("frame should resolve")
	}
	if frame.MinArea != NewArea(100, 50) {
		t.Errorf("MinArea = %v, want (100,50)", frame.MinArea)
	}
	if sock.closes != 1 {
		t.Errorf("socket closed %d times, want 1", sock.closes)
	}
}

func TestEngine_PanelPerAxisMax(t *testing.T) {
	w := newTestWindow(t)
	panel := &collector{capacity: Unlimited}

	root := GeneratorFunc(func(ctx *Context) {
		ctx.Emit(ctx.Socket(ctx.Child("panel"), panel,
			ctx.Generator(ctx.Child("a"), size(10, 10)),
			ctx.Generator(ctx.Child("b"), size(20, 5)),
			ctx.Generator(ctx.Child("c"), size(5, 30)),
		))
	})

	frame := w.Run(root, NewArea(800, 600))
	if frame.MinArea != NewArea(20, 30) {
		t.Errorf("MinArea = %v, want (20,30)", frame.MinArea)
	}
}

func TestEngine_ChildrenInOrder(t *testing.T) {
	type tc struct {
		k        int
		capacity Capacity
	}

	tests := map[string]tc{
		"one child exact capacity":  {k: 1, capacity: One},
		"five children exact":       {k: 5, capacity: Upto(5)},
		"five children spare room":  {k: 5, capacity: Upto(8)},
		"many children unlimited":   {k: 40, capacity: Unlimited},
		"generator emitting a list": {k: 12, capacity: Unlimited},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := newTestWindow(t)
			sock := &collector{capacity: tt.capacity}

			list := GeneratorFunc(func(ctx *Context) {
				for i := 0; i < tt.k; i++ {
					ctx.Emit(ctx.Generator(ctx.ID().Index(i), size(i+1, 1)))
				}
			})
			root := GeneratorFunc(func(ctx *Context) {
				ctx.Emit(ctx.Socket(ctx.Child("s"), sock, ctx.Generator(ctx.Child("list"), list)))
			})
			w.Run(root, NewArea(100, 100))

			if len(sock.got) != tt.k {
				t.Fatalf("socket accepted %d children, want %d", len(sock.got), tt.k)
			}
			for i, a := range sock.got {
				if a.Width != i+1 {
					t.Errorf("child %d has width %d, want %d", i, a.Width, i+1)
				}
			}
		})
	}
}

func TestEngine_EmptySocket(t *testing.T) {
	w := newTestWindow(t)
	sock := &collector{capacity: One}

	root := GeneratorFunc(func(ctx *Context) {
		ctx.Emit(ctx.Socket(ctx.Child("s"), sock))
	})
	frame := w.Run(root, NewArea(10, 10))

	if frame.OK {
		t.Error("a tree whose only socket is empty should not resolve")
	}
	if sock.closes != 1 || sock.empty != 1 {
		t.Errorf("closes = %d, empty = %d, want 1 and 1", sock.closes, sock.empty)
	}
}

func TestEngine_EmptySocketInsidePanel(t *testing.T) {
	w := newTestWindow(t)
	inner := &collector{capacity: One}
	panel := &collector{capacity: Unlimited}

	root := GeneratorFunc(func(ctx *Context) {
		ctx.Emit(ctx.Socket(ctx.Child("panel"), panel,
			ctx.Socket(ctx.Child("empty"), inner),
			ctx.Generator(ctx.Child("a"), size(4, 2)),
		))
	})
	frame := w.Run(root, NewArea(10, 10))

	if !frame.OK || frame.MinArea != NewArea(4, 2) {
		t.Errorf("frame = %+v, want OK with (4,2)", frame)
	}
	if inner.empty != 1 {
		t.Errorf("inner socket empty closes = %d, want 1", inner.empty)
	}
	if len(panel.got) != 1 {
		t.Errorf("panel accepted %d children, want 1", len(panel.got))
	}
}

func TestEngine_FilterSubstitutes(t *testing.T) {
	w := newTestWindow(t)
	sub := GeneratorFilter(func(ctx *Context, _ Generator, _ func(Generator)) {
		ctx.Yield(NewLayoutNode(NewArea(7, 7), nil))
	})

	root := GeneratorFunc(func(ctx *Context) {
		ctx.Emit(ctx.Filter(sub, ctx.Generator(ctx.Child("g"), size(1, 1))))
	})
	frame := w.Run(root, NewArea(50, 50))

	if frame.MinArea != NewArea(7, 7) {
		t.Errorf("MinArea = %v, want substituted (7,7)", frame.MinArea)
	}
}

func TestEngine_FilterRefuses(t *testing.T) {
	w := newTestWindow(t)
	var log []string
	refuse := GeneratorFilter(func(_ *Context, g Generator, next func(Generator)) {
		if label(g) == "hidden" {
			return
		}
		next(g)
	})
	panel := &collector{capacity: Unlimited}

	root := GeneratorFunc(func(ctx *Context) {
		ctx.Emit(ctx.Socket(ctx.Child("p"), panel,
			ctx.Filter(refuse,
				ctx.Generator(ctx.Child("a"), fixed{name: "hidden", area: NewArea(9, 9), log: &log}),
				ctx.Generator(ctx.Child("b"), fixed{name: "shown", area: NewArea(2, 2), log: &log}),
			),
		))
	})
	frame := w.Run(root, NewArea(50, 50))

	if frame.MinArea != NewArea(2, 2) {
		t.Errorf("MinArea = %v, want (2,2)", frame.MinArea)
	}
	if want := []string{"run:shown"}; !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestEngine_NestedFiltersInnermostFirst(t *testing.T) {
	w := newTestWindow(t)
	var log []string
	gen := func(name string) fixed {
		return fixed{name: name, area: NewArea(1, 1), log: &log}
	}
	panel := &collector{capacity: Unlimited}

	root := GeneratorFunc(func(ctx *Context) {
		ctx.Emit(ctx.Socket(ctx.Child("p"), panel,
			ctx.Filter(recorder{name: "F1", log: &log},
				ctx.Filter(recorder{name: "F2", log: &log},
					ctx.Generator(ctx.Child("a"), gen("a")),
				),
				ctx.Generator(ctx.Child("b"), gen("b")),
			),
			ctx.Generator(ctx.Child("c"), gen("c")),
		))
	})
	w.Run(root, NewArea(10, 10))

	want := []string{
		"F2:a", "F1:a", "run:a",
		"F1:b", "run:b",
		"run:c",
	}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v\nwant   %v", log, want)
	}
	if len(panel.got) != 3 {
		t.Errorf("panel accepted %d children, want 3", len(panel.got))
	}
}

func TestEngine_SocketInnerFilters(t *testing.T) {
	w := newTestWindow(t)
	var log []string
	gen := func(name string) fixed {
		return fixed{name: name, area: NewArea(1, 1), log: &log}
	}
	outer := &collector{capacity: Unlimited}
	inner := &collector{capacity: Unlimited}

	root := GeneratorFunc(func(ctx *Context) {
		ctx.Emit(ctx.Filter(recorder{name: "O", log: &log},
			ctx.Socket(ctx.Child("outer"), outer,
				ctx.Socket(ctx.Child("inner"), inner,
					ctx.Generator(ctx.Child("x"), gen("x")),
					ctx.Filter(recorder{name: "N", log: &log},
						ctx.Generator(ctx.Child("y"), gen("y")),
					),
				).WithFilters(recorder{name: "I1", log: &log}, recorder{name: "I2", log: &log}),
				ctx.Generator(ctx.Child("z"), gen("z")),
			),
		))
	})
	w.Run(root, NewArea(10, 10))

	want := []string{
		"O:socket", // outer socket
		"O:socket", // inner socket, before its own filters open
		"I2:x", "I1:x", "O:x", "run:x",
		"N:y", "I2:y", "I1:y", "O:y", "run:y",
		"O:z", "run:z",
	}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v\nwant   %v", log, want)
	}
	if len(inner.got) != 2 || len(outer.got) != 2 {
		t.Errorf("inner accepted %d, outer accepted %d; want 2 and 2", len(inner.got), len(outer.got))
	}
}

func TestEngine_CapacityClosesEarly(t *testing.T) {
	w := newTestWindow(t)
	var log []string
	gen := func(name string, width int) fixed {
		return fixed{name: name, area: NewArea(width, 1), log: &log}
	}
	sock := &collector{capacity: One}
	panel := &collector{capacity: Unlimited}

	root := GeneratorFunc(func(ctx *Context) {
		ctx.Emit(ctx.Socket(ctx.Child("p"), panel,
			ctx.Socket(ctx.Child("one"), sock,
				ctx.Generator(ctx.Child("a"), gen("a", 1)),
				ctx.Filter(recorder{name: "F", log: &log},
					ctx.Generator(ctx.Child("b"), gen("b", 50)),
				),
				ctx.Generator(ctx.Child("c"), gen("c", 60)),
			),
			ctx.Generator(ctx.Child("after"), gen("after", 2)),
		))
	})
	frame := w.Run(root, NewArea(100, 100))

	if want := []string{"run:a", "run:after"}; !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
	if len(sock.got) != 1 || sock.closes != 1 {
		t.Errorf("socket accepted %d and closed %d times, want 1 and 1", len(sock.got), sock.closes)
	}
	if frame.MinArea != NewArea(2, 1) {
		t.Errorf("MinArea = %v, want (2,1)", frame.MinArea)
	}
}

func TestEngine_FilledWhileFilterOpen(t *testing.T) {
	w := newTestWindow(t)
	var log []string
	sock := &collector{capacity: One}
	panel := &collector{capacity: Unlimited}

	root := GeneratorFunc(func(ctx *Context) {
		ctx.Emit(ctx.Socket(ctx.Child("p"), panel,
			ctx.Socket(ctx.Child("one"), sock,
				ctx.Filter(recorder{name: "F", log: &log},
					ctx.Generator(ctx.Child("a"), fixed{name: "a", area: NewArea(1, 1), log: &log}),
					ctx.Generator(ctx.Child("b"), fixed{name: "b", area: NewArea(1, 1), log: &log}),
				),
			),
			ctx.Generator(ctx.Child("c"), fixed{name: "c", area: NewArea(1, 1), log: &log}),
		))
	})
	w.Run(root, NewArea(10, 10))

	// The filter opened inside the full socket must not wrap c.
	want := []string{"F:a", "run:a", "run:c"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

type inset struct {
	collector
	by int
}

func (s *inset) ChildArea(max Area) Area {
	return max.Shrink(EdgeAll(s.by))
}

func TestEngine_ConstrainedChildArea(t *testing.T) {
	w := newTestWindow(t)
	var seen []Area
	probe := GeneratorFunc(func(ctx *Context) {
		seen = append(seen, ctx.MaxArea())
		ctx.Yield(NewLayoutNode(NewArea(1, 1), nil))
	})

	root := GeneratorFunc(func(ctx *Context) {
		ctx.Emit(ctx.Socket(ctx.Child("outer"), &inset{collector: collector{capacity: One}, by: 2},
			ctx.Socket(ctx.Child("inner"), &inset{collector: collector{capacity: One}, by: 1},
				ctx.Generator(ctx.Child("probe"), probe),
			),
		))
	})
	w.Run(root, NewArea(20, 10))

	if want := []Area{NewArea(14, 4)}; !reflect.DeepEqual(seen, want) {
		t.Errorf("probe saw %v, want %v", seen, want)
	}
}

type relabel struct {
	collector
}

func (s *relabel) Close(ctx *Context) (LayoutNode, bool) {
	n, ok := s.collector.Close(ctx)
	ctx.Yield(NewLayoutNode(NewArea(99, 1), nil))
	return n, ok
}

func TestEngine_CloseResultKeepsPosition(t *testing.T) {
	w := newTestWindow(t)
	panel := &collector{capacity: Unlimited}

	root := GeneratorFunc(func(ctx *Context) {
		ctx.Emit(ctx.Socket(ctx.Child("p"), panel,
			ctx.Generator(ctx.Child("a"), size(1, 1)),
			ctx.Socket(ctx.Child("s"), &relabel{collector{capacity: Unlimited}},
				ctx.Generator(ctx.Child("b"), size(2, 1)),
			),
			ctx.Generator(ctx.Child("c"), size(3, 1)),
		))
	})
	w.Run(root, NewArea(100, 100))

	want := []Area{NewArea(1, 1), NewArea(2, 1), NewArea(99, 1), NewArea(3, 1)}
	if !reflect.DeepEqual(panel.got, want) {
		t.Errorf("panel got %v, want %v", panel.got, want)
	}
}

type swapSocket struct {
	to Socket
}

func (f swapSocket) FilterGenerator(_ *Context, g Generator, next func(Generator)) { next(g) }

func (f swapSocket) FilterSocket(_ *Context, _ Socket, next func(Socket)) { next(f.to) }

func TestEngine_FilterReplacesSocket(t *testing.T) {
	w := newTestWindow(t)
	original := &collector{capacity: Unlimited}
	replacement := &collector{capacity: One}

	root := GeneratorFunc(func(ctx *Context) {
		ctx.Emit(ctx.Filter(swapSocket{to: replacement},
			ctx.Socket(ctx.Child("s"), original,
				ctx.Generator(ctx.Child("a"), size(3, 3)),
				ctx.Generator(ctx.Child("b"), size(8, 8)),
			),
		))
	})
	frame := w.Run(root, NewArea(10, 10))

	if original.closes != 0 {
		t.Error("replaced socket should never close")
	}
	if len(replacement.got) != 1 || frame.MinArea != NewArea(3, 3) {
		t.Errorf("replacement got %v, frame min %v; want one child and (3,3)", replacement.got, frame.MinArea)
	}
}

func TestEngine_Resolve(t *testing.T) {
	w := newTestWindow(t)
	var log []string

	doubler := GeneratorFunc(func(ctx *Context) {
		n, ok := ctx.Resolve(ctx.Child("measured"), fixed{name: "m", area: NewArea(3, 4), log: &log}, ctx.MaxArea())
		if !ok {
			t.Error("Resolve should produce a layout")
			return
		}
		ctx.Yield(NewLayoutNode(n.MinArea.Add(n.MinArea), nil))
	})
	root := GeneratorFunc(func(ctx *Context) {
		ctx.Emit(ctx.Filter(recorder{name: "outer", log: &log}, ctx.Generator(ctx.Child("d"), doubler)))
	})
	frame := w.Run(root, NewArea(100, 100))

	if frame.MinArea != NewArea(6, 8) {
		t.Errorf("MinArea = %v, want (6,8)", frame.MinArea)
	}
	// The nested evaluation does not see filters open around its caller.
	if want := []string{"outer:loom.GeneratorFunc", "run:m"}; !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestEngine_Guards(t *testing.T) {
	type tc struct {
		opts []WindowOption
		root func() Generator
		code FatalCode
	}

	tests := map[string]tc{
		"nested sockets exceed depth": {
			opts: []WindowOption{WithMaxDepth(8)},
			root: func() Generator {
				var deep GeneratorFunc
				deep = func(ctx *Context) {
					ctx.Emit(ctx.Socket(ctx.Child("s"), &collector{capacity: One},
						ctx.Generator(ctx.Child("g"), deep),
					))
				}
				return deep
			},
			code: ErrDepthExceeded,
		},
		"nested filters exceed depth": {
			opts: []WindowOption{WithMaxDepth(8)},
			root: func() Generator {
				var deep GeneratorFunc
				pass := GeneratorFilter(func(_ *Context, g Generator, next func(Generator)) { next(g) })
				deep = func(ctx *Context) {
					ctx.Emit(ctx.Filter(pass, ctx.Generator(ctx.Child("g"), deep)))
				}
				return deep
			},
			code: ErrDepthExceeded,
		},
		"nested resolve exceeds depth": {
			opts: []WindowOption{WithMaxDepth(8)},
			root: func() Generator {
				var deep GeneratorFunc
				deep = func(ctx *Context) {
					ctx.Resolve(ctx.Child("r"), deep, ctx.MaxArea())
				}
				return deep
			},
			code: ErrDepthExceeded,
		},
		"endless generator exceeds budget": {
			opts: []WindowOption{WithMaxNodes(100)},
			root: func() Generator {
				var loop GeneratorFunc
				loop = func(ctx *Context) {
					ctx.Emit(ctx.Generator(ctx.ID(), loop))
				}
				return loop
			},
			code: ErrBudgetExceeded,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := newTestWindow(t, tt.opts...)
			expectFatal(t, tt.code, func() {
				w.Run(tt.root(), NewArea(10, 10))
			})

			// The window stays usable after an aborted frame.
			frame := w.Run(size(1, 1), NewArea(10, 10))
			if !frame.OK {
				t.Error("frame after an aborted one should resolve")
			}
		})
	}
}

func TestEngine_RenderRegions(t *testing.T) {
	w := newTestWindow(t)
	root := GeneratorFunc(func(ctx *Context) {
		ctx.Emit(ctx.Socket(ctx.Child("s"), &collector{capacity: One},
			ctx.Generator(ctx.Child("a"), size(5, 5)),
		))
	})
	frame := w.Run(root, NewArea(20, 20))

	// collector drops child render procedures, so nothing is drawn.
	if frame.Commands.Len() != 0 {
		t.Errorf("Commands.Len() = %d, want 0", frame.Commands.Len())
	}

	frame = w.Run(size(5, 5), NewArea(20, 20))
	if frame.Commands.Len() != 1 {
		t.Fatalf("Commands.Len() = %d, want 1", frame.Commands.Len())
	}
	if got := frame.Commands.At(0).Region; got != NewRegion(0, 0, 5, 5) {
		t.Errorf("quad region = %v, want (0,0 5x5)", got)
	}
}
