package loom

import (
	"testing"
)

type box struct {
	area Area
}

func (b box) Layout(ctx *Context) (LayoutNode, bool) {
	if b.area.IsZero() {
		return LayoutNode{}, false
	}
	return NewLayoutNode(b.area, nil), true
}

type caption struct {
	text string
}

func (l caption) Layout(ctx *Context) (LayoutNode, bool) {
	return NewLayoutNode(NewArea(len(l.text), 1), nil), true
}

// scaled is a custom renderer that doubles every box it lays out.
type scaled struct {
	*BasicRenderer[box]
}

func (s scaled) Layout(index int, ctx *Context) (LayoutNode, bool) {
	b := s.Take(index)
	b.area = b.area.Add(b.area)
	return b.Layout(ctx)
}

func TestRegistry_Register(t *testing.T) {
	w := newTestWindow(t)
	RegisterBasic[box](w)

	if !w.Registry().Registered(TypeIDOf[box]()) {
		t.Error("box should be registered")
	}
	if w.Registry().Registered(TypeIDOf[caption]()) {
		t.Error("caption should not be registered")
	}
	if w.Registry().Len() != 1 {
		t.Errorf("Len() = %d, want 1", w.Registry().Len())
	}
}

func TestRegistry_Violations(t *testing.T) {
	type tc struct {
		run  func(w *Window)
		code FatalCode
	}

	tests := map[string]tc{
		"duplicate registration": {
			run: func(w *Window) {
				RegisterBasic[box](w)
				RegisterBasic[box](w)
			},
			code: ErrDuplicateType,
		},
		"duplicate through the raw entry point": {
			run: func(w *Window) {
				RegisterBasic[box](w)
				w.RegisterType(TypeIDOf[box](), BasicFactory[box]())
			},
			code: ErrDuplicateType,
		},
		"mount of unregistered type": {
			run: func(w *Window) {
				w.Run(GeneratorFunc(func(ctx *Context) {
					ctx.Emit(Mount(ctx, ctx.Child("x"), caption{text: "hi"}))
				}), NewArea(10, 10))
			},
			code: ErrUnregisteredType,
		},
		"unregistered type fails at mount, not at layout": {
			run: func(w *Window) {
				w.Run(GeneratorFunc(func(ctx *Context) {
					Mount(ctx, ctx.Child("x"), caption{text: "never emitted"})
				}), NewArea(10, 10))
			},
			code: ErrUnregisteredType,
		},
		"renderer for a different type": {
			run: func(w *Window) {
				w.RegisterType(TypeIDOf[caption](), BasicFactory[box]())
				w.Run(GeneratorFunc(func(ctx *Context) {
					ctx.Emit(Mount(ctx, ctx.Child("x"), caption{text: "hi"}))
				}), NewArea(10, 10))
			},
			code: ErrTypeMismatch,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := newTestWindow(t)
			expectFatal(t, tt.code, func() { tt.run(w) })
		})
	}
}

func TestRegistry_MismatchStoresNothing(t *testing.T) {
	w := newTestWindow(t)
	var built *BasicRenderer[box]
	w.RegisterType(TypeIDOf[caption](), func() Renderer {
		built = NewBasicRenderer[box]()
		return built
	})

	expectFatal(t, ErrTypeMismatch, func() {
		w.Run(GeneratorFunc(func(ctx *Context) {
			Mount(ctx, ctx.Child("x"), caption{text: "hi"})
		}), NewArea(10, 10))
	})
	if built == nil || built.Len() != 0 {
		t.Error("renderer should be built but hold no slots")
	}
}

func TestRegistry_SlotTakenOnce(t *testing.T) {
	r := NewBasicRenderer[box]()
	idx := r.store(box{area: NewArea(1, 1)})

	if got := r.Take(idx); got.area != NewArea(1, 1) {
		t.Errorf("Take() = %v, want (1,1)", got.area)
	}
	expectFatal(t, ErrSlotConsumed, func() { r.Take(idx) })
	expectFatal(t, ErrSlotConsumed, func() { r.Take(idx + 1) })
	expectFatal(t, ErrSlotConsumed, func() { r.Take(-1) })
}

func TestRegistry_UncheckedAllocateRejectsWrongValue(t *testing.T) {
	var r Renderer = NewBasicRenderer[box]()
	expectFatal(t, ErrTypeMismatch, func() { r.allocate(caption{}) })
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestRegistry_MountLaysOut(t *testing.T) {
	w := newTestWindow(t)
	factoryCalls := 0
	Register[box](w, func() Renderer {
		factoryCalls++
		return NewBasicRenderer[box]()
	})
	RegisterBasic[caption](w)
	panel := &collector{capacity: Unlimited}

	root := GeneratorFunc(func(ctx *Context) {
		ctx.Emit(ctx.Socket(ctx.Child("p"), panel,
			Mount(ctx, ctx.Child("a"), box{area: NewArea(3, 1)}),
			Mount(ctx, ctx.Child("b"), caption{text: "hello"}),
			Mount(ctx, ctx.Child("c"), box{}),
			Mount(ctx, ctx.Child("d"), box{area: NewArea(1, 4)}),
		))
	})

	for frame := 1; frame <= 2; frame++ {
		panel.got = nil
		out := w.Run(root, NewArea(20, 20))
		if out.MinArea != NewArea(5, 4) {
			t.Errorf("frame %d MinArea = %v, want (5,4)", frame, out.MinArea)
		}
		if len(panel.got) != 3 {
			t.Errorf("frame %d panel accepted %d, want 3 (empty box skipped)", frame, len(panel.got))
		}
	}
	if factoryCalls != 2 {
		t.Errorf("factory called %d times, want once per frame", factoryCalls)
	}
}

func TestRegistry_CustomRenderer(t *testing.T) {
	w := newTestWindow(t)
	Register[box](w, func() Renderer {
		return scaled{NewBasicRenderer[box]()}
	})

	root := GeneratorFunc(func(ctx *Context) {
		ctx.Emit(Mount(ctx, ctx.Child("a"), box{area: NewArea(3, 2)}))
	})
	frame := w.Run(root, NewArea(20, 20))

	if frame.MinArea != NewArea(6, 4) {
		t.Errorf("MinArea = %v, want (6,4)", frame.MinArea)
	}
}
