package cooked

import "testing"

func TestPopupStackDepthInvariant(t *testing.T) {
	fb := NewFakeBuffer(80, 24)
	geo := NewGeometry(fb)
	stack := NewPopupStack(fb, geo)
	h := NewMemoryHistory(10)
	h.Append("one", false)
	h.Append("two", false)
	h.Append("three", false)

	if _, ok := stack.Push(PopupCommandList, h); !ok {
		t.Fatal("CommandList push should succeed")
	}
	if _, ok := stack.Push(PopupCopyToChar, h); ok {
		t.Fatal("pushing CopyToChar atop CommandList should be illegal")
	}
	if _, ok := stack.Push(PopupCommandNumber, h); !ok {
		t.Fatal("CommandNumber atop CommandList should be legal")
	}
	if stack.Len() != 2 {
		t.Fatalf("stack depth = %d, want 2", stack.Len())
	}
	if _, ok := stack.Push(PopupCommandNumber, h); ok {
		t.Fatal("pushing a third popup should be illegal")
	}
}

func TestPopupPushPopRoundTrip(t *testing.T) {
	fb := NewFakeBuffer(40, 10)
	geo := NewGeometry(fb)
	stack := NewPopupStack(fb, geo)
	h := NewMemoryHistory(5)
	h.Append("cmd", false)

	before := fb.grid.ReadRect(Rect{X: 0, Y: 0, Width: 40, Height: 10})

	p, ok := stack.Push(PopupCopyToChar, h)
	if !ok {
		t.Fatal("push failed")
	}
	stack.RenderInitial(p)
	stack.Pop()

	after := fb.grid.ReadRect(Rect{X: 0, Y: 0, Width: 40, Height: 10})
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("cell %d differs after push/pop round trip: %v vs %v", i, before[i], after[i])
		}
	}
}

func TestCopyFromCharScenario(t *testing.T) {
	// scenario 4: buffer "abcXdef", caret 0, push CopyFromChar, press X.
	fb := NewFakeBuffer(40, 10)
	geo := NewGeometry(fb)
	stack := NewPopupStack(fb, geo)
	h := NewMemoryHistory(5)

	buf := NewEditBuffer()
	buf.SetText("abcXdef")
	buf.caret = 0

	p, ok := stack.Push(PopupCopyFromChar, h)
	if !ok {
		t.Fatal("push failed")
	}
	stack.RenderInitial(p)

	action := stack.HandleInput(buf, h, charTok('X'))
	if action != PopupDismissed {
		t.Fatalf("action = %v, want PopupDismissed", action)
	}
	if stack.Len() != 0 {
		t.Fatalf("stack should be empty after dismiss, len=%d", stack.Len())
	}
	if buf.Text() != "Xdef" || buf.Caret() != 0 {
		t.Fatalf("got text=%q caret=%d, want %q caret=0", buf.Text(), buf.Caret(), "Xdef")
	}
}

func TestCommandListRedrawViewportFollow(t *testing.T) {
	fb := NewFakeBuffer(40, 15)
	geo := NewGeometry(fb)
	stack := NewPopupStack(fb, geo)
	h := NewMemoryHistory(30)
	for i := 0; i < 30; i++ {
		h.Append(fmtIndex(i), false)
	}

	p, ok := stack.Push(PopupCommandList, h)
	if !ok {
		t.Fatal("push failed")
	}
	stack.RenderInitial(p)

	height := p.ContentRect.Height
	p.selected = height + 5
	stack.redrawCommandList(p)

	if p.selected < p.top || p.selected >= p.top+height {
		t.Fatalf("selected %d not within viewport [%d, %d)", p.selected, p.top, p.top+height)
	}
}
