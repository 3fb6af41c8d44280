package cooked

import "testing"

func TestInsertAndDeleteGrapheme(t *testing.T) {
	b := NewEditBuffer()
	for _, r := range "hi" {
		b.InsertChar(r)
	}
	if b.Text() != "hi" || b.Caret() != 2 {
		t.Fatalf("got text=%q caret=%d", b.Text(), b.Caret())
	}
	b.DeleteGraphemeLeft()
	if b.Text() != "h" || b.Caret() != 1 {
		t.Fatalf("after delete left: text=%q caret=%d", b.Text(), b.Caret())
	}
}

func TestDeleteWordLeftScenario(t *testing.T) {
	// scenario 3: buffer "foo bar", caret at 7, Ctrl+Backspace -> "foo ", caret 4.
	b := NewEditBuffer()
	b.SetText("foo bar")
	b.DeleteWordLeft()
	if b.Text() != "foo " || b.Caret() != 4 {
		t.Fatalf("got text=%q caret=%d, want %q caret=4", b.Text(), b.Caret(), "foo ")
	}
}

func TestMoveWordRight(t *testing.T) {
	b := NewEditBuffer()
	b.SetText("foo bar baz")
	b.caret = 0
	b.MoveWordRight()
	if b.Caret() != 4 {
		t.Fatalf("MoveWordRight from 0 = %d, want 4", b.Caret())
	}
	b.MoveWordRight()
	if b.Caret() != 8 {
		t.Fatalf("MoveWordRight from 4 = %d, want 8", b.Caret())
	}
}

func TestCaretNeverNegativeOrPastLength(t *testing.T) {
	b := NewEditBuffer()
	b.SetText("ab")
	b.caret = 0
	b.DeleteGraphemeLeft()
	if b.Caret() < 0 {
		t.Fatalf("caret went negative: %d", b.Caret())
	}
	b.caret = b.Len()
	b.DeleteGraphemeRight()
	if b.Caret() > b.Len() {
		t.Fatalf("caret %d exceeds length %d", b.Caret(), b.Len())
	}
}

func TestOvertypeModeReplacesWholeWideGrapheme(t *testing.T) {
	b := NewEditBuffer()
	b.SetInsertMode(false)
	b.SetText("世界")
	b.caret = 0
	b.InsertChar('A')
	if b.Text() != "A界" {
		t.Fatalf("overtype got %q, want %q", b.Text(), "A界")
	}
}

func TestClear(t *testing.T) {
	b := NewEditBuffer()
	b.SetText("hello")
	b.Clear()
	if b.Len() != 0 || b.Caret() != 0 {
		t.Fatalf("Clear left len=%d caret=%d", b.Len(), b.Caret())
	}
}
