package cooked

import "testing"

func TestOffsetPosition(t *testing.T) {
	buf := NewFakeBuffer(10, 5)
	geo := NewGeometry(buf)

	cases := []struct {
		pos   Position
		delta int
		want  Position
	}{
		{Position{0, 0}, 5, Position{0, 5}},
		{Position{0, 5}, 10, Position{1, 5}},
		{Position{0, 0}, -1, Position{0, 0}},
		{Position{4, 9}, 1, Position{5, 0}}, // W*H is the inclusive upper bound
	}
	for _, c := range cases {
		if got := geo.OffsetPosition(c.pos, c.delta); got != c.want {
			t.Errorf("OffsetPosition(%v, %d) = %v, want %v", c.pos, c.delta, got, c.want)
		}
	}
}

func TestWriteTextThenUnwindRestoresCursor(t *testing.T) {
	buf := NewFakeBuffer(10, 5)
	geo := NewGeometry(buf)
	buf.SetCursorPosition(Position{Row: 2, Col: 3})

	before := buf.CursorPosition()
	n := geo.WriteText("hello world, this wraps")
	geo.Unwind(n)

	after := buf.CursorPosition()
	if before != after {
		t.Errorf("write_text+unwind did not restore cursor: before=%v after=%v", before, after)
	}
}
