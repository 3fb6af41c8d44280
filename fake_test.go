package cooked

// FakeBuffer is an in-memory TextBuffer for tests, grounded in the
// framework's own pattern of driving tests against its in-memory
// Buffer directly rather than a real terminal.
type FakeBuffer struct {
	grid   *Grid
	cursor Position
}

func NewFakeBuffer(width, height int) *FakeBuffer {
	return &FakeBuffer{grid: NewGrid(width, height)}
}

func (f *FakeBuffer) Size() (int, int) { return f.grid.Size() }

func (f *FakeBuffer) CursorPosition() Position { return f.cursor }

func (f *FakeBuffer) SetCursorPosition(pos Position) { f.cursor = pos }

func (f *FakeBuffer) MakeCursorVisible() {}

func (f *FakeBuffer) WriteText(text string) int {
	w, h := f.grid.Size()
	row, col := f.cursor.Row, f.cursor.Col
	advanced := 0
	i := 0
	for i < len(text) {
		j := graphemeNext(text, i)
		cluster := text[i:j]
		cw := graphemeDisplayWidth(cluster)
		if cw <= 0 {
			cw = 1
		}
		if col+cw > w {
			advanced += w - col
			col = 0
			if row+1 >= h {
				f.grid.ScrollUp(1)
			} else {
				row++
			}
		}
		f.grid.Set(row, col, Cell{Text: cluster, Style: DefaultStyle(), Width: uint8(cw)})
		col += cw
		advanced += cw
		i = j
	}
	f.cursor = Position{Row: row, Col: col}
	return advanced
}

func (f *FakeBuffer) ReadRect(r Rect) []Cell       { return f.grid.ReadRect(r) }
func (f *FakeBuffer) WriteRect(cells []Cell, r Rect) { f.grid.WriteRect(cells, r) }
func (f *FakeBuffer) Viewport() Rect {
	w, h := f.grid.Size()
	return Rect{Width: w, Height: h}
}

// Row returns the text content of row y, trimmed of trailing spaces,
// for assertions.
func (f *FakeBuffer) Row(y int) string {
	w, _ := f.grid.Size()
	s := ""
	for x := 0; x < w; x++ {
		c := f.grid.Get(y, x)
		if c.Text == "" {
			continue
		}
		s += c.Text
	}
	end := len(s)
	for end > 0 && s[end-1] == ' ' {
		end--
	}
	return s[:end]
}

// fakeInput replays a fixed token sequence, reporting ErrWouldBlock
// once exhausted.
type fakeInput struct {
	tokens []Token
	pos    int
}

func newFakeInput(tokens ...Token) *fakeInput {
	return &fakeInput{tokens: tokens}
}

func (f *fakeInput) GetNext(accept TokenKind) (Token, error) {
	if f.pos >= len(f.tokens) {
		return Token{}, ErrWouldBlock
	}
	tok := f.tokens[f.pos]
	f.pos++
	return tok, nil
}

func charTok(r rune) Token { return Token{Kind: KindCharacter, Rune: r} }

func vkTok(vk VKey, mods ModState) Token {
	return Token{Kind: KindEditingVKey, VK: vk, Modifiers: mods}
}

// fakeSink captures what Commit would send to the client, as a stand-in
// for the real console client buffer.
type fakeSink struct {
	consumed []uint16
}

func (s *fakeSink) Consume(units []uint16, isUnicode bool) (int, int) {
	s.consumed = append(s.consumed, units...)
	return len(units), len(units) * 2
}
