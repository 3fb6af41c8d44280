package cooked

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Size is a terminal dimension in cells.
type Size struct {
	Width, Height int
}

// TermBuffer is the terminal-backed TextBuffer implementation: it
// mirrors what is on screen in a Grid (so popups can back up and
// restore a rectangle) and writes through to the real terminal via
// minimal ANSI sequences, the way the framework's Screen drives raw
// mode and resize handling.
type TermBuffer struct {
	grid   *Grid
	out    io.Writer
	fd     int
	width  int
	height int
	cursor Position

	origTermios *unix.Termios
	inRawMode   bool
	resizeChan  chan Size
	sigChan     chan os.Signal

	mu sync.Mutex
}

// NewTermBuffer wires a TermBuffer to stdout (or w, if non-nil) and
// the terminal's current size. Falls back to 80x24 if the size cannot
// be determined (e.g. output redirected to a file).
func NewTermBuffer(w io.Writer) *TermBuffer {
	if w == nil {
		w = os.Stdout
	}
	fd := int(os.Stdout.Fd())
	width, height := 80, 24
	if ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ); err == nil {
		width, height = int(ws.Col), int(ws.Row)
	}
	return &TermBuffer{
		grid:       NewGrid(width, height),
		out:        w,
		fd:         fd,
		width:      width,
		height:     height,
		resizeChan: make(chan Size, 1),
		sigChan:    make(chan os.Signal, 1),
	}
}

// IsTerminal reports whether fd refers to a real terminal, using the
// portable check rather than the raw ioctl so this also works when
// GOOS isn't the one the direct termios path was written for.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

func (t *TermBuffer) Size() (int, int) { return t.width, t.height }

func (t *TermBuffer) CursorPosition() Position { return t.cursor }

func (t *TermBuffer) SetCursorPosition(pos Position) {
	t.cursor = pos
	t.writeRaw(fmt.Sprintf("\x1b[%d;%dH", pos.Row+1, pos.Col+1))
}

func (t *TermBuffer) MakeCursorVisible() {
	// The viewport tracks the terminal's own scroll region; a position
	// inside [0,height) is always visible, so there is nothing to
	// scroll into view beyond re-asserting the cursor escape.
	t.writeRaw(fmt.Sprintf("\x1b[%d;%dH", t.cursor.Row+1, t.cursor.Col+1))
}

// WriteText writes text at the cursor, wrapping at width and letting
// the terminal scroll natively once the cursor passes the last row.
// The returned count is in the same row-major linear space Geometry
// uses: each wrapped row advances width cells, each scrolled row adds
// another width cells on top of that.
func (t *TermBuffer) WriteText(text string) int {
	row, col := t.cursor.Row, t.cursor.Col
	advanced := 0

	var out strings.Builder
	i := 0
	for i < len(text) {
		j := graphemeNext(text, i)
		cluster := text[i:j]
		w := graphemeDisplayWidth(cluster)
		if w <= 0 {
			w = 1
		}
		if col+w > t.width {
			advanced += t.width - col
			col = 0
			if row+1 >= t.height {
				t.grid.ScrollUp(1)
				out.WriteString("\n")
			} else {
				row++
				out.WriteString("\r\n")
			}
		}
		out.WriteString(cluster)
		t.grid.Set(row, col, Cell{Text: cluster, Style: DefaultStyle(), Width: uint8(w)})
		for k := 1; k < w; k++ {
			t.grid.Set(row, col+k, Cell{Text: "", Width: 0})
		}
		col += w
		advanced += w
		i = j
	}

	t.writeRaw(out.String())
	t.cursor = Position{Row: row, Col: col}
	return advanced
}

func (t *TermBuffer) ReadRect(r Rect) []Cell {
	return t.grid.ReadRect(r)
}

func (t *TermBuffer) WriteRect(cells []Cell, r Rect) {
	t.grid.WriteRect(cells, r)
	t.paintRect(cells, r)
}

// paintRect emits the minimal ANSI to reflect a WriteRect onto the
// real terminal without disturbing the logical cursor position the
// editor is tracking.
func (t *TermBuffer) paintRect(cells []Cell, r Rect) {
	saved := t.cursor
	for y := 0; y < r.Height; y++ {
		var line strings.Builder
		for x := 0; x < r.Width; x++ {
			c := cells[y*r.Width+x]
			if c.Text == "" && c.Width == 0 {
				continue // continuation cell of a wide grapheme
			}
			line.WriteString(c.Text)
		}
		t.writeRaw(fmt.Sprintf("\x1b[%d;%dH", r.Y+y+1, r.X+1))
		t.writeRaw(line.String())
	}
	t.writeRaw(fmt.Sprintf("\x1b[%d;%dH", saved.Row+1, saved.Col+1))
}

func (t *TermBuffer) Viewport() Rect {
	return Rect{X: 0, Y: 0, Width: t.width, Height: t.height}
}

func (t *TermBuffer) writeRaw(s string) {
	if s == "" {
		return
	}
	io.WriteString(t.out, s)
}

// EnterRawMode puts the terminal into raw mode for character-at-a-time
// input, inline (no alternate screen) since a cooked read shares the
// scrollback with whatever the host already printed.
func (t *TermBuffer) EnterRawMode() error {
	if t.inRawMode {
		return nil
	}
	termios, err := unix.IoctlGetTermios(t.fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("cooked: get termios: %w", err)
	}
	t.origTermios = termios

	raw := *termios
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, &raw); err != nil {
		return fmt.Errorf("cooked: set raw mode: %w", err)
	}
	t.inRawMode = true

	signal.Notify(t.sigChan, syscall.SIGWINCH)
	go t.handleSignals()

	return nil
}

// ExitRawMode restores the terminal's original termios settings.
func (t *TermBuffer) ExitRawMode() error {
	if !t.inRawMode {
		return nil
	}
	signal.Stop(t.sigChan)
	if t.origTermios != nil {
		if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, t.origTermios); err != nil {
			return fmt.Errorf("cooked: restore termios: %w", err)
		}
	}
	t.inRawMode = false
	return nil
}

// ResizeChan delivers one Size per terminal resize, sent after the grid
// has already been resized. Nothing in this package calls the echo
// engine's EraseBeforeResize/RedrawAfterResize pair from it.
func (t *TermBuffer) ResizeChan() <-chan Size { return t.resizeChan }

func (t *TermBuffer) handleSignals() {
	for range t.sigChan {
		ws, err := unix.IoctlGetWinsize(t.fd, unix.TIOCGWINSZ)
		if err != nil {
			continue
		}
		t.mu.Lock()
		t.width, t.height = int(ws.Col), int(ws.Row)
		t.grid.Resize(t.width, t.height)
		t.mu.Unlock()
		select {
		case t.resizeChan <- Size{Width: t.width, Height: t.height}:
		default:
		}
	}
}

// SetInsertCursor and RestoreCursorStyle implement CursorStyler using
// the DECSCUSR cursor-shape escape: a steady bar for overtype mode, a
// blinking block (the terminal default) for insert.
func (t *TermBuffer) SetInsertCursor(insert bool) {
	if insert {
		t.writeRaw("\x1b[1 q")
	} else {
		t.writeRaw("\x1b[6 q")
	}
}

func (t *TermBuffer) RestoreCursorStyle() {
	t.writeRaw("\x1b[0 q")
}

// ShowCursor/HideCursor toggle cursor visibility during a read.
func (t *TermBuffer) ShowCursor() { t.writeRaw("\x1b[?25h") }
func (t *TermBuffer) HideCursor() { t.writeRaw("\x1b[?25l") }
