package cooked

import "strings"

const (
	boxTopLeft     = "┌"
	boxTopRight    = "┐"
	boxBottomLeft  = "└"
	boxBottomRight = "┘"
	boxHorizontal  = "─"
	boxVertical    = "│"
)

// drawBorder paints a single-line box around p.ContentRect, into the
// backup rectangle read at push time.
func (s *PopupStack) drawBorder(p *Popup) {
	r := p.BackupRect
	cells := make([]Cell, r.Width*r.Height)
	style := DefaultStyle()
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			var text string
			switch {
			case y == 0 && x == 0:
				text = boxTopLeft
			case y == 0 && x == r.Width-1:
				text = boxTopRight
			case y == r.Height-1 && x == 0:
				text = boxBottomLeft
			case y == r.Height-1 && x == r.Width-1:
				text = boxBottomRight
			case y == 0 || y == r.Height-1:
				text = boxHorizontal
			case x == 0 || x == r.Width-1:
				text = boxVertical
			default:
				text = " "
			}
			cells[y*r.Width+x] = Cell{Text: text, Style: style, Width: 1}
		}
	}
	s.buf.WriteRect(cells, r)
}

// RenderInitial draws the border then the kind's initial prompt state.
// Call once immediately after a successful Push.
func (s *PopupStack) RenderInitial(p *Popup) {
	s.drawBorder(p)
	switch p.Kind {
	case PopupCopyToChar:
		s.writeLine(p, 0, padTo("Copy to char: ", p.ContentRect.Width))
	case PopupCopyFromChar:
		s.writeLine(p, 0, padTo("Copy from char: ", p.ContentRect.Width))
	case PopupCommandNumber:
		s.redrawCommandNumber(p)
	case PopupCommandList:
		s.redrawCommandList(p)
	}
}

func (s *PopupStack) writeLine(p *Popup, row int, text string) {
	r := Rect{X: p.ContentRect.X, Y: p.ContentRect.Y + row, Width: p.ContentRect.Width, Height: 1}
	cells := rowCells(text, r.Width)
	s.buf.WriteRect(cells, r)
}

func rowCells(text string, width int) []Cell {
	cells := make([]Cell, width)
	i := 0
	style := DefaultStyle()
	col := 0
	for col < width && i < len(text) {
		j := graphemeNext(text, i)
		cluster := text[i:j]
		w := graphemeDisplayWidth(cluster)
		if w <= 0 {
			w = 1
		}
		if col+w > width {
			break
		}
		cells[col] = Cell{Text: cluster, Style: style, Width: uint8(w)}
		for k := 1; k < w; k++ {
			col++
			cells[col] = Cell{Text: "", Style: style, Width: 0}
		}
		col++
		i = j
	}
	for col < width {
		cells[col] = Cell{Text: " ", Style: style, Width: 1}
		col++
	}
	return cells
}

func rowCellsStyled(text string, width int, style Style) []Cell {
	cells := rowCells(text, width)
	for i := range cells {
		cells[i].Style = style
	}
	return cells
}

func padTo(s string, width int) string {
	w := stringDisplayWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// redrawCommandNumber redraws the digit accumulator right-aligned in
// the popup's top row, called after every keystroke.
func (s *PopupStack) redrawCommandNumber(p *Popup) {
	label := "Command number: "
	width := p.ContentRect.Width
	digitField := 5
	pad := width - stringDisplayWidth(label) - digitField
	if pad < 0 {
		pad = 0
	}
	line := label + strings.Repeat(" ", pad) + padDigitsRight(p.digits, digitField)
	s.writeLine(p, 0, line)
}

func padDigitsRight(digits string, width int) string {
	if len(digits) >= width {
		return digits[len(digits)-width:]
	}
	return strings.Repeat(" ", width-len(digits)) + digits
}

// redrawCommandList clamps selected, follows the viewport lazily, and
// repaints every row of the content rectangle. The loop runs over
// dirtyHeight rows when that is larger, but rows at or past the content
// height are not painted.
func (s *PopupStack) redrawCommandList(p *Popup) {
	count := len(p.commands)
	height := p.ContentRect.Height

	if count == 0 {
		p.selected = 0
	} else {
		p.selected = clampInt(p.selected, 0, count-1)
	}

	if p.selected < p.top {
		p.top = p.selected
	} else if p.selected >= p.top+height {
		p.top = p.selected - height + 1
	}
	maxTop := count - height
	if maxTop < 0 {
		maxTop = 0
	}
	p.top = clampInt(p.top, 0, maxTop)

	rows := height
	if p.dirtyHeight > rows {
		rows = p.dirtyHeight
	}

	normal := DefaultStyle()
	selected := DefaultStyle().Reversed()

	for off := 0; off < rows; off++ {
		idx := p.top + off
		var line string
		style := normal
		if idx < count {
			line = fmtIndex(idx) + ": " + p.commands[idx]
			if idx == p.selected {
				style = selected
			}
		}
		r := Rect{X: p.ContentRect.X, Y: p.ContentRect.Y + off, Width: p.ContentRect.Width, Height: 1}
		if off < height {
			s.buf.WriteRect(rowCellsStyled(line, r.Width, style), r)
		}
	}
	p.dirtyHeight = height
}
