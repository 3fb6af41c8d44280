// Package cooked implements the cooked-mode line editor of a terminal
// console host: the component that owns an editable input line between
// a read request and a committed, alias-expanded result.
package cooked

// Attribute is a combinable text styling bit.
type Attribute uint8

const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << (iota - 1)
	AttrReverse          // used for popup selection highlighting
	AttrUnderline
)

func (a Attribute) Has(attr Attribute) bool { return a&attr != 0 }
func (a Attribute) With(attr Attribute) Attribute { return a | attr }

// ColorMode selects how a Color's fields are interpreted.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota
	Color16
	ColorRGB
)

// Color is a terminal color in one of three representations.
type Color struct {
	Mode    ColorMode
	R, G, B uint8
	Index   uint8
}

func DefaultColor() Color          { return Color{Mode: ColorDefault} }
func BasicColor(index uint8) Color { return Color{Mode: Color16, Index: index} }
func RGB(r, g, b uint8) Color      { return Color{Mode: ColorRGB, R: r, G: g, B: b} }

// Style combines foreground, background and attributes for one cell.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute
}

func DefaultStyle() Style { return Style{FG: DefaultColor(), BG: DefaultColor()} }

func (s Style) Foreground(c Color) Style { s.FG = c; return s }
func (s Style) Background(c Color) Style { s.BG = c; return s }
func (s Style) Bold() Style               { s.Attr = s.Attr.With(AttrBold); return s }
func (s Style) Reversed() Style           { s.Attr = s.Attr.With(AttrReverse); return s }
func (s Style) Underlined() Style         { s.Attr = s.Attr.With(AttrUnderline); return s }

// Cell is a single character cell: a grapheme cluster plus the style it
// is drawn with.
// Wide graphemes occupy a lead Cell carrying the full cluster plus one or
// more trailing continuation cells so cell-addressed geometry (offsetPosition,
// unwind) stays correct; see Cell.Width.
type Cell struct {
	Text  string // one grapheme cluster, or "" for a continuation cell
	Style Style
	Width uint8 // display width of Text; 0 on a continuation cell
}

func EmptyCell() Cell { return Cell{Text: " ", Style: DefaultStyle(), Width: 1} }

func (c Cell) Equal(other Cell) bool { return c == other }
