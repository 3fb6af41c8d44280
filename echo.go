package cooked

import "strings"

// GeometryAnchor tracks how far the previously-rendered line extends
// from the caret's screen position, so the echo engine can redraw only
// what changed instead of re-measuring the whole buffer every flush.
// Invariant: 0 ≤ distanceCaret ≤ distanceEnd.
type GeometryAnchor struct {
	distanceCaret int // cells from the anchor to the caret
	distanceEnd   int // cells from the anchor to the end of the rendered line
}

// EchoEngine redraws an EditBuffer against a Geometry, amortizing
// cost across edits via the buffer's dirty flag.
type EchoEngine struct {
	geo        *Geometry
	anchor     GeometryAnchor
	echoInput  bool
}

func NewEchoEngine(geo *Geometry) *EchoEngine {
	return &EchoEngine{geo: geo, echoInput: true}
}

func (e *EchoEngine) SetEchoInput(on bool) { e.echoInput = on }

// Flush redraws buf if echo is enabled and the buffer is dirty. Callers
// must hold caret ≤ length; EditBuffer enforces that on its own.
func (e *EchoEngine) Flush(buf *EditBuffer) {
	if !e.echoInput || !buf.Dirty() {
		return
	}

	e.geo.Unwind(e.anchor.distanceCaret)

	text := buf.Text()
	caret := buf.Caret()
	before := e.geo.WriteText(text[:caret])
	after := e.geo.WriteText(text[caret:])

	newEnd := before + after
	erase := e.anchor.distanceEnd - newEnd
	if erase < 0 {
		erase = 0
	}
	if erase > 0 {
		e.geo.WriteText(strings.Repeat(" ", erase))
	}
	e.geo.Unwind(after + erase)

	e.anchor.distanceCaret = before
	e.anchor.distanceEnd = newEnd
	buf.ClearDirty()
}

// EraseBeforeResize flushes any pending edits, then blanks the echoed
// region and unwinds, zeroing both anchor distances. Call this before
// the underlying TextBuffer is resized.
func (e *EchoEngine) EraseBeforeResize(buf *EditBuffer) {
	e.Flush(buf)
	e.geo.Unwind(e.anchor.distanceCaret)
	if e.anchor.distanceEnd > 0 {
		e.geo.WriteText(strings.Repeat(" ", e.anchor.distanceEnd))
		e.geo.Unwind(e.anchor.distanceEnd)
	}
	e.anchor = GeometryAnchor{}
}

// RedrawAfterResize marks buf dirty and flushes, redrawing against the
// buffer's new dimensions. Call this after the underlying TextBuffer
// has finished resizing.
func (e *EchoEngine) RedrawAfterResize(buf *EditBuffer) {
	buf.dirty = true
	e.Flush(buf)
}

// Anchor exposes the current anchor distances, primarily for tests
// asserting the flush-idempotence property.
func (e *EchoEngine) Anchor() GeometryAnchor { return e.anchor }
