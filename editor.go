package cooked

// EditorConfig is supplied by the host once per line read and is
// immutable for the read's lifetime.
type EditorConfig struct {
	EchoInput      bool
	ProcessedInput bool
	InsertMode     bool
	CtrlWakeupMask uint32
	DedupHistory   bool
	IsUnicode      bool
	ExeName        string
}

// EditorState is the coarse state the outer loop dispatches on.
type EditorState int

const (
	StateEditing EditorState = iota
	StateInPopup
)

// Outcome is what RunOnce returns to the host.
type Outcome int

const (
	OutcomeWait Outcome = iota
	OutcomeDone
	OutcomeAlerted
	OutcomeThreadTerminating
)

// CursorStyler lets the editor retune the terminal cursor shape on
// insert/overtype toggles and restore it on commit. A host with no
// opinion on cursor shape leaves this nil; the editor no-ops.
type CursorStyler interface {
	SetInsertCursor(insert bool)
	RestoreCursorStyle()
}

// Editor is the cooked-mode line editor state machine.
type Editor struct {
	cfg    EditorConfig
	buf    *EditBuffer
	geo    *Geometry
	echo   *EchoEngine
	popups *PopupStack
	history History
	alias   Alias
	input   InputSource
	access  AccessibilityNotifier
	cursor  CursorStyler

	state           EditorState
	controlKeyState ModState
	ignoreNextKeyUp bool
	noDupHistory    bool
	cancelled       error
	pending         PendingInput

	// wakeupTerminated is set when the line most recently completed via
	// a ctrl-wakeup character rather than Enter; Commit checks and
	// clears it to skip history/alias/trace for that line, matching the
	// console host's raw early-termination semantics.
	wakeupTerminated bool
}

// SetDedupHistory toggles the global "no consecutive duplicates" flag
// the post-commit pipeline passes to History.Append.
func (e *Editor) SetDedupHistory(on bool) { e.noDupHistory = on }

// NewEditor wires the editor to its external collaborators.
func NewEditor(cfg EditorConfig, termBuf TextBuffer, history History, alias Alias, input InputSource) *Editor {
	geo := NewGeometry(termBuf)
	buf := NewEditBuffer()
	buf.SetInsertMode(cfg.InsertMode)
	e := &Editor{
		cfg:     cfg,
		buf:     buf,
		geo:     geo,
		echo:    NewEchoEngine(geo),
		popups:  NewPopupStack(termBuf, geo),
		history: history,
		alias:   alias,
		input:   input,
		access:  NoopAccessibility{},
		noDupHistory: cfg.DedupHistory,
	}
	e.echo.SetEchoInput(cfg.EchoInput)
	return e
}

func (e *Editor) SetAccessibility(a AccessibilityNotifier) { e.access = a }
func (e *Editor) SetCursorStyler(c CursorStyler)            { e.cursor = c }

func (e *Editor) Buffer() *EditBuffer { return e.buf }
func (e *Editor) State() EditorState  { return e.state }

func (e *Editor) acceptKind() TokenKind {
	if e.popups.Len() > 0 {
		return KindPopupVKey
	}
	return KindEditingVKey
}

// RunOnce drives the state machine to completion or to the single
// suspension point, per the outer loop in the component design. It is
// not reentrant: only one call may be in flight at a time.
func (e *Editor) RunOnce() (Outcome, error) {
	switch e.cancelled {
	case ErrCancelled:
		return OutcomeAlerted, nil
	case ErrThreadDying:
		return OutcomeThreadTerminating, nil
	}
	for {
		tok, err := e.input.GetNext(e.acceptKind())
		if err == ErrWouldBlock {
			e.echo.Flush(e.buf)
			return OutcomeWait, nil
		}
		if err == ErrCancelled {
			e.cancelled = err
			return OutcomeAlerted, nil
		}
		if err == ErrThreadDying {
			e.cancelled = err
			return OutcomeThreadTerminating, nil
		}
		if err != nil {
			return OutcomeWait, err
		}

		if e.popups.Len() > 0 {
			action := e.popups.HandleInput(e.buf, e.history, tok)
			if e.popups.Len() == 0 {
				e.state = StateEditing
			}
			if action == PopupCommit {
				if e.handleChar('\r', 0) {
					return OutcomeDone, nil
				}
			}
			continue
		}

		if tok.Kind == KindEditingVKey {
			e.handleVKey(tok)
			continue
		}

		if e.handleChar(tok.Rune, tok.Modifiers) {
			return OutcomeDone, nil
		}
	}
}

// handleChar implements the character-handling commit conditions.
// Returns true when the line is complete.
func (e *Editor) handleChar(wch rune, mods ModState) bool {
	if wch < 0x20 && e.cfg.CtrlWakeupMask&(1<<uint(wch)) != 0 {
		e.echo.Flush(e.buf)
		wasInsert := e.buf.insert
		e.buf.insert = true
		e.buf.InsertChar(wch)
		e.buf.insert = wasInsert
		e.controlKeyState = mods
		e.wakeupTerminated = true
		return true
	}

	if wch == '\r' {
		if e.cfg.ProcessedInput {
			e.buf.text = append(e.buf.text, '\r', '\n')
		} else {
			e.buf.text = append(e.buf.text, '\r')
		}
		e.buf.caret = len(e.buf.text)
		e.buf.dirty = true
		return true
	}

	if wch == 0x08 && e.cfg.ProcessedInput {
		if mods&ModExtended != 0 {
			e.buf.DeleteWordLeft()
		} else {
			e.buf.DeleteGraphemeLeft()
		}
		e.access.TextChanged()
		return false
	}

	e.buf.InsertChar(wch)
	return false
}

// handleVKey dispatches the editing-VK mapping table (Editing state).
func (e *Editor) handleVKey(tok Token) {
	ctrl := tok.Modifiers&ModCtrl != 0
	alt := tok.Modifiers&ModAlt != 0

	switch tok.VK {
	case VKEsc:
		e.buf.Clear()

	case VKHome:
		if ctrl {
			old := e.buf.Caret()
			e.buf.ReplaceRange(0, old, "")
		}
		e.buf.MoveHome()

	case VKEnd:
		if ctrl {
			old := e.buf.Caret()
			e.buf.ReplaceRange(old, e.buf.Len(), "")
		}
		e.buf.MoveEnd()

	case VKLeft:
		if ctrl {
			e.buf.MoveWordLeft()
		} else {
			e.buf.MoveGraphemeLeft()
		}

	case VKRight, VKF1:
		if ctrl {
			e.buf.MoveWordRight()
			return
		}
		if e.buf.Caret() < e.buf.Len() {
			e.buf.MoveGraphemeRight()
			return
		}
		e.pasteOneGraphemeFromLastCommand()

	case VKIns:
		e.buf.SetInsertMode(!e.buf.InsertMode())
		if e.cursor != nil {
			e.cursor.SetInsertCursor(e.buf.InsertMode())
		}

	case VKDel:
		e.buf.DeleteGraphemeRight()

	case VKUp, VKF5:
		if text, ok := e.history.Retrieve(-1); ok {
			e.buf.SetText(text)
		}

	case VKDown:
		if text, ok := e.history.Retrieve(1); ok {
			e.buf.SetText(text)
		}

	case VKPgUp:
		if text, ok := e.history.RetrieveNth(0); ok {
			e.buf.SetText(text)
		}

	case VKPgDn:
		if text, ok := e.history.RetrieveLast(); ok {
			e.buf.SetText(text)
		}

	case VKF2:
		if e.history.Count() > 0 {
			if p, ok := e.popups.Push(PopupCopyToChar, e.history); ok {
				e.echo.Flush(e.buf)
				e.popups.RenderInitial(p)
				e.state = StateInPopup
			}
		}

	case VKF3:
		e.copyTailFromLastCommand()

	case VKF4:
		if p, ok := e.popups.Push(PopupCopyFromChar, e.history); ok {
			e.echo.Flush(e.buf)
			e.popups.RenderInitial(p)
			e.state = StateInPopup
		}

	case VKF6:
		e.buf.InsertChar(0x1a)

	case VKF7:
		if alt {
			e.history.Clear()
			return
		}
		if p, ok := e.popups.Push(PopupCommandList, e.history); ok {
			e.echo.Flush(e.buf)
			e.popups.RenderInitial(p)
			e.state = StateInPopup
		}

	case VKF8:
		e.recallMatchingPrefix()

	case VKF9:
		if p, ok := e.popups.Push(PopupCommandNumber, e.history); ok {
			e.echo.Flush(e.buf)
			e.popups.RenderInitial(p)
			e.state = StateInPopup
		}

	case VKF10:
		if alt {
			e.alias.ClearFor("cmd.exe")
		}
	}
}

// pasteOneGraphemeFromLastCommand implements the → / F1 at-end paste:
// walk both strings grapheme by grapheme; once the edit buffer is
// exhausted, append the next grapheme from the last command.
func (e *Editor) pasteOneGraphemeFromLastCommand() {
	last, ok := e.history.LastCommand()
	if !ok {
		return
	}
	text := e.buf.Text()
	i, j := 0, 0
	for i < len(text) && j < len(last) {
		i = graphemeNext(text, i)
		j = graphemeNext(last, j)
	}
	if i < len(text) || j >= len(last) {
		return
	}
	next := graphemeNext(last, j)
	e.buf.text = append(e.buf.text, last[j:next]...)
	e.buf.caret = len(e.buf.text)
	e.buf.dirty = true
}

func (e *Editor) copyTailFromLastCommand() {
	last, ok := e.history.LastCommand()
	if !ok {
		return
	}
	caret := e.buf.Caret()
	if caret >= len(last) {
		return
	}
	e.buf.text = append(e.buf.text, last[caret:]...)
	e.buf.caret = len(e.buf.text)
	e.buf.dirty = true
}

func (e *Editor) recallMatchingPrefix() {
	prefix := e.buf.Text()[:e.buf.Caret()]
	start := e.history.LastDisplayed() - 1
	if start < 0 {
		start = e.history.Count() - 1
	}
	idx, ok := e.history.FindMatching(prefix, start)
	if !ok {
		return
	}
	text, ok := e.history.Nth(idx)
	if !ok {
		return
	}
	caret := e.buf.Caret()
	if caret > len(text) {
		caret = len(text)
	}
	e.history.SetLastDisplayed(idx)
	e.buf.text = []byte(text)
	e.buf.caret = caret
	e.buf.dirty = true
}
