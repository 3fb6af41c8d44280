package cooked

import (
	"strconv"
	"strings"
)

// PopupAction reports what a popup input handler did, for the editor
// state machine to act on.
type PopupAction int

const (
	PopupNone PopupAction = iota
	// PopupDismissed means the popup (and possibly the whole stack)
	// was popped; the editor remains in Editing or InPopup depending
	// on whether other popups remain.
	PopupDismissed
	// PopupCommit means the CommandList handler picked a command and
	// wants char handling re-entered with '\r' to commit the line.
	PopupCommit
)

// HandleInput dispatches tok to the handler for the top popup and
// returns what happened. It is only valid to call when s.Len() > 0.
func (s *PopupStack) HandleInput(buf *EditBuffer, history History, tok Token) PopupAction {
	p := s.Top()
	switch p.Kind {
	case PopupCopyToChar:
		return s.handleCopyToChar(p, buf, history, tok)
	case PopupCopyFromChar:
		return s.handleCopyFromChar(p, buf, tok)
	case PopupCommandNumber:
		return s.handleCommandNumber(p, buf, history, tok)
	case PopupCommandList:
		return s.handleCommandList(p, buf, history, tok)
	}
	return PopupNone
}

func (s *PopupStack) handleCopyToChar(p *Popup, buf *EditBuffer, history History, tok Token) PopupAction {
	if tok.Kind != KindCharacter {
		if tok.VK == VKEsc {
			s.Pop()
			return PopupDismissed
		}
		return PopupNone
	}
	if tok.Rune == 0x1b {
		s.Pop()
		return PopupDismissed
	}
	lastCmd, ok := history.LastCommand()
	if !ok {
		s.Pop()
		return PopupDismissed
	}
	caret := buf.Caret()
	text := buf.Text()
	if caret > len(lastCmd) {
		s.Pop()
		return PopupDismissed
	}
	j := indexRuneFrom(lastCmd, tok.Rune, caret)
	if j >= 0 {
		src := lastCmd[caret:j]
		end := caret + len(src)
		if end > len(text) {
			end = len(text)
		}
		buf.ReplaceRange(caret, end, src)
		buf.caret = caret + len(src)
	}
	s.Pop()
	return PopupDismissed
}

func (s *PopupStack) handleCopyFromChar(p *Popup, buf *EditBuffer, tok Token) PopupAction {
	if tok.Kind != KindCharacter {
		if tok.VK == VKEsc {
			s.Pop()
			return PopupDismissed
		}
		return PopupNone
	}
	if tok.Rune == 0x1b {
		s.Pop()
		return PopupDismissed
	}
	text := buf.Text()
	caret := buf.Caret()
	found := indexRuneFrom(text, tok.Rune, caret)
	end := len(text)
	if found >= 0 {
		end = found
	}
	if end > caret {
		buf.ReplaceRange(caret, end, "")
		buf.caret = caret
	}
	s.Pop()
	return PopupDismissed
}

func indexRuneFrom(s string, r rune, from int) int {
	if from < 0 {
		from = 0
	}
	if from > len(s) {
		return -1
	}
	idx := strings.IndexRune(s[from:], r)
	if idx < 0 {
		return -1
	}
	return from + idx
}

func (s *PopupStack) handleCommandNumber(p *Popup, buf *EditBuffer, history History, tok Token) PopupAction {
	switch {
	case tok.Kind == KindCharacter && tok.Rune >= '0' && tok.Rune <= '9':
		if len(p.digits) < 5 {
			p.digits += string(tok.Rune)
		}
		s.redrawCommandNumber(p)
		return PopupNone
	case tok.VK == VKBackspace:
		if len(p.digits) > 0 {
			p.digits = p.digits[:len(p.digits)-1]
		}
		s.redrawCommandNumber(p)
		return PopupNone
	case tok.VK == VKEnter:
		n, err := strconv.Atoi(p.digits)
		if err == nil {
			if text, ok := history.RetrieveNth(n); ok {
				buf.SetText(text)
			}
		}
		// A resolved number selection ends the whole popup workflow,
		// not just the number prompt atop it.
		s.PopAll()
		return PopupDismissed
	case tok.VK == VKEsc:
		s.Pop()
		return PopupDismissed
	}
	return PopupNone
}

func (s *PopupStack) handleCommandList(p *Popup, buf *EditBuffer, history History, tok Token) PopupAction {
	switch tok.VK {
	case VKEnter:
		if p.selected >= 0 && p.selected < len(p.commands) {
			buf.SetText(p.commands[p.selected])
		}
		s.Pop()
		return PopupCommit
	case VKEsc:
		s.Pop()
		return PopupDismissed
	case VKF9:
		s.Push(PopupCommandNumber, history)
		if np := s.Top(); np.Kind == PopupCommandNumber {
			s.RenderInitial(np)
		}
		return PopupNone
	case VKDel:
		if p.selected >= 0 && p.selected < len(p.commands) {
			history.Remove(p.selected)
			p.commands = snapshotHistory(history)
		}
		if len(p.commands) == 0 {
			s.Pop()
			return PopupDismissed
		}
		s.redrawCommandList(p)
		return PopupNone
	case VKLeft, VKRight:
		if p.selected >= 0 && p.selected < len(p.commands) {
			buf.SetText(p.commands[p.selected])
		}
		s.Pop()
		return PopupDismissed
	case VKUp:
		if tok.Modifiers&ModShift != 0 && p.selected > 0 {
			history.Swap(p.selected-1, p.selected)
			p.commands = snapshotHistory(history)
			p.selected--
		} else if p.selected > 0 {
			p.selected--
		}
		s.redrawCommandList(p)
		return PopupNone
	case VKDown:
		if tok.Modifiers&ModShift != 0 && p.selected < len(p.commands)-1 {
			history.Swap(p.selected, p.selected+1)
			p.commands = snapshotHistory(history)
			p.selected++
		} else if p.selected < len(p.commands)-1 {
			p.selected++
		}
		s.redrawCommandList(p)
		return PopupNone
	case VKHome:
		p.selected = 0
		s.redrawCommandList(p)
		return PopupNone
	case VKEnd:
		p.selected = len(p.commands) - 1
		s.redrawCommandList(p)
		return PopupNone
	case VKPgUp:
		p.selected -= p.ContentRect.Height
		s.redrawCommandList(p)
		return PopupNone
	case VKPgDn:
		p.selected += p.ContentRect.Height
		s.redrawCommandList(p)
		return PopupNone
	}
	return PopupNone
}
