package cooked

import (
	"io"
	"time"
	"unicode/utf8"
)

// TerminalInputSource reads raw bytes from a terminal (normally stdin
// in raw mode) on a background goroutine and classifies them into
// Tokens, decoding the handful of ANSI escape sequences the VK mapping
// table cares about. Bytes that don't form a recognized sequence are
// surfaced one rune at a time as character tokens.
type TerminalInputSource struct {
	bytesCh chan byte
	readyCh chan struct{}
	doneCh  chan struct{}
	readErr error
}

// escTimeout bounds how long GetNext waits for the remaining bytes of
// an escape sequence once it has seen the leading ESC; a real terminal
// delivers the whole sequence in one burst, so this only guards against
// a lone Esc keypress.
const escTimeout = 25 * time.Millisecond

// NewTerminalInputSource starts a reader goroutine over r. The
// goroutine runs for the lifetime of the process; r is typically
// os.Stdin put into raw mode by TermBuffer.EnterRawMode.
func NewTerminalInputSource(r io.Reader) *TerminalInputSource {
	s := &TerminalInputSource{
		bytesCh: make(chan byte, 256),
		readyCh: make(chan struct{}, 1),
		doneCh:  make(chan struct{}),
	}
	go s.readLoop(r)
	return s
}

// Ready fires (non-blockingly, coalesced) whenever a byte becomes
// available, so a host loop can select on it alongside a resize
// channel instead of busy-polling GetNext.
func (s *TerminalInputSource) Ready() <-chan struct{} { return s.readyCh }

func (s *TerminalInputSource) signalReady() {
	select {
	case s.readyCh <- struct{}{}:
	default:
	}
}

func (s *TerminalInputSource) readLoop(r io.Reader) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n == 1 {
			select {
			case s.bytesCh <- buf[0]:
				s.signalReady()
			case <-s.doneCh:
				return
			}
		}
		if err != nil {
			s.readErr = err
			close(s.doneCh)
			return
		}
	}
}

func (s *TerminalInputSource) nextByte(block bool) (byte, bool) {
	if block {
		select {
		case b := <-s.bytesCh:
			return b, true
		case <-time.After(escTimeout):
			return 0, false
		case <-s.doneCh:
			return 0, false
		}
	}
	select {
	case b := <-s.bytesCh:
		return b, true
	default:
		return 0, false
	}
}

// GetNext implements InputSource. accept disambiguates the two keys
// whose token differs between states: Backspace and Enter arrive as
// plain control characters in the main buffer but as distinct VKs
// inside a popup (digit entry, picking a command). Every other key
// decodes the same way regardless of accept.
func (s *TerminalInputSource) GetNext(accept TokenKind) (Token, error) {
	b, ok := s.nextByte(false)
	if !ok {
		select {
		case <-s.doneCh:
			return Token{}, ErrThreadDying
		default:
			return Token{}, ErrWouldBlock
		}
	}

	if b == 0x1b {
		return s.decodeEscape()
	}

	switch b {
	case 0x08, 0x7f:
		// Inside a popup, Backspace is a distinct VK (digit-entry
		// editing); in the main buffer it arrives as the classic
		// control character 0x08 that handleChar special-cases.
		if accept == KindPopupVKey {
			return Token{Kind: KindPopupVKey, VK: VKBackspace}, nil
		}
		return Token{Kind: KindCharacter, Rune: 0x08}, nil
	case '\r':
		if accept == KindPopupVKey {
			return Token{Kind: KindPopupVKey, VK: VKEnter}, nil
		}
		return Token{Kind: KindCharacter, Rune: '\r'}, nil
	}

	return s.decodeRune(b)
}

// decodeRune assembles a UTF-8 sequence starting at its lead byte b.
func (s *TerminalInputSource) decodeRune(b byte) (Token, error) {
	n := utf8SeqLen(b)
	if n <= 1 {
		return Token{Kind: KindCharacter, Rune: rune(b)}, nil
	}
	seq := make([]byte, 1, n)
	seq[0] = b
	for len(seq) < n {
		cb, ok := s.nextByte(true)
		if !ok {
			break
		}
		seq = append(seq, cb)
	}
	r := decodeUTF8(seq)
	return Token{Kind: KindCharacter, Rune: r}, nil
}

func utf8SeqLen(b byte) int {
	switch {
	case b&0x80 == 0:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

func decodeUTF8(b []byte) rune {
	r, _ := utf8.DecodeRune(b)
	return r
}

// decodeEscape interprets the byte(s) following an ESC as either a
// bare Escape keypress or one of the CSI/SS3 sequences the editor's VK
// table recognizes.
func (s *TerminalInputSource) decodeEscape() (Token, error) {
	b1, ok := s.nextByte(true)
	if !ok {
		return Token{Kind: KindEditingVKey, VK: VKEsc}, nil
	}

	switch b1 {
	case '[':
		return s.decodeCSI()
	case 'O':
		b2, ok := s.nextByte(true)
		if !ok {
			return Token{Kind: KindEditingVKey, VK: VKEsc}, nil
		}
		switch b2 {
		case 'H':
			return Token{Kind: KindEditingVKey, VK: VKHome}, nil
		case 'F':
			return Token{Kind: KindEditingVKey, VK: VKEnd}, nil
		case 'P':
			return Token{Kind: KindEditingVKey, VK: VKF1}, nil
		}
		return Token{Kind: KindEditingVKey, VK: VKEsc}, nil
	}
	return Token{Kind: KindEditingVKey, VK: VKEsc}, nil
}

func (s *TerminalInputSource) decodeCSI() (Token, error) {
	var params []byte
	for {
		b, ok := s.nextByte(true)
		if !ok {
			return Token{Kind: KindEditingVKey, VK: VKEsc}, nil
		}
		if b >= '0' && b <= '9' || b == ';' {
			params = append(params, b)
			continue
		}
		return s.finishCSI(params, b)
	}
}

func (s *TerminalInputSource) finishCSI(params []byte, final byte) (Token, error) {
	mods := parseCSIModifiers(params)

	switch final {
	case 'A':
		return Token{Kind: KindEditingVKey, VK: VKUp, Modifiers: mods}, nil
	case 'B':
		return Token{Kind: KindEditingVKey, VK: VKDown, Modifiers: mods}, nil
	case 'C':
		return Token{Kind: KindEditingVKey, VK: VKRight, Modifiers: mods}, nil
	case 'D':
		return Token{Kind: KindEditingVKey, VK: VKLeft, Modifiers: mods}, nil
	case 'H':
		return Token{Kind: KindEditingVKey, VK: VKHome, Modifiers: mods}, nil
	case 'F':
		return Token{Kind: KindEditingVKey, VK: VKEnd, Modifiers: mods}, nil
	case '~':
		switch string(trimModifierSuffix(params)) {
		case "1", "7":
			return Token{Kind: KindEditingVKey, VK: VKHome}, nil
		case "2":
			return Token{Kind: KindEditingVKey, VK: VKIns}, nil
		case "3":
			return Token{Kind: KindEditingVKey, VK: VKDel, Modifiers: mods}, nil
		case "4", "8":
			return Token{Kind: KindEditingVKey, VK: VKEnd}, nil
		case "5":
			return Token{Kind: KindEditingVKey, VK: VKPgUp}, nil
		case "6":
			return Token{Kind: KindEditingVKey, VK: VKPgDn}, nil
		case "11":
			return Token{Kind: KindEditingVKey, VK: VKF1}, nil
		case "12":
			return Token{Kind: KindEditingVKey, VK: VKF2}, nil
		case "13":
			return Token{Kind: KindEditingVKey, VK: VKF3}, nil
		case "14":
			return Token{Kind: KindEditingVKey, VK: VKF4}, nil
		case "15":
			return Token{Kind: KindEditingVKey, VK: VKF5}, nil
		case "17":
			return Token{Kind: KindEditingVKey, VK: VKF6}, nil
		case "18":
			return Token{Kind: KindEditingVKey, VK: VKF7}, nil
		case "19":
			return Token{Kind: KindEditingVKey, VK: VKF8}, nil
		case "20":
			return Token{Kind: KindEditingVKey, VK: VKF9}, nil
		case "21":
			return Token{Kind: KindEditingVKey, VK: VKF10}, nil
		}
	}
	return Token{Kind: KindEditingVKey, VK: VKEsc}, nil
}

// parseCSIModifiers reads the ";<n>" modifier suffix some terminals
// append to cursor-key sequences (e.g. "1;5A" for Ctrl+Up).
func parseCSIModifiers(params []byte) ModState {
	idx := -1
	for i, b := range params {
		if b == ';' {
			idx = i
			break
		}
	}
	if idx < 0 || idx+1 >= len(params) {
		return 0
	}
	n := 0
	for _, b := range params[idx+1:] {
		if b < '0' || b > '9' {
			return 0
		}
		n = n*10 + int(b-'0')
	}
	// xterm modifier encoding: value-1 is a bitmask of Shift/Alt/Ctrl.
	bits := n - 1
	var mods ModState
	if bits&1 != 0 {
		mods |= ModShift
	}
	if bits&2 != 0 {
		mods |= ModAlt
	}
	if bits&4 != 0 {
		mods |= ModCtrl
	}
	return mods
}

func trimModifierSuffix(params []byte) []byte {
	for i, b := range params {
		if b == ';' {
			return params[:i]
		}
	}
	return params
}
