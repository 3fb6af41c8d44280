package cooked

import "errors"

// ErrWouldBlock is returned by InputSource.GetNext when no token is
// ready yet; the caller (run_once) treats this as the single
// suspension point.
var ErrWouldBlock = errors.New("cooked: input source would block")

// TokenKind distinguishes the three token flavors the editor dispatches on.
type TokenKind int

const (
	KindCharacter TokenKind = iota
	KindEditingVKey
	KindPopupVKey
)

// VKey enumerates the virtual keys the state machine dispatches on.
// VK and character tokens are disjoint: a Token carries a VKey or a
// Rune according to its Kind, never both.
type VKey int

const (
	VKNone VKey = iota
	VKEsc
	VKHome
	VKEnd
	VKLeft
	VKRight
	VKF1
	VKIns
	VKDel
	VKUp
	VKF5
	VKDown
	VKPgUp
	VKPgDn
	VKF2
	VKF3
	VKF4
	VKF6
	VKF7
	VKF8
	VKF9
	VKF10
	VKBackspace
	VKEnter
	VKShiftUp
	VKShiftDown
)

// ModState mirrors the console's control-key-state bitmask. Only the
// bits the editor actually inspects are named.
type ModState uint32

const (
	ModCtrl  ModState = 1 << 0
	ModAlt   ModState = 1 << 1
	ModShift ModState = 1 << 2
	// ModExtended marks a key that arrived via the "extended" virtual
	// key path — e.g. Ctrl+Backspace as opposed to plain Backspace.
	ModExtended ModState = 1 << 3
)

// Token is one unit of input handed to the editor by an InputSource.
type Token struct {
	Kind      TokenKind
	Rune      rune // valid when Kind == KindCharacter
	VK        VKey // valid when Kind != KindCharacter
	Modifiers ModState
}

// InputSource is the external collaborator that supplies tokens. The
// editor passes flags describing which kinds it is prepared to accept
// in the current state (Editing vs. InPopup); the source uses that
// hint to decide how to interpret the next raw keystroke.
type InputSource interface {
	GetNext(accept TokenKind) (Token, error)
}
