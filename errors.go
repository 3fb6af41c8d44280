package cooked

import "errors"

// Error taxonomy. InputSourceError is fatal and propagates to the
// caller unchanged. ErrTextBuffer and ErrPopupConstruction name the
// popup failure cases; TextBuffer reports no errors, so nothing in this
// package returns or logs them. Cancellation and ThreadDying end the
// read: once RunOnce has reported either, later calls report it again
// without reading input or drawing. ClientBufferOverflow cannot occur:
// Consume saturates at the client buffer's size and any residue
// becomes pending input.
var (
	ErrInputSource           = errors.New("cooked: input source error")
	ErrTextBuffer            = errors.New("cooked: text buffer error")
	ErrPopupConstruction     = errors.New("cooked: popup construction error")
	ErrCancelled             = errors.New("cooked: alerted")
	ErrThreadDying           = errors.New("cooked: thread terminating")
)
