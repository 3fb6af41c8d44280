package cooked

import (
	"strings"
	"unicode/utf16"
)

// ClientSink is the external collaborator that owns the caller's
// output buffer. Consume writes as much of units as fits — raw UTF-16
// if isUnicode, transcoded to the OEM codepage otherwise — and reports
// how many source units it consumed and how many output bytes it
// wrote. Consume can never overflow the client buffer by construction:
// it saturates at the buffer's size and leaves the rest as residue.
type ClientSink interface {
	Consume(units []uint16, isUnicode bool) (consumedUnits, bytesWritten int)
}

// PendingInput is leftover text carried forward to the next read,
// either the unconsumed tail of a single-line reply or the remaining
// lines of a multi-line alias expansion.
type PendingInput struct {
	Text      string
	MultiLine bool
}

// CommitResult is what the host sees after a line commits.
type CommitResult struct {
	BytesWritten   int
	ControlKeyState ModState
}

// Commit runs the post-commit pipeline: history, trace, alias
// expansion, client-buffer encode, and pending-input bookkeeping. Call
// this once RunOnce has returned OutcomeDone.
func (e *Editor) Commit(sink ClientSink) CommitResult {
	text := e.buf.Text()
	trimmed, suffix := stripTrailingNewline(text)

	full := trimmed + suffix
	lineCount := 1

	wakeup := e.wakeupTerminated
	e.wakeupTerminated = false

	if e.cfg.EchoInput && !wakeup {
		e.history.Append(trimmed, e.noDupHistory)
		logger.Printf("trace: %q", trimmed)

		if expanded, n, ok := e.alias.MatchAndCopy(trimmed, e.cfg.ExeName); ok {
			lineCount = n
			if lineCount < 1 {
				lineCount = 1
			}
			if lineCount > 1 {
				// The expansion already carries its own "\r\n"
				// line terminators; don't also append the
				// original line's trailing newline.
				full = expanded
			} else {
				full = expanded + suffix
			}
		}
	}

	reply := full
	if lineCount > 1 {
		if idx := strings.IndexByte(full, '\n'); idx >= 0 {
			reply = full[:idx+1]
			e.pending = PendingInput{Text: full[idx+1:], MultiLine: true}
		}
	}

	units := utf16.Encode([]rune(reply))
	consumed, written := sink.Consume(units, e.cfg.IsUnicode)
	if lineCount <= 1 && consumed < len(units) {
		e.pending = PendingInput{Text: string(utf16.Decode(units[consumed:])), MultiLine: false}
	}

	e.ignoreNextKeyUp = true
	if e.cursor != nil {
		e.cursor.RestoreCursorStyle()
	}

	return CommitResult{BytesWritten: written, ControlKeyState: e.controlKeyState}
}

// TakePendingInput returns and clears any input saved by a previous commit.
func (e *Editor) TakePendingInput() (PendingInput, bool) {
	p := e.pending
	e.pending = PendingInput{}
	return p, p.Text != ""
}

// IgnoreNextKeyUp reports and clears the "ignore next key-up" flag set
// on every commit.
func (e *Editor) IgnoreNextKeyUp() bool {
	v := e.ignoreNextKeyUp
	e.ignoreNextKeyUp = false
	return v
}

// DecodeUTF16 is a convenience wrapper for hosts implementing
// ClientSink that need to turn the units Consume received back into a
// string, e.g. to actually print them.
func DecodeUTF16(units []uint16) string {
	return string(utf16.Decode(units))
}

func stripTrailingNewline(s string) (trimmed, suffix string) {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2], "\r\n"
	}
	if strings.HasSuffix(s, "\r") {
		return s[:len(s)-1], "\r"
	}
	return s, ""
}
