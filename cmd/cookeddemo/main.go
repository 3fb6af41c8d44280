// Command cookeddemo is a minimal host loop driving the cooked editor
// against a real terminal: type a line, press Enter to see it echoed
// back, use Up/Down for history, F7 for the command list popup.
package main

import (
	"fmt"
	"os"

	"github.com/kungfusheep/cooked"
)

type stdoutSink struct{}

func (stdoutSink) Consume(units []uint16, isUnicode bool) (int, int) {
	s := cooked.DecodeUTF16(units)
	n, _ := fmt.Print(s)
	return len(units), n
}

func main() {
	if !cooked.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "cookeddemo: stdin is not a terminal")
		os.Exit(1)
	}

	term := cooked.NewTermBuffer(os.Stdout)
	if err := term.EnterRawMode(); err != nil {
		fmt.Fprintln(os.Stderr, "cookeddemo: enter raw mode:", err)
		os.Exit(1)
	}
	defer term.ExitRawMode()

	history := cooked.NewMemoryHistory(50)
	alias := cooked.NewMemoryAlias()
	input := cooked.NewTerminalInputSource(os.Stdin)
	sink := stdoutSink{}

	cfg := cooked.EditorConfig{
		EchoInput:      true,
		ProcessedInput: true,
		InsertMode:     true,
		DedupHistory:   true,
		IsUnicode:      true,
		ExeName:        "cookeddemo",
	}

	fmt.Print("cookeddemo> ")
	for {
		editor := cooked.NewEditor(cfg, term, history, alias, input)
		editor.SetCursorStyler(term)

		if !runLine(editor, sink, term, input) {
			return
		}
		fmt.Print("\r\ncookeddemo> ")
	}
}

// runLine drives one RunOnce/commit cycle to completion, blocking on
// Ready/resize between suspensions. Returns false when the host should
// stop reading entirely (alerted, or the input thread died).
func runLine(editor *cooked.Editor, sink cooked.ClientSink, term *cooked.TermBuffer, input *cooked.TerminalInputSource) bool {
	for {
		outcome, err := editor.RunOnce()
		if err != nil {
			fmt.Fprintln(os.Stderr, "\r\ncookeddemo:", err)
			return false
		}
		switch outcome {
		case cooked.OutcomeDone:
			editor.Commit(sink)
			return true
		case cooked.OutcomeAlerted, cooked.OutcomeThreadTerminating:
			return false
		case cooked.OutcomeWait:
			select {
			case <-input.Ready():
			case <-term.ResizeChan():
			}
		}
	}
}
